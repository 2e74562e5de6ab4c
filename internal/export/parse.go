package export

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Declaration is one custom property read back from CSS.
type Declaration struct {
	// ID is the property name without the leading "--".
	ID    string
	Value string
	// Group is the text of the closest preceding comment, e.g. "Colors".
	Group string
}

// ParseDeclarations extracts every custom property declaration from src.
// Values are reproduced token by token with whitespace runs collapsed and
// backslash escapes outside quoted strings decoded.
func ParseDeclarations(src string) ([]Declaration, error) {
	lexer := css.NewLexer(parse.NewInputString(src))

	var out []Declaration
	group := ""
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// io.EOF is the normal end of input
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return out, err
			}
			break
		}

		switch {
		case tt == css.CommentToken:
			group = commentText(string(text))
		case isPropertyName(tt, text):
			name := strings.TrimPrefix(string(text), "--")
			value, ok := readValue(lexer)
			if !ok {
				continue
			}
			out = append(out, Declaration{ID: name, Value: value, Group: group})
		}
	}
	return out, nil
}

// IDs returns the declared property ids in source order.
func IDs(src string) ([]string, error) {
	decls, err := ParseDeclarations(src)
	ids := make([]string, len(decls))
	for i, d := range decls {
		ids[i] = d.ID
	}
	return ids, err
}

func isPropertyName(tt css.TokenType, text []byte) bool {
	if tt != css.CustomPropertyNameToken && tt != css.IdentToken {
		return false
	}
	return len(text) > 2 && text[0] == '-' && text[1] == '-'
}

// readValue consumes ": value" up to the terminating ';' or '}' at
// nesting depth zero.
func readValue(lexer *css.Lexer) (string, bool) {
	if !skipToColon(lexer) {
		return "", false
	}

	var b strings.Builder
	depth := 0
	space := false
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return strings.TrimSpace(b.String()), true
		case css.WhitespaceToken, css.CommentToken:
			space = b.Len() > 0
			continue
		case css.SemicolonToken:
			if depth == 0 {
				return strings.TrimSpace(b.String()), true
			}
		case css.RightBraceToken:
			if depth == 0 {
				return strings.TrimSpace(b.String()), true
			}
			depth--
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CustomPropertyValueToken:
			text = []byte(strings.TrimSpace(string(text)))
		}
		if hasEscapes(tt, text) {
			text = unescape(text)
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.Write(text)
	}
}

func hasEscapes(tt css.TokenType, text []byte) bool {
	switch tt {
	case css.StringToken, css.BadStringToken:
		return false
	case css.URLToken, css.BadURLToken:
		if bytes.ContainsAny(text, `"'`) {
			return false
		}
	}
	return bytes.IndexByte(text, '\\') >= 0
}

// unescape decodes CSS escapes: a backslash followed by up to six hex
// digits and one optional whitespace, or by any other character.
func unescape(text []byte) []byte {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' || i+1 == len(text) {
			out = append(out, text[i])
			continue
		}
		i++
		j := i
		for j < len(text) && j-i < 6 && isHex(text[j]) {
			j++
		}
		if j == i {
			r, n := utf8.DecodeRune(text[i:])
			out = utf8.AppendRune(out, r)
			i += n - 1
			continue
		}
		cp, _ := strconv.ParseUint(string(text[i:j]), 16, 32)
		r := rune(cp)
		if cp == 0 || cp > utf8.MaxRune || !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		out = utf8.AppendRune(out, r)
		if j < len(text) && isSpace(text[j]) {
			j++
		}
		i = j - 1
	}
	return out
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func skipToColon(lexer *css.Lexer) bool {
	for {
		tt, _ := lexer.Next()
		switch tt {
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.ColonToken:
			return true
		}
		return false
	}
}

func commentText(raw string) string {
	raw = strings.TrimPrefix(raw, "/*")
	raw = strings.TrimSuffix(raw, "*/")
	return strings.TrimSpace(raw)
}

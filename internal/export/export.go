// Package export renders Token Store snapshots as grouped CSS custom
// property blocks, JSON or YAML, and reads such blocks back.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/tokenkit/internal/tokens"
)

// Format selects an export encoding.
type Format string

// Supported formats.
const (
	FormatCSS  Format = "css"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultSelector wraps CSS output.
const DefaultSelector = ":root"

// SchemaVersion is written into JSON and YAML documents.
const SchemaVersion = "1.0"

// ParseFormat validates a format name. Empty means css.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "css":
		return FormatCSS, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Group is the tokens of one type in store order.
type Group struct {
	Type   tokens.Type
	Tokens []tokens.Token
}

// Groups buckets toks by type in export order, skipping empty groups.
func Groups(toks []tokens.Token) []Group {
	byType := make(map[tokens.Type][]tokens.Token, len(tokens.Types()))
	for _, t := range toks {
		byType[t.Type] = append(byType[t.Type], t)
	}

	var out []Group
	for _, typ := range tokens.Types() {
		if len(byType[typ]) == 0 {
			continue
		}
		out = append(out, Group{Type: typ, Tokens: byType[typ]})
	}
	return out
}

// WriteDeclarations writes the bare grouped block: a comment header per
// non-empty group, one "--{id}: value;" line per token, and a blank line
// between groups.
func WriteDeclarations(w io.Writer, toks []tokens.Token) error {
	return writeDeclarations(w, toks, "")
}

func writeDeclarations(w io.Writer, toks []tokens.Token, indent string) error {
	bw := bufio.NewWriter(w)
	for i, g := range Groups(toks) {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%s/* %s */\n", indent, g.Type.Label())
		for _, t := range g.Tokens {
			fmt.Fprintf(bw, "%s--%s: %s;\n", indent, t.ID, escapeValue(t.Value))
		}
	}
	return bw.Flush()
}

// escapeValue backslash-escapes every character of v, outside complete
// quoted strings, that would end the declaration or the block: ';', '{',
// '}', a comment opener and the backslash itself. Brackets are escaped too
// when they do not balance. ParseDeclarations reverses it.
func escapeValue(v string) string {
	if !strings.ContainsAny(v, ";{}\\*()[]\"'") {
		return v
	}
	balanced := bracketsBalanced(v)

	var b strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '"' || c == '\'' {
			if end := stringEnd(v, i); end > 0 {
				b.WriteString(v[i:end])
				i = end - 1
				continue
			}
		}
		switch {
		case c == ';', c == '{', c == '}', c == '\\', c == '"', c == '\'',
			c == '*' && i > 0 && v[i-1] == '/',
			!balanced && strings.IndexByte("()[]", c) >= 0:
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// stringEnd returns the index just past the quoted string starting at
// v[start], or -1 when it is not closed on the same line.
func stringEnd(v string, start int) int {
	quote := v[start]
	for j := start + 1; j < len(v); j++ {
		switch v[j] {
		case '\\':
			j++
		case '\n', '\r', '\f':
			return -1
		case quote:
			return j + 1
		}
	}
	return -1
}

func bracketsBalanced(v string) bool {
	var open []byte
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '"' || c == '\'' {
			if end := stringEnd(v, i); end > 0 {
				i = end - 1
				continue
			}
		}
		switch c {
		case '(':
			open = append(open, ')')
		case '[':
			open = append(open, ']')
		case ')', ']':
			if len(open) == 0 || open[len(open)-1] != c {
				return false
			}
			open = open[:len(open)-1]
		}
	}
	return len(open) == 0
}

// CSS wraps the grouped block in a selector rule.
func CSS(toks []tokens.Token, selector string) string {
	if selector == "" {
		selector = DefaultSelector
	}

	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	_ = writeDeclarations(&b, toks, "  ")
	b.WriteString("}\n")
	return b.String()
}

// Document is the JSON and YAML export schema.
type Document struct {
	Version string          `json:"version" yaml:"version"`
	Groups  []DocumentGroup `json:"groups" yaml:"groups"`
}

// DocumentGroup is one category of a Document.
type DocumentGroup struct {
	Type   tokens.Type     `json:"type" yaml:"type"`
	Label  string          `json:"label" yaml:"label"`
	Tokens []DocumentToken `json:"tokens" yaml:"tokens"`
}

// DocumentToken is one exported token.
type DocumentToken struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// BuildDocument converts toks to the export schema.
func BuildDocument(toks []tokens.Token) Document {
	doc := Document{Version: SchemaVersion, Groups: []DocumentGroup{}}
	for _, g := range Groups(toks) {
		dg := DocumentGroup{Type: g.Type, Label: g.Type.Label(), Tokens: make([]DocumentToken, len(g.Tokens))}
		for i, t := range g.Tokens {
			dg.Tokens[i] = DocumentToken{ID: t.ID, Name: t.Name, Value: t.Value, Description: t.Description}
		}
		doc.Groups = append(doc.Groups, dg)
	}
	return doc
}

// Tokens flattens a Document back into tokens.
func (d Document) Tokens() []tokens.Token {
	var out []tokens.Token
	for _, g := range d.Groups {
		for _, t := range g.Tokens {
			out = append(out, tokens.Token{ID: t.ID, Name: t.Name, Value: t.Value, Type: g.Type, Description: t.Description})
		}
	}
	return out
}

// WriteJSON writes toks as an indented JSON Document.
func WriteJSON(w io.Writer, toks []tokens.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDocument(toks))
}

// WriteYAML writes toks as a YAML Document.
func WriteYAML(w io.Writer, toks []tokens.Token) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(BuildDocument(toks)); err != nil {
		return err
	}
	return encoder.Close()
}

// Write renders toks in format. selector only applies to css.
func Write(w io.Writer, toks []tokens.Token, format Format, selector string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, toks)
	case FormatYAML:
		return WriteYAML(w, toks)
	case FormatCSS, "":
		_, err := io.WriteString(w, CSS(toks, selector))
		return err
	}
	return fmt.Errorf("unknown export format %q", format)
}

// ContentType is the HTTP media type of format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	}
	return "text/css; charset=utf-8"
}

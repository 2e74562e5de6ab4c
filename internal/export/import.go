package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// ImportStats counts what ImportFiles looked at.
type ImportStats struct {
	FilesDiscovered int // files matched by the globs
	FilesScanned    int // files actually parsed
	FilesSkipped    int // gitignored files
	Declarations    int // custom properties found
	Duplicates      int // properties dropped because the id was already seen
}

var (
	lengthPattern = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)(px|rem|em)$`)

	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore compiles ./.gitignore once. A missing file means nothing
// is ignored.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile applies .gitignore to relative paths only.
func shouldSkipFile(path string) bool {
	if filepath.IsAbs(path) {
		return false
	}
	gi := loadGitIgnore()
	return gi != nil && gi.MatchesPath(path)
}

// ImportFiles reads custom properties from every CSS file matching
// patterns. The first declaration of an id wins.
func ImportFiles(patterns []string) ([]tokens.Token, ImportStats, error) {
	files, stats, err := expandGlobs(patterns)
	if err != nil {
		return nil, stats, err
	}

	seen := make(map[string]bool)
	var out []tokens.Token
	for _, file := range files {
		// #nosec G304 - paths come from the caller's globs
		content, err := os.ReadFile(file)
		if err != nil {
			return out, stats, fmt.Errorf("read %s: %w", file, err)
		}
		decls, err := ParseDeclarations(string(content))
		if err != nil {
			return out, stats, fmt.Errorf("parse %s: %w", file, err)
		}
		stats.FilesScanned++

		for _, d := range decls {
			stats.Declarations++
			if seen[d.ID] {
				stats.Duplicates++
				continue
			}
			seen[d.ID] = true
			out = append(out, ToToken(d))
		}
	}
	return out, stats, nil
}

func expandGlobs(patterns []string) ([]string, ImportStats, error) {
	var files []string
	var stats ImportStats
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++
			if shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
		}
	}
	return files, stats, nil
}

// ToToken converts a declaration into a token. A group header naming a
// category decides the type; otherwise it is inferred from the value and id.
func ToToken(d Declaration) tokens.Token {
	return tokens.Token{
		ID:    d.ID,
		Name:  DisplayName(d.ID),
		Value: d.Value,
		Type:  InferType(d),
	}
}

// InferType picks the token type of a declaration.
func InferType(d Declaration) tokens.Type {
	for _, t := range tokens.Types() {
		if strings.EqualFold(d.Group, t.Label()) {
			return t
		}
	}

	id := strings.ToLower(d.ID)
	switch {
	case strings.Contains(id, "radius"):
		return tokens.TypeBorderRadius
	case strings.Contains(id, "shadow"):
		return tokens.TypeShadow
	case scale.ValidColor(d.Value):
		return tokens.TypeColor
	case lengthPattern.MatchString(d.Value):
		return tokens.TypeSpacing
	}
	return tokens.TypeTypography
}

// DisplayName turns an id such as "primary-500" into "Primary 500".
func DisplayName(id string) string {
	parts := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	for i, p := range parts {
		r, n := utf8.DecodeRuneInString(p)
		parts[i] = string(unicode.ToTitle(r)) + p[n:]
	}
	return strings.Join(parts, " ")
}

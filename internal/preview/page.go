package preview

//go:generate templ generate -f page.templ

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/yacobolo/tokenkit/internal/theme"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// PageData is everything the preview page shows.
type PageData struct {
	Title  string
	Theme  theme.Map
	Tokens []tokens.Token
	Dark   bool
	// Live enables the websocket client that re-applies pushed themes.
	Live bool
}

func (d PageData) title() string {
	if d.Title == "" {
		return "tokenkit preview"
	}
	return d.Title
}

func (d PageData) mode() string {
	if d.Dark {
		return "dark"
	}
	return "light"
}

// rootAttributes carries the theme as the root style. Spread attributes are
// escaped once, so quoted font families survive.
func (d PageData) rootAttributes() templ.Attributes {
	return templ.Attributes{"style": d.Theme.Style()}
}

func (d PageData) shadowKeys() []string {
	var keys []string
	for _, k := range d.Theme.Keys() {
		if strings.HasPrefix(k, theme.Prefix+"shadow-") {
			keys = append(keys, k)
		}
	}
	return keys
}

func varStyle(property, variable string) templ.SafeCSS {
	return templ.SafeCSS(property + ": var(" + variable + ")")
}

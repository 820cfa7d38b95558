package dialog

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ApplyTheme resolves dialog chrome through a go-theme selector. Tokens named
// "dialog.<kind>.icon" and "dialog.<kind>.confirm" override the built-in
// classes; anything missing keeps its default. A nil selector or a failed
// lookup leaves the config untouched.
func ApplyTheme(cfg Config, selector theme.ThemeSelector, name, variant string) Config {
	if selector == nil {
		return cfg
	}
	selection, err := selector.Select(name, variant)
	if err != nil || selection == nil || selection.Manifest == nil {
		return cfg
	}

	tokens := selection.Manifest.Tokens
	if icon := strings.TrimSpace(tokens["dialog."+string(cfg.Kind)+".icon"]); icon != "" {
		cfg.Icon = icon
	}
	if confirm := strings.TrimSpace(tokens["dialog."+string(cfg.Kind)+".confirm"]); confirm != "" {
		cfg.ConfirmClass = confirm
	}
	return cfg
}

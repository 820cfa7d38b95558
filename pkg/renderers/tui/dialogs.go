package tui

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/dialog"
)

// DialogPresenter shows the submission flow's confirmation dialogs through a
// prompt driver. Icon and button classes are resolved through go-theme when
// a selector is configured; in a terminal only the text survives, but the
// resolved config is what a styled front end would receive.
type DialogPresenter struct {
	driver       PromptDriver
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

// DialogOption configures the presenter.
type DialogOption func(*DialogPresenter)

// WithThemeSelector resolves dialog chrome through go-theme before display.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) DialogOption {
	return func(p *DialogPresenter) {
		p.selector = selector
		p.themeName = name
		p.themeVariant = variant
	}
}

// NewDialogPresenter builds a presenter over the given driver.
func NewDialogPresenter(driver PromptDriver, options ...DialogOption) *DialogPresenter {
	p := &DialogPresenter{driver: driver}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

var _ dialog.Presenter = (*DialogPresenter)(nil)

// Present renders the dialog as a confirm prompt and waits for dismissal.
func (p *DialogPresenter) Present(ctx context.Context, cfg dialog.Config) error {
	cfg = dialog.ApplyTheme(cfg, p.selector, p.themeName, p.themeVariant)
	_, err := p.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("[%s] %s: %s", cfg.Kind, cfg.Title, cfg.Body),
		Default: true,
	})
	return err
}

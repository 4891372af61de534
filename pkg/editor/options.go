package editor

import (
	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/settings"
)

// Control selectors
const (
	CommitSelector = "w"
	AbortSelector  = "q"
)

// Option pairs a menu selector with the field it edits.
type Option struct {
	Selector string
	Label    string
	Field    settings.Field
}

// DefaultOptions returns the menu shown by the generator.
func DefaultOptions() []Option {
	return []Option{
		{Selector: "1", Label: "Application name", Field: settings.ApplicationName},
		{Selector: "2", Label: "Domains (comma separated)", Field: settings.Domains},
		{Selector: "3", Label: "Let's Encrypt email", Field: settings.CertbotEmail},
		{Selector: "4", Label: "Let's Encrypt mode (sandbox/live)", Field: settings.CertbotMode},
		{Selector: "5", Label: "Let's Encrypt is active (SSL cert has been installed -- yes/no)", Field: settings.CertbotActive},
		{Selector: "6", Label: "MySQL docker image", Field: settings.MySQLImage},
		{Selector: "7", Label: "Nginx docker image", Field: settings.NginxImage},
		{Selector: "8", Label: "Wordpress docker image", Field: settings.WordPressImage},
		{Selector: "9", Label: "MySQL username (don't change after initial generation)", Field: settings.MySQLUsername},
		{Selector: "10", Label: "Server configuration directory", Field: settings.ServerDirectory},
	}
}

func validateOptions(options []Option) error {
	if len(options) == 0 {
		return errors.New(errors.ErrInvalidInput, "menu has no options")
	}

	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		switch {
		case opt.Selector == "":
			return errors.Newf(errors.ErrInvalidInput, "menu option %q has no selector", opt.Label)
		case opt.Selector == CommitSelector || opt.Selector == AbortSelector:
			return errors.Newf(errors.ErrInvalidInput, "menu selector %q is reserved", opt.Selector)
		case seen[opt.Selector]:
			return errors.Newf(errors.ErrInvalidInput, "duplicate menu selector %q", opt.Selector)
		}
		if _, ok := settings.ParseField(string(opt.Field)); !ok {
			return errors.Newf(errors.ErrInvalidInput, "menu option %q edits unknown field %q", opt.Selector, opt.Field)
		}
		seen[opt.Selector] = true
	}
	return nil
}

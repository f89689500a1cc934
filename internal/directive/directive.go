// Package directive binds rendered script tags to names in a template
// engine, so templates can emit a bundle with a bare directive such as
// {% themeSwitchScripts %} or {{ themeSwitchScripts }}.
package directive

import (
	"strings"
	"unicode"

	"github.com/conneroisu/inlinescripts/internal/errors"
)

// RenderFunc produces the markup emitted where the directive is used. It is
// called on every template execution.
type RenderFunc func() (string, error)

// Registrar accepts directive registrations for a template engine.
type Registrar interface {
	Register(name string, render RenderFunc) error
}

// ValidateName rejects blank names and names containing whitespace.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.ErrInvalidArgument("directive name cannot be empty")
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return errors.ErrInvalidArgument("directive name cannot contain whitespace").
			WithContext("name", name)
	}
	return nil
}

func validate(name string, render RenderFunc) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if render == nil {
		return errors.ErrInvalidArgument("directive render function is required").
			WithContext("name", name)
	}
	return nil
}

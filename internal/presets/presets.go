// Package presets ships ready-made color scheme scripts. Each preset is a
// FileScript over an embedded template, configured with the placeholders
// its family needs.
package presets

import (
	"embed"
	"fmt"
	"regexp"

	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/conneroisu/inlinescripts/internal/script"
	"github.com/spf13/afero"
)

//go:embed js
var assets embed.FS

// DefaultKey is the toggle key used when none is configured.
const DefaultKey = "d"

var keyPattern = regexp.MustCompile(`^[a-z]$`)

// Placeholder tokens used by the shipped templates.
const (
	DarkToken      = "__DARK__"
	LightToken     = "__LIGHT__"
	SystemToken    = "__SYSTEM__"
	ToggleKeyToken = "__TOGGLE_KEY__"
)

const (
	themeDir       = "js/theme"
	twoStatesDir   = "js/two-states"
	threeStatesDir = "js/three-states"
)

// ThemeType is a value of the theme preset family.
type ThemeType string

const (
	ThemeLight ThemeType = "light"
	ThemeDark  ThemeType = "dark"
)

// TwoStateScheme is a value of the two-state color scheme family.
type TwoStateScheme string

const (
	TwoStateLight TwoStateScheme = "light"
	TwoStateDark  TwoStateScheme = "dark"
)

// ThreeStateScheme is a value of the three-state color scheme family.
type ThreeStateScheme string

const (
	ThreeStateLight  ThreeStateScheme = "light"
	ThreeStateDark   ThreeStateScheme = "dark"
	ThreeStateSystem ThreeStateScheme = "system"
)

// Fs returns the read-only file system holding the preset templates.
func Fs() afero.Fs {
	return afero.FromIOFS{FS: assets}
}

// ValidateKey accepts a single lowercase ASCII letter.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return errors.ErrInvalidArgument(fmt.Sprintf("key must be one letter from the %s pattern", keyPattern)).
			WithContext("key", key)
	}
	return nil
}

func newPreset(dir, name string, placeholders script.Placeholders) *script.FileScript {
	return script.NewFileScript(script.FileOptions{
		Name:         name,
		Directory:    dir,
		Placeholders: placeholders,
		Fs:           Fs(),
	})
}

// ThemeInit applies the stored theme, falling back to the OS preference.
func ThemeInit() *script.FileScript {
	return newPreset(themeDir, "theme-init", script.Placeholders{
		DarkToken:  string(ThemeDark),
		LightToken: string(ThemeLight),
	})
}

// ThemeSwitch toggles the theme when key is pressed.
func ThemeSwitch(key string) (*script.FileScript, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return newPreset(themeDir, "theme-switch", script.Placeholders{
		ToggleKeyToken: key,
		DarkToken:      string(ThemeDark),
		LightToken:     string(ThemeLight),
	}), nil
}

// TwoStateInit applies the stored color scheme, falling back to the OS
// preference.
func TwoStateInit() *script.FileScript {
	return newPreset(twoStatesDir, "init-script", script.Placeholders{
		DarkToken:  string(TwoStateDark),
		LightToken: string(TwoStateLight),
	})
}

// TwoStateSwitch toggles between dark and light when key is pressed and
// exposes window.inlineScripts.toggleColorScheme.
func TwoStateSwitch(key string) (*script.FileScript, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return newPreset(twoStatesDir, "switch-script", script.Placeholders{
		ToggleKeyToken: key,
		DarkToken:      string(TwoStateDark),
		LightToken:     string(TwoStateLight),
	}), nil
}

// ThreeStateInit applies the stored color scheme or the OS preference.
func ThreeStateInit() *script.FileScript {
	return newPreset(threeStatesDir, "init-script", script.Placeholders{
		DarkToken:  string(ThreeStateDark),
		LightToken: string(ThreeStateLight),
	})
}

// ThreeStateSwitch cycles dark, light and system when key is pressed,
// exposes window.inlineScripts.switchColorScheme and dispatches a
// color-scheme-switched event on every switch.
func ThreeStateSwitch(key string) (*script.FileScript, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return newPreset(threeStatesDir, "switch-script", script.Placeholders{
		ToggleKeyToken: key,
		DarkToken:      string(ThreeStateDark),
		LightToken:     string(ThreeStateLight),
		SystemToken:    string(ThreeStateSystem),
	}), nil
}

package presets

import (
	"github.com/conneroisu/inlinescripts/internal/script"
)

// Preset is a named pair of init and switch scripts.
type Preset struct {
	Name        string
	Description string

	build func(key string) ([]script.Script, error)
}

// Scripts builds the preset's scripts for the given toggle key.
func (p Preset) Scripts(key string) ([]script.Script, error) {
	return p.build(key)
}

// Catalog lists the shipped presets in a stable order.
func Catalog() []Preset {
	return []Preset{
		{
			Name:        "theme",
			Description: "two-state theme stored in localStorage.theme",
			build: func(key string) ([]script.Script, error) {
				sw, err := ThemeSwitch(key)
				if err != nil {
					return nil, err
				}
				return []script.Script{ThemeInit(), sw}, nil
			},
		},
		{
			Name:        "two-states",
			Description: "dark/light color scheme stored in localStorage.colorScheme",
			build: func(key string) ([]script.Script, error) {
				sw, err := TwoStateSwitch(key)
				if err != nil {
					return nil, err
				}
				return []script.Script{TwoStateInit(), sw}, nil
			},
		},
		{
			Name:        "three-states",
			Description: "dark/light/system color scheme with a color-scheme-switched event",
			build: func(key string) ([]script.Script, error) {
				sw, err := ThreeStateSwitch(key)
				if err != nil {
					return nil, err
				}
				return []script.Script{ThreeStateInit(), sw}, nil
			},
		},
	}
}

// Lookup finds a preset by name.
func Lookup(name string) (Preset, bool) {
	for _, p := range Catalog() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

package presets

import (
	"strings"
	"testing"

	"github.com/conneroisu/inlinescripts/internal/bundle"
	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/conneroisu/inlinescripts/internal/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

func requireValidJS(t *testing.T, code string) {
	t.Helper()

	_, err := js.Parse(parse.NewInputString(code), js.Options{})
	require.NoError(t, err, code)
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"a", "d", "z"} {
		assert.NoError(t, ValidateKey(key), key)
	}

	for _, key := range []string{"", "D", "1", "dd", " ", "ą", "-"} {
		err := ValidateKey(key)
		require.Error(t, err, key)
		assert.True(t, errors.IsInvalidArgument(err), key)
	}
}

func TestPresets_Render(t *testing.T) {
	themeSwitch, err := ThemeSwitch(DefaultKey)
	require.NoError(t, err)
	twoStateSwitch, err := TwoStateSwitch("k")
	require.NoError(t, err)
	threeStateSwitch, err := ThreeStateSwitch("x")
	require.NoError(t, err)

	tests := []struct {
		name     string
		script   *script.FileScript
		function string
		contains []string
	}{
		{
			name:     "theme init",
			script:   ThemeInit(),
			function: "themeInit",
			contains: []string{`localStorage.theme === "dark"`, `localStorage.theme === "light"`},
		},
		{
			name:     "theme switch",
			script:   themeSwitch,
			function: "themeSwitch",
			contains: []string{`event.key !== "d"`, `isContentEditable`, `localStorage.theme = isDark ? "dark" : "light"`},
		},
		{
			name:     "two-state init",
			script:   TwoStateInit(),
			function: "initScript",
			contains: []string{`localStorage.colorScheme === "dark"`, `prefers-color-scheme: dark`},
		},
		{
			name:     "two-state switch",
			script:   twoStateSwitch,
			function: "switchScript",
			contains: []string{`event.key !== "k"`, `window.inlineScripts.toggleColorScheme`},
		},
		{
			name:     "three-state init",
			script:   ThreeStateInit(),
			function: "initScript",
			contains: []string{`prefers-color-scheme: light`, `setColorScheme(null)`},
		},
		{
			name:     "three-state switch",
			script:   threeStateSwitch,
			function: "switchScript",
			contains: []string{
				`event.key !== "x"`,
				`window.inlineScripts.switchColorScheme`,
				`"color-scheme-switched"`,
				`detail: { previousScheme, currentScheme }`,
				`currentScheme = "system"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, tt.script.IsValid(), tt.script.FilePath())

			code, err := tt.script.Render()
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(code, "(function "+tt.function+"() {"), code)
			for _, want := range tt.contains {
				assert.Contains(t, code, want)
			}
			assert.NotContains(t, code, "__", "every token must be substituted")

			requireValidJS(t, code)
		})
	}
}

func TestPresets_RejectBadKeys(t *testing.T) {
	_, err := ThemeSwitch("DD")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = TwoStateSwitch("")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = ThreeStateSwitch("7")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestPresets_FsIsReadOnly(t *testing.T) {
	fs := Fs()

	_, err := fs.Stat("js/theme/theme-init.js")
	require.NoError(t, err)

	assert.Error(t, fs.Remove("js/theme/theme-init.js"))
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	names := make([]string, len(catalog))
	for i, p := range catalog {
		names[i] = p.Name
		assert.NotEmpty(t, p.Description)
	}
	assert.Equal(t, []string{"theme", "two-states", "three-states"}, names)

	for _, p := range catalog {
		t.Run(p.Name, func(t *testing.T) {
			scripts, err := p.Scripts(DefaultKey)
			require.NoError(t, err)
			require.Len(t, scripts, 2)

			b := bundle.New(scripts...)
			tag, err := b.RenderTag()
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(tag, "<script id=\""))

			code, err := b.CombinedCode()
			require.NoError(t, err)
			requireValidJS(t, code)

			_, err = p.Scripts("!")
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestCatalog_TagIDs(t *testing.T) {
	p, ok := Lookup("three-states")
	require.True(t, ok)

	scripts, err := p.Scripts(DefaultKey)
	require.NoError(t, err)

	id, err := bundle.New(scripts...).DisableHash().TagID()
	require.NoError(t, err)
	assert.Equal(t, "init-script-switch-script", id)

	_, ok = Lookup("missing")
	assert.False(t, ok)
}

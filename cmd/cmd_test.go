package cmd

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conneroisu/inlinescripts/internal/bundle"
	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/conneroisu/inlinescripts/internal/script"
	"github.com/conneroisu/inlinescripts/internal/testutils"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withFlags replaces the command flags for the duration of the test.
func withFlags(t *testing.T, target *StandardFlags, flags StandardFlags) {
	t.Helper()

	saved := *target
	if flags.Key == "" {
		flags.Key = "d"
	}
	if flags.OutputFormat == "" {
		flags.OutputFormat = "table"
	}
	*target = flags
	t.Cleanup(func() { *target = saved })
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	return cmd, &out
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    bundle.Entry
		wantErr bool
	}{
		{
			name: "plain path",
			arg:  "js/init.js",
			want: bundle.Entry{Path: "js/init.js"},
		},
		{
			name: "path with placeholders",
			arg:  `js/switch.js:{"__DARK__":"night","__KEY__":"t"}`,
			want: bundle.Entry{
				Path:         "js/switch.js",
				Placeholders: script.Placeholders{"__DARK__": "night", "__KEY__": "t"},
			},
		},
		{
			name: "trims path",
			arg:  " js/init ",
			want: bundle.Entry{Path: "js/init"},
		},
		{
			name:    "invalid json",
			arg:     `js/switch.js:{"__DARK__":}`,
			wantErr: true,
		},
		{
			name:    "non string values",
			arg:     `js/switch.js:{"__DARK__":1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntry(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, ValidateFormat("json", []string{"table", "json"}))

	err := ValidateFormat("xml", []string{"table", "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table, json")
}

func TestRenderPositionalPaths(t *testing.T) {
	testutils.UseConfig(t, "")

	dir := t.TempDir()
	initPath := testutils.CreateTestTemplate(t, dir, "init.js", "var __FUNCTION_NAME__ = '__DARK__';")
	switchPath := testutils.CreateTestTemplate(t, dir, "switch.js", "function __FUNCTION_NAME__() {}")

	withFlags(t, renderFlags, StandardFlags{NoHash: true})

	cmd, out := newTestCommand()
	err := runRender(cmd, []string{
		initPath + `:{"__DARK__":"night"}`,
		switchPath,
	})
	require.NoError(t, err)

	want := "<script id=\"init-switch\">\n" +
		"var init = 'night';\n" +
		"function switch() {}\n" +
		"</script>\n"
	assert.Equal(t, want, out.String())
}

func TestRenderDerivesHashedID(t *testing.T) {
	testutils.UseConfig(t, "")

	dir := t.TempDir()
	path := testutils.CreateTestTemplate(t, dir, "theme-init.js", "console.log(1);")

	withFlags(t, renderFlags, StandardFlags{})

	cmd, out := newTestCommand()
	require.NoError(t, runRender(cmd, []string{path}))

	id := "theme-init-" + bundle.ContentHash("console.log(1);")
	assert.True(t, strings.HasPrefix(out.String(), "<script id=\""+id+"\">\n"), out.String())
}

func TestRenderPreset(t *testing.T) {
	testutils.UseConfig(t, "")
	withFlags(t, renderFlags, StandardFlags{Preset: "three-states", Key: "t", NoHash: true, Check: true})

	cmd, out := newTestCommand()
	require.NoError(t, runRender(cmd, nil))

	assert.True(t, strings.HasPrefix(out.String(), "<script id=\"init-script-switch-script\">\n"))
	assert.Contains(t, out.String(), "t")
	assert.True(t, strings.HasSuffix(out.String(), "</script>\n"))
}

func TestRenderConfiguredBundle(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestTemplate(t, dir, "theme/init.js", "var __FUNCTION_NAME__ = '__Dark_Mode__';")
	testutils.CreateTestTemplate(t, dir, "theme/switch.js", "function __FUNCTION_NAME__() {}")

	testutils.UseConfig(t, `scripts:
  directory: `+dir+`
bundles:
  theme:
    tag_id: theme-scripts
    files:
      - path: theme/init
        placeholders:
          __Dark_Mode__: night
      - path: theme/switch.js
`)

	outPath := filepath.Join(t.TempDir(), "nested", "theme.html")
	withFlags(t, renderFlags, StandardFlags{Bundle: "theme", Out: outPath})

	cmd, out := newTestCommand()
	require.NoError(t, runRender(cmd, nil))
	assert.Empty(t, out.String())

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	want := "<script id=\"theme-scripts\">\n" +
		"var init = 'night';\n" +
		"function switch() {}\n" +
		"</script>\n"
	assert.Equal(t, want, string(written))
}

func TestRenderFlagTagIDOverridesBundle(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestTemplate(t, dir, "a.js", "a();")

	testutils.UseConfig(t, `scripts:
  directory: `+dir+`
bundles:
  one:
    tag_id: from-config
    files:
      - path: a
`)
	withFlags(t, renderFlags, StandardFlags{Bundle: "one", TagID: "from-flag"})

	cmd, out := newTestCommand()
	require.NoError(t, runRender(cmd, nil))
	assert.True(t, strings.HasPrefix(out.String(), "<script id=\"from-flag\">"))
}

func TestRenderMinify(t *testing.T) {
	testutils.UseConfig(t, "")

	dir := t.TempDir()
	path := testutils.CreateTestTemplate(t, dir, "init.js", "var   answer   =   42 ;\n\n")

	withFlags(t, renderFlags, StandardFlags{Minify: true})

	cmd, out := newTestCommand()
	require.NoError(t, runRender(cmd, []string{path}))

	id := "init-" + bundle.ContentHash("var   answer   =   42 ;\n\n")
	assert.True(t, strings.HasPrefix(out.String(), "<script id=\""+id+"\">\n"), out.String())
	assert.NotContains(t, out.String(), "answer   =")
}

func TestRenderSourceSelection(t *testing.T) {
	testutils.UseConfig(t, "")

	tests := []struct {
		name  string
		flags StandardFlags
		args  []string
	}{
		{name: "no source"},
		{name: "paths and preset", flags: StandardFlags{Preset: "theme"}, args: []string{"init.js"}},
		{name: "bundle and preset", flags: StandardFlags{Preset: "theme", Bundle: "theme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFlags(t, renderFlags, tt.flags)

			cmd, _ := newTestCommand()
			err := runRender(cmd, tt.args)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestRenderErrors(t *testing.T) {
	testutils.UseConfig(t, "")

	t.Run("unknown preset", func(t *testing.T) {
		withFlags(t, renderFlags, StandardFlags{Preset: "four-states"})

		cmd, _ := newTestCommand()
		err := runRender(cmd, nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("unknown bundle", func(t *testing.T) {
		withFlags(t, renderFlags, StandardFlags{Bundle: "missing"})

		cmd, _ := newTestCommand()
		err := runRender(cmd, nil)
		require.Error(t, err)

		var scriptErr *errors.ScriptError
		require.True(t, stderrors.As(err, &scriptErr))
		assert.Equal(t, errors.ErrCodeConfigInvalid, scriptErr.Code)
	})

	t.Run("missing template", func(t *testing.T) {
		withFlags(t, renderFlags, StandardFlags{})

		cmd, _ := newTestCommand()
		err := runRender(cmd, []string{filepath.Join(t.TempDir(), "absent.js")})
		require.Error(t, err)
		assert.True(t, errors.IsResourceNotFound(err))
	})

	t.Run("syntax check", func(t *testing.T) {
		path := testutils.CreateTestTemplate(t, t.TempDir(), "broken.js", "function ( {")
		withFlags(t, renderFlags, StandardFlags{Check: true})

		cmd, out := newTestCommand()
		err := runRender(cmd, []string{path})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Empty(t, out.String())
	})
}

func TestList(t *testing.T) {
	testutils.UseConfig(t, `bundles:
  theme:
    tag_id: theme-scripts
    files:
      - path: theme/init
  plain:
    no_hash: true
    files:
      - path: plain.js
        placeholders:
          __DARK__: night
`)

	t.Run("table", func(t *testing.T) {
		withFlags(t, listFlags, StandardFlags{})

		cmd, out := newTestCommand()
		require.NoError(t, runList(cmd, nil))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "NAME")
		assert.Contains(t, lines[1], "plain")
		assert.Contains(t, lines[1], "(derived)")
		assert.Contains(t, lines[2], "theme-scripts")
		assert.Contains(t, lines[2], "theme/init.js")
	})

	t.Run("json", func(t *testing.T) {
		withFlags(t, listFlags, StandardFlags{OutputFormat: "json"})

		cmd, out := newTestCommand()
		require.NoError(t, runList(cmd, nil))

		var summaries []bundleSummary
		require.NoError(t, json.Unmarshal(out.Bytes(), &summaries))
		require.Len(t, summaries, 2)
		assert.Equal(t, "plain", summaries[0].Name)
		assert.True(t, summaries[0].NoHash)
		assert.Equal(t, "night", summaries[0].Files[0].Placeholders["__DARK__"])
	})

	t.Run("yaml", func(t *testing.T) {
		withFlags(t, listFlags, StandardFlags{OutputFormat: "yaml"})

		cmd, out := newTestCommand()
		require.NoError(t, runList(cmd, nil))
		assert.Contains(t, out.String(), "name: theme")
	})
}

func TestListEmpty(t *testing.T) {
	testutils.UseConfig(t, "")
	withFlags(t, listFlags, StandardFlags{})

	cmd, out := newTestCommand()
	require.NoError(t, runList(cmd, nil))
	assert.Equal(t, "No bundles configured\n", out.String())
}

func TestPresets(t *testing.T) {
	withFlags(t, presetsFlags, StandardFlags{OutputFormat: "json"})

	cmd, out := newTestCommand()
	require.NoError(t, runPresets(cmd, nil))

	var summaries []presetSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summaries))

	names := make([]string, len(summaries))
	for i, s := range summaries {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"theme", "two-states", "three-states"}, names)
	assert.Equal(t, []string{"initScript", "switchScript"}, summaries[2].Functions)
}

func TestPresetsInvalidKey(t *testing.T) {
	withFlags(t, presetsFlags, StandardFlags{Key: "Ctrl"})

	cmd, _ := newTestCommand()
	err := runPresets(cmd, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestWriteBundleAndTemplatePaths(t *testing.T) {
	testutils.UseConfig(t, "")

	dir := t.TempDir()
	initPath := testutils.CreateTestTemplate(t, dir, "init.js", "init();")
	switchPath := testutils.CreateTestTemplate(t, dir, "switch.js", "toggle();")
	outPath := filepath.Join(dir, "out", "tag.html")

	cmd, _ := newTestCommand()
	cfg, logger, err := loadRuntime(cmd.ErrOrStderr())
	require.NoError(t, err)

	flags := &StandardFlags{Out: outPath, TagID: "scripts"}
	b, err := writeBundle(commandContext(cmd), cfg, logger, flags, []string{initPath, switchPath})
	require.NoError(t, err)

	assert.Equal(t, []string{initPath, switchPath}, templatePaths(b))

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "<script id=\"scripts\">\ninit();\ntoggle();\n</script>\n", string(written))

	// A later edit is picked up by the next write.
	require.NoError(t, os.WriteFile(switchPath, []byte("toggle(true);"), 0o644))
	_, err = writeBundle(commandContext(cmd), cfg, logger, flags, []string{initPath, switchPath})
	require.NoError(t, err)

	written, err = os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "toggle(true);")
}

func TestWatchRequiresOut(t *testing.T) {
	withFlags(t, watchFlags, StandardFlags{Bundle: "theme"})

	cmd, _ := newTestCommand()
	err := runWatch(cmd, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestWatchRejectsPreset(t *testing.T) {
	withFlags(t, watchFlags, StandardFlags{Preset: "theme", Out: filepath.Join(t.TempDir(), "x.html")})

	cmd, _ := newTestCommand()
	err := runWatch(cmd, nil)
	require.Error(t, err)

	var scriptErr *errors.ScriptError
	require.True(t, stderrors.As(err, &scriptErr))
	assert.Equal(t, errors.ErrCodeInvalidArgument, scriptErr.Code)
}

func TestVersionShort(t *testing.T) {
	versionFormat, versionShort = "text", true
	t.Cleanup(func() { versionFormat, versionShort = "text", false })

	cmd, out := newTestCommand()
	require.NoError(t, runVersionCommand(cmd, nil))
	assert.NotEmpty(t, strings.TrimSpace(out.String()))
}

func TestVersionJSON(t *testing.T) {
	versionFormat = "json"
	t.Cleanup(func() { versionFormat = "text" })

	cmd, out := newTestCommand()
	require.NoError(t, runVersionCommand(cmd, nil))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Contains(t, doc, "version")
	assert.Contains(t, doc, "go_version")
}

func TestVersionUnsupportedFormat(t *testing.T) {
	versionFormat = "xml"
	t.Cleanup(func() { versionFormat = "text" })

	cmd, _ := newTestCommand()
	assert.Error(t, runVersionCommand(cmd, nil))
}

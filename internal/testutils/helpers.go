// Package testutils holds fixtures shared by the package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// CreateTempScripts creates a temporary scripts directory with the standard
// layout used by the tests.
func CreateTempScripts(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	for _, dir := range []string{"js", "js/theme", "out"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tempDir, dir), 0o755))
	}

	return tempDir
}

// CreateTestTemplate writes a template file below dir, creating parents,
// and returns its path.
func CreateTestTemplate(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// UseConfig resets the global viper instance and, when content is not
// empty, loads it as the configuration file. viper is reset again when the
// test ends.
func UseConfig(t *testing.T, content string) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	if content == "" {
		return ""
	}

	path := CreateTestTemplate(t, t.TempDir(), ".inlinescripts.yml", content)
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())
	return path
}

// StandardTemplateContent provides small script templates for testing.
var StandardTemplateContent = map[string]string{
	"init": `(function () {
  var scheme = localStorage.getItem("__STORAGE_KEY__") || "__DARK__";
  document.documentElement.classList.toggle("__DARK__", scheme === "__DARK__");
})();`,
	"switch": `function __FUNCTION_NAME__() {
  document.documentElement.classList.toggle("__DARK__");
}`,
}

// SecurityTestCases provides common hostile path inputs
var SecurityTestCases = struct {
	PathTraversal    []string
	CommandInjection []string
}{
	PathTraversal: []string{
		"../../../etc/passwd",
		"..\\..\\..\\windows\\system32\\config\\sam",
		"....//....//....//etc/passwd",
		"./../scripts",
		"scripts/../../secrets",
	},
	CommandInjection: []string{
		"scripts; rm -rf /",
		"scripts && rm -rf /",
		"scripts | cat /etc/passwd",
		"scripts`rm -rf /`",
		"scripts$(rm -rf /)",
		"scripts > /tmp/out",
	},
}

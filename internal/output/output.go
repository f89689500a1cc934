// Package output post-processes rendered script code and writes tags to
// disk for the CLI.
package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/natefinch/atomic"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/parse/v2"
	jsparse "github.com/tdewolff/parse/v2/js"
)

const jsMediaType = "application/javascript"

// Minify compresses JavaScript code.
func Minify(code string) (string, error) {
	m := minify.New()
	m.AddFunc(jsMediaType, js.Minify)

	out, err := m.String(jsMediaType, code)
	if err != nil {
		return "", &errors.ScriptError{
			Type:    errors.ErrorTypeValidation,
			Code:    errors.ErrCodeInvalidArgument,
			Message: "javascript could not be minified",
			Cause:   err,
		}
	}
	return out, nil
}

// CheckSyntax parses code as JavaScript and reports the first syntax error.
func CheckSyntax(code string) error {
	if _, err := jsparse.Parse(parse.NewInputString(code), jsparse.Options{}); err != nil {
		return &errors.ScriptError{
			Type:    errors.ErrorTypeValidation,
			Code:    errors.ErrCodeInvalidArgument,
			Message: "javascript syntax error",
			Cause:   err,
		}
	}
	return nil
}

// WriteFile atomically replaces path with content, creating parent
// directories as needed.
func WriteFile(path, content string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.ErrInvalidArgument("output path cannot be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapIO(err, errors.ErrCodeWriteFailed,
				fmt.Sprintf("create directory %s", dir)).WithPath(path)
		}
	}

	if err := atomic.WriteFile(path, bytes.NewReader([]byte(content))); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWriteFailed, "write output").WithPath(path)
	}
	return nil
}

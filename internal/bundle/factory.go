package bundle

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/conneroisu/inlinescripts/internal/logging"
	"github.com/conneroisu/inlinescripts/internal/script"
	"github.com/spf13/afero"
)

// Entry names a template file and the placeholders to apply to it.
type Entry struct {
	Path         string              `json:"path" yaml:"path" mapstructure:"path"`
	Placeholders script.Placeholders `json:"placeholders,omitempty" yaml:"placeholders,omitempty" mapstructure:"placeholders"`
}

// Path is shorthand for an Entry without placeholders.
func Path(p string) Entry { return Entry{Path: p} }

// Factory builds bundles from sources or template files.
type Factory struct {
	fs      afero.Fs
	baseDir string
	logger  logging.Logger
}

// Option configures a Factory.
type Option func(*Factory)

// WithFs sets the file system templates are read from.
func WithFs(fs afero.Fs) Option {
	return func(f *Factory) {
		if fs != nil {
			f.fs = fs
		}
	}
}

// WithBaseDir resolves relative template paths against dir.
func WithBaseDir(dir string) Option {
	return func(f *Factory) {
		f.baseDir = filepath.ToSlash(strings.TrimSpace(dir))
	}
}

// WithLogger sets the logger handed to every bundle the factory builds.
func WithLogger(logger logging.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFactory creates a Factory reading from the OS file system by default.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		fs:     afero.NewOsFs(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fs returns the file system the factory reads templates from.
func (f *Factory) Fs() afero.Fs { return f.fs }

// FromSources wraps the given sources in a bundle.
func (f *Factory) FromSources(sources ...script.Script) *Bundle {
	return New(sources...).SetLogger(f.logger)
}

// FromFile builds a single-file bundle.
func (f *Factory) FromFile(p string, placeholders script.Placeholders) (*Bundle, error) {
	return f.FromFiles(Entry{Path: p, Placeholders: placeholders})
}

// FromFiles builds a bundle with one FileScript per entry, in order. Files
// are not read until the bundle renders.
func (f *Factory) FromFiles(entries ...Entry) (*Bundle, error) {
	sources := make([]script.Script, 0, len(entries))
	for _, entry := range entries {
		s, err := f.fileScript(entry)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}

	f.logger.Debug(context.Background(), "Built bundle from files", "files", len(sources))

	return f.FromSources(sources...), nil
}

func (f *Factory) fileScript(entry Entry) (*script.FileScript, error) {
	dir, name, ext, err := SplitPath(entry.Path)
	if err != nil {
		return nil, err
	}
	if f.baseDir != "" && !path.IsAbs(dir) {
		dir = path.Join(f.baseDir, dir)
	}

	return script.NewFileScript(script.FileOptions{
		Name:         name,
		Directory:    dir,
		Extension:    ext,
		Placeholders: entry.Placeholders,
		Fs:           f.fs,
	}), nil
}

// SplitPath decomposes a template path into directory, name and extension.
// The directory is everything before the final "/" (empty when there is
// none), the extension is the text after the last "." of the base name and
// falls back to "js" when absent, empty or "0", and the name is the base name
// without it.
func SplitPath(p string) (dir, name, ext string, err error) {
	p = filepath.ToSlash(strings.TrimSpace(p))
	if p == "" {
		return "", "", "", errors.ErrInvalidArgument("script path cannot be empty")
	}

	base := p
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		dir = p[:idx]
		if idx == 0 {
			dir = "/"
		}
		base = p[idx+1:]
	}
	if base == "" {
		return "", "", "", errors.ErrInvalidArgument("script path has no file name").
			WithContext("path", p)
	}

	name = base
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		name = base[:idx]
		ext = base[idx+1:]
	}
	if name == "" {
		return "", "", "", errors.ErrInvalidArgument("script path has no file name").
			WithContext("path", p)
	}
	if ext == "" || ext == "0" {
		ext = script.DefaultExtension
	}

	return dir, name, ext, nil
}

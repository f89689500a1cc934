package script

import (
	"strings"

	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/spf13/afero"
)

// DefaultExtension is used when a FileScript is built without an extension.
const DefaultExtension = "js"

// FileOptions configures a FileScript. Blank fields fall back to defaults.
type FileOptions struct {
	// Name is the file name without extension. It doubles as the script name.
	Name string
	// Directory holds the file. Empty means the file system root or the
	// working directory, depending on the Fs.
	Directory string
	// Extension without the leading dot. Defaults to "js".
	Extension string
	// Placeholders are merged over the built-in __FUNCTION_NAME__ token, so an
	// entry for that token wins.
	Placeholders Placeholders
	// FunctionName overrides the camelCase name derived from Name.
	FunctionName string
	// Fs is the file system the template is read from. Defaults to the OS.
	Fs afero.Fs
}

// FileScript is a Script backed by a template file.
type FileScript struct {
	fileName      string
	fileDirectory string
	fileExtension string
	functionName  string
	placeholders  Placeholders
	fs            afero.Fs

	filePath string
	rendered *string
}

// NewFileScript creates a FileScript from opts.
func NewFileScript(opts FileOptions) *FileScript {
	s := &FileScript{
		fileName:      strings.TrimSpace(opts.Name),
		fileDirectory: strings.TrimSpace(opts.Directory),
		fileExtension: strings.TrimPrefix(strings.TrimSpace(opts.Extension), "."),
		functionName:  strings.TrimSpace(opts.FunctionName),
		placeholders:  opts.Placeholders.Clone(),
		fs:            opts.Fs,
	}
	if s.fileExtension == "" {
		s.fileExtension = DefaultExtension
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	return s
}

// Name implements Script and returns the file name.
func (s *FileScript) Name() string { return s.fileName }

// FileName returns the base name without extension.
func (s *FileScript) FileName() string { return s.fileName }

// FileDirectory returns the directory holding the file.
func (s *FileScript) FileDirectory() string { return s.fileDirectory }

// FileExtension returns the extension without the leading dot.
func (s *FileScript) FileExtension() string { return s.fileExtension }

// Fs returns the file system the script reads from.
func (s *FileScript) Fs() afero.Fs { return s.fs }

// Placeholders returns a copy of the script's own placeholders, without the
// built-in function name token.
func (s *FileScript) Placeholders() Placeholders { return s.placeholders.Clone() }

// FunctionName returns the value substituted for __FUNCTION_NAME__ when the
// placeholders do not override it.
func (s *FileScript) FunctionName() string {
	if s.functionName != "" {
		return s.functionName
	}
	return FunctionName(s.fileName)
}

// FilePath returns directory + "/" + name + "." + extension. The separator is
// only added when the directory does not already end with one. The result is
// computed once.
func (s *FileScript) FilePath() string {
	if s.filePath != "" {
		return s.filePath
	}

	dir := s.fileDirectory
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	s.filePath = dir + s.fileName + "." + s.fileExtension

	return s.filePath
}

// IsValid reports whether FilePath exists and is a regular file.
func (s *FileScript) IsValid() bool {
	info, err := s.fs.Stat(s.FilePath())
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Render reads the template and substitutes its placeholders. A missing,
// non-regular or unreadable file yields a ResourceNotFound error. The result
// is memoized once rendering succeeds.
func (s *FileScript) Render() (string, error) {
	if s.rendered != nil {
		return *s.rendered, nil
	}

	path := s.FilePath()
	if !s.IsValid() {
		return "", errors.ErrResourceNotFound(path, nil)
	}

	raw, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", errors.ErrResourceNotFound(path, err)
	}

	builtin := Placeholders{FunctionNameToken: s.FunctionName()}
	out := Substitute(string(raw), builtin.Merge(s.placeholders))
	s.rendered = &out

	return out, nil
}

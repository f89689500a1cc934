// Package script defines renderable client-side script sources.
//
// A Script produces its final JavaScript text and a name. FileScript is the
// main implementation: it loads a template file through an afero.Fs and
// substitutes placeholder tokens, always including __FUNCTION_NAME__, which
// defaults to the camelCase form of the file name.
package script

// Script is one unit of renderable script text.
type Script interface {
	// Name identifies the script in derived tag ids. It need not be unique.
	Name() string
	// Render returns the final script text.
	Render() (string, error)
}

// Static is a Script whose text is known up front.
type Static struct {
	ScriptName string
	Code       string
}

// NewStatic returns a Static script.
func NewStatic(name, code string) *Static {
	return &Static{ScriptName: name, Code: code}
}

// Name implements Script.
func (s *Static) Name() string { return s.ScriptName }

// Render implements Script.
func (s *Static) Render() (string, error) { return s.Code, nil }

// Func adapts a render function to the Script interface.
type Func struct {
	ScriptName string
	RenderFunc func() (string, error)
}

// Name implements Script.
func (f Func) Name() string { return f.ScriptName }

// Render implements Script.
func (f Func) Render() (string, error) {
	if f.RenderFunc == nil {
		return "", nil
	}
	return f.RenderFunc()
}

var (
	_ Script = (*Static)(nil)
	_ Script = Func{}
	_ Script = (*FileScript)(nil)
)

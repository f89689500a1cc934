package directive

import (
	"fmt"
	"sync"

	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/flosch/pongo2/v6"
)

// Pongo2Registrar registers directives as pongo2 tags. pongo2 keeps tags in
// a process-wide table, so a name can be registered once per process unless
// Replace is set.
type Pongo2Registrar struct {
	// Replace overwrites a tag that is already registered instead of failing.
	Replace bool

	mu    sync.Mutex
	names []string
}

// NewPongo2Registrar creates a registrar for the global pongo2 tag table.
func NewPongo2Registrar() *Pongo2Registrar {
	return &Pongo2Registrar{}
}

// Register implements Registrar. The resulting tag takes no arguments.
func (r *Pongo2Registrar) Register(name string, render RenderFunc) error {
	if err := validate(name, render); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	parser := tagParser(name, render)
	err := pongo2.RegisterTag(name, parser)
	if err != nil && r.Replace {
		err = pongo2.ReplaceTag(name, parser)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, errors.ErrCodeDuplicate,
			fmt.Sprintf("directive %q already registered", name))
	}
	r.names = append(r.names, name)

	return nil
}

// Names returns the tags registered through r.
func (r *Pongo2Registrar) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func tagParser(name string, render RenderFunc) pongo2.TagParser {
	return func(_ *pongo2.Parser, _ *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
		if arguments.Remaining() > 0 {
			return nil, arguments.Error(fmt.Sprintf("'%s' takes no arguments", name), nil)
		}
		return &scriptTagNode{name: name, render: render}, nil
	}
}

type scriptTagNode struct {
	name   string
	render RenderFunc
}

func (n *scriptTagNode) Execute(_ *pongo2.ExecutionContext, w pongo2.TemplateWriter) *pongo2.Error {
	out, err := n.render()
	if err != nil {
		return &pongo2.Error{Sender: "tag:" + n.name, OrigError: err}
	}
	if _, err := w.WriteString(out); err != nil {
		return &pongo2.Error{Sender: "tag:" + n.name, OrigError: err}
	}
	return nil
}

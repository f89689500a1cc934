package directive

import (
	"html/template"
	"sync"

	"github.com/conneroisu/inlinescripts/internal/errors"
)

// FuncMapRegistrar registers directives as html/template functions. Each
// function takes no arguments and returns the tag as template.HTML so the
// markup is emitted unescaped.
type FuncMapRegistrar struct {
	mu    sync.RWMutex
	funcs template.FuncMap
}

// NewFuncMapRegistrar creates a registrar seeded with a copy of base.
func NewFuncMapRegistrar(base template.FuncMap) *FuncMapRegistrar {
	funcs := make(template.FuncMap, len(base))
	for k, v := range base {
		funcs[k] = v
	}
	return &FuncMapRegistrar{funcs: funcs}
}

// Register implements Registrar.
func (r *FuncMapRegistrar) Register(name string, render RenderFunc) error {
	if err := validate(name, render); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[name]; exists {
		return errors.ErrDuplicate("directive", name)
	}
	r.funcs[name] = func() (template.HTML, error) {
		out, err := render()
		if err != nil {
			return "", err
		}
		return template.HTML(out), nil
	}

	return nil
}

// FuncMap returns a copy of the registered functions for template.Funcs.
func (r *FuncMapRegistrar) FuncMap() template.FuncMap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(template.FuncMap, len(r.funcs))
	for k, v := range r.funcs {
		out[k] = v
	}
	return out
}

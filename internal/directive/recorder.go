package directive

import (
	"sync"

	"github.com/conneroisu/inlinescripts/internal/errors"
)

// Recorder is an in-memory Registrar. It keeps registrations in order and
// can render them on demand, which makes it useful for the CLI and tests.
type Recorder struct {
	mu      sync.RWMutex
	order   []string
	renders map[string]RenderFunc
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{renders: make(map[string]RenderFunc)}
}

// Register implements Registrar.
func (r *Recorder) Register(name string, render RenderFunc) error {
	if err := validate(name, render); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renders[name]; exists {
		return errors.ErrDuplicate("directive", name)
	}
	r.renders[name] = render
	r.order = append(r.order, name)

	return nil
}

// Names returns registered names in registration order.
func (r *Recorder) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Has reports whether name is registered.
func (r *Recorder) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renders[name]
	return ok
}

// Render runs the directive registered under name.
func (r *Recorder) Render(name string) (string, error) {
	r.mu.RLock()
	render, ok := r.renders[name]
	r.mu.RUnlock()

	if !ok {
		return "", errors.NewValidationError(errors.ErrCodeInvalidArgument, "directive not registered").
			WithContext("name", name)
	}
	return render()
}

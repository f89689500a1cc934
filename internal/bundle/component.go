package bundle

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Component exposes the bundle as a templ component that writes the raw
// script tag. Render errors surface from the component's Render call.
func (b *Bundle) Component() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		tag, err := b.RenderTag()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, tag)
		return err
	})
}

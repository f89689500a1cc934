// Package bundle combines ordered scripts into one inline <script> tag.
//
// A Bundle renders each of its scripts at most once, joins the results with a
// newline and derives a tag id from the kebab-cased script names, suffixed by
// the first eight hex digits of the xxHash128 of the combined code. The
// result is emitted as
//
//	<script id="{tagId}">
//	{combinedCode}
//	</script>
//
// A Bundle belongs to a single render call and is not safe for concurrent
// use.
package bundle

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/conneroisu/inlinescripts/internal/directive"
	"github.com/conneroisu/inlinescripts/internal/errors"
	"github.com/conneroisu/inlinescripts/internal/logging"
	"github.com/conneroisu/inlinescripts/internal/script"
)

// Bundle holds an ordered list of scripts rendered as one unit.
type Bundle struct {
	scripts []script.Script
	logger  logging.Logger

	addHash bool

	explicitID string
	derivedID  string

	combined     bool
	combinedCode string
}

// New creates a bundle of scripts. Their order is kept verbatim in the
// output; duplicates are not removed.
func New(scripts ...script.Script) *Bundle {
	owned := make([]script.Script, 0, len(scripts))
	owned = append(owned, scripts...)

	return &Bundle{
		scripts: owned,
		logger:  logging.Discard(),
		addHash: true,
	}
}

// SetLogger replaces the bundle's logger. A nil logger discards records.
func (b *Bundle) SetLogger(logger logging.Logger) *Bundle {
	if logger == nil {
		logger = logging.Discard()
	}
	b.logger = logger.WithComponent("bundle")
	return b
}

// Scripts returns a copy of the bundle's scripts in order.
func (b *Bundle) Scripts() []script.Script {
	out := make([]script.Script, len(b.scripts))
	copy(out, b.scripts)
	return out
}

// Len returns the number of scripts in the bundle.
func (b *Bundle) Len() int { return len(b.scripts) }

// DisableHash stops the content hash from being appended to ids derived
// after this call. It has no effect on an explicit or already derived id.
func (b *Bundle) DisableHash() *Bundle {
	b.addHash = false
	return b
}

// HashEnabled reports whether derived ids carry the content hash.
func (b *Bundle) HashEnabled() bool { return b.addHash }

// SetTagID fixes the tag id. Blank ids are rejected. Once set, the id is
// never derived from content again.
func (b *Bundle) SetTagID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.ErrInvalidArgument("tag id cannot be empty")
	}
	b.explicitID = id
	return nil
}

// CombinedCode renders every script in order and joins the results with a
// single newline. Scripts are rendered on the first successful call only;
// if any script fails nothing is cached and the error is returned.
func (b *Bundle) CombinedCode() (string, error) {
	if b.combined {
		return b.combinedCode, nil
	}

	parts := make([]string, 0, len(b.scripts))
	for i, s := range b.scripts {
		code, err := s.Render()
		if err != nil {
			b.logger.Error(context.Background(), err, "Script render failed",
				"script", s.Name(),
				"position", i)
			return "", fmt.Errorf("render script %q: %w", s.Name(), err)
		}
		parts = append(parts, code)
	}

	b.combinedCode = strings.Join(parts, "\n")
	b.combined = true

	b.logger.Debug(context.Background(), "Combined scripts",
		"scripts", len(b.scripts),
		"bytes", len(b.combinedCode))

	return b.combinedCode, nil
}

// TagID returns the explicit id when one was set. Otherwise the id is derived
// from the kebab-cased script names joined with "-", followed by "-" and the
// content hash while hashing is enabled, and cached.
func (b *Bundle) TagID() (string, error) {
	if b.explicitID != "" {
		return b.explicitID, nil
	}
	if b.derivedID != "" {
		return b.derivedID, nil
	}

	names := make([]string, len(b.scripts))
	for i, s := range b.scripts {
		names[i] = script.Kebab(s.Name())
	}
	id := strings.Join(names, "-")

	if b.addHash {
		code, err := b.CombinedCode()
		if err != nil {
			return "", err
		}
		id += "-" + ContentHash(code)
	}

	b.derivedID = id
	return id, nil
}

// RenderTag wraps the combined code in a script tag carrying the tag id.
func (b *Bundle) RenderTag() (string, error) {
	id, err := b.TagID()
	if err != nil {
		return "", err
	}
	code, err := b.CombinedCode()
	if err != nil {
		return "", err
	}

	return FormatTag(id, code), nil
}

// FormatTag wraps code in a script tag with the given id.
func FormatTag(id, code string) string {
	return fmt.Sprintf("<script id=\"%s\">\n%s\n</script>", id, code)
}

// HTML returns the rendered tag typed for html/template.
func (b *Bundle) HTML() (template.HTML, error) {
	tag, err := b.RenderTag()
	if err != nil {
		return "", err
	}
	return template.HTML(tag), nil
}

// RegisterAs binds the bundle's tag to a directive name on the registrar.
func (b *Bundle) RegisterAs(registrar directive.Registrar, name string) error {
	if registrar == nil {
		return errors.ErrInvalidArgument("directive registrar is required")
	}
	if err := registrar.Register(name, b.RenderTag); err != nil {
		return err
	}

	b.logger.Debug(context.Background(), "Registered directive", "directive", name)
	return nil
}

//go:build property

package watcher

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestDebouncerProperties validates batching properties of the debouncer
func TestDebouncerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(9876)
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	// Property: A burst of changes yields one batch with one event per path
	properties.Property("bursts collapse to one event per path", prop.ForAll(
		func(paths []int) bool {
			if len(paths) == 0 {
				return true
			}

			d := NewDebouncer(50 * time.Millisecond)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go d.start(ctx)

			unique := make(map[string]struct{})
			for _, p := range paths {
				name := fmt.Sprintf("file-%d.js", p)
				unique[name] = struct{}{}
				d.Add(ChangeEvent{Type: EventTypeModified, Path: name})
			}

			select {
			case events := <-d.Output():
				if len(events) != len(unique) {
					return false
				}
				for i := 1; i < len(events); i++ {
					if events[i-1].Path >= events[i].Path {
						return false
					}
				}
				return true
			case <-time.After(2 * time.Second):
				return false
			}
		},
		gen.SliceOfN(20, gen.IntRange(0, 5)),
	))

	properties.TestingRun(t)
}

package sorting

import (
	"fmt"
	"time"
)

// Options tunes strategies that take parameters.
type Options struct {
	// LatencyUnit is how long the latency strategy sleeps per unit of value.
	LatencyUnit time.Duration
}

func DefaultOptions() Options {
	return Options{LatencyUnit: 50 * time.Millisecond}
}

// Registry maps roster ids to strategy factories in display order.
type Registry struct {
	factories map[string]func() Strategy
	order     []string
}

func NewRegistry(opts Options) *Registry {
	if opts.LatencyUnit <= 0 {
		opts.LatencyUnit = DefaultOptions().LatencyUnit
	}
	r := &Registry{factories: make(map[string]func() Strategy)}

	r.register("bubble", func() Strategy { return NewBubble() })
	r.register("insertion", func() Strategy { return NewInsertion() })
	r.register("quick", func() Strategy { return NewQuick() })
	r.register("merge", func() Strategy { return NewMerge() })
	r.register("miracle", func() Strategy { return NewMiracle() })
	r.register("selection", func() Strategy { return NewSelection() })
	r.register("sleep", func() Strategy { return NewSleep(opts.LatencyUnit) })
	r.register("quantum", func() Strategy { return NewQuantum() })
	r.register("cocktail", func() Strategy { return NewCocktail() })
	r.register("brutal", func() Strategy { return NewBrutal() })
	r.register("stalin", func() Strategy { return NewStalin() })
	r.register("bogo", func() Strategy { return NewBogo() })

	return r
}

func (r *Registry) register(id string, fn func() Strategy) {
	r.factories[id] = fn
	r.order = append(r.order, id)
}

// Get returns a fresh strategy for id.
func (r *Registry) Get(id string) (Strategy, error) {
	fn, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, id)
	}
	return fn(), nil
}

// List returns every registered id in display order.
func (r *Registry) List() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Roster resolves ids into strategies. An empty list yields the full roster.
func (r *Registry) Roster(ids []string) ([]Strategy, error) {
	if len(ids) == 0 {
		ids = r.order
	}
	roster := make([]Strategy, 0, len(ids))
	for _, id := range ids {
		s, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		roster = append(roster, s)
	}
	return roster, nil
}

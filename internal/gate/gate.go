// Package gate provides a per-venue advisory gate serializing placement
// operations. The placement coordinator assumes at most one in-flight
// operation per venue; the HTTP layer acquires the gate for every declared
// participant before invoking it. Multi-key acquisition happens in sorted
// order so two overlapping swaps cannot deadlock against each other. The
// gate is process-local; multi-machine deployments need an external lease
// with the same keying.
package gate

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

type Gate struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Gate {
	return &Gate{entries: map[string]*entry{}}
}

// Acquire locks every key and returns a release function. Duplicate keys
// are collapsed; keys are locked in sorted order.
func (g *Gate) Acquire(keys ...string) (release func()) {
	distinct := dedupeSorted(keys)

	locked := make([]*entry, 0, len(distinct))
	for _, k := range distinct {
		e := g.retain(k)
		e.mu.Lock()
		locked = append(locked, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(locked) - 1; i >= 0; i-- {
				locked[i].mu.Unlock()
			}
			for _, k := range distinct {
				g.put(k)
			}
		})
	}
}

func (g *Gate) retain(key string) *entry {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.entries[key]
	if !ok {
		e = &entry{}
		g.entries[key] = e
	}
	e.refs++
	return e
}

func (g *Gate) put(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(g.entries, key)
	}
}

func dedupeSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	// insertion sort; key counts are tiny (one or two per request)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

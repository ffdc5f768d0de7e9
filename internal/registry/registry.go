// Package registry provides a global registry of world object builders.
// Object kinds register themselves in init() functions, allowing the level
// loader to construct scenes without a hardcoded switch over kinds.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/world"
)

// ErrUnknownKind is returned when no builder is registered for a kind.
var ErrUnknownKind = errors.New("registry: unknown kind")

// Params are the already-structured construction parameters of one object.
// Angles are in radians.
type Params struct {
	Name  string
	Pos   core.Vec2
	Rot   float64
	Extra map[string]float64 // kind-specific values such as cols, rows, spread
}

// Float returns the named extra parameter, or def when it is absent.
func (p Params) Float(key string, def float64) float64 {
	if v, ok := p.Extra[key]; ok {
		return v
	}
	return def
}

// Builder adds one object of its kind to the scene.
type Builder func(s *world.Scene, p Params) (*world.Object, error)

// KindInfo contains metadata about a registered kind.
type KindInfo struct {
	ID          string
	Description string
}

type entry struct {
	build Builder
	desc  string
}

var (
	builders = make(map[string]entry)
	mu       sync.RWMutex
)

// Register adds a builder to the registry.
// Typically called from an init() function.
// Panics if a builder with the same kind is already registered.
func Register(kind, description string, b Builder) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := builders[kind]; exists {
		panic(fmt.Sprintf("registry: kind %q already registered", kind))
	}
	builders[kind] = entry{build: b, desc: description}
}

// List returns information about all registered kinds, sorted by ID.
func List() []KindInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]KindInfo, 0, len(builders))
	for id, e := range builders {
		result = append(result, KindInfo{ID: id, Description: e.desc})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Build constructs an object of the given kind in s.
func Build(kind string, s *world.Scene, p Params) (*world.Object, error) {
	mu.RLock()
	e, ok := builders[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	o, err := e.build(s, p)
	if err != nil {
		return nil, fmt.Errorf("registry: build %s: %w", kind, err)
	}
	if o != nil && p.Name != "" {
		o.Name = p.Name
	}
	return o, nil
}

// Exists checks if a builder for the kind is registered.
func Exists(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := builders[kind]
	return ok
}

package fleet

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/seantiz/mxm/internal/mock"
)

// ErrUnknownFleet is returned when a fleet name has not been registered.
var ErrUnknownFleet = errors.New("unknown fleet")

// Info describes a registered fleet.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Machines    int    `json:"machines"`
}

type entry struct {
	description string
	fixtures    []mock.Fixture
}

// Registry maps fleet names to fixture sets.
type Registry struct {
	mu     sync.RWMutex
	fleets map[string]entry
}

// NewRegistry creates an empty fleet registry.
func NewRegistry() *Registry {
	return &Registry{
		fleets: make(map[string]entry),
	}
}

// Register adds or replaces a fleet. The fixtures are copied.
func (r *Registry) Register(name, description string, fixtures []mock.Fixture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fleets[name] = entry{description: description, fixtures: slices.Clone(fixtures)}
}

// Resolve returns a copy of the fixtures registered under name.
func (r *Registry) Resolve(name string) ([]mock.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.fleets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFleet, name)
	}
	return slices.Clone(e.fixtures), nil
}

// List returns every registered fleet sorted by name for a stable API
// response.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.fleets))
	for name, e := range r.fleets {
		infos = append(infos, Info{
			Name:        name,
			Description: e.description,
			Machines:    len(e.fixtures),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

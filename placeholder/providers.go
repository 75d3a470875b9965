package placeholder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

var ErrDuplicateProvider = errors.New("placeholder provider already registered")

// Provider resolves the markers named by its ID. A marker "%id_arg%" reaches
// the provider registered as "id" with arg set to "arg".
type Provider interface {
	ID() string
	Resolve(subject any, arg string) (string, bool)
}

type funcProvider struct {
	id string
	fn func(subject any, arg string) (string, bool)
}

func (f *funcProvider) ID() string { return f.id }

func (f *funcProvider) Resolve(subject any, arg string) (string, bool) {
	return f.fn(subject, arg)
}

// NewProvider adapts fn into a Provider.
func NewProvider(id string, fn func(subject any, arg string) (string, bool)) Provider {
	return &funcProvider{id: id, fn: fn}
}

// Providers is a set of providers keyed by ID. Lookups fall back to the
// parent set.
type Providers struct {
	mu     sync.RWMutex
	parent *Providers
	byID   map[string]Provider
}

func NewProviders(parent *Providers) *Providers {
	return &Providers{parent: parent, byID: map[string]Provider{}}
}

func (ps *Providers) Register(p Provider) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if _, ok := ps.byID[p.ID()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateProvider, p.ID())
	}
	ps.byID[p.ID()] = p
	return nil
}

func (ps *Providers) Lookup(id string) (Provider, bool) {
	for x := ps; x != nil; x = x.parent {
		x.mu.RLock()
		p, ok := x.byID[id]
		x.mu.RUnlock()
		if ok {
			return p, true
		}
	}
	return nil, false
}

// IDs lists the IDs visible from ps.
func (ps *Providers) IDs() []string {
	seen := map[string]bool{}
	var res []string
	for x := ps; x != nil; x = x.parent {
		x.mu.RLock()
		for id := range x.byID {
			if !seen[id] {
				seen[id] = true
				res = append(res, id)
			}
		}
		x.mu.RUnlock()
	}
	return res
}

// resolve tries name as a provider ID, then every "id_arg" split of name
// from the longest id down.
func (ps *Providers) resolve(subject any, name string) (string, bool) {
	if ps == nil {
		return "", false
	}
	if p, ok := ps.Lookup(name); ok {
		return p.Resolve(subject, "")
	}
	for i := strings.LastIndexByte(name, '_'); i > 0; i = strings.LastIndexByte(name[:i], '_') {
		if p, ok := ps.Lookup(name[:i]); ok {
			return p.Resolve(subject, name[i+1:])
		}
	}
	return "", false
}

// Named is implemented by subjects with a display name.
type Named interface {
	Name() string
}

// Leveled is implemented by subjects with an experience level.
type Leveled interface {
	Level() int
}

// Defaults returns a provider set holding player_name and player_level.
func Defaults() *Providers {
	ps := NewProviders(nil)
	ps.Register(NewProvider("player_name", func(subject any, _ string) (string, bool) {
		n, ok := subject.(Named)
		if !ok {
			return "", false
		}
		return n.Name(), true
	}))
	ps.Register(NewProvider("player_level", func(subject any, _ string) (string, bool) {
		l, ok := subject.(Leveled)
		if !ok {
			return "", false
		}
		return strconv.Itoa(l.Level()), true
	}))
	return ps
}

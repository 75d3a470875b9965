package gomap

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Declared is implemented by types that carry their own configuration
// constructor.
type Declared interface {
	ConfigConstructor() *Constructor
}

// Declarator supplies constructors for types declared outside their own
// package.
type Declarator interface {
	Name() string
	Constructors() []*Constructor
}

// Registry maps Go types to their object descriptors. Descriptors are built
// once, published atomically and shared by every parse afterwards.
type Registry struct {
	mu    sync.RWMutex
	descs map[reflect.Type]*ObjectDescriptor

	group   singleflight.Group
	parsers *lru.Cache[string, Parser]
	log     *zap.Logger
}

func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := newRegistryConfig(opts)
	cache, err := lru.New[string, Parser](cfg.cacheSize)
	if err != nil {
		// only fails for non-positive sizes, which the option rules out
		panic(err)
	}
	return &Registry{
		descs:   map[reflect.Type]*ObjectDescriptor{},
		parsers: cache,
		log:     cfg.log,
	}
}

// GetIfPresent returns the published descriptor of t, if any.
func (r *Registry) GetIfPresent(t reflect.Type) (*ObjectDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	od, ok := r.descs[t]
	return od, ok
}

// SynthesizeOrGet returns the descriptor of t, building it from t's declared
// constructor on first use. It returns nil, nil when t declares none.
func (r *Registry) SynthesizeOrGet(t reflect.Type) (*ObjectDescriptor, error) {
	if od, ok := r.GetIfPresent(t); ok {
		return od, nil
	}
	v, err, shared := r.group.Do("type:"+typeKey(t), func() (any, error) {
		s := r.newSession()
		od, err := s.descriptor(t)
		if err != nil || od == nil {
			return nil, err
		}
		return r.publish(s, t)
	})
	if err != nil || v == nil {
		return nil, detach(err, shared)
	}
	return v.(*ObjectDescriptor), nil
}

// Require is SynthesizeOrGet failing when t declares no constructor.
func (r *Registry) Require(t reflect.Type) (*ObjectDescriptor, error) {
	od, err := r.SynthesizeOrGet(t)
	if err != nil {
		return nil, err
	}
	if od == nil {
		return nil, &Error{
			Kind:    ErrUnparsableType,
			Message: fmt.Sprintf("type %s has no configuration constructor", t),
		}
	}
	return od, nil
}

// Register adds a single constructor.
func (r *Registry) Register(c *Constructor) error {
	return r.importAll("register", []*Constructor{c})
}

// Import registers every constructor of d. Declaring no constructor, or
// declaring a type that already has one anywhere, is a registration error
// and leaves the registry unchanged.
func (r *Registry) Import(d Declarator) error {
	cs := d.Constructors()
	if len(cs) == 0 {
		return registration("declarator %s declares no configuration constructors", d.Name())
	}
	return r.importAll(d.Name(), cs)
}

func (r *Registry) importAll(origin string, cs []*Constructor) error {
	s := r.newSession()
	var ods []*ObjectDescriptor
	for _, c := range cs {
		if c == nil {
			return registration("%s: nil constructor", origin)
		}
		if prev, ok := s.lookup(c.goType); ok {
			return conflict(c, prev.origin, origin)
		}
		if nc, _ := declaredConstructor(c.goType); nc != nil {
			return conflict(c, "native", origin)
		}
		od, err := s.declare(c, origin)
		if err != nil {
			return err
		}
		ods = append(ods, od)
	}
	for _, od := range ods {
		if err := s.compile(od); err != nil {
			return err
		}
	}
	if _, err := r.publish(s, nil); err != nil {
		return err
	}
	r.log.Debug("imported constructors", zap.String("origin", origin), zap.Int("count", len(cs)))
	return nil
}

func conflict(c *Constructor, prev, origin string) *Error {
	return registration("type %s declared by %s is already declared by %s", c.goType, origin, prev)
}

// publish inserts the session's descriptors. Imported descriptors must all be
// new; natively synthesized ones lose to a concurrent winner, which is then
// returned for want.
func (r *Registry) publish(s *session, want reflect.Type) (*ObjectDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, od := range s.order {
		if prev, ok := r.descs[od.goType]; ok && od.origin != "native" {
			return nil, registration("type %s declared by %s is already declared by %s", od.goType, od.origin, prev.origin)
		}
	}
	for _, od := range s.order {
		if _, ok := r.descs[od.goType]; !ok {
			r.descs[od.goType] = od
		}
	}
	if len(s.order) != 0 {
		// scalar parsers may now be shadowed by a constructor
		r.parsers.Purge()
	}
	if want == nil {
		return nil, nil
	}
	return r.descs[want], nil
}

func (r *Registry) cachedParser(d *Desc) (Parser, bool) {
	return r.parsers.Get(d.key)
}

// ParserFor returns the parser of d, synthesizing and caching it on first use.
func (r *Registry) ParserFor(d *Desc) (Parser, error) {
	if p, ok := r.cachedParser(d); ok {
		return p, nil
	}
	v, err, shared := r.group.Do("desc:"+d.key, func() (any, error) {
		s := r.newSession()
		p, err := s.parser(d)
		if err != nil {
			return nil, err
		}
		if _, err := r.publish(s, nil); err != nil {
			return nil, err
		}
		r.parsers.Add(d.key, p)
		return p, nil
	})
	if err != nil {
		return nil, detach(err, shared)
	}
	return v.(Parser), nil
}

// Descriptors lists the published descriptors ordered by name.
func (r *Registry) Descriptors() []*ObjectDescriptor {
	r.mu.RLock()
	res := make([]*ObjectDescriptor, 0, len(r.descs))
	for _, od := range r.descs {
		res = append(res, od)
	}
	r.mu.RUnlock()
	sort.Slice(res, func(i, j int) bool {
		if res[i].name != res[j].name {
			return res[i].name < res[j].name
		}
		return typeKey(res[i].goType) < typeKey(res[j].goType)
	})
	return res
}

// Lookup finds a published descriptor by display name.
func (r *Registry) Lookup(name string) (*ObjectDescriptor, bool) {
	for _, od := range r.Descriptors() {
		if od.name == name {
			return od, true
		}
	}
	return nil, false
}

var declaredType = reflect.TypeFor[Declared]()

func declaredConstructor(t reflect.Type) (*Constructor, error) {
	var c *Constructor
	switch {
	case t.Implements(declaredType):
		c = reflect.Zero(t).Interface().(Declared).ConfigConstructor()
	case t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(declaredType):
		c = reflect.New(t).Interface().(Declared).ConfigConstructor()
	default:
		return nil, nil
	}
	if c == nil {
		return nil, registration("type %s returned a nil configuration constructor", t)
	}
	if c.goType != t {
		return nil, registration("configuration constructor of %s builds %s", t, c.goType)
	}
	return c, nil
}

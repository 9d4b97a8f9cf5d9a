package engram

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// SerializeFunc writes the state of a registered polymorphic value.
type SerializeFunc func(c *Codec, v Polymorphic) error

// DeserializeFunc allocates a registered polymorphic type and decodes its
// state. The caller becomes the sole owner of the returned value.
type DeserializeFunc func(c *Codec) (Polymorphic, error)

type registryEntry struct {
	serialize   SerializeFunc
	deserialize DeserializeFunc
}

// Registry maps type ids to the functions that encode and reconstruct the
// corresponding concrete types.
//
// Registrations normally happen from init functions. Lookups may run
// concurrently with each other and with late registrations.
type Registry struct {
	mu      sync.RWMutex
	entries map[TypeID]registryEntry
	logger  *Logger
}

type registryOptions struct {
	logger *Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

// WithRegistryLogger sets the logger used to report registrations.
func WithRegistryLogger(l *Logger) RegistryOption {
	return func(o *registryOptions) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(optFns ...RegistryOption) *Registry {
	opts := registryOptions{logger: NoopLogger()}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Registry{
		entries: make(map[TypeID]registryEntry),
		logger:  opts.logger,
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry. Codecs use it unless
// WithRegistry says otherwise.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Add registers serialize and deserialize under id.
func (r *Registry) Add(id TypeID, serialize SerializeFunc, deserialize DeserializeFunc) error {
	err := r.add(id, serialize, deserialize)
	r.logger.LogRegister(context.Background(), id, err)
	return err
}

func (r *Registry) add(id TypeID, serialize SerializeFunc, deserialize DeserializeFunc) error {
	if id == "" {
		return ErrInvalidTypeID
	}
	if serialize == nil || deserialize == nil {
		return fmt.Errorf("%w: nil function for type %q", ErrNilObject, string(id))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateType, string(id))
	}
	r.entries[id] = registryEntry{serialize: serialize, deserialize: deserialize}

	return nil
}

// Register adds the polymorphic type *T to r under the id *T reports.
// A nil r means DefaultRegistry.
func Register[T any, P PolymorphicPtr[T]](r *Registry) error {
	if r == nil {
		r = DefaultRegistry()
	}

	id := P(new(T)).TypeID()

	return r.Add(id,
		func(c *Codec, v Polymorphic) error {
			p, ok := v.(P)
			if !ok {
				return fmt.Errorf("%w: %T registered as %q", ErrTypeMismatch, v, string(id))
			}
			return p.Serialize(c, c.version)
		},
		func(c *Codec) (Polymorphic, error) {
			p := P(new(T))
			if err := p.Deserialize(c, c.version); err != nil {
				return nil, err
			}
			return p, nil
		},
	)
}

// MustRegister is like Register but panics on error. It is meant for init
// functions.
func MustRegister[T any, P PolymorphicPtr[T]](r *Registry) {
	if err := Register[T, P](r); err != nil {
		panic(err)
	}
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id TypeID) bool {
	_, ok := r.lookup(id)
	return ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// IDs returns every registered id in sorted order.
func (r *Registry) IDs() []TypeID {
	r.mu.RLock()
	ids := make([]TypeID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

func (r *Registry) lookup(id TypeID) (registryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	return e, ok
}

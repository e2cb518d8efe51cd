package descriptor

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/recjson/errors"
)

// Options configures descriptor construction.
type Options struct {
	Namer    Namer
	MaxArity int
	MaxWidth int
}

// DefaultOptions returns options with declared names and default limits.
func DefaultOptions() Options {
	return Options{
		Namer:    DeclaredNamer{},
		MaxArity: DefaultMaxArity,
		MaxWidth: DefaultMaxWidth,
	}
}

func (o Options) normalized() Options {
	if o.Namer == nil {
		o.Namer = DeclaredNamer{}
	}
	if o.MaxArity <= 0 {
		o.MaxArity = DefaultMaxArity
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	return o
}

// Registry builds and caches descriptors, one per struct type.
type Registry struct {
	cache sync.Map // reflect.Type -> *Descriptor
	opts  Options
	mu    sync.Mutex
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts.normalized()}
}

var defaultRegistry = NewRegistry(DefaultOptions())

// Default returns the process-wide registry used by the package functions.
func Default() *Registry {
	return defaultRegistry
}

// Options returns the registry configuration.
func (r *Registry) Options() Options {
	return r.opts
}

// For returns the descriptor of t, building it on first use. Pointer types
// are dereferenced once.
func (r *Registry) For(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, errors.New(errors.PhaseRegister, errors.KindNilPointer).
			Detail("type cannot be nil").
			Build()
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if cached, ok := r.cache.Load(t); ok {
		return cached.(*Descriptor), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache.Load(t); ok {
		return cached.(*Descriptor), nil
	}

	if t.Kind() != reflect.Struct {
		return nil, errors.Unsupported(errors.PhaseRegister, nil, t.String(), "only struct types can be registered")
	}

	b := &builder{reg: r, pending: make(map[reflect.Type]*Descriptor)}
	d, err := b.record(t, nil)
	if err != nil {
		return nil, err
	}

	for _, built := range b.order {
		r.cache.Store(built.GoType, built)
	}
	return d, nil
}

// Of returns the descriptor of T from the default registry.
func Of[T any]() (*Descriptor, error) {
	return defaultRegistry.For(reflect.TypeFor[T]())
}

// MustOf is like Of but panics on registration errors.
func MustOf[T any]() *Descriptor {
	d, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return d
}

// For returns the descriptor of t from the default registry.
func For(t reflect.Type) (*Descriptor, error) {
	return defaultRegistry.For(t)
}

type builder struct {
	reg     *Registry
	pending map[reflect.Type]*Descriptor
	order   []*Descriptor
}

func (b *builder) record(t reflect.Type, path []string) (*Descriptor, error) {
	if cached, ok := b.reg.cache.Load(t); ok {
		return cached.(*Descriptor), nil
	}
	// Types recursive through slices or maps resolve to the partial descriptor.
	if d, ok := b.pending[t]; ok {
		return d, nil
	}

	d := &Descriptor{GoType: t, Name: t.String()}
	b.pending[t] = d
	b.order = append(b.order, d)

	opts := b.reg.opts
	offsets := measureOffsets(t)
	fields := make([]Field, t.NumField())
	byName := make(map[string]int, len(fields))

	for i := range fields {
		sf := t.Field(i)
		if offsets[i] != sf.Offset {
			return nil, errors.New(errors.PhaseRegister, errors.KindInvalidData).
				Path(errors.Join(path, sf.Name)...).
				GoType(t.String()).
				Detail("measured offset %d, declared %d", offsets[i], sf.Offset).
				Build()
		}

		name := opts.Namer.FieldName(sf)
		if name == "" {
			fields[i] = Field{
				Type:   &Type{GoType: sf.Type, Tag: TagIgnored},
				Index:  i,
				Offset: offsets[i],
			}
			continue
		}
		ft, err := b.typeOf(sf.Type, errors.Join(path, name))
		if err != nil {
			return nil, err
		}

		fields[i] = Field{
			Type:   ft,
			Name:   name,
			Index:  i,
			Offset: offsets[i],
			blank:  sf.Name == "_",
		}
		if !fields[i].Serialized() {
			continue
		}
		if _, dup := byName[name]; dup {
			return nil, errors.DuplicateField(t.String(), name)
		}
		byName[name] = i
	}

	arity, err := probeArity(t.String(), fields, opts)
	if err != nil {
		return nil, err
	}
	for i := range fields {
		fields[i].Width = arity.Widths[i]
	}

	d.Fields = fields
	d.byName = byName
	d.Arity = arity

	Logger().Debug("registered record",
		zap.String("type", d.Name),
		zap.Int("fields", arity.Count),
		zap.Int("raw_slots", arity.Raw),
		zap.Uintptr("size", t.Size()))

	return d, nil
}

func (b *builder) typeOf(t reflect.Type, path []string) (*Type, error) {
	typ := &Type{GoType: t, Tag: Classify(t), Len: -1}

	switch typ.Tag {
	case TagSequence:
		elem, err := b.element(t.Elem(), errors.Join(path, "[]"))
		if err != nil {
			return nil, err
		}
		typ.Elem = elem
		if t.Kind() == reflect.Array {
			typ.Len = t.Len()
		}

	case TagAssociative:
		if t.Key().Kind() != reflect.String {
			return nil, errors.New(errors.PhaseRegister, errors.KindTypeMismatch).
				Path(path...).
				GoType(t.String()).
				Detail("associative key must be a string, got %s", t.Key()).
				Build()
		}
		elem, err := b.element(t.Elem(), errors.Join(path, "{}"))
		if err != nil {
			return nil, err
		}
		typ.Key = &Type{GoType: t.Key(), Tag: TagString, Len: -1}
		typ.Elem = elem

	case TagRecord:
		if t.Kind() != reflect.Struct {
			return nil, errors.Unsupported(errors.PhaseRegister, path, t.String(), "type has no JSON representation")
		}
		rec, err := b.record(t, path)
		if err != nil {
			return nil, err
		}
		typ.Record = rec
	}

	return typ, nil
}

// element classifies a container element, which must itself be serializable.
func (b *builder) element(t reflect.Type, path []string) (*Type, error) {
	elem, err := b.typeOf(t, path)
	if err != nil {
		return nil, err
	}
	if !elem.Tag.Serialized() {
		return nil, errors.Unsupported(errors.PhaseRegister, path, t.String(),
			"container element classified as "+elem.Tag.String())
	}
	return elem, nil
}

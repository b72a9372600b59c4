package autofixture

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"reflect"
	"slices"
	"sort"
)

// Fixture creates specimens and remembers pinned instances. A fixture serves
// one test invocation and is not safe for concurrent use; parallel tests each
// create their own.
type Fixture struct {
	pins           *pinTable
	customizations []SpecimenBuilder
	defaults       []SpecimenBuilder
	substitutes    []SpecimenBuilder
	relays         map[reflect.Type]reflect.Type
	ctorInputs     map[reflect.Type][]reflect.Type
	interfaces     TypeSet
	learned        map[reflect.Type]bool
	freezes        []frozenInstance
	extensions     []Extension
	logger         *slog.Logger

	rnd     *rand.Rand
	numbers *numbers
	flip    bool

	repeatCount     int
	maxDepth        int
	omitOnRecursion bool

	path []reflect.Type
	ctx  *Context
}

// DefaultRepeatCount is the number of elements generated for collections.
const DefaultRepeatCount = 3

// New creates a fixture with only the kernel builders. Use NewDefault to
// also apply the registered defaults.
func New(opts ...Option) *Fixture {
	f := &Fixture{
		pins:        newPinTable(),
		relays:      make(map[reflect.Type]reflect.Type),
		ctorInputs:  make(map[reflect.Type][]reflect.Type),
		interfaces:  NewTypeSet(),
		learned:     make(map[reflect.Type]bool),
		logger:      slog.New(slog.DiscardHandler),
		repeatCount: DefaultRepeatCount,
	}
	f.ctx = &Context{f: f}
	f.seed(rand.Uint64())

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Fixture) seed(seed uint64) {
	f.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	f.numbers = newNumbers(f.rnd)
}

// Logger returns the fixture's logger.
func (f *Fixture) Logger() *slog.Logger {
	return f.logger
}

// RepeatCount is the number of elements generated for slices, arrays and maps.
func (f *Fixture) RepeatCount() int {
	return f.repeatCount
}

// Rand returns the fixture's random source.
func (f *Fixture) Rand() *rand.Rand {
	return f.rnd
}

// Resolve returns a specimen of type t. Pinned types return their pinned
// instance; everything else is freshly built.
func (f *Fixture) Resolve(t reflect.Type) (reflect.Value, error) {
	return f.resolveTop(Request{Type: t})
}

// ResolveNamed is Resolve with a name hint for generated strings.
func (f *Fixture) ResolveNamed(t reflect.Type, name string) (reflect.Value, error) {
	return f.resolveTop(Request{Type: t, Name: name})
}

func (f *Fixture) resolveTop(req Request) (reflect.Value, error) {
	if req.Type == nil {
		return reflect.Value{}, fmt.Errorf("resolve: %w", ErrNullArgument)
	}
	v, err := f.resolve(req)
	if err != nil {
		f.notifyError(err, &Operation{Kind: OpResolve, Type: req.Type, Name: req.Name, Fixture: f})
		return reflect.Value{}, err
	}
	return v, nil
}

func (f *Fixture) resolve(req Request) (reflect.Value, error) {
	if req.Type == nil {
		return reflect.Value{}, fmt.Errorf("resolve: %w", ErrNullArgument)
	}
	op := &Operation{
		Kind:    OpResolve,
		Type:    req.Type,
		Name:    req.Name,
		Depth:   len(f.path),
		Fixture: f,
	}
	return f.wrap(op, func() (reflect.Value, error) {
		if v, ok := f.pins.Load(req.Type); ok {
			return v, nil
		}
		if v, ok, err := f.pinFrozenInterface(req.Type); ok || err != nil {
			return v, err
		}

		if slices.Contains(f.path, req.Type) {
			if f.omitOnRecursion {
				return reflect.Zero(req.Type), nil
			}
			return reflect.Value{}, newResolutionError(req.Type, append(slices.Clone(f.path), req.Type), ErrRecursion)
		}
		if f.maxDepth > 0 && len(f.path) >= f.maxDepth {
			return reflect.Value{}, newResolutionError(req.Type, append(slices.Clone(f.path), req.Type), ErrMaxDepth)
		}

		f.path = append(f.path, req.Type)
		defer func() { f.path = f.path[:len(f.path)-1] }()
		f.noteInterface(req.Type)

		v, err := f.build(req)
		if err != nil {
			return reflect.Value{}, asResolutionError(req.Type, f.path, err)
		}
		return v, nil
	})
}

func (f *Fixture) build(req Request) (reflect.Value, error) {
	for i := len(f.customizations) - 1; i >= 0; i-- {
		if v, err := f.try(f.customizations[i], req); !declined(err) {
			return v, err
		}
	}
	for _, b := range f.defaults {
		if v, err := f.try(b, req); !declined(err) {
			return v, err
		}
	}
	if v, err := f.try(kernel{}, req); !declined(err) {
		return v, err
	}
	if req.Type.Kind() == reflect.Interface {
		for _, b := range f.substitutes {
			if v, err := f.try(b, req); !declined(err) {
				return v, err
			}
		}
	}
	return reflect.Value{}, ErrNoSpecimen
}

func (f *Fixture) try(b SpecimenBuilder, req Request) (reflect.Value, error) {
	v, err := b.Create(req, f.ctx)
	if err != nil {
		return reflect.Value{}, err
	}
	return conform(v, req.Type)
}

// declined reports a builder passing on a request, as opposed to a nested
// request failing inside it.
func declined(err error) bool {
	if !errors.Is(err, ErrNoSpecimen) {
		return false
	}
	var re *ResolutionError
	return !errors.As(err, &re)
}

// conform returns v typed exactly as t.
func conform(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Zero(t), nil
	}
	if v.Type() == t {
		return v, nil
	}
	if v.Type().AssignableTo(t) {
		out := reflect.New(t).Elem()
		out.Set(v)
		return out, nil
	}
	if v.Type().ConvertibleTo(t) && v.Kind() == t.Kind() {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("builder returned %s, want %s", v.Type(), t)
}

// Pin makes every later request for t return v, replacing an earlier pin.
func (f *Fixture) Pin(t reflect.Type, v reflect.Value) error {
	_, err := f.pin(t, v, true)
	return err
}

// Pinned returns the instance pinned for t.
func (f *Fixture) Pinned(t reflect.Type) (reflect.Value, bool) {
	return f.pins.Load(t)
}

// Unpin removes the pin for t.
func (f *Fixture) Unpin(t reflect.Type) {
	f.pins.Delete(t)
}

// Pins visits pinned types in the order they were pinned.
func (f *Fixture) Pins(fn func(t reflect.Type, v reflect.Value) bool) {
	f.pins.Range(fn)
}

func (f *Fixture) pin(t reflect.Type, v reflect.Value, replace bool) (bool, error) {
	if t == nil {
		return false, fmt.Errorf("pin: %w", ErrNullArgument)
	}
	cv, err := conform(v, t)
	if err != nil {
		return false, fmt.Errorf("pin %s: %w", t, err)
	}

	stored := false
	op := &Operation{Kind: OpPin, Type: t, Depth: len(f.path), Fixture: f}
	_, err = f.wrap(op, func() (reflect.Value, error) {
		if replace {
			f.pins.Store(t, cv)
			stored = true
		} else {
			stored = f.pins.StoreIfAbsent(t, cv)
		}
		return cv, nil
	})
	if err != nil {
		return false, err
	}
	f.noteInterface(t)
	if stored {
		f.logger.Debug("pinned type", "type", t.String())
	} else {
		f.logger.Debug("kept earlier pin", "type", t.String())
	}
	return stored, nil
}

// Customize applies c to the fixture.
func (f *Fixture) Customize(c Customization) error {
	if c == nil {
		return fmt.Errorf("customize: %w", ErrNullArgument)
	}
	op := &Operation{Kind: OpCustomize, Depth: len(f.path), Fixture: f}
	_, err := f.wrap(op, func() (reflect.Value, error) {
		return reflect.Value{}, c.Customize(f)
	})
	if err != nil {
		if !alreadyReported(err) {
			f.notifyError(err, op)
		}
		return err
	}
	f.logger.Debug("applied customization", "customization", fmt.Sprintf("%T", c))
	return nil
}

// AddBuilder adds a builder that is consulted before every builder added
// earlier.
func (f *Fixture) AddBuilder(b SpecimenBuilder) {
	if b == nil {
		return
	}
	f.customizations = append(f.customizations, b)
}

// AddSubstitute adds a fallback for interface types nothing else can build,
// typically backed by a mocking library.
func (f *Fixture) AddSubstitute(b SpecimenBuilder) {
	if b == nil {
		return
	}
	f.substitutes = append(f.substitutes, b)
}

// Register adds a constructor. ctor must be a function returning T or
// (T, error); its arguments are resolved from the fixture, so pinned
// instances are injected.
func (f *Fixture) Register(ctor any) error {
	if ctor == nil {
		return fmt.Errorf("register: %w", ErrNullArgument)
	}
	fn := reflect.ValueOf(ctor)
	ft := fn.Type()
	if ft.Kind() != reflect.Func || fn.IsNil() {
		return fmt.Errorf("register: %T is not a constructor function", ctor)
	}
	errType := reflect.TypeFor[error]()
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errType:
	default:
		return fmt.Errorf("register: %s must return T or (T, error)", ft)
	}

	out := ft.Out(0)
	inputs := make([]reflect.Type, ft.NumIn())
	for i := range inputs {
		inputs[i] = ft.In(i)
	}
	f.ctorInputs[out] = inputs
	f.forget(out)

	f.AddBuilder(BuilderFunc(func(req Request, ctx *Context) (reflect.Value, error) {
		if req.Type != out {
			return reflect.Value{}, ErrNoSpecimen
		}
		args := make([]reflect.Value, len(inputs))
		for i, in := range inputs {
			v, err := ctx.Resolve(in)
			if err != nil {
				return reflect.Value{}, err
			}
			args[i] = v
		}
		var res []reflect.Value
		if ft.IsVariadic() {
			res = fn.CallSlice(args)
		} else {
			res = fn.Call(args)
		}
		if len(res) == 2 && !res[1].IsNil() {
			return reflect.Value{}, res[1].Interface().(error)
		}
		return res[0], nil
	}))
	return nil
}

// Relay answers requests for the interface from with a specimen of to.
func (f *Fixture) Relay(from, to reflect.Type) error {
	if from == nil || to == nil {
		return fmt.Errorf("relay: %w", ErrNullArgument)
	}
	if from.Kind() != reflect.Interface {
		return fmt.Errorf("relay: %s is not an interface", from)
	}
	if !to.Implements(from) {
		return fmt.Errorf("relay: %s does not implement %s", to, from)
	}
	f.relays[from] = to
	f.forget(from)
	f.AddBuilder(BuilderFunc(func(req Request, ctx *Context) (reflect.Value, error) {
		if req.Type != from {
			return reflect.Value{}, ErrNoSpecimen
		}
		return ctx.ResolveNamed(to, req.Name)
	}))
	return nil
}

// RegisterInterface adds interfaces to the set considered when freezing with
// ImplementedInterfaces or MemberOfFamily.
func (f *Fixture) RegisterInterface(types ...reflect.Type) {
	for _, t := range types {
		f.noteInterface(t)
	}
}

// KnownInterfaces returns the interfaces the fixture has seen, sorted.
func (f *Fixture) KnownInterfaces() []reflect.Type {
	return f.interfaces.Sorted()
}

func (f *Fixture) noteInterface(t reflect.Type) {
	if t != nil && isRelatableInterface(t) {
		f.interfaces.Add(t)
	}
}

// Learn walks the types reachable from types (fields, elements, constructor
// arguments and relays) and records every interface among them.
func (f *Fixture) Learn(types ...reflect.Type) {
	for _, t := range types {
		f.learn(t)
	}
}

func (f *Fixture) learn(t reflect.Type) {
	if t == nil || f.learned[t] {
		return
	}
	f.learned[t] = true

	switch t.Kind() {
	case reflect.Interface:
		f.noteInterface(t)
		if to, ok := f.relays[t]; ok {
			f.learn(to)
		}
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		f.learn(t.Elem())
	case reflect.Map:
		f.learn(t.Key())
		f.learn(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if sf := t.Field(i); sf.IsExported() {
				f.learn(sf.Type)
			}
		}
	}
	for _, in := range f.ctorInputs[t] {
		f.learn(in)
	}
}

// forget lets a type be walked again after its construction changed.
func (f *Fixture) forget(t reflect.Type) {
	delete(f.learned, t)
}

// UseExtension registers an extension to the fixture
func (f *Fixture) UseExtension(ext Extension) error {
	if ext == nil {
		return fmt.Errorf("use extension: %w", ErrNullArgument)
	}
	f.extensions = append(f.extensions, ext)
	sort.SliceStable(f.extensions, func(i, j int) bool {
		return f.extensions[i].Order() < f.extensions[j].Order()
	})
	return ext.Init(f)
}

// wrap chains the extensions around next; the first in order is outermost.
func (f *Fixture) wrap(op *Operation, next func() (reflect.Value, error)) (reflect.Value, error) {
	for i := len(f.extensions) - 1; i >= 0; i-- {
		ext := f.extensions[i]
		currentNext := next
		next = func() (reflect.Value, error) {
			return ext.Wrap(currentNext, op)
		}
	}
	return next()
}

func (f *Fixture) notifyError(err error, op *Operation) {
	var re *ResolutionError
	if errors.As(err, &re) {
		re.reported = true
	}
	f.logger.Debug("operation failed", "operation", string(op.Kind), "type", typeName(op.Type), "error", err)
	for _, ext := range f.extensions {
		ext.OnError(err, op, f)
	}
}

// Dispose releases the fixture's extensions.
func (f *Fixture) Dispose() error {
	for _, ext := range f.extensions {
		if err := ext.Dispose(f); err != nil {
			return fmt.Errorf("disposing extension %s: %w", ext.Name(), err)
		}
	}
	return nil
}

package autofixture

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeze_RelatedParametersShareInstance(t *testing.T) {
	tests := []struct {
		name    string
		mode    Matching
		related Parameter
		same    func(d *DerivedClass) any
	}{
		{
			name:    "interfaces",
			mode:    ImplementedInterfaces,
			related: Param[Namer]("namer"),
			same:    func(d *DerivedClass) any { return d },
		},
		{
			name:    "direct base",
			mode:    DirectBaseType,
			related: Param[*BaseClass]("base"),
			same:    func(d *DerivedClass) any { return &d.BaseClass },
		},
		{
			name:    "base chain",
			mode:    BaseType,
			related: Param[*Root]("root"),
			same:    func(d *DerivedClass) any { return &d.Root },
		},
		{
			name:    "family interface",
			mode:    MemberOfFamily,
			related: Param[Greeter]("greeter"),
			same:    func(d *DerivedClass) any { return d },
		},
		{
			name:    "family base",
			mode:    MemberOfFamily,
			related: Param[*Root]("root"),
			same:    func(d *DerivedClass) any { return &d.Root },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			values, err := Generate(f, []Parameter{
				Param[*DerivedClass]("derived", Frozen(tt.mode)),
				tt.related,
			})
			require.NoError(t, err)
			require.Len(t, values, 2)

			d := values[0].Interface().(*DerivedClass)
			assert.Same(t, tt.same(d), values[1].Interface())
		})
	}
}

func TestFreeze_ExactTypeDoesNotWiden(t *testing.T) {
	f := New()
	f.AddBuilder(TypedBuilder(func(*Context) (Service, error) {
		return &ConcreteService{Endpoint: "fresh"}, nil
	}))

	values, err := Generate(f, []Parameter{
		Param[*ConcreteService]("svc", Frozen(ExactType)),
		Param[*ConcreteService]("again"),
		Param[Service]("iface"),
	})
	require.NoError(t, err)

	svc := values[0].Interface().(*ConcreteService)
	assert.Same(t, svc, values[1].Interface())
	assert.NotSame(t, svc, values[2].Interface())
	assert.Equal(t, "fresh", values[2].Interface().(Service).Do())
}

func TestFreeze_FirstDeclaredWinsOverlap(t *testing.T) {
	f := New()
	values, err := Generate(f, []Parameter{
		Param[*DerivedClass]("a", Frozen(ImplementedInterfaces)),
		Param[*OtherClass]("b", Frozen(ImplementedInterfaces)),
		Param[Namer]("namer"),
	})
	require.NoError(t, err)

	assert.Same(t, values[0].Interface(), values[2].Interface())
	assert.NotSame(t, values[1].Interface(), values[2].Interface())
}

func TestFreeze_PriorityOrdersOverlap(t *testing.T) {
	f := New()
	values, err := Generate(f, []Parameter{
		Param[*DerivedClass]("a", Frozen(ImplementedInterfaces)),
		Param[*OtherClass]("b", Frozen(ImplementedInterfaces, WithPriority(-1))),
		Param[Namer]("namer"),
	})
	require.NoError(t, err)

	assert.Same(t, values[1].Interface(), values[2].Interface())
}

func TestFreeze_ConstructorReceivesPinnedDependency(t *testing.T) {
	f := New()
	require.NoError(t, f.Register(NewConsumer))

	values, err := Generate(f, []Parameter{
		Param[*ConcreteService]("svc", Frozen(ImplementedInterfaces)),
		Param[*Consumer]("consumer"),
	})
	require.NoError(t, err)

	svc := values[0].Interface().(*ConcreteService)
	consumer := values[1].Interface().(*Consumer)
	assert.Same(t, svc, consumer.Service)
}

func TestFreeze_MemberOfFamily(t *testing.T) {
	f := New()
	f.RegisterInterface(greeterType)

	d, err := Freeze[*DerivedClass](f, MemberOfFamily)
	require.NoError(t, err)

	again, err := Create[*DerivedClass](f)
	require.NoError(t, err)
	assert.Same(t, d, again)

	g, err := Create[Greeter](f)
	require.NoError(t, err)
	assert.Same(t, d, g)

	base, err := Create[*BaseClass](f)
	require.NoError(t, err)
	assert.Same(t, &d.BaseClass, base)

	root, err := Create[*Root](f)
	require.NoError(t, err)
	assert.Same(t, &d.Root, root)
}

func TestFreeze_DirectBaseScenario(t *testing.T) {
	f := New()
	values, err := Generate(f, []Parameter{
		Param[*DerivedClass]("d", Frozen(DirectBaseType)),
		Param[*BaseClass]("base"),
		Param[*DerivedClass]("derived"),
		Param[*OtherClass]("other"),
	})
	require.NoError(t, err)

	d := values[0].Interface().(*DerivedClass)
	assert.Same(t, &d.BaseClass, values[1].Interface())
	assert.Same(t, d, values[2].Interface())

	o := values[3].Interface().(*OtherClass)
	require.NotNil(t, o)
	assert.NotEqual(t, d.Label, o.Label)

	// The direct base does not reach further up the chain.
	root, err := Create[*Root](f)
	require.NoError(t, err)
	assert.NotSame(t, &d.Root, root)
}

func TestFreeze_Idempotent(t *testing.T) {
	f := New()
	first, err := Freeze[*OtherClass](f, ImplementedInterfaces)
	require.NoError(t, err)
	second, err := Freeze[*OtherClass](f, ImplementedInterfaces)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestFreeze_Errors(t *testing.T) {
	_, err := Freeze[*OtherClass](nil, ExactType)
	assert.ErrorIs(t, err, ErrNullArgument)

	_, err = Freeze[*OtherClass](New(), Matching(99))
	assert.ErrorIs(t, err, ErrUnsupportedMatchingMode)

	_, err = Freeze[Service](New(), ExactType)
	require.Error(t, err)
	var re *ResolutionError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, reflect.TypeFor[Service](), re.Type)
	assert.ErrorIs(t, err, ErrNoSpecimen)
}

func TestFreezeCustomization(t *testing.T) {
	f := New()
	require.NoError(t, f.Customize(FreezeCustomization(reflect.TypeFor[*ConcreteService](), ExactType)))

	pinned, ok := f.Pinned(reflect.TypeFor[*ConcreteService]())
	require.True(t, ok)

	svc, err := Create[*ConcreteService](f)
	require.NoError(t, err)
	assert.Same(t, pinned.Interface(), svc)
}

type hidden struct {
	service Service
}

func TestFreeze_InterfaceRequestedByBuilder(t *testing.T) {
	f := New()
	f.AddBuilder(TypedBuilder(func(ctx *Context) (*hidden, error) {
		v, err := ctx.Resolve(reflect.TypeFor[Service]())
		if err != nil {
			return nil, err
		}
		return &hidden{service: v.Interface().(Service)}, nil
	}))

	values, err := Generate(f, []Parameter{
		Param[*ConcreteService]("svc", Frozen(ImplementedInterfaces)),
		Param[*hidden]("h"),
	})
	require.NoError(t, err)

	svc := values[0].Interface().(*ConcreteService)
	h := values[1].Interface().(*hidden)
	assert.Same(t, svc, h.service)

	pinned, ok := f.Pinned(reflect.TypeFor[Service]())
	require.True(t, ok)
	assert.Same(t, svc, pinned.Interface())
}

func TestFreeze_InterfaceRegisteredAfterFreeze(t *testing.T) {
	f := New()
	first, err := Freeze[*DerivedClass](f, MemberOfFamily)
	require.NoError(t, err)
	_, err = Freeze[*OtherClass](f, ImplementedInterfaces)
	require.NoError(t, err)

	f.RegisterInterface(namerType)

	n, err := Create[Namer](f)
	require.NoError(t, err)
	assert.Same(t, first, n)
}

func TestFreeze_ExactTypeDoesNotReachInterfacesLater(t *testing.T) {
	f := New()
	_, err := Freeze[*ConcreteService](f, ExactType)
	require.NoError(t, err)

	_, err = Create[Service](f)
	assert.ErrorIs(t, err, ErrNoSpecimen)
}

func TestFreeze_ExactTypeLeavesBaseTypeAlone(t *testing.T) {
	f := New()
	values, err := Generate(f, []Parameter{
		Param[*DerivedClass]("derived", Frozen(ExactType)),
		Param[*BaseClass]("base"),
	})
	require.NoError(t, err)

	d := values[0].Interface().(*DerivedClass)
	base := values[1].Interface().(*BaseClass)
	assert.NotSame(t, &d.BaseClass, base)
	assert.NotEqual(t, d.Label, base.Label)
}

type errorCountingExtension struct {
	BaseExtension
	calls int
}

func (e *errorCountingExtension) OnError(err error, op *Operation, f *Fixture) {
	e.calls++
}

func TestFreeze_FailureReportedOnce(t *testing.T) {
	ext := &errorCountingExtension{BaseExtension: NewBaseExtension("errors")}
	f := New(WithExtension(ext))

	_, err := Generate(f, []Parameter{
		Param[Service]("svc", Frozen(ExactType)),
	})
	require.Error(t, err)
	assert.Equal(t, 1, ext.calls)

	failing := CustomizationFunc(func(*Fixture) error { return errors.New("boom") })
	require.Error(t, f.Customize(failing))
	assert.Equal(t, 2, ext.calls)
}

package autofixture

import (
	"fmt"
	"reflect"
)

// Customization changes a fixture before specimens are created.
type Customization interface {
	Customize(f *Fixture) error
}

// CustomizationFunc adapts a function to Customization.
type CustomizationFunc func(f *Fixture) error

func (fn CustomizationFunc) Customize(f *Fixture) error {
	return fn(f)
}

// Request asks the engine for a specimen of Type. Name is the field or
// parameter the value is for, used as a prefix for generated strings.
type Request struct {
	Type reflect.Type
	Name string
}

// SpecimenBuilder creates specimens. Builders that do not handle a request
// return ErrNoSpecimen so the next builder is consulted.
type SpecimenBuilder interface {
	Create(req Request, ctx *Context) (reflect.Value, error)
}

// BuilderFunc adapts a function to SpecimenBuilder.
type BuilderFunc func(req Request, ctx *Context) (reflect.Value, error)

func (fn BuilderFunc) Create(req Request, ctx *Context) (reflect.Value, error) {
	return fn(req, ctx)
}

// TypedBuilder returns a builder that answers requests for exactly T.
func TypedBuilder[T any](create func(ctx *Context) (T, error)) SpecimenBuilder {
	t := reflect.TypeFor[T]()
	return BuilderFunc(func(req Request, ctx *Context) (reflect.Value, error) {
		if req.Type != t {
			return reflect.Value{}, ErrNoSpecimen
		}
		v, err := create(ctx)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&v).Elem(), nil
	})
}

// Context lets builders resolve nested requests through the same fixture, so
// pins apply anywhere in the object graph.
type Context struct {
	f *Fixture
}

func (c *Context) Resolve(t reflect.Type) (reflect.Value, error) {
	return c.f.resolve(Request{Type: t})
}

func (c *Context) ResolveNamed(t reflect.Type, name string) (reflect.Value, error) {
	return c.f.resolve(Request{Type: t, Name: name})
}

func (c *Context) Fixture() *Fixture {
	return c.f
}

// Parameter is a named, typed slot whose value the fixture generates.
type Parameter struct {
	Name         string
	Type         reflect.Type
	Declarations []Declaration
}

// Param describes a parameter of type T.
func Param[T any](name string, decls ...Declaration) Parameter {
	return ParamOf(name, reflect.TypeFor[T](), decls...)
}

// ParamOf describes a parameter of type t.
func ParamOf(name string, t reflect.Type, decls ...Declaration) Parameter {
	return Parameter{Name: name, Type: t, Declarations: decls}
}

func (p Parameter) String() string {
	if p.Name == "" {
		return typeName(p.Type)
	}
	return fmt.Sprintf("%s %s", p.Name, typeName(p.Type))
}

// Declaration is a customization attached to a parameter. Declarations with a
// lower priority are applied first.
type Declaration interface {
	Priority() int
	Customization(p Parameter) (Customization, error)
}

// DeclarationOption configures a declaration.
type DeclarationOption func(*declarationOptions)

type declarationOptions struct {
	priority int
}

// WithPriority sets the declaration's priority. The default is 0.
func WithPriority(priority int) DeclarationOption {
	return func(o *declarationOptions) {
		o.priority = priority
	}
}

type funcDeclaration struct {
	priority int
	build    func(p Parameter) (Customization, error)
}

func (d funcDeclaration) Priority() int {
	return d.priority
}

func (d funcDeclaration) Customization(p Parameter) (Customization, error) {
	return d.build(p)
}

// CustomizeWith declares a customization built from the parameter it is
// attached to.
func CustomizeWith(build func(p Parameter) (Customization, error), opts ...DeclarationOption) Declaration {
	o := declarationOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return funcDeclaration{priority: o.priority, build: build}
}

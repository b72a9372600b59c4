package autofixture

import (
	"fmt"
	"reflect"
)

// Create returns a specimen of T.
func Create[T any](f *Fixture) (T, error) {
	var zero T
	if f == nil {
		return zero, fmt.Errorf("create: %w", ErrNullArgument)
	}
	v, err := f.Resolve(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	return valueAs[T](v)
}

// MustCreate is Create that panics on error.
func MustCreate[T any](f *Fixture) T {
	v, err := Create[T](f)
	if err != nil {
		panic(err)
	}
	return v
}

// CreateMany returns n specimens of T.
func CreateMany[T any](f *Fixture, n int) ([]T, error) {
	res := make([]T, 0, n)
	for range n {
		v, err := Create[T](f)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// Inject pins v for T, replacing an earlier pin.
func Inject[T any](f *Fixture, v T) error {
	if f == nil {
		return fmt.Errorf("inject: %w", ErrNullArgument)
	}
	return f.Pin(reflect.TypeFor[T](), reflect.ValueOf(&v).Elem())
}

// Relay is Fixture.Relay for an interface I and implementation T.
func Relay[I any, T any](f *Fixture) error {
	if f == nil {
		return fmt.Errorf("relay: %w", ErrNullArgument)
	}
	return f.Relay(reflect.TypeFor[I](), reflect.TypeFor[T]())
}

func valueAs[T any](v reflect.Value) (T, error) {
	var zero T
	if !v.IsValid() {
		return zero, nil
	}
	if t, ok := v.Interface().(T); ok {
		return t, nil
	}
	if v.Kind() == reflect.Interface && v.IsNil() {
		return zero, nil
	}
	return zero, fmt.Errorf("specimen of type %s is not a %s", v.Type(), reflect.TypeFor[T]())
}

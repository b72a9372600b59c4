package autofixture

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// kernel builds values from their kind when no customization or default
// builder claimed the request.
type kernel struct{}

func (kernel) Create(req Request, ctx *Context) (reflect.Value, error) {
	f := ctx.f
	t := req.Type

	switch t.Kind() {
	case reflect.Bool:
		f.flip = !f.flip
		return reflect.ValueOf(f.flip).Convert(t), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := reflect.New(t).Elem()
		v.SetInt(f.numbers.nextFor(t.Kind()))
		return v, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v := reflect.New(t).Elem()
		v.SetUint(uint64(f.numbers.nextFor(t.Kind())))
		return v, nil

	case reflect.Float32, reflect.Float64:
		v := reflect.New(t).Elem()
		v.SetFloat(float64(f.numbers.nextFor(t.Kind())))
		return v, nil

	case reflect.Complex64, reflect.Complex128:
		v := reflect.New(t).Elem()
		re := float64(f.numbers.nextFor(t.Kind()))
		im := float64(f.numbers.nextFor(t.Kind()))
		v.SetComplex(complex(re, im))
		return v, nil

	case reflect.String:
		return reflect.ValueOf(req.Name + uuid.NewString()).Convert(t), nil

	case reflect.Pointer:
		elem, err := ctx.ResolveNamed(t.Elem(), req.Name)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil

	case reflect.Struct:
		return buildStruct(t, ctx)

	case reflect.Slice:
		n := f.repeatCount
		s := reflect.MakeSlice(t, n, n)
		if err := fillIndexed(s, t.Elem(), req.Name, ctx); err != nil {
			return reflect.Value{}, err
		}
		return s, nil

	case reflect.Array:
		a := reflect.New(t).Elem()
		if err := fillIndexed(a, t.Elem(), req.Name, ctx); err != nil {
			return reflect.Value{}, err
		}
		return a, nil

	case reflect.Map:
		m := reflect.MakeMapWithSize(t, f.repeatCount)
		for range f.repeatCount {
			k, err := ctx.ResolveNamed(t.Key(), req.Name)
			if err != nil {
				return reflect.Value{}, err
			}
			v, err := ctx.ResolveNamed(t.Elem(), req.Name)
			if err != nil {
				return reflect.Value{}, err
			}
			m.SetMapIndex(k, v)
		}
		return m, nil

	case reflect.Chan:
		ch := reflect.MakeChan(reflect.ChanOf(reflect.BothDir, t.Elem()), f.repeatCount)
		return ch.Convert(t), nil

	case reflect.Func, reflect.UnsafePointer:
		return reflect.Zero(t), nil

	case reflect.Interface:
		return reflect.Value{}, ErrNoSpecimen

	default:
		return reflect.Value{}, fmt.Errorf("unsupported kind %s", t.Kind())
	}
}

func fillIndexed(v reflect.Value, elem reflect.Type, name string, ctx *Context) error {
	for i := range v.Len() {
		e, err := ctx.ResolveNamed(elem, name)
		if err != nil {
			return err
		}
		v.Index(i).Set(e)
	}
	return nil
}

// buildStruct sets every exported field. Unexported fields keep their zero
// value.
func buildStruct(t reflect.Type, ctx *Context) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	for i := range t.NumField() {
		sf := t.Field(i)
		fv := v.Field(i)
		if !sf.IsExported() || !fv.CanSet() {
			continue
		}
		val, err := ctx.ResolveNamed(sf.Type, sf.Name)
		if err != nil {
			return reflect.Value{}, err
		}
		fv.Set(val)
	}
	return v, nil
}

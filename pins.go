package autofixture

import "reflect"

// pinTable maps a type to the single instance returned for it. It belongs to
// one Fixture and is never shared.
type pinTable struct {
	data  map[reflect.Type]reflect.Value
	order []reflect.Type
}

func newPinTable() *pinTable {
	return &pinTable{data: make(map[reflect.Type]reflect.Value)}
}

func (p *pinTable) Load(t reflect.Type) (reflect.Value, bool) {
	v, ok := p.data[t]
	return v, ok
}

func (p *pinTable) Store(t reflect.Type, v reflect.Value) {
	if _, ok := p.data[t]; !ok {
		p.order = append(p.order, t)
	}
	p.data[t] = v
}

// StoreIfAbsent keeps an existing pin and reports whether v was stored.
func (p *pinTable) StoreIfAbsent(t reflect.Type, v reflect.Value) bool {
	if _, ok := p.data[t]; ok {
		return false
	}
	p.Store(t, v)
	return true
}

func (p *pinTable) Delete(t reflect.Type) {
	if _, ok := p.data[t]; !ok {
		return
	}
	delete(p.data, t)
	p.order = removeElement(p.order, t)
}

// Range visits pins in the order they were first stored.
func (p *pinTable) Range(fn func(t reflect.Type, v reflect.Value) bool) {
	for _, t := range p.order {
		if !fn(t, p.data[t]) {
			return
		}
	}
}

func (p *pinTable) Size() int {
	return len(p.data)
}

func removeElement[T comparable](slice []T, item T) []T {
	for i, existing := range slice {
		if existing == item {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}

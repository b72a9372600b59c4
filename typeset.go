package autofixture

import (
	"reflect"
	"sort"
)

// TypeSet is an unordered set of types.
type TypeSet struct {
	m map[reflect.Type]struct{}
}

// NewTypeSet creates a set holding types.
func NewTypeSet(types ...reflect.Type) TypeSet {
	s := TypeSet{m: make(map[reflect.Type]struct{}, len(types))}
	for _, t := range types {
		s.Add(t)
	}
	return s
}

// Add inserts t. Nil types are ignored.
func (s *TypeSet) Add(t reflect.Type) {
	if t == nil {
		return
	}
	if s.m == nil {
		s.m = make(map[reflect.Type]struct{})
	}
	s.m[t] = struct{}{}
}

func (s TypeSet) Has(t reflect.Type) bool {
	_, ok := s.m[t]
	return ok
}

func (s TypeSet) Len() int {
	return len(s.m)
}

// Union returns a new set with the members of both sets.
func (s TypeSet) Union(other TypeSet) TypeSet {
	res := NewTypeSet()
	for t := range s.m {
		res.Add(t)
	}
	for t := range other.m {
		res.Add(t)
	}
	return res
}

// Sorted returns the members ordered by their string form, so callers that
// iterate the set behave the same on every run.
func (s TypeSet) Sorted() []reflect.Type {
	res := make([]reflect.Type, 0, len(s.m))
	for t := range s.m {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool {
		a, b := res[i].String(), res[j].String()
		if a == b {
			return res[i].PkgPath() < res[j].PkgPath()
		}
		return a < b
	})
	return res
}

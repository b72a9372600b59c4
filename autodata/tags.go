// Package autodata fills test structs with fixture-generated values. Fields
// are the parameters; the `fixture` struct tag attaches declarations:
//
//	type deps struct {
//	    Store   Store         `fixture:"frozen,match=interfaces"`
//	    Service *Service
//	    Clock   Clock         `fixture:"-"`
//	}
//
//	d := autodata.New[deps](t)
//
// Tag options are comma separated after the declaration name:
//
//	frozen                      freeze with ExactType
//	frozen,match=family         freeze with another matching mode
//	frozen,priority=-1          apply before other declarations
//	-                           leave the field alone
package autodata

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pumped-fn/autofixture"
)

// TagName is the struct tag read by Parameters.
const TagName = "fixture"

// ErrNotStruct is returned for targets that are not structs.
var ErrNotStruct = errors.New("autodata: target is not a struct")

type field struct {
	index int
	param autofixture.Parameter
}

// Parameters returns one parameter per exported, untagged-out field of the
// struct type t, in field order.
func Parameters(t reflect.Type) ([]autofixture.Parameter, error) {
	fields, err := structFields(t)
	if err != nil {
		return nil, err
	}
	params := make([]autofixture.Parameter, len(fields))
	for i, fd := range fields {
		params[i] = fd.param
	}
	return params, nil
}

func structFields(t reflect.Type) ([]field, error) {
	if t == nil {
		return nil, fmt.Errorf("parameters: %w", autofixture.ErrNullArgument)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	var fields []field
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, tagged := sf.Tag.Lookup(TagName)
		if tag == "-" {
			continue
		}
		var decls []autofixture.Declaration
		if tagged {
			d, err := parseTag(tag)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", t.Name(), sf.Name, err)
			}
			if d != nil {
				decls = append(decls, d)
			}
		}
		fields = append(fields, field{
			index: i,
			param: autofixture.ParamOf(sf.Name, sf.Type, decls...),
		})
	}
	return fields, nil
}

func parseTag(tag string) (autofixture.Declaration, error) {
	parts := strings.Split(tag, ",")
	name := strings.TrimSpace(parts[0])
	switch name {
	case "":
		if len(parts) > 1 {
			return nil, fmt.Errorf("tag %q: options without a declaration", tag)
		}
		return nil, nil
	case "frozen":
	default:
		return nil, fmt.Errorf("tag %q: unknown declaration %q", tag, name)
	}

	mode := autofixture.ExactType
	var opts []autofixture.DeclarationOption
	for _, opt := range parts[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(opt), "=")
		if !ok {
			return nil, fmt.Errorf("tag %q: option %q has no value", tag, opt)
		}
		switch key {
		case "match":
			m, err := autofixture.ParseMatching(value)
			if err != nil {
				return nil, fmt.Errorf("tag %q: %w", tag, err)
			}
			mode = m
		case "priority":
			p, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("tag %q: priority: %w", tag, err)
			}
			opts = append(opts, autofixture.WithPriority(p))
		default:
			return nil, fmt.Errorf("tag %q: unknown option %q", tag, key)
		}
	}
	return autofixture.Frozen(mode, opts...), nil
}

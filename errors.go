package autofixture

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"
)

var (
	// ErrNullArgument reports a missing collaborator, parameter type or declaration.
	ErrNullArgument = errors.New("autofixture: required argument is nil")
	// ErrUnsupportedMatchingMode is returned for a Matching value outside the enum.
	ErrUnsupportedMatchingMode = errors.New("autofixture: unsupported matching mode")
	// ErrUnsupportedCustomizationKind is returned when a registered default is
	// neither a Customization nor a SpecimenBuilder.
	ErrUnsupportedCustomizationKind = errors.New("autofixture: unsupported customization kind")
	// ErrRegistryPublished is returned by Register once the defaults were read.
	ErrRegistryPublished = errors.New("autofixture: default registry already published")
	// ErrNoSpecimen means no builder could produce a value for the request.
	ErrNoSpecimen = errors.New("no specimen")
	// ErrRecursion means a type was requested while already being built.
	ErrRecursion = errors.New("recursive request")
	// ErrMaxDepth means the object graph nests deeper than the configured limit.
	ErrMaxDepth = errors.New("maximum depth exceeded")
)

// ResolutionError reports that the engine could not produce a value for Type.
type ResolutionError struct {
	Type       reflect.Type
	Path       []reflect.Type
	Cause      error
	StackTrace []byte

	reported bool
}

func (e *ResolutionError) Error() string {
	if len(e.Path) > 1 {
		return fmt.Sprintf("resolve %s (path %s): %v", typeName(e.Type), formatPath(e.Path), e.Cause)
	}
	return fmt.Sprintf("resolve %s: %v", typeName(e.Type), e.Cause)
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

func newResolutionError(t reflect.Type, path []reflect.Type, cause error) *ResolutionError {
	return &ResolutionError{
		Type:       t,
		Path:       append([]reflect.Type(nil), path...),
		Cause:      cause,
		StackTrace: debug.Stack(),
	}
}

// asResolutionError keeps the innermost ResolutionError so the reported type is
// the one that actually failed.
func asResolutionError(t reflect.Type, path []reflect.Type, err error) error {
	var re *ResolutionError
	if errors.As(err, &re) {
		return err
	}
	return newResolutionError(t, path, err)
}

// alreadyReported reports whether err carries a ResolutionError that
// extensions were notified of.
func alreadyReported(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re) && re.reported
}

func formatPath(path []reflect.Type) string {
	names := make([]string, len(path))
	for i, t := range path {
		names[i] = typeName(t)
	}
	return strings.Join(names, " -> ")
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

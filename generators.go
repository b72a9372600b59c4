package autofixture

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/google/uuid"
)

func init() {
	if err := Register(
		contextGenerator{},
		errorGenerator{},
		timeGenerator{},
		uuidGenerator{},
	); err != nil {
		panic(err)
	}
}

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
	timeType    = reflect.TypeFor[time.Time]()
	uuidType    = reflect.TypeFor[uuid.UUID]()
)

// contextGenerator answers context.Context with a context that is never
// cancelled.
type contextGenerator struct{}

func (contextGenerator) Create(req Request, _ *Context) (reflect.Value, error) {
	if req.Type != contextType {
		return reflect.Value{}, ErrNoSpecimen
	}
	return reflect.ValueOf(context.Background()), nil
}

type errorGenerator struct{}

func (errorGenerator) Create(req Request, _ *Context) (reflect.Value, error) {
	if req.Type != errorType {
		return reflect.Value{}, ErrNoSpecimen
	}
	return reflect.ValueOf(errors.New(req.Name + uuid.NewString())), nil
}

// timeGenerator picks a moment within two years of now.
type timeGenerator struct{}

const twoYears = 2 * 365 * 24 * time.Hour

func (timeGenerator) Create(req Request, ctx *Context) (reflect.Value, error) {
	if req.Type != timeType {
		return reflect.Value{}, ErrNoSpecimen
	}
	offset := time.Duration(ctx.Fixture().Rand().Int64N(int64(2*twoYears))) - twoYears
	return reflect.ValueOf(time.Now().Add(offset).Round(time.Second)), nil
}

type uuidGenerator struct{}

func (uuidGenerator) Create(req Request, _ *Context) (reflect.Value, error) {
	if req.Type != uuidType {
		return reflect.Value{}, ErrNoSpecimen
	}
	return reflect.ValueOf(uuid.New()), nil
}

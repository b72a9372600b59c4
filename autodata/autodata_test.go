package autodata

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pumped-fn/autofixture"
)

type Repository interface {
	Find(id int) string
}

type memRepo struct {
	Prefix string
}

func (r *memRepo) Find(id int) string { return r.Prefix }

type Handler struct {
	Repo Repository
	Name string
}

type handlerDeps struct {
	Repo    *memRepo `fixture:"frozen,match=interfaces"`
	Handler *Handler
}

func TestNew_FrozenFieldSharedWithInterface(t *testing.T) {
	d := New[handlerDeps](t)

	require.NotNil(t, d.Repo)
	require.NotNil(t, d.Handler)
	assert.Same(t, d.Repo, d.Handler.Repo)
	assert.True(t, strings.HasPrefix(d.Handler.Name, "Name"))
}

type skipped struct {
	Kept    string
	Skipped string `fixture:"-"`
	hidden  string
}

func TestNew_SkipsTaggedAndUnexportedFields(t *testing.T) {
	s := New[skipped](t)

	assert.NotEmpty(t, s.Kept)
	assert.Empty(t, s.Skipped)
	assert.Empty(t, s.hidden)
}

type inlineDeps struct {
	Name  string
	Count int
	Other string
}

func TestNewInline(t *testing.T) {
	d := NewInline[inlineDeps](t, "given", 7)

	assert.Equal(t, "given", d.Name)
	assert.Equal(t, 7, d.Count)
	assert.True(t, strings.HasPrefix(d.Other, "Other"))
}

type tagged struct {
	A *memRepo `fixture:"frozen"`
	B *memRepo `fixture:"frozen,match=family,priority=-2"`
	C string
}

func TestParameters(t *testing.T) {
	params, err := Parameters(reflect.TypeFor[tagged]())
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, "A", params[0].Name)
	require.Len(t, params[0].Declarations, 1)
	a := params[0].Declarations[0].(autofixture.FrozenDeclaration)
	assert.Equal(t, autofixture.ExactType, a.Matching)
	assert.Equal(t, 0, a.Priority())

	b := params[1].Declarations[0].(autofixture.FrozenDeclaration)
	assert.Equal(t, autofixture.MemberOfFamily, b.Matching)
	assert.Equal(t, -2, b.Priority())

	assert.Empty(t, params[2].Declarations)
	assert.Equal(t, reflect.TypeFor[string](), params[2].Type)
}

func TestParameters_PointerToStruct(t *testing.T) {
	params, err := Parameters(reflect.TypeFor[*inlineDeps]())
	require.NoError(t, err)
	assert.Len(t, params, 3)
}

func TestParameters_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target reflect.Type
		want   string
	}{
		{
			name:   "not a struct",
			target: reflect.TypeFor[int](),
			want:   "not a struct",
		},
		{
			name: "unknown declaration",
			target: reflect.TypeFor[struct {
				X int `fixture:"thawed"`
			}](),
			want: `unknown declaration "thawed"`,
		},
		{
			name: "unknown matching",
			target: reflect.TypeFor[struct {
				X int `fixture:"frozen,match=cousins"`
			}](),
			want: "unsupported matching mode",
		},
		{
			name: "bad priority",
			target: reflect.TypeFor[struct {
				X int `fixture:"frozen,priority=high"`
			}](),
			want: "priority",
		},
		{
			name: "option without value",
			target: reflect.TypeFor[struct {
				X int `fixture:"frozen,match"`
			}](),
			want: "has no value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parameters(tt.target)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Parameters(nil)
	assert.ErrorIs(t, err, autofixture.ErrNullArgument)
}

func TestFill_Errors(t *testing.T) {
	f := autofixture.New()

	var d inlineDeps
	assert.ErrorIs(t, Fill(nil, &d), autofixture.ErrNullArgument)
	assert.Error(t, Fill(f, d))
	assert.Error(t, Fill(f, &d, "a", 1, "b", "c"))

	err := Fill(f, &d, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not assignable")
}

func TestFill_NilInlineForPointer(t *testing.T) {
	f := autofixture.New()

	var d struct {
		Repo *memRepo
		Name string
	}
	require.NoError(t, Fill(f, &d, nil))
	assert.Nil(t, d.Repo)
	assert.NotEmpty(t, d.Name)
}

func TestNewFixture_ConfigFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repeat_count: 5\n"), 0o600))
	t.Setenv(ConfigEnv, path)

	items := New[struct{ Items []int }](t)
	assert.Len(t, items.Items, 5)
}

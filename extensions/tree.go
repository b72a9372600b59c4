package extensions

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/m1gwings/treedrawer/tree"

	"github.com/pumped-fn/autofixture"
)

const resolutionErrorMessage = "Fixture Resolution Failed"

// resolveNode is one resolve operation and the requests made while serving it.
type resolveNode struct {
	typ      reflect.Type
	name     string
	pinned   bool
	err      error
	children []*resolveNode
}

func (n *resolveNode) label() string {
	var b strings.Builder
	if n.typ != nil {
		b.WriteString(n.typ.String())
	}
	if n.name != "" {
		fmt.Fprintf(&b, " %q", n.name)
	}
	switch {
	case n.err != nil:
		b.WriteString(" [failed]")
	case n.pinned:
		b.WriteString(" [pinned]")
	}
	return b.String()
}

// TreeExtension records the requests made by the most recent top-level
// resolution and logs them as a tree when a resolution fails.
type TreeExtension struct {
	autofixture.BaseExtension
	logger *slog.Logger
	stack  []*resolveNode
	last   *resolveNode
	dumper *spew.ConfigState
}

// NewTreeExtension creates a new tree extension
func NewTreeExtension(logger *slog.Logger) *TreeExtension {
	if logger == nil {
		logger = slog.New(NewSilentHandler())
	}
	return &TreeExtension{
		BaseExtension: autofixture.NewBaseExtension("resolution-tree"),
		logger:        logger,
		dumper: &spew.ConfigState{
			Indent:                  "  ",
			MaxDepth:                3,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		},
	}
}

// Order runs the tree extension before extensions with the default order.
func (e *TreeExtension) Order() int {
	return 10
}

func (e *TreeExtension) Wrap(next func() (reflect.Value, error), op *autofixture.Operation) (reflect.Value, error) {
	if op.Kind != autofixture.OpResolve {
		return next()
	}

	node := &resolveNode{typ: op.Type, name: op.Name}
	if op.Fixture != nil {
		_, node.pinned = op.Fixture.Pinned(op.Type)
	}
	if len(e.stack) > 0 {
		parent := e.stack[len(e.stack)-1]
		parent.children = append(parent.children, node)
	}

	e.stack = append(e.stack, node)
	defer func() {
		e.stack = e.stack[:len(e.stack)-1]
		if len(e.stack) == 0 {
			e.last = node
		}
	}()

	result, err := next()
	node.err = err
	return result, err
}

func (e *TreeExtension) OnError(err error, op *autofixture.Operation, f *autofixture.Fixture) {
	typ := "<none>"
	if op.Type != nil {
		typ = op.Type.String()
	}
	e.logger.Error(resolutionErrorMessage,
		"type", typ,
		"error", err.Error(),
		"operation", string(op.Kind),
		"resolution_tree", e.Render(),
		"pins", e.DumpPins(f),
	)
}

// Render draws the last top-level resolution as a tree.
func (e *TreeExtension) Render() string {
	if e.last == nil {
		return "(no resolution recorded)"
	}
	t := tree.NewTree(tree.NodeString(e.last.label()))
	addChildren(t, e.last)
	return t.String()
}

func addChildren(t *tree.Tree, n *resolveNode) {
	for _, child := range n.children {
		addChildren(t.AddChild(tree.NodeString(child.label())), child)
	}
}

// DumpPins formats the fixture's pinned instances in pin order.
func (e *TreeExtension) DumpPins(f *autofixture.Fixture) string {
	if f == nil {
		return "(no fixture)"
	}
	var b strings.Builder
	f.Pins(func(t reflect.Type, v reflect.Value) bool {
		fmt.Fprintf(&b, "%s => ", t)
		if v.IsValid() && v.CanInterface() {
			b.WriteString(e.dumper.Sdump(v.Interface()))
		} else {
			b.WriteString("<invalid>\n")
		}
		return true
	})
	if b.Len() == 0 {
		return "(none)"
	}
	return strings.TrimRight(b.String(), "\n")
}

package vdom

import (
	"reflect"
	"sort"

	"github.com/tessera-ui/tessera/pkg/dom"
)

// Render materializes a VNode tree as live nodes owned by doc. The
// returned node is detached; the caller attaches it.
func Render(doc *dom.Document, n *VNode) *dom.Node {
	switch n.Kind {
	case KindText:
		return doc.CreateText(n.Text)
	case KindValue:
		return doc.CreateText(n.Value)
	default:
		el := doc.CreateElement(n.Tag)
		for _, name := range sortedPropNames(n.Props) {
			el.SetProperty(name, n.Props[name])
		}
		for _, child := range n.Children {
			el.AppendChild(Render(doc, child))
		}
		return el
	}
}

// Patch updates live, previously rendered from prev, to match next. Both
// virtual trees are walked position by position and only differences
// touch the live tree. It returns the node now occupying live's position,
// which differs from live when the node had to be replaced.
func Patch(live *dom.Node, prev, next *VNode) *dom.Node {
	// Different kinds, or different tags, cannot be patched in place.
	if prev.Kind != next.Kind || (prev.Kind == KindElement && prev.Tag != next.Tag) {
		repl := Render(live.Document(), next)
		live.ReplaceWith(repl)
		return repl
	}

	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			live.SetText(next.Text)
		}
	case KindValue:
		if !valuesEqual(prev.Value, next.Value) {
			live.SetText(next.Value)
		}
	case KindElement:
		patchProps(live, prev.Props, next.Props)
		patchChildren(live, prev.Children, next.Children)
	}
	return live
}

// patchProps applies property differences to a live element.
func patchProps(live *dom.Node, prev, next Props) {
	for _, name := range sortedPropNames(prev) {
		nextVal, exists := next[name]
		if !exists {
			live.RemoveProperty(name)
		} else if !valuesEqual(prev[name], nextVal) {
			live.SetProperty(name, nextVal)
		}
	}

	for _, name := range sortedPropNames(next) {
		if _, exists := prev[name]; !exists {
			live.SetProperty(name, next[name])
		}
	}
}

// patchChildren matches children positionally: shared positions recurse,
// extra next children are rendered and appended, extra prev children are
// removed from the tail backwards.
func patchChildren(live *dom.Node, prev, next []*VNode) {
	shared := len(prev)
	if len(next) < shared {
		shared = len(next)
	}

	for i := 0; i < shared; i++ {
		Patch(live.Child(i), prev[i], next[i])
	}

	for i := shared; i < len(next); i++ {
		live.AppendChild(Render(live.Document(), next[i]))
	}

	for i := len(prev) - 1; i >= len(next); i-- {
		live.Child(i).Remove()
	}
}

// valuesEqual compares two prop values for equality.
func valuesEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}
	// Fallback to reflect for complex types
	return reflect.DeepEqual(a, b)
}

func sortedPropNames(props Props) []string {
	if len(props) == 0 {
		return nil
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package block

import (
	"fmt"
	"sort"

	"github.com/tessera-ui/tessera/pkg/dom"
	"github.com/tessera-ui/tessera/pkg/vdom"
)

// Define compiles a template into a Definition. The template is invoked
// exactly once, against the placeholder surrogate; the virtual tree it
// returns is traversed once, depth first, to build the static skeleton
// and the edit list in document order.
func Define(fn Template) (*Definition, error) {
	root := fn(holes{})
	if root == nil {
		return nil, fmt.Errorf("%w: template returned nil", ErrBadTemplate)
	}
	if isPlaceholder(root) {
		return nil, fmt.Errorf("%w: root cannot be a bare hole", ErrBadTemplate)
	}

	def := &Definition{doc: dom.NewDocument()}
	skeleton, err := def.compile(root, nil)
	if err != nil {
		return nil, err
	}
	def.skeleton = skeleton
	return def, nil
}

// MustDefine is Define for templates known good at startup; it panics on
// compilation errors.
func MustDefine(fn Template) *Definition {
	def, err := Define(fn)
	if err != nil {
		panic(err)
	}
	return def
}

// compile builds the skeleton node for n and records edits for every
// placeholder it encounters. path addresses n's element within the
// skeleton being built; it must not be retained by the callee, so edits
// take a copy.
func (d *Definition) compile(n *vdom.VNode, path []int) (*dom.Node, error) {
	switch n.Kind {
	case vdom.KindText:
		return d.doc.CreateText(n.Text), nil

	case vdom.KindValue:
		// Placeholder children are claimed by the parent element's loop
		// below; a placeholder reaching this point has no owning element.
		if _, ok := n.Value.(placeholder); ok {
			return nil, fmt.Errorf("%w: hole outside an element", ErrBadTemplate)
		}
		return d.doc.CreateText(n.Value), nil

	default:
		el := d.doc.CreateElement(n.Tag)

		// Prop names are visited in sorted order so that compiling the
		// same template twice yields identical edit lists.
		names := make([]string, 0, len(n.Props))
		for name := range n.Props {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			v := n.Props[name]
			if ph, ok := v.(placeholder); ok {
				d.edits = append(d.edits, edit{
					kind: editAttr,
					path: clonePath(path),
					name: name,
					key:  ph.key,
				})
				continue
			}
			el.SetProperty(name, v)
		}

		// slot tracks the skeleton child index, which lags the virtual
		// child index by one per preceding hole: holes leave no node
		// behind in the skeleton.
		slot := 0
		for i, child := range n.Children {
			if isPlaceholder(child) {
				d.edits = append(d.edits, edit{
					kind:  editChild,
					path:  clonePath(path),
					index: i,
					key:   child.Value.(placeholder).key,
				})
				continue
			}
			cn, err := d.compile(child, append(path, slot))
			if err != nil {
				return nil, err
			}
			el.AppendChild(cn)
			slot++
		}
		return el, nil
	}
}

// isPlaceholder reports whether a virtual node is a captured hole.
func isPlaceholder(n *vdom.VNode) bool {
	if n.Kind != vdom.KindValue {
		return false
	}
	_, ok := n.Value.(placeholder)
	return ok
}

func clonePath(path []int) []int {
	if len(path) == 0 {
		return nil
	}
	return append([]int(nil), path...)
}

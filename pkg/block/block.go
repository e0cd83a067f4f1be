package block

import (
	"fmt"
	"reflect"

	"github.com/tessera-ui/tessera/pkg/dom"
)

// Definition is the durable artifact of compiling a template once: a
// static skeleton plus the edit list addressing every dynamic slot. A
// definition is immutable and creates any number of instances.
type Definition struct {
	doc      *dom.Document // scratch document owning the skeleton
	skeleton *dom.Node
	edits    []edit
}

// EditCount returns the number of dynamic slots the definition tracks.
func (d *Definition) EditCount() int {
	return len(d.edits)
}

// Instance binds concrete props to the definition. No node-tree work
// happens until Mount.
func (d *Definition) Instance(props Props) *Instance {
	if props == nil {
		props = Props{}
	}
	return &Instance{
		def:   d,
		props: props,
	}
}

// Instance is a mountable pairing of concrete props with a Definition.
// After Mount it owns cached references to the live nodes addressed by
// each edit, which is what makes Patch constant work per dynamic slot.
type Instance struct {
	def     *Definition
	props   Props
	root    *dom.Node   // mounted skeleton clone
	targets []*dom.Node // addressed element per edit, indexed like the edit list
	slots   []*dom.Node // inserted text node per child edit, nil elsewhere
	mounted bool
}

// Props returns the instance's current props.
func (in *Instance) Props() Props {
	return in.props
}

// Root returns the mounted skeleton clone, or nil before Mount.
func (in *Instance) Root() *dom.Node {
	return in.root
}

// Mount clones the definition's skeleton into parent's document, makes
// the clone parent's sole content, resolves every edit to its live target
// node, and writes the initial prop values. The definition's skeleton is
// untouched and remains reusable.
func (in *Instance) Mount(parent *dom.Node) error {
	if parent == nil {
		return fmt.Errorf("tessera: mount requires a parent node")
	}

	clone := in.def.skeleton.CloneInto(parent.Document())

	// Resolve and validate every edit before mutating the tree, so a bad
	// instance leaves the parent as it was.
	targets := make([]*dom.Node, len(in.def.edits))
	for i, e := range in.def.edits {
		target := resolvePath(clone, e.path)
		if target == nil {
			return fmt.Errorf("tessera: edit %d path does not resolve in skeleton clone", i)
		}
		targets[i] = target
		if _, ok := in.props[e.key]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingProp, e.key)
		}
	}

	parent.RemoveChildren()
	parent.AppendChild(clone)

	in.root = clone
	in.targets = targets
	in.slots = make([]*dom.Node, len(in.def.edits))

	for i, e := range in.def.edits {
		v := in.props[e.key]
		switch e.kind {
		case editAttr:
			targets[i].SetProperty(e.name, v)
		case editChild:
			if nested, ok := v.(*Instance); ok {
				if err := nested.Mount(targets[i]); err != nil {
					return err
				}
				continue
			}
			txt := parent.Document().CreateText(v)
			targets[i].InsertChild(txt, e.index)
			in.slots[i] = txt
		}
	}

	in.mounted = true
	return nil
}

// Patch updates the mounted tree from in's props to next's props. Each
// dynamic slot is dirty-checked with shallow value equality and only
// changed slots touch the tree. Nested block slots are patched
// recursively rather than replaced; in retains the mounted nested
// instance. On success in's props reflect next's values.
func (in *Instance) Patch(next *Instance) error {
	if !in.mounted {
		return ErrNotMounted
	}
	if next == nil || next.def != in.def {
		return ErrDefinitionMismatch
	}

	// Validate every key on both sides before the first mutation, so a bad
	// patch leaves the tree as it was.
	for _, e := range in.def.edits {
		if _, ok := in.props[e.key]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingProp, e.key)
		}
		if _, ok := next.props[e.key]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingProp, e.key)
		}
	}

	// in.props stays untouched until every edit has run: a key read by
	// several slots dirty-checks each of them against the same pre-patch
	// value.
	for i, e := range in.def.edits {
		oldV := in.props[e.key]
		newV := next.props[e.key]
		if sameValue(oldV, newV) {
			continue
		}

		switch e.kind {
		case editAttr:
			in.targets[i].SetProperty(e.name, newV)
		case editChild:
			oldNested, oldIsBlock := oldV.(*Instance)
			newNested, newIsBlock := newV.(*Instance)
			if oldIsBlock != newIsBlock {
				return fmt.Errorf("%w: %q", ErrSlotKind, e.key)
			}
			if oldIsBlock {
				if err := oldNested.Patch(newNested); err != nil {
					return err
				}
				continue
			}
			in.slots[i].SetText(newV)
		}
	}

	// Adopt next's values; nested slots keep the mounted old instance,
	// which has absorbed the new props.
	adopted := make(Props, len(next.props))
	for key, v := range next.props {
		if _, isBlock := v.(*Instance); isBlock {
			if oldNested, ok := in.props[key].(*Instance); ok {
				adopted[key] = oldNested
				continue
			}
		}
		adopted[key] = v
	}
	in.props = adopted

	return nil
}

// resolvePath descends from root through the recorded child indices.
func resolvePath(root *dom.Node, path []int) *dom.Node {
	n := root
	for _, idx := range path {
		n = n.Child(idx)
		if n == nil {
			return nil
		}
	}
	return n
}

// sameValue is the dirty-check comparison: value equality for comparable
// values of the same type, identity for pointers, and never a deep
// structural walk. Uncomparable values are always considered changed.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

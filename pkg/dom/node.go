package dom

import (
	"fmt"
	"strconv"
)

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindElement NodeKind = iota // <div>, <button>, etc.
	KindText                    // Plain text node
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Document owns a node tree. All nodes are created through a Document,
// which assigns each one a document-unique ID and observes every mutation
// applied to its nodes.
type Document struct {
	nextID    uint32
	mutations uint64
	recorder  Recorder
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// SetRecorder attaches a mutation recorder. Pass nil to detach.
func (d *Document) SetRecorder(r Recorder) {
	d.recorder = r
}

// Mutations returns the number of mutations applied to this document's
// nodes since creation. Node creation and cloning do not count.
func (d *Document) Mutations() uint64 {
	return d.mutations
}

// CreateElement creates a detached element node.
func (d *Document) CreateElement(tag string) *Node {
	d.nextID++
	return &Node{
		kind: KindElement,
		id:   d.nextID,
		tag:  tag,
		doc:  d,
	}
}

// CreateText creates a detached text node. Non-string values are formatted
// with FormatValue.
func (d *Document) CreateText(value any) *Node {
	d.nextID++
	return &Node{
		kind: KindText,
		id:   d.nextID,
		text: FormatValue(value),
		doc:  d,
	}
}

// Node is a single element or text node in a document tree.
type Node struct {
	kind     NodeKind
	id       uint32
	tag      string
	text     string
	props    map[string]any
	children []*Node
	parent   *Node
	doc      *Document
}

// Kind returns the node type.
func (n *Node) Kind() NodeKind { return n.kind }

// ID returns the document-unique node ID.
func (n *Node) ID() uint32 { return n.id }

// Tag returns the element tag name. Empty for text nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the text content. Empty for element nodes.
func (n *Node) Text() string { return n.text }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Parent returns the parent node, or nil for detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Prop returns the named property and whether it is set.
func (n *Node) Prop(name string) (any, bool) {
	v, ok := n.props[name]
	return v, ok
}

// PropNames returns the names of all set properties in unspecified order.
func (n *Node) PropNames() []string {
	names := make([]string, 0, len(n.props))
	for name := range n.props {
		names = append(names, name)
	}
	return names
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the child at index, or nil if out of range.
func (n *Node) Child(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// index returns n's position among its parent's children, or -1 if detached.
func (n *Node) index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// SetProperty assigns a property on an element node. Assigning nil removes
// the property.
func (n *Node) SetProperty(name string, value any) {
	if n.kind != KindElement {
		return
	}
	if value == nil {
		n.RemoveProperty(name)
		return
	}
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
	n.doc.record(Mutation{Op: OpSetProperty, Target: n, Name: name, Value: value})
}

// RemoveProperty removes a property from an element node. Removing an
// absent property is a no-op.
func (n *Node) RemoveProperty(name string) {
	if n.kind != KindElement {
		return
	}
	if _, ok := n.props[name]; !ok {
		return
	}
	delete(n.props, name)
	n.doc.record(Mutation{Op: OpRemoveProperty, Target: n, Name: name})
}

// SetText replaces the content of a text node. Non-string values are
// formatted with FormatValue.
func (n *Node) SetText(value any) {
	if n.kind != KindText {
		return
	}
	n.text = FormatValue(value)
	target := n.parent
	if target == nil {
		target = n
	}
	n.doc.record(Mutation{Op: OpSetText, Target: target, Index: n.index(), Value: n.text, Node: n})
}

// AppendChild appends a child to an element node. The child is detached
// from its previous parent first.
func (n *Node) AppendChild(child *Node) {
	n.InsertChild(child, len(n.children))
}

// InsertChild inserts a child at the given position among n's children.
// Out-of-range indices are clamped. The child is detached from its
// previous parent first.
func (n *Node) InsertChild(child *Node, index int) {
	if n.kind != KindElement || child == nil {
		return
	}
	child.detach()
	if index < 0 {
		index = 0
	}
	if index > len(n.children) {
		index = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
	n.doc.record(Mutation{Op: OpInsertChild, Target: n, Index: index, Node: child})
}

// Remove detaches n from its parent. Removing a detached node is a no-op.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	parent := n.parent
	idx := n.index()
	n.detach()
	n.doc.record(Mutation{Op: OpRemoveChild, Target: parent, Index: idx, Node: n})
}

// RemoveChildren detaches all of n's children.
func (n *Node) RemoveChildren() {
	for len(n.children) > 0 {
		n.children[len(n.children)-1].Remove()
	}
}

// ReplaceWith swaps n for newNode in n's parent. A detached n makes this a
// no-op.
func (n *Node) ReplaceWith(newNode *Node) {
	if n.parent == nil || newNode == nil || newNode == n {
		return
	}
	parent := n.parent
	idx := n.index()
	newNode.detach()
	parent.children[idx] = newNode
	newNode.parent = parent
	n.parent = nil
	n.doc.record(Mutation{Op: OpReplaceChild, Target: parent, Index: idx, Node: newNode})
}

// detach silently unlinks n from its parent without recording a mutation.
// Callers record the higher-level operation instead.
func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// CloneInto deep-clones the subtree rooted at n into the target document.
// Clones receive fresh IDs from the target document and are returned
// detached. Cloning records no mutations.
func (n *Node) CloneInto(d *Document) *Node {
	d.nextID++
	clone := &Node{
		kind: n.kind,
		id:   d.nextID,
		tag:  n.tag,
		text: n.text,
		doc:  d,
	}
	if len(n.props) > 0 {
		clone.props = make(map[string]any, len(n.props))
		for name, v := range n.props {
			clone.props[name] = v
		}
	}
	if len(n.children) > 0 {
		clone.children = make([]*Node, len(n.children))
		for i, c := range n.children {
			cc := c.CloneInto(d)
			cc.parent = clone
			clone.children[i] = cc
		}
	}
	return clone
}

// FormatValue converts a property or text value to its string form.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

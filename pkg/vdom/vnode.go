package vdom

import "fmt"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
	KindValue                // Raw dynamic value placed as a child
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindValue:
		return "Value"
	default:
		return "Unknown"
	}
}

// Props holds element properties.
type Props map[string]any

// VNode is a virtual node: an immutable description of an element, a text
// leaf, or a raw value. Build VNodes with H, Text, and Value.
type VNode struct {
	Kind     VKind
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Element properties
	Children []*VNode // Child nodes
	Text     string   // For KindText
	Value    any      // For KindValue
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Value wraps a raw value as a child node. Values render as text; the
// block compiler additionally recognizes placeholder values produced
// during template capture.
func Value(v any) *VNode {
	return &VNode{
		Kind:  KindValue,
		Value: v,
	}
}

// H creates an element node. Children may be *VNode, []*VNode, strings,
// or arbitrary values; nils are skipped, strings become text nodes, and
// anything else becomes a Value child.
func H(tag string, props Props, children ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
	}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		default:
			node.Children = append(node.Children, Value(v))
		}
	}

	return node
}

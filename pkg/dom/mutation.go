package dom

// MutationOp is the type of tree mutation.
type MutationOp uint8

const (
	OpSetProperty    MutationOp = 0x01 // Set/update element property
	OpRemoveProperty MutationOp = 0x02 // Remove element property
	OpSetText        MutationOp = 0x03 // Replace text node content
	OpInsertChild    MutationOp = 0x04 // Insert child at index
	OpRemoveChild    MutationOp = 0x05 // Remove child at index
	OpReplaceChild   MutationOp = 0x06 // Replace child at index
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case OpSetProperty:
		return "SetProperty"
	case OpRemoveProperty:
		return "RemoveProperty"
	case OpSetText:
		return "SetText"
	case OpInsertChild:
		return "InsertChild"
	case OpRemoveChild:
		return "RemoveChild"
	case OpReplaceChild:
		return "ReplaceChild"
	default:
		return "Unknown"
	}
}

// Mutation describes a single applied tree mutation.
//
// Target is the element a consumer must address to replay the mutation:
// the mutated element itself for property ops, and the parent element for
// text and child ops. Index is the child position for text and child ops.
// Node is the subject node where one exists (inserted child, removed
// child, replacement node, or mutated text node).
type Mutation struct {
	Op     MutationOp
	Target *Node
	Name   string
	Value  any
	Index  int
	Node   *Node
}

// Recorder observes mutations as they are applied to a document.
type Recorder interface {
	Record(m Mutation)
}

// record bumps the mutation counter and forwards to the recorder, if any.
func (d *Document) record(m Mutation) {
	d.mutations++
	if d.recorder != nil {
		d.recorder.Record(m)
	}
}

package block

// editKind discriminates the two edit variants.
type editKind uint8

const (
	editAttr  editKind = iota // Dynamic element property
	editChild                 // Dynamic child (text or nested block)
)

// String returns the string representation of the editKind.
func (k editKind) String() string {
	switch k {
	case editAttr:
		return "Attr"
	case editChild:
		return "Child"
	default:
		return "Unknown"
	}
}

// edit is one compiled, path-addressed instruction for writing a prop
// value into the skeleton. path is the child-index walk from the skeleton
// root to the owning element; name is set for editAttr, index for
// editChild. Edits are immutable after compilation and remain valid
// because the skeleton never changes shape.
type edit struct {
	kind  editKind
	path  []int
	name  string // editAttr: property name
	index int    // editChild: child position within the owning element
	key   string // prop key the value is read from
}

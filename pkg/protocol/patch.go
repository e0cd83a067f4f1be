package protocol

import "fmt"

// PatchOp is the type of patch operation. Values match dom.MutationOp so
// a recorded mutation translates without a lookup table.
type PatchOp uint8

const (
	PatchSetProp      PatchOp = 0x01 // Set/update element property
	PatchRemoveProp   PatchOp = 0x02 // Remove element property
	PatchSetText      PatchOp = 0x03 // Replace text content of child at Index
	PatchInsertChild  PatchOp = 0x04 // Insert serialized markup at Index
	PatchRemoveChild  PatchOp = 0x05 // Remove child at Index
	PatchReplaceChild PatchOp = 0x06 // Replace child at Index with markup
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetProp:
		return "SetProp"
	case PatchRemoveProp:
		return "RemoveProp"
	case PatchSetText:
		return "SetText"
	case PatchInsertChild:
		return "InsertChild"
	case PatchRemoveChild:
		return "RemoveChild"
	case PatchReplaceChild:
		return "ReplaceChild"
	default:
		return "Unknown"
	}
}

// Patch is a single node-tree operation addressed at an element by its
// node ID. Which of the remaining fields are meaningful depends on Op:
// Name/Value for property ops, Index for child ops, Value for SetText,
// HTML for insert/replace.
type Patch struct {
	Op     PatchOp
	Target uint32 // Element node ID (data-nid in served markup)
	Name   string // Property name
	Value  string // Property value or new text content
	Index  int    // Child position
	HTML   string // Serialized subtree for InsertChild/ReplaceChild
}

// PatchesFrame is a sequenced batch of patches. Sequence numbers start at
// 1 and increase by 1 per batch within a session.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatches encodes a patch batch as a Patches frame payload.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	e.WriteUint64(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
	return e.Bytes()
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteUvarint(uint64(p.Target))

	switch p.Op {
	case PatchSetProp:
		e.WriteString(p.Name)
		e.WriteString(p.Value)
	case PatchRemoveProp:
		e.WriteString(p.Name)
	case PatchSetText:
		e.WriteUvarint(uint64(p.Index))
		e.WriteString(p.Value)
	case PatchInsertChild, PatchReplaceChild:
		e.WriteUvarint(uint64(p.Index))
		e.WriteString(p.HTML)
	case PatchRemoveChild:
		e.WriteUvarint(uint64(p.Index))
	}
}

// DecodePatches decodes a Patches frame payload.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	d := NewDecoder(data)

	seq, err := d.ReadUint64()
	if err != nil {
		return nil, err
	}

	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	pf := &PatchesFrame{
		Seq:     seq,
		Patches: make([]Patch, count),
	}
	for i := 0; i < count; i++ {
		if err := decodePatch(d, &pf.Patches[i]); err != nil {
			return nil, err
		}
	}
	return pf, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(op)

	target, err := d.ReadUvarint()
	if err != nil {
		return err
	}
	p.Target = uint32(target)

	switch p.Op {
	case PatchSetProp:
		if p.Name, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()
	case PatchRemoveProp:
		p.Name, err = d.ReadString()
	case PatchSetText:
		var idx uint64
		if idx, err = d.ReadUvarint(); err != nil {
			return err
		}
		p.Index = int(idx)
		p.Value, err = d.ReadString()
	case PatchInsertChild, PatchReplaceChild:
		var idx uint64
		if idx, err = d.ReadUvarint(); err != nil {
			return err
		}
		p.Index = int(idx)
		p.HTML, err = d.ReadString()
	case PatchRemoveChild:
		var idx uint64
		if idx, err = d.ReadUvarint(); err != nil {
			return err
		}
		p.Index = int(idx)
	default:
		return fmt.Errorf("protocol: unknown patch op 0x%02x", op)
	}
	return err
}

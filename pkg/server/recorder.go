package server

import (
	"github.com/tessera-ui/tessera/pkg/dom"
	"github.com/tessera-ui/tessera/pkg/protocol"
)

// patchRecorder translates document mutations into wire patches.
//
// It implements dom.Recorder and accumulates patches until drained.
// Node references are flattened to node IDs; inserted and replacement
// subtrees are serialized to HTML so a thin client can adopt them with
// innerHTML semantics.
type patchRecorder struct {
	patches []protocol.Patch
}

func (r *patchRecorder) Record(m dom.Mutation) {
	p := protocol.Patch{Target: m.Target.ID()}

	switch m.Op {
	case dom.OpSetProperty:
		p.Op = protocol.PatchSetProp
		p.Name = m.Name
		p.Value = dom.FormatValue(m.Value)
	case dom.OpRemoveProperty:
		p.Op = protocol.PatchRemoveProp
		p.Name = m.Name
	case dom.OpSetText:
		p.Op = protocol.PatchSetText
		p.Index = m.Index
		p.Value = dom.FormatValue(m.Value)
	case dom.OpInsertChild:
		p.Op = protocol.PatchInsertChild
		p.Index = m.Index
		p.HTML = m.Node.HTML()
	case dom.OpRemoveChild:
		p.Op = protocol.PatchRemoveChild
		p.Index = m.Index
	case dom.OpReplaceChild:
		p.Op = protocol.PatchReplaceChild
		p.Index = m.Index
		p.HTML = m.Node.HTML()
	default:
		return
	}

	r.patches = append(r.patches, p)
}

// drain returns the accumulated patches and resets the recorder.
func (r *patchRecorder) drain() []protocol.Patch {
	out := r.patches
	r.patches = nil
	return out
}

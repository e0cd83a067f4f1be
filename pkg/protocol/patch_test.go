package protocol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPatchOpString(t *testing.T) {
	tests := []struct {
		op   PatchOp
		want string
	}{
		{PatchSetProp, "SetProp"},
		{PatchRemoveProp, "RemoveProp"},
		{PatchSetText, "SetText"},
		{PatchInsertChild, "InsertChild"},
		{PatchRemoveChild, "RemoveChild"},
		{PatchReplaceChild, "ReplaceChild"},
		{PatchOp(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.op.String(); got != tt.want {
				t.Errorf("PatchOp.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPatchesRoundTrip(t *testing.T) {
	pf := &PatchesFrame{
		Seq: 42,
		Patches: []Patch{
			{Op: PatchSetProp, Target: 3, Name: "class", Value: "active"},
			{Op: PatchRemoveProp, Target: 3, Name: "hidden"},
			{Op: PatchSetText, Target: 7, Index: 1, Value: "new text"},
			{Op: PatchInsertChild, Target: 9, Index: 0, HTML: `<li data-nid="12">x</li>`},
			{Op: PatchRemoveChild, Target: 9, Index: 2},
			{Op: PatchReplaceChild, Target: 5, Index: 1, HTML: `<b data-nid="13">y</b>`},
		},
	}

	decoded, err := DecodePatches(EncodePatches(pf))
	if err != nil {
		t.Fatalf("DecodePatches: %v", err)
	}
	if diff := cmp.Diff(pf, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePatchesRejectsUnknownOp(t *testing.T) {
	e := NewEncoder()
	e.WriteUint64(1)
	e.WriteUvarint(1)
	e.WriteByte(0x7F) // bogus op
	e.WriteUvarint(1)

	if _, err := DecodePatches(e.Bytes()); err == nil {
		t.Error("unknown op should fail to decode")
	}
}

func TestDecodePatchesTruncated(t *testing.T) {
	pf := &PatchesFrame{
		Seq:     1,
		Patches: []Patch{{Op: PatchSetProp, Target: 1, Name: "a", Value: "b"}},
	}
	data := EncodePatches(pf)

	for i := 0; i < len(data); i++ {
		if _, err := DecodePatches(data[:i]); err == nil {
			t.Errorf("truncation at %d should fail to decode", i)
		}
	}
}

func TestHelloRoundTrip(t *testing.T) {
	hm := &HelloMessage{
		SessionID: 99,
		RootID:    4,
		RootHTML:  `<body data-nid="4"><div data-nid="5">x</div></body>`,
	}

	decoded, err := DecodeHello(EncodeHello(hm))
	if err != nil {
		t.Fatalf("DecodeHello: %v", err)
	}
	if diff := cmp.Diff(hm, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorRoundTrip(t *testing.T) {
	em := &ErrorMessage{Code: ErrServerError, Message: "update failed"}

	decoded, err := DecodeError(EncodeError(em))
	if err != nil {
		t.Fatalf("DecodeError: %v", err)
	}
	if diff := cmp.Diff(em, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameTypeString(t *testing.T) {
	tests := []struct {
		ft   FrameType
		want string
	}{
		{FrameHello, "Hello"},
		{FramePatches, "Patches"},
		{FrameError, "Error"},
		{FrameType(0x7F), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ft.String(); got != tt.want {
				t.Errorf("FrameType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrameEncodeDecode(t *testing.T) {
	f := NewFrame(FramePatches, []byte("payload"))

	decoded, err := DecodeFrame(f.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if decoded.Type != FramePatches {
		t.Errorf("Type = %v, want Patches", decoded.Type)
	}
	if string(decoded.Payload) != "payload" {
		t.Errorf("Payload = %q", decoded.Payload)
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	f := NewFrame(FrameHello, nil)

	decoded, err := DecodeFrame(f.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if len(decoded.Payload) != 0 {
		t.Errorf("Payload length = %d, want 0", len(decoded.Payload))
	}
}

func TestDecodeFrameTruncated(t *testing.T) {
	f := NewFrame(FramePatches, []byte("abcdef"))
	data := f.Encode()

	if _, err := DecodeFrame(data[:3]); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("truncated header = %v, want ErrUnexpectedEOF", err)
	}
	if _, err := DecodeFrame(data[:len(data)-2]); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("truncated payload = %v, want ErrUnexpectedEOF", err)
	}
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	out := NewFrame(FrameError, EncodeError(&ErrorMessage{Code: ErrBadFrame, Message: "nope"}))

	if err := WriteFrame(&buf, out); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	in, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if in.Type != FrameError {
		t.Errorf("Type = %v, want Error", in.Type)
	}

	em, err := DecodeError(in.Payload)
	if err != nil {
		t.Fatalf("DecodeError: %v", err)
	}
	if em.Code != ErrBadFrame || em.Message != "nope" {
		t.Errorf("ErrorMessage = %+v", em)
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	f := NewFrame(FramePatches, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(io.Discard, f); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("oversized frame = %v, want ErrFrameTooLarge", err)
	}
}

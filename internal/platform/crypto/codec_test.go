package crypto

import (
	"errors"
	"testing"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	return NewCodec(newTestCipher(t))
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	stored, err := codec.Encode("session notes")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := codec.Decode(stored); got != "session notes" {
		t.Errorf("got %q want %q", got, "session notes")
	}
}

func TestCodec_RejectsSentinelWrite(t *testing.T) {
	codec := newTestCodec(t)
	if _, err := codec.Encode(DecryptFailed); !errors.Is(err, ErrSentinelWrite) {
		t.Errorf("expected ErrSentinelWrite, got %v", err)
	}
}

func TestCodec_DecodeFailureYieldsSentinel(t *testing.T) {
	codec := newTestCodec(t)
	if got := codec.Decode("garbage that was never encrypted"); got != DecryptFailed {
		t.Errorf("expected sentinel, got %q", got)
	}
}

func TestCodec_PtrHelpers(t *testing.T) {
	codec := newTestCodec(t)

	if v, err := codec.EncodePtr(nil); err != nil || v != nil {
		t.Errorf("nil encode: got %v, %v", v, err)
	}
	empty := ""
	if v, err := codec.EncodePtr(&empty); err != nil || v != nil {
		t.Errorf("empty encode: got %v, %v", v, err)
	}
	if v := codec.DecodePtr(nil); v != nil {
		t.Errorf("nil decode: got %v", v)
	}

	plain := "attention: review medication"
	stored, err := codec.EncodePtr(&plain)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got := codec.DecodePtr(stored)
	if got == nil || *got != plain {
		t.Errorf("round trip mismatch: got %v", got)
	}
}

package crypto

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := New(testKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestNew_RejectsBadKeys(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"not hex", "not-hex-at-all"},
		{"too short", "abcdef"},
		{"33 bytes", strings.Repeat("ab", 33)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.key); err == nil {
				t.Errorf("expected error for key %q", tc.key)
			}
		})
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := newTestCipher(t)
	for _, plain := range []string{
		"a",
		"patient reported improved sleep",
		"texto com acentuação é preservado",
		strings.Repeat("long note ", 500),
	} {
		token, err := c.Encrypt(plain)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		if token == plain {
			t.Error("token should not equal plaintext")
		}
		got, err := c.Decrypt(token)
		if err != nil {
			t.Fatalf("decrypt: %v", err)
		}
		if got != plain {
			t.Errorf("round trip mismatch: got %q want %q", got, plain)
		}
	}
}

func TestEncrypt_NonDeterministic(t *testing.T) {
	c := newTestCipher(t)
	t1, _ := c.Encrypt("same input")
	t2, _ := c.Encrypt("same input")
	if t1 == t2 {
		t.Error("two encryptions of the same input should differ (random nonce)")
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	c := newTestCipher(t)
	token, err := c.Encrypt("confidential")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(token)
	raw[len(raw)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	_, err = c.Decrypt(tampered)
	if !errors.Is(err, ErrDecrypt) {
		t.Errorf("expected ErrDecrypt, got %v", err)
	}
}

func TestDecrypt_MalformedInputs(t *testing.T) {
	c := newTestCipher(t)
	for _, token := range []string{"", "!!!not base64!!!", "c2hvcnQ="} {
		if _, err := c.Decrypt(token); !errors.Is(err, ErrDecrypt) {
			t.Errorf("token %q: expected ErrDecrypt, got %v", token, err)
		}
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	c1 := newTestCipher(t)
	c2, err := New(strings.Repeat("ff", 32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, _ := c1.Encrypt("sealed under key one")
	if _, err := c2.Decrypt(token); !errors.Is(err, ErrDecrypt) {
		t.Errorf("expected ErrDecrypt for wrong key, got %v", err)
	}
}

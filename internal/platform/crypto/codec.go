package crypto

import "errors"

// DecryptFailed is the sentinel stored-value marker a Codec returns for data
// it cannot decrypt. It lets a read path keep serving unrelated records when
// one field is corrupted, instead of failing the whole request. Engines must
// never treat it as real clinical content.
const DecryptFailed = "DECRYPTION_ERROR"

// ErrSentinelWrite is returned when a caller attempts to persist the
// DecryptFailed sentinel as if it were field content.
var ErrSentinelWrite = errors.New("refusing to persist decryption-failure sentinel")

// Codec is the per-field boundary between business logic and durable storage.
// Every write of a protected field goes through Encode, every read through
// Decode, independent of the surrounding engine.
type Codec struct {
	cipher *Cipher
}

func NewCodec(cipher *Cipher) *Codec {
	return &Codec{cipher: cipher}
}

// Encode encrypts a plaintext field value for storage. It rejects the
// DecryptFailed sentinel so a failed read can never be written back as
// content.
func (c *Codec) Encode(plain string) (string, error) {
	if plain == DecryptFailed {
		return "", ErrSentinelWrite
	}
	return c.cipher.Encrypt(plain)
}

// Decode decrypts a stored field value. On any failure it returns the
// DecryptFailed sentinel rather than an error: a single undecryptable record
// must not block read access to the rest.
func (c *Codec) Decode(stored string) string {
	plain, err := c.cipher.Decrypt(stored)
	if err != nil {
		return DecryptFailed
	}
	return plain
}

// EncodePtr encrypts an optional field. A nil or empty value stays nil.
func (c *Codec) EncodePtr(plain *string) (*string, error) {
	if plain == nil || *plain == "" {
		return nil, nil
	}
	enc, err := c.Encode(*plain)
	if err != nil {
		return nil, err
	}
	return &enc, nil
}

// DecodePtr decrypts an optional stored field. A nil value stays nil.
func (c *Codec) DecodePtr(stored *string) *string {
	if stored == nil {
		return nil
	}
	plain := c.Decode(*stored)
	return &plain
}

// Package digest implements the fixed-size, content-addressed hash values
// used throughout Fae to name contracts, escrows, transactions, and
// versioned outputs.
package digest

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"hash"

	"github.com/therewillbecode/Fae-1/crypto/sha3pool"
	"github.com/therewillbecode/Fae-1/errors"
)

// Size is the length in bytes of a Digest.
const Size = 32

// Digest is a 32-byte SHA3-256 value.
type Digest [Size]byte

// Zero is the all-zero digest. It never names a real value; it is used as
// a sentinel for "no digest yet" in code that builds one incrementally.
var Zero Digest

// Of returns the SHA3-256 digest of b.
func Of(b []byte) Digest {
	h := NewHasher()
	h.Write(b)
	return h.Sum()
}

// Bytes returns a copy of d's bytes.
func (d Digest) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, d[:])
	return b
}

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Zero
}

// String returns the hex encoding of d.
func (d Digest) String() string {
	b, _ := d.MarshalText()
	return string(b)
}

// MarshalText satisfies encoding.TextMarshaler. It never returns an error.
func (d Digest) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(Size))
	hex.Encode(b, d[:])
	return b, nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler. It decodes hex data
// from b into d.
func (d *Digest) UnmarshalText(b []byte) error {
	if len(b) != hex.EncodedLen(Size) {
		return errors.WithDetailf(
			errBadHexLength,
			"expected hex string of length %d, got %q",
			hex.EncodedLen(Size), b,
		)
	}
	_, err := hex.Decode(d[:], b)
	return err
}

// MarshalJSON satisfies json.Marshaler.
func (d Digest) MarshalJSON() ([]byte, error) {
	text, _ := d.MarshalText()
	return json.Marshal(string(text))
}

// UnmarshalJSON satisfies json.Unmarshaler. A JSON null decodes to the
// zero digest.
func (d *Digest) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Zero
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

var errBadHexLength = errors.New("bad digest hex length")

// Hasher incrementally accumulates content into a pooled SHA3-256 state.
// Callers must call Sum exactly once; Sum returns the hasher's underlying
// state to the free list.
type Hasher struct {
	h hash.Hash
}

// NewHasher returns a Hasher backed by a pooled SHA3-256 state.
func NewHasher() *Hasher {
	return &Hasher{h: sha3pool.Get256()}
}

// Write adds p to the digest being accumulated. It never fails.
func (h *Hasher) Write(p []byte) {
	h.h.Write(p)
}

// WriteByte adds a single byte to the digest being accumulated.
func (h *Hasher) WriteByte(b byte) {
	h.h.Write([]byte{b})
}

// Sum finalizes the digest and returns the underlying hash state to the
// free list. It must be called exactly once per Hasher.
func (h *Hasher) Sum() Digest {
	var d Digest
	copy(d[:], h.h.Sum(nil))
	sha3pool.Put256(h.h)
	return d
}

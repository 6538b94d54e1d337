// Package ids implements the identifiers named in the Fae data model:
// transaction IDs, contract IDs (three variants, with an optional nonce
// assertion), short (hashed) contract IDs, escrow entry IDs, and version
// IDs. All of them print as hex digests except ContractID, which has its
// own textual grammar including the ":# nonce" suffix.
package ids

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/therewillbecode/Fae-1/crypto/digest"
	"github.com/therewillbecode/Fae-1/errors"
)

// TransactionID names a transaction, hashed from the caller-supplied
// transaction description at RunTransaction time (the host, not this
// package, is responsible for producing it deterministically -- see
// spec.md §1's out-of-scope host adapter).
type TransactionID digest.Digest

func (t TransactionID) String() string                { return digest.Digest(t).String() }
func (t TransactionID) MarshalText() ([]byte, error)   { return digest.Digest(t).MarshalText() }
func (t *TransactionID) UnmarshalText(b []byte) error  { return (*digest.Digest)(t).UnmarshalText(b) }
func (t TransactionID) IsZero() bool                   { return digest.Digest(t).IsZero() }

// EntryID names a live escrow within some contract's or transaction's
// private escrow map.
type EntryID digest.Digest

func (e EntryID) String() string               { return digest.Digest(e).String() }
func (e EntryID) MarshalText() ([]byte, error) { return digest.Digest(e).MarshalText() }
func (e *EntryID) UnmarshalText(b []byte) error { return (*digest.Digest)(e).UnmarshalText(b) }

// ShortContractID is the digest of a ContractID. It is used to key
// per-input records and to name the members of a trust set.
type ShortContractID digest.Digest

func (s ShortContractID) String() string               { return digest.Digest(s).String() }
func (s ShortContractID) MarshalText() ([]byte, error)  { return digest.Digest(s).MarshalText() }
func (s *ShortContractID) UnmarshalText(b []byte) error { return (*digest.Digest)(s).UnmarshalText(b) }

// VersionID names one committed version of a top-level output, used only
// in the per-transaction audit record (spec.md §6's "versions:" block).
type VersionID digest.Digest

func (v VersionID) String() string               { return digest.Digest(v).String() }
func (v VersionID) MarshalText() ([]byte, error)  { return digest.Digest(v).MarshalText() }
func (v *VersionID) UnmarshalText(b []byte) error { return (*digest.Digest)(v).UnmarshalText(b) }

// PublicKey identifies a transaction signer. Verifying signatures against
// it is a cryptographic primitive out of scope for this engine (spec.md
// §1); PublicKey here is only ever compared, stored, and printed.
type PublicKey [32]byte

func (k PublicKey) String() string {
	return digest.Digest(k).String()
}

// ContractID is a closed sum of the three variants named in spec.md §3:
// JustTransaction, TransactionOutput, and InputOutput. An optional nonce
// assertion may be attached with WithNonce.
type ContractID interface {
	fmt.Stringer

	// shortenKey returns the canonical bytes hashed by Shorten, excluding
	// any nonce assertion (the nonce is a per-access check, not part of a
	// contract's identity).
	shortenKey() []byte

	// Nonce returns the asserted call count and whether one was given.
	Nonce() (n uint64, ok bool)
}

// JustTransaction refers to the transaction itself. It is never
// dispatchable as an input, and carries no storage slot, so it is never
// valid to attach a ":# nonce" assertion to one -- Resolve rejects it
// with ErrInvalidNonceAt rather than the ordinary "no slot" rejection.
type JustTransaction struct {
	Tx TransactionID
	N  *uint64 // optional, always invalid: see Resolve
}

func (c JustTransaction) String() string {
	s := "tx:" + c.Tx.String()
	if c.N != nil {
		s += fmt.Sprintf(":#%d", *c.N)
	}
	return s
}

func (c JustTransaction) Nonce() (uint64, bool) {
	if c.N == nil {
		return 0, false
	}
	return *c.N, true
}

func (c JustTransaction) shortenKey() []byte {
	return append([]byte("JustTransaction:"), c.Tx[:]...)
}

// WithNonce returns a copy of c asserting nonce n. Resolving it always
// fails with ErrInvalidNonceAt, since JustTransaction has no slot.
func (c JustTransaction) WithNonce(n uint64) JustTransaction {
	c.N = &n
	return c
}

// TransactionOutput refers to the i-th top-level output of transaction Tx.
type TransactionOutput struct {
	Tx    TransactionID
	Index int
	N     *uint64 // optional ":# nonce" assertion
}

func (c TransactionOutput) String() string {
	s := fmt.Sprintf("txout:%s:%d", c.Tx, c.Index)
	if c.N != nil {
		s += fmt.Sprintf(":#%d", *c.N)
	}
	return s
}

func (c TransactionOutput) Nonce() (uint64, bool) {
	if c.N == nil {
		return 0, false
	}
	return *c.N, true
}

func (c TransactionOutput) shortenKey() []byte {
	b := append([]byte("TransactionOutput:"), c.Tx[:]...)
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], uint64(c.Index))
	return append(b, idx[:]...)
}

// WithNonce returns a copy of c asserting nonce n.
func (c TransactionOutput) WithNonce(n uint64) TransactionOutput {
	c.N = &n
	return c
}

// InputOutput refers to the i-th output produced while dispatching the
// contract referenced as shortInputID during transaction Tx.
type InputOutput struct {
	Tx          TransactionID
	ShortInput  ShortContractID
	Index       int
	N           *uint64
}

func (c InputOutput) String() string {
	s := fmt.Sprintf("inputout:%s:%s:%d", c.Tx, c.ShortInput, c.Index)
	if c.N != nil {
		s += fmt.Sprintf(":#%d", *c.N)
	}
	return s
}

func (c InputOutput) Nonce() (uint64, bool) {
	if c.N == nil {
		return 0, false
	}
	return *c.N, true
}

func (c InputOutput) shortenKey() []byte {
	b := append([]byte("InputOutput:"), c.Tx[:]...)
	b = append(b, c.ShortInput[:]...)
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], uint64(c.Index))
	return append(b, idx[:]...)
}

// WithNonce returns a copy of c asserting nonce n.
func (c InputOutput) WithNonce(n uint64) InputOutput {
	c.N = &n
	return c
}

// Shorten computes the ShortContractID naming cID: the digest of its
// identity, independent of any nonce assertion attached to it.
func Shorten(cID ContractID) ShortContractID {
	return ShortContractID(digest.Of(cID.shortenKey()))
}

// ComputeVersionID computes the VersionID naming one committed version of
// cID: its identity combined with the nonce it carried at that moment.
// Used to populate the per-input "versions:" audit block (spec.md §6;
// see SPEC_FULL.md's Supplemented Features).
func ComputeVersionID(cID ContractID, nonce uint64) VersionID {
	b := append([]byte{}, cID.shortenKey()...)
	var nb [8]byte
	binary.BigEndian.PutUint64(nb[:], nonce)
	return VersionID(digest.Of(append(b, nb[:]...)))
}

// ParseNonceSuffix splits a "base:# n" string into its base and asserted
// nonce, tolerating surrounding whitespace around "#". It reports ok=false
// if s has no nonce suffix.
func ParseNonceSuffix(s string) (base string, nonce uint64, ok bool) {
	i := strings.LastIndex(s, ":#")
	if i < 0 {
		return s, 0, false
	}
	base = strings.TrimRight(s[:i], " ")
	numPart := strings.TrimSpace(s[i+2:])
	n, err := strconv.ParseUint(numPart, 10, 64)
	if err != nil {
		return s, 0, false
	}
	return base, n, true
}

// ErrBadContractID is returned when a ContractID cannot be dispatched or
// parsed.
var ErrBadContractID = errors.New("bad contract id")

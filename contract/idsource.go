package contract

import (
	"fmt"

	"github.com/therewillbecode/Fae-1/crypto/digest"
	"github.com/therewillbecode/Fae-1/ids"
)

// IDSource allocates the EntryIDs handed out by NewEscrow for every call
// that shares it (RunTransaction shares one source across a whole
// transaction). Frame.NewContract allocates no EntryID: published
// contracts are addressed by output index. Allocation is deterministic:
// every new ID is a digest
// of a caller-supplied seed (typically derived from the enclosing
// transaction and dispatch position) and a monotonically increasing
// counter, so replaying the same call sequence reproduces the same IDs
// (spec.md §5, Determinism).
type IDSource struct {
	seed            []byte
	escrowCounter   int
	contractCounter int
	signer          ids.PublicKey
}

// NewIDSource builds a source seeded from seed. Callers should derive
// seed from something unique to the call site, e.g. the transaction ID
// concatenated with the dispatch index.
func NewIDSource(seed []byte) *IDSource {
	cp := make([]byte, len(seed))
	copy(cp, seed)
	return &IDSource{seed: cp}
}

// NextEscrowID deterministically allocates the next EntryID for a
// newEscrow call.
func (s *IDSource) NextEscrowID() ids.EntryID {
	id := s.next("escrow", s.escrowCounter)
	s.escrowCounter++
	return id
}

// NextContractID deterministically allocates the next EntryID from a
// counter separate from NextEscrowID's. Frame.NewContract does not call
// it.
func (s *IDSource) NextContractID() ids.EntryID {
	id := s.next("contract", s.contractCounter)
	s.contractCounter++
	return id
}

// SetSigner records the public key sender() reports for the transaction
// this source belongs to. RunTransaction calls this once per run; the
// signer never changes mid-transaction (SPEC_FULL.md's "sender accessor"
// supplemented feature).
func (s *IDSource) SetSigner(pk ids.PublicKey) {
	s.signer = pk
}

// Signer returns the public key set by SetSigner, or the zero PublicKey
// if none was set.
func (s *IDSource) Signer() ids.PublicKey {
	return s.signer
}

func (s *IDSource) next(tag string, counter int) ids.EntryID {
	h := digest.NewHasher()
	h.Write(s.seed)
	h.Write([]byte(fmt.Sprintf(":%s:%d", tag, counter)))
	return ids.EntryID(h.Sum())
}

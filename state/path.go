package state

import (
	"fmt"

	"github.com/therewillbecode/Fae-1/contract"
	"github.com/therewillbecode/Fae-1/ids"
)

// Install sets a freshly assigned slot to hold c for the first time,
// before any call has been made against it, declaring the trust set it
// was published with. The slot's nonce starts at 0 (spec.md §4.5).
func (s *Slot) Install(c *contract.Contract, trusts []ids.ShortContractID, backingType string) {
	s.Contract = c
	s.Trusts = trusts
	s.BackingType = backingType
}

// RecordCall advances s past one completed call. next is the
// continuation a call produced (nil if it spent); the nonce increments
// to count the call that just completed, whether or not it spent
// (spec.md invariant 2 and §4.5's writing discipline).
func (s *Slot) RecordCall(next *contract.Contract) {
	s.Contract = next
	s.Nonce++
}

// TransactionOutputPath descends tx -> outputs -> index, returning a
// pointer into live storage so writes through it persist (spec.md
// §4.5). The returned pointer is valid only while holding no concurrent
// mutation of the same transaction's Outputs slice length; callers
// resolve and use it within one step of dispatch.
func TransactionOutputPath(s *Storage, tx ids.TransactionID, index int) (*Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[tx]
	if !ok {
		return nil, &ErrBadTransactionID{Tx: tx}
	}
	if e.poison != nil {
		return nil, e.poison
	}
	if index < 0 || index >= len(e.outputs) {
		return nil, &ErrBadContractID{Index: index}
	}
	return &e.outputs[index], nil
}

// InputOutputPath descends tx -> inputOutputs -> short -> outputs ->
// index (spec.md §4.5).
func InputOutputPath(s *Storage, tx ids.TransactionID, short ids.ShortContractID, index int) (*Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[tx]
	if !ok {
		return nil, &ErrBadTransactionID{Tx: tx}
	}
	if e.poison != nil {
		return nil, e.poison
	}
	rec, ok := e.inputOutputs[short]
	if !ok {
		return nil, &ErrBadInputID{Tx: tx, Short: short}
	}
	if index < 0 || index >= len(rec.Outputs) {
		return nil, &ErrBadContractID{Index: index}
	}
	return &rec.Outputs[index], nil
}

// Resolve descends to the slot cID addresses and, if cID carries a
// ":# nonce" assertion, checks it against the slot's current nonce
// (spec.md §3/§4.5). JustTransaction carries no slot and always fails:
// with ErrInvalidNonceAt if it carries a nonce assertion, otherwise with
// ErrInvalidContractID.
func Resolve(s *Storage, cID ids.ContractID) (*Slot, error) {
	var slot *Slot
	var err error

	switch c := cID.(type) {
	case ids.JustTransaction:
		if n, ok := c.Nonce(); ok {
			return nil, &ErrInvalidNonceAt{Detail: fmt.Sprintf("JustTransaction %s has no slot to assert nonce %d against", c.Tx, n)}
		}
		return nil, &ErrInvalidContractID{Detail: "JustTransaction has no storage slot"}
	case ids.TransactionOutput:
		slot, err = TransactionOutputPath(s, c.Tx, c.Index)
	case ids.InputOutput:
		slot, err = InputOutputPath(s, c.Tx, c.ShortInput, c.Index)
	default:
		return nil, &ErrInvalidContractID{Detail: "unrecognized ContractID variant"}
	}
	if err != nil {
		return nil, err
	}

	if n, ok := cID.Nonce(); ok {
		if n != slot.Nonce {
			return nil, &ErrBadNonce{CID: cID, Asserted: n, Actual: slot.Nonce}
		}
	}
	return slot, nil
}

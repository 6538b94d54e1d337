// Package state implements Storage, the mapping from transaction ID to
// transaction entry named in spec.md §3, and the lensed nonce-checked
// accessors of spec.md §4.5 (TransactionOutputPath, InputOutputPath and
// Resolve) that replace the source
// language's lens library (Design Note "Storage lensing", spec.md §9).
package state

import (
	"github.com/therewillbecode/Fae-1/contract"
	"github.com/therewillbecode/Fae-1/escrow"
	"github.com/therewillbecode/Fae-1/ids"
)

// Slot is one nonce-carrying output cell. A nil Contract is an empty
// slot: its index remains assigned and its Nonce is retained (spec.md
// invariant 1).
type Slot struct {
	Contract *contract.Contract
	Nonce    uint64
	// Trusts is the trust set declared when the contract was published
	// (spec.md §4.1's "trust set declared at cID's publication"). It is
	// fixed at Install and carries unchanged across every later
	// RecordCall of the same published contract.
	Trusts []ids.ShortContractID
	// BackingType is the Go type name of the value the contract was
	// published with, fixed at Install for the same reason as Trusts
	// (spec.md §6's "versions:" block type-rep).
	BackingType string
}

// InputOutputVersions records one dispatched input's audit trail: the
// full ContractID it was referenced by (including any nonce assertion),
// the outputs it published during its call, and the VersionID committed
// per output index at the moment it was produced (spec.md §6's
// "versions:" block; see SPEC_FULL.md's Supplemented Features).
type InputOutputVersions struct {
	RealID   ids.ContractID
	Nonce    uint64
	Outputs  []Slot
	Versions map[int]ids.VersionID
}

// Entry is a TransactionEntry: written once at commit (spec.md §4,
// invariant "TransactionEntry: written once at transaction commit;
// subsequently read-only" for InputOutputs/InputOrder/Signers/Result).
// Its Outputs slots remain live afterward: later transactions address
// and invoke the contracts published there, which is how storage
// composes across transactions.
//
// A poisoned Entry (installed when RunTransaction fails after dispatch
// began) re-raises its captured error from every accessor, per spec.md
// §4's exception-safety rule.
type Entry struct {
	poison error

	inputOutputs map[ids.ShortContractID]*InputOutputVersions
	inputOrder   []ids.ShortContractID
	outputs      []Slot
	signers      map[string]ids.PublicKey
	result       escrow.Dynamic
}

// New builds a committed Entry from a transaction's dispatch results.
func New(
	inputOutputs map[ids.ShortContractID]*InputOutputVersions,
	inputOrder []ids.ShortContractID,
	outputs []Slot,
	signers map[string]ids.PublicKey,
	result escrow.Dynamic,
) *Entry {
	return &Entry{
		inputOutputs: inputOutputs,
		inputOrder:   inputOrder,
		outputs:      outputs,
		signers:      signers,
		result:       result,
	}
}

// Poisoned builds an Entry whose every accessor re-raises err.
func Poisoned(err error) *Entry {
	return &Entry{poison: err}
}

// InputOutputs returns the per-input dispatch records, keyed by the
// short ID of the contract each input addressed.
func (e *Entry) InputOutputs() (map[ids.ShortContractID]*InputOutputVersions, error) {
	if e.poison != nil {
		return nil, e.poison
	}
	return e.inputOutputs, nil
}

// InputOrder returns the short IDs of this transaction's inputs, in
// dispatch order.
func (e *Entry) InputOrder() ([]ids.ShortContractID, error) {
	if e.poison != nil {
		return nil, e.poison
	}
	return e.inputOrder, nil
}

// Outputs returns the transaction body's top-level published outputs,
// indexed from 0.
func (e *Entry) Outputs() ([]Slot, error) {
	if e.poison != nil {
		return nil, e.poison
	}
	return e.outputs, nil
}

// Signers returns the named public keys that authorized this
// transaction (the declared signer plus any additionalSigners; see
// SPEC_FULL.md's Supplemented Features).
func (e *Entry) Signers() (map[string]ids.PublicKey, error) {
	if e.poison != nil {
		return nil, e.poison
	}
	return e.signers, nil
}

// Result returns the transaction body's typed return value.
func (e *Entry) Result() (escrow.Dynamic, error) {
	if e.poison != nil {
		return escrow.Dynamic{}, e.poison
	}
	return e.result, nil
}

// Err returns the poisoning error, or nil if e committed successfully.
func (e *Entry) Err() error {
	return e.poison
}

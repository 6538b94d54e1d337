// Package engine implements RunTransaction, the orchestration named in
// spec.md §4.1: input dispatch with trust checking, reward injection,
// body execution under the liftTX surface, the escrow closure check, and
// exception-safe commit or poisoning of the resulting TransactionEntry.
//
// It is grounded on the teacher's protocol.Chain (the type that ties
// storage and validation together) for its overall shape, on
// protocol/validation.go's ValidateTx for the validate-then-commit
// sequencing, and on core/txbuilder.Build's pattern of folding per-item
// results into one aggregate with positional error wrapping.
package engine

import (
	"context"
	"reflect"

	"github.com/therewillbecode/Fae-1/contract"
	"github.com/therewillbecode/Fae-1/errors"
	"github.com/therewillbecode/Fae-1/escrow"
	"github.com/therewillbecode/Fae-1/ids"
	"github.com/therewillbecode/Fae-1/log"
	"github.com/therewillbecode/Fae-1/reward"
	"github.com/therewillbecode/Fae-1/state"
)

// RunTransaction executes one transaction against s, exactly as spec.md
// §4.1 describes:
//
//  1. dispatches inputs in order, checking trust on Trusted args and
//     folding each input's published outputs into its InputOutputVersions
//     record;
//  2. if isReward, mints a reward escrow and appends its EscrowID to the
//     input results;
//  3. validates the results against expectedTypes and invokes body under
//     the liftTX-restricted frame;
//  4. fails OpenEscrows if the transaction's escrow map is non-empty
//     afterward;
//  5. commits a TransactionEntry under txID.
//
// On any failure in steps 1-4, a poisoned Entry is committed under txID
// instead, and the failure is returned. additionalSigners supplements
// the primary signer in the committed entry's named signer map (see
// SPEC_FULL.md's Supplemented Features).
func RunTransaction(
	ctx context.Context,
	s *state.Storage,
	txID ids.TransactionID,
	signer ids.PublicKey,
	additionalSigners map[string]ids.PublicKey,
	isReward bool,
	inputs []InputItem,
	expectedTypes []reflect.Type,
	body Body,
) (escrow.Dynamic, error) {
	log.Write(ctx, "at", "run_transaction", "tx_id", txID.String(), "inputs", len(inputs), "is_reward", isReward)

	fail := func(err error) (escrow.Dynamic, error) {
		log.Error(ctx, err, "tx_id", txID.String())
		s.Commit(txID, state.Poisoned(err))
		return escrow.Dynamic{}, err
	}

	idSrc := contract.NewIDSource(txID[:])
	idSrc.SetSigner(signer)
	txEscrows := map[ids.EntryID]*contract.Contract{}

	inputOutputs := map[ids.ShortContractID]*state.InputOutputVersions{}
	var inputOrder []ids.ShortContractID
	var results []escrow.Dynamic
	var sourceCIDs []ids.ContractID

	for i, item := range inputs {
		slot, err := state.Resolve(s, item.CID)
		if err != nil {
			return fail(err)
		}
		if slot.Contract == nil {
			return fail(&ErrBadInput{CID: item.CID})
		}

		var arg escrow.Dynamic
		if item.Arg.literal != nil {
			arg = *item.Arg.literal
		} else {
			idx := *item.Arg.trustedIndex
			if idx < 0 || idx >= len(results) {
				return fail(&ErrBadChainedInput{CID: item.CID, Index: idx})
			}
			source := sourceCIDs[idx]
			if !trusts(slot.Trusts, ids.Shorten(source)) {
				return fail(&ErrUntrustedInput{CID: item.CID, Source: source})
			}
			arg = results[idx]
		}

		w := &contract.OutputWriter{}
		val, next, err := contract.Invoke(slot.Contract, arg, txEscrows, idSrc, w)
		if err != nil {
			return fail(errors.WithDetailf(err, "dispatching input %d", i))
		}
		slot.RecordCall(next)

		results = append(results, val)
		sourceCIDs = append(sourceCIDs, item.CID)

		short := ids.Shorten(item.CID)
		outSlots, versions := installPublications(txID, short, w.Items())
		inputOutputs[short] = &state.InputOutputVersions{
			RealID:   item.CID,
			Nonce:    slot.Nonce,
			Outputs:  outSlots,
			Versions: versions,
		}
		inputOrder = append(inputOrder, short)
	}

	if isReward {
		id := reward.Mint(idSrc, txEscrows)
		results = append(results, escrow.NewDynamic(id))
	}

	if err := deserializeInputs(results, expectedTypes); err != nil {
		return fail(err)
	}

	bodyOutputs := &contract.OutputWriter{}
	frame := contract.NewTXFrame(contract.NewFrame(txEscrows, idSrc, bodyOutputs))
	result, err := body(results, frame)
	if err != nil {
		return fail(err)
	}

	if len(txEscrows) != 0 {
		return fail(&ErrOpenEscrows{Remaining: len(txEscrows)})
	}

	topLevel := installTopLevel(bodyOutputs.Items())

	signers := map[string]ids.PublicKey{}
	for name, k := range additionalSigners {
		signers[name] = k
	}
	signers["self"] = signer

	entry := state.New(inputOutputs, inputOrder, topLevel, signers, result)
	s.Commit(txID, entry)
	return result, nil
}

// deserializeInputs matches dispatched input results against the body's
// declared expectedTypes, a flat left-to-right field match exactly like
// the one escrow.Traverse performs structurally over a single value
// (spec.md §4.4). It is pure: no storage or escrow-map access, just
// arity and per-field type comparison.
func deserializeInputs(results []escrow.Dynamic, expectedTypes []reflect.Type) error {
	if len(results) > len(expectedTypes) {
		return &ErrTooManyInputs{Got: len(results), Want: len(expectedTypes)}
	}
	if len(results) < len(expectedTypes) {
		return &ErrNotEnoughInputs{Got: len(results), Want: len(expectedTypes)}
	}
	for i, want := range expectedTypes {
		if results[i].Type() != want {
			return &escrow.ErrBadArgType{Expected: want, Actual: results[i].Type()}
		}
	}
	return nil
}

func trusts(set []ids.ShortContractID, short ids.ShortContractID) bool {
	for _, t := range set {
		if t == short {
			return true
		}
	}
	return false
}

// installPublications turns the contracts an input published into
// indexed output slots plus their VersionID audit record.
func installPublications(txID ids.TransactionID, short ids.ShortContractID, pubs []contract.Publication) ([]state.Slot, map[int]ids.VersionID) {
	slots := make([]state.Slot, len(pubs))
	versions := make(map[int]ids.VersionID, len(pubs))
	for i, p := range pubs {
		slots[i].Install(p.Contract, p.Trusts, p.BackingType)
		cID := ids.InputOutput{Tx: txID, ShortInput: short, Index: i}
		versions[i] = ids.ComputeVersionID(cID, slots[i].Nonce)
	}
	return slots, versions
}

// installTopLevel mirrors installPublications for a transaction's
// top-level outputs, which spec.md's "versions:" block does not cover.
func installTopLevel(pubs []contract.Publication) []state.Slot {
	slots := make([]state.Slot, len(pubs))
	for i, p := range pubs {
		slots[i].Install(p.Contract, p.Trusts, p.BackingType)
	}
	return slots
}

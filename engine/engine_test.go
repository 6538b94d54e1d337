package engine

import (
	"context"
	"reflect"
	"testing"

	"github.com/therewillbecode/Fae-1/contract"
	"github.com/therewillbecode/Fae-1/escrow"
	"github.com/therewillbecode/Fae-1/ids"
	"github.com/therewillbecode/Fae-1/reward"
	"github.com/therewillbecode/Fae-1/state"
)

func tx(b byte) ids.TransactionID {
	var id ids.TransactionID
	id[0] = b
	return id
}

func identityContract() *contract.Contract {
	return contract.New(func(f *contract.Frame, arg escrow.Dynamic) (contract.Step, error) {
		return contract.Spend(arg), nil
	})
}

func intType() reflect.Type { return reflect.TypeOf(0) }

func TestRunTransactionLiteralIdentity(t *testing.T) {
	s := state.NewStorage()
	tx0 := tx(1)
	s.Commit(tx0, state.New(nil, nil, []state.Slot{{}}, nil, escrow.Dynamic{}))
	slot, err := state.TransactionOutputPath(s, tx0, 0)
	if err != nil {
		t.Fatal(err)
	}
	slot.Install(identityContract(), nil, "int")

	cID := ids.TransactionOutput{Tx: tx0, Index: 0}
	inputs := []InputItem{{CID: cID, Arg: Literal(escrow.NewDynamic(7))}}

	result, err := RunTransaction(context.Background(), s, tx(2), ids.PublicKey{}, nil, false, inputs, []reflect.Type{intType()},
		func(in []escrow.Dynamic, f *contract.TXFrame) (escrow.Dynamic, error) {
			var n int
			if err := in[0].As(&n); err != nil {
				return escrow.Dynamic{}, err
			}
			return escrow.NewDynamic(n + 1), nil
		})
	if err != nil {
		t.Fatal(err)
	}
	var got int
	if err := result.As(&got); err != nil || got != 8 {
		t.Fatalf("got %d, %v", got, err)
	}

	entry, ok := s.Get(tx(2))
	if !ok {
		t.Fatal("expected committed entry")
	}
	order, err := entry.InputOrder()
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != 1 || order[0] != ids.Shorten(cID) {
		t.Fatalf("unexpected inputOrder: %v", order)
	}
	outputs, err := entry.Outputs()
	if err != nil {
		t.Fatal(err)
	}
	if len(outputs) != 0 {
		t.Fatalf("expected no top-level outputs, got %d", len(outputs))
	}

	again, err := state.TransactionOutputPath(s, tx0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if again.Nonce != 1 {
		t.Fatalf("expected C's nonce incremented to 1, got %d", again.Nonce)
	}
}

func installTrustedPair(t *testing.T, trustB bool) (*state.Storage, ids.TransactionID, ids.ContractID, ids.ContractID) {
	t.Helper()
	s := state.NewStorage()
	tx0 := tx(1)
	s.Commit(tx0, state.New(nil, nil, []state.Slot{{}, {}}, nil, escrow.Dynamic{}))

	aSlot, err := state.TransactionOutputPath(s, tx0, 0)
	if err != nil {
		t.Fatal(err)
	}
	aSlot.Install(contract.New(func(f *contract.Frame, arg escrow.Dynamic) (contract.Step, error) {
		return contract.Spend(escrow.NewDynamic(42)), nil
	}), nil, "struct {}")

	var trusts []ids.ShortContractID
	aCID := ids.TransactionOutput{Tx: tx0, Index: 0}
	if trustB {
		trusts = []ids.ShortContractID{ids.Shorten(aCID)}
	}
	bSlot, err := state.TransactionOutputPath(s, tx0, 1)
	if err != nil {
		t.Fatal(err)
	}
	bSlot.Install(contract.New(func(f *contract.Frame, arg escrow.Dynamic) (contract.Step, error) {
		return contract.Spend(arg), nil
	}), trusts, "int")

	bCID := ids.TransactionOutput{Tx: tx0, Index: 1}
	return s, tx0, aCID, bCID
}

func TestRunTransactionTrustedChainingAccepted(t *testing.T) {
	s, _, aCID, bCID := installTrustedPair(t, true)

	inputs := []InputItem{
		{CID: aCID, Arg: Literal(escrow.NewDynamic(struct{}{}))},
		{CID: bCID, Arg: Trusted(0)},
	}
	result, err := RunTransaction(context.Background(), s, tx(2), ids.PublicKey{}, nil, false, inputs, []reflect.Type{intType(), intType()},
		func(in []escrow.Dynamic, f *contract.TXFrame) (escrow.Dynamic, error) {
			return in[1], nil
		})
	if err != nil {
		t.Fatal(err)
	}
	var got int
	if err := result.As(&got); err != nil || got != 42 {
		t.Fatalf("got %d, %v", got, err)
	}
}

func TestRunTransactionTrustedChainingRejected(t *testing.T) {
	s, _, aCID, bCID := installTrustedPair(t, false)

	inputs := []InputItem{
		{CID: aCID, Arg: Literal(escrow.NewDynamic(struct{}{}))},
		{CID: bCID, Arg: Trusted(0)},
	}
	txID := tx(2)
	_, err := RunTransaction(context.Background(), s, txID, ids.PublicKey{}, nil, false, inputs, []reflect.Type{intType(), intType()},
		func(in []escrow.Dynamic, f *contract.TXFrame) (escrow.Dynamic, error) {
			return in[1], nil
		})
	if _, ok := err.(*ErrUntrustedInput); !ok {
		t.Fatalf("expected ErrUntrustedInput, got %v", err)
	}

	entry, ok := s.Get(txID)
	if !ok {
		t.Fatal("expected a poisoned entry to be committed")
	}
	if entry.Err() == nil {
		t.Fatal("expected entry to be poisoned")
	}
}

func TestRunTransactionOpenEscrowsViolation(t *testing.T) {
	s := state.NewStorage()
	txID := tx(1)

	_, err := RunTransaction(context.Background(), s, txID, ids.PublicKey{}, nil, false, nil, nil,
		func(in []escrow.Dynamic, f *contract.TXFrame) (escrow.Dynamic, error) {
			_, err := f.NewEscrow(escrow.NewDynamic(0), func(*contract.Frame, escrow.Dynamic) (contract.Step, error) {
				return contract.Spend(escrow.NewDynamic(0)), nil
			})
			if err != nil {
				return escrow.Dynamic{}, err
			}
			return escrow.NewDynamic(0), nil
		})
	if _, ok := err.(*ErrOpenEscrows); !ok {
		t.Fatalf("expected ErrOpenEscrows, got %v", err)
	}

	entry, ok := s.Get(txID)
	if !ok || entry.Err() == nil {
		t.Fatal("expected exactly the poisoned entry to be present")
	}
}

func TestRunTransactionRewardInjection(t *testing.T) {
	s := state.NewStorage()
	txID := tx(1)

	tokenType := reflect.TypeOf(escrow.ID[interface{}, reward.Token]{})
	result, err := RunTransaction(context.Background(), s, txID, ids.PublicKey{}, nil, true, nil, []reflect.Type{tokenType},
		func(in []escrow.Dynamic, f *contract.TXFrame) (escrow.Dynamic, error) {
			var id escrow.ID[interface{}, reward.Token]
			if err := in[0].As(&id); err != nil {
				return escrow.Dynamic{}, err
			}
			entry, err := id.Entry()
			if err != nil {
				return escrow.Dynamic{}, err
			}
			return f.UseEscrow(entry, escrow.NewDynamic(struct{}{}))
		})
	if err != nil {
		t.Fatal(err)
	}
	var tok reward.Token
	if err := result.As(&tok); err != nil || tok.Amount != 1 {
		t.Fatalf("got %+v, %v", tok, err)
	}
}

func TestRunTransactionNonceCheck(t *testing.T) {
	s := state.NewStorage()
	tx0 := tx(1)
	s.Commit(tx0, state.New(nil, nil, []state.Slot{{Nonce: 2}}, nil, escrow.Dynamic{}))
	slot, err := state.TransactionOutputPath(s, tx0, 0)
	if err != nil {
		t.Fatal(err)
	}
	slot.Install(identityContract(), nil, "int")

	cID := ids.TransactionOutput{Tx: tx0, Index: 0}.WithNonce(1)
	inputs := []InputItem{{CID: cID, Arg: Literal(escrow.NewDynamic(0))}}

	_, err = RunTransaction(context.Background(), s, tx(2), ids.PublicKey{}, nil, false, inputs, []reflect.Type{intType()},
		func(in []escrow.Dynamic, f *contract.TXFrame) (escrow.Dynamic, error) {
			return in[0], nil
		})
	got, ok := err.(*state.ErrBadNonce)
	if !ok || got.Asserted != 1 || got.Actual != 2 {
		t.Fatalf("expected ErrBadNonce{Asserted:1, Actual:2}, got %+v", err)
	}
}

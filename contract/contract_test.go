package contract

import (
	"testing"

	"github.com/therewillbecode/Fae-1/escrow"
	"github.com/therewillbecode/Fae-1/ids"
)

func noEscrows() map[ids.EntryID]*Contract { return map[ids.EntryID]*Contract{} }

func TestInvokeSpendReturnsValue(t *testing.T) {
	c := New(func(f *Frame, arg escrow.Dynamic) (Step, error) {
		var n int
		_ = arg.As(&n)
		return Spend(escrow.NewDynamic(n + 1)), nil
	})

	val, next, err := Invoke(c, escrow.NewDynamic(41), noEscrows(), NewIDSource([]byte("seed")), &OutputWriter{})
	if err != nil {
		t.Fatal(err)
	}
	if next != nil {
		t.Fatal("expected spent contract to have no continuation")
	}
	var got int
	if err := val.As(&got); err != nil || got != 42 {
		t.Fatalf("got %d, %v", got, err)
	}
}

func TestInvokeSpentContractErrors(t *testing.T) {
	c := New(func(f *Frame, arg escrow.Dynamic) (Step, error) {
		return Spend(arg), nil
	})
	_, _, err := Invoke(c, escrow.NewDynamic(1), noEscrows(), NewIDSource([]byte("s")), &OutputWriter{})
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = Invoke(c, escrow.NewDynamic(1), noEscrows(), NewIDSource([]byte("s")), &OutputWriter{})
	if _, ok := err.(*ErrSpentContract); !ok {
		t.Fatalf("expected ErrSpentContract, got %v", err)
	}
}

func TestInvokeReleaseProducesContinuation(t *testing.T) {
	var second Body
	second = func(f *Frame, arg escrow.Dynamic) (Step, error) {
		return Spend(arg), nil
	}
	first := func(f *Frame, arg escrow.Dynamic) (Step, error) {
		return Release(arg, second), nil
	}
	c := New(first)

	_, next, err := Invoke(c, escrow.NewDynamic("a"), noEscrows(), NewIDSource([]byte("s")), &OutputWriter{})
	if err != nil {
		t.Fatal(err)
	}
	if next != c {
		t.Fatal("expected the same contract back as its own continuation")
	}
	if c.state != StateAwaiting {
		t.Fatalf("expected StateAwaiting, got %v", c.state)
	}

	_, next, err = Invoke(c, escrow.NewDynamic("b"), noEscrows(), NewIDSource([]byte("s")), &OutputWriter{})
	if err != nil {
		t.Fatal(err)
	}
	if next != nil {
		t.Fatal("expected second call to spend")
	}
}

func TestFrameNewEscrowThenUseEscrow(t *testing.T) {
	src := NewIDSource([]byte("seed"))
	outer := New(func(f *Frame, arg escrow.Dynamic) (Step, error) {
		entry, err := f.NewEscrow(escrow.NewDynamic(0), func(inner *Frame, arg escrow.Dynamic) (Step, error) {
			var n int
			_ = arg.As(&n)
			return Spend(escrow.NewDynamic(n * 2)), nil
		})
		if err != nil {
			return Step{}, err
		}
		out, err := f.UseEscrow(entry, escrow.NewDynamic(21))
		if err != nil {
			return Step{}, err
		}
		return Spend(out), nil
	})

	val, _, err := Invoke(outer, escrow.NewDynamic(nil), noEscrows(), src, &OutputWriter{})
	if err != nil {
		t.Fatal(err)
	}
	var got int
	if err := val.As(&got); err != nil || got != 42 {
		t.Fatalf("got %d, %v", got, err)
	}
}

func TestFrameUseEscrowBadID(t *testing.T) {
	c := New(func(f *Frame, arg escrow.Dynamic) (Step, error) {
		_, err := f.UseEscrow(ids.EntryID{9}, arg)
		return Step{}, err
	})
	_, _, err := Invoke(c, escrow.NewDynamic(1), noEscrows(), NewIDSource([]byte("s")), &OutputWriter{})
	if _, ok := err.(*ErrBadEscrowID); !ok {
		t.Fatalf("expected ErrBadEscrowID, got %v", err)
	}
}

func TestFrameNewContractAppendsPublication(t *testing.T) {
	w := &OutputWriter{}
	c := New(func(f *Frame, arg escrow.Dynamic) (Step, error) {
		err := f.NewContract(escrow.NewDynamic(0), []ids.ShortContractID{{1}}, func(*Frame, escrow.Dynamic) (Step, error) {
			return Spend(escrow.NewDynamic(0)), nil
		})
		return Spend(arg), err
	})
	_, _, err := Invoke(c, escrow.NewDynamic(0), noEscrows(), NewIDSource([]byte("s")), w)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Items()) != 1 {
		t.Fatalf("expected 1 publication, got %d", len(w.Items()))
	}
}

func TestTransferMissingEscrowFails(t *testing.T) {
	id := escrow.Direct[int, int](ids.EntryID{7})
	c := New(func(f *Frame, arg escrow.Dynamic) (Step, error) {
		return Spend(arg), nil
	})
	_, _, err := Invoke(c, escrow.NewDynamic(id), noEscrows(), NewIDSource([]byte("s")), &OutputWriter{})
	if _, ok := err.(*ErrMissingEscrow); !ok {
		t.Fatalf("expected ErrMissingEscrow, got %v", err)
	}
}

func TestTransferDuplicateEscrowFails(t *testing.T) {
	id := escrow.Direct[int, int](ids.EntryID{7})
	pair := [2]escrow.ID[int, int]{id, id}
	callerEscrows := map[ids.EntryID]*Contract{
		{7}: New(func(*Frame, escrow.Dynamic) (Step, error) { return Spend(escrow.NewDynamic(0)), nil }),
	}
	c := New(func(f *Frame, arg escrow.Dynamic) (Step, error) {
		return Spend(arg), nil
	})
	_, _, err := Invoke(c, escrow.NewDynamic(pair), callerEscrows, NewIDSource([]byte("s")), &OutputWriter{})
	if _, ok := err.(*ErrDuplicateEscrow); !ok {
		t.Fatalf("expected ErrDuplicateEscrow, got %v", err)
	}
}

func TestIDSourceIsDeterministic(t *testing.T) {
	a := NewIDSource([]byte("tx-1"))
	b := NewIDSource([]byte("tx-1"))
	if a.NextEscrowID() != b.NextEscrowID() {
		t.Fatal("expected identical seeds to produce identical first escrow id")
	}
	if a.NextEscrowID() == a.NextEscrowID() {
		t.Fatal("expected successive allocations from one source to differ")
	}
}

func TestFrameSenderReportsConfiguredSigner(t *testing.T) {
	src := NewIDSource([]byte("s"))
	src.SetSigner(ids.PublicKey{7})

	var got ids.PublicKey
	c := New(func(f *Frame, arg escrow.Dynamic) (Step, error) {
		got = f.Sender()
		return Spend(arg), nil
	})
	_, _, err := Invoke(c, escrow.NewDynamic(0), noEscrows(), src, &OutputWriter{})
	if err != nil {
		t.Fatal(err)
	}
	if got != (ids.PublicKey{7}) {
		t.Fatalf("unexpected sender: %v", got)
	}
}

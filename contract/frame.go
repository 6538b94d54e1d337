package contract

import (
	"github.com/therewillbecode/Fae-1/escrow"
	"github.com/therewillbecode/Fae-1/ids"
)

// Frame is the ambient context a contract Body runs with: its private
// escrow map, a deterministic ID allocator, and the outputs writer for
// any contracts it publishes (spec.md §3, "Operations available inside a
// contract").
type Frame struct {
	escrows map[ids.EntryID]*Contract
	ids     *IDSource
	outputs *OutputWriter
}

// NewFrame builds a Frame over escrows, allocating fresh IDs from src and
// recording published contracts into w. Callers outside this package
// build a Frame this way to run a transaction body under the liftTX
// surface (wrap the result with NewTXFrame).
func NewFrame(escrows map[ids.EntryID]*Contract, src *IDSource, w *OutputWriter) *Frame {
	return &Frame{escrows: escrows, ids: src, outputs: w}
}

// UseEscrow calls the escrow resident at entry with arg, transferring
// arg's own escrows into it and its result's escrows back out, exactly
// like a call to any other contract (spec.md §3 useEscrow). The escrow
// remains resident under entry afterward unless its body spent, in
// which case entry is freed.
func (f *Frame) UseEscrow(entry ids.EntryID, arg escrow.Dynamic) (escrow.Dynamic, error) {
	c, ok := f.escrows[entry]
	if !ok {
		return escrow.Dynamic{}, &ErrBadEscrowID{Entry: entry}
	}
	val, next, err := Invoke(c, arg, f.escrows, f.ids, f.outputs)
	if err != nil {
		if spent, ok := err.(*ErrSpentContract); ok {
			spent.Entry = entry
		}
		return escrow.Dynamic{}, err
	}
	if next == nil {
		delete(f.escrows, entry)
	} else {
		f.escrows[entry] = next
	}
	return val, nil
}

// NewEscrow installs body as a fresh escrow in f's private map under a
// freshly allocated EntryID, transferring backing's own escrow
// references into it so the new escrow starts in possession of them
// (spec.md §3 newEscrow). It returns the EntryID the escrow now lives
// under.
func (f *Frame) NewEscrow(backing escrow.Dynamic, body Body) (ids.EntryID, error) {
	entry := f.ids.NextEscrowID()
	c := New(body)
	if err := transferInto(backing.Interface(), f.escrows, c.escrows); err != nil {
		return ids.EntryID{}, err
	}
	f.escrows[entry] = c
	return entry, nil
}

// Sender returns the public key of the transaction's declared signer
// (SPEC_FULL.md's "sender accessor" supplemented feature).
func (f *Frame) Sender() ids.PublicKey {
	return f.ids.Signer()
}

// NewContract publishes body as a top-level contract trusting the given
// ShortContractIDs, transferring backing's escrow references into its
// private map (spec.md §3 newContract).
func (f *Frame) NewContract(backing escrow.Dynamic, trusts []ids.ShortContractID, body Body) error {
	c := New(body)
	if err := transferInto(backing.Interface(), f.escrows, c.escrows); err != nil {
		return err
	}
	f.outputs.Append(Publication{Contract: c, Trusts: trusts, BackingType: backing.Type().String()})
	return nil
}

// TXFrame exposes the liftTX-restricted surface available to a
// transaction body: useEscrow, newEscrow and newContract, but no release
// or spend. Go's type system enforces the restriction statically -- the
// method set below has no Release/Spend to call -- matching spec.md
// §4.2's liftTX boundary without a runtime check.
type TXFrame struct {
	f *Frame
}

// NewTXFrame wraps f for use by a transaction body.
func NewTXFrame(f *Frame) *TXFrame { return &TXFrame{f: f} }

// UseEscrow delegates to the underlying Frame.
func (t *TXFrame) UseEscrow(entry ids.EntryID, arg escrow.Dynamic) (escrow.Dynamic, error) {
	return t.f.UseEscrow(entry, arg)
}

// NewEscrow delegates to the underlying Frame.
func (t *TXFrame) NewEscrow(backing escrow.Dynamic, body Body) (ids.EntryID, error) {
	return t.f.NewEscrow(backing, body)
}

// NewContract delegates to the underlying Frame.
func (t *TXFrame) NewContract(backing escrow.Dynamic, trusts []ids.ShortContractID, body Body) error {
	return t.f.NewContract(backing, trusts, body)
}

// Sender delegates to the underlying Frame.
func (t *TXFrame) Sender() ids.PublicKey {
	return t.f.Sender()
}

// Package contract implements the Contract coroutine: an opaque callable
// that consumes a dynamic argument and either releases a continuation of
// itself or spends to a terminal value, closing over a private escrow map
// that the transfer discipline keeps in balance across every call
// boundary (spec.md §3 Contract, §4.2).
//
// Go has no stackful coroutines, so a contract's internal suspension is
// modeled the way spec.md's own design note prescribes: as an explicit
// small state (Fresh/Awaiting/Spent) wrapping a resumable closure (Body)
// that a call produces as its own continuation, rather than as a
// goroutine parked on a channel.
package contract

import (
	"github.com/therewillbecode/Fae-1/escrow"
	"github.com/therewillbecode/Fae-1/ids"
)

// State names where a Contract sits in its lifecycle.
type State int

const (
	// StateFresh is a contract that has never been invoked.
	StateFresh State = iota
	// StateAwaiting is a contract holding a continuation from a prior
	// release, ready to be invoked again.
	StateAwaiting
	// StateSpent is a contract whose body has returned a terminal value.
	// Any further Invoke fails with ErrSpentContract.
	StateSpent
)

// Body is the code a contract runs for one call. It receives the frame
// giving it access to its private escrow map and to the outputs writer
// for any top-level contracts it publishes, and the caller's argument.
// It returns a Step built with Release or Spend.
type Body func(f *Frame, arg escrow.Dynamic) (Step, error)

// Step is the outcome of one call into a contract body: either Release
// (produced by Release) or a terminal Spend (produced by Spend).
type Step struct {
	spent bool
	next  Body
	value escrow.Dynamic
}

// Release builds a Step that suspends the contract, returning value to
// the caller and substituting next as the contract's body for its next
// call.
func Release(value escrow.Dynamic, next Body) Step {
	return Step{next: next, value: value}
}

// Spend builds a Step that terminates the contract, returning value to
// the caller. No further call on the contract will succeed.
func Spend(value escrow.Dynamic) Step {
	return Step{spent: true, value: value}
}

// Contract is a single live coroutine: its current body plus the private
// escrow map it owns between calls.
type Contract struct {
	state   State
	body    Body
	escrows map[ids.EntryID]*Contract
}

// New wraps body as a fresh contract with an empty private escrow map.
func New(body Body) *Contract {
	return &Contract{state: StateFresh, body: body, escrows: map[ids.EntryID]*Contract{}}
}

// Invoke runs one call into c with arg, threading the transfer
// discipline: escrows arg references are moved out of callerEscrows and
// into c's private map before the body runs, and escrows the returned
// value references are moved back out after. w receives any top-level
// contracts the body publishes via Frame.NewContract.
//
// Invoke returns the value produced, and the contract to call next (nil
// if c spent). On an error c's state and body are unchanged, and the
// escrows arg referenced are moved back into callerEscrows if all of them
// are still in c's private map. Changes the body made before failing
// (escrows it created, used or spent, publications appended to w) are
// not undone.
func Invoke(c *Contract, arg escrow.Dynamic, callerEscrows map[ids.EntryID]*Contract, ids_ *IDSource, w *OutputWriter) (escrow.Dynamic, *Contract, error) {
	if c.state == StateSpent {
		return escrow.Dynamic{}, nil, &ErrSpentContract{}
	}

	if err := transferInto(arg.Interface(), callerEscrows, c.escrows); err != nil {
		return escrow.Dynamic{}, nil, err
	}

	f := &Frame{escrows: c.escrows, ids: ids_, outputs: w}
	step, err := c.body(f, arg)
	if err != nil {
		// Roll back the inbound transfer: the call never happened.
		_ = transferInto(arg.Interface(), c.escrows, callerEscrows)
		return escrow.Dynamic{}, nil, err
	}

	if err := transferInto(step.value.Interface(), c.escrows, callerEscrows); err != nil {
		_ = transferInto(arg.Interface(), c.escrows, callerEscrows)
		return escrow.Dynamic{}, nil, err
	}

	if step.spent {
		c.state = StateSpent
		c.body = nil
		return step.value, nil, nil
	}
	c.body = step.next
	c.state = StateAwaiting
	return step.value, c, nil
}

// Publication is one contract a Body handed to NewContract: the new
// contract, the set of ShortContractIDs it trusts, and the declared type of
// the backing value it was published with (recorded for the "versions:"
// audit block; see SPEC_FULL.md's Supplemented Features).
type Publication struct {
	Contract    *Contract
	Trusts      []ids.ShortContractID
	BackingType string
}

// OutputWriter accumulates the Publications a call produces, in the
// order NewContract was called.
type OutputWriter struct {
	items []Publication
}

// Append records p.
func (w *OutputWriter) Append(p Publication) {
	w.items = append(w.items, p)
}

// Items returns every Publication recorded so far, in order.
func (w *OutputWriter) Items() []Publication {
	return w.items
}

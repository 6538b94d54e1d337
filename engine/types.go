package engine

import (
	"github.com/therewillbecode/Fae-1/contract"
	"github.com/therewillbecode/Fae-1/escrow"
	"github.com/therewillbecode/Fae-1/ids"
)

// InputArg is either a Literal value or a Trusted reference to an
// earlier input's result (spec.md §4.1).
type InputArg struct {
	literal      *escrow.Dynamic
	trustedIndex *int
}

// Literal builds an InputArg carrying v directly.
func Literal(v escrow.Dynamic) InputArg {
	return InputArg{literal: &v}
}

// Trusted builds an InputArg that forwards the i-th earlier input's
// result, subject to the trust check at dispatch time.
func Trusted(i int) InputArg {
	return InputArg{trustedIndex: &i}
}

// InputItem is one entry of a transaction's ordered inputArgs sequence.
type InputItem struct {
	CID ids.ContractID
	Arg InputArg
}

// Body is the transaction body: a function from the reconstructed input
// tuple to a typed result, running under the liftTX-restricted frame
// (spec.md §4.1, §4.2).
type Body func(inputs []escrow.Dynamic, f *contract.TXFrame) (escrow.Dynamic, error)

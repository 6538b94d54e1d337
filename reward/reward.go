// Package reward implements the reward escrow: the built-in one-shot
// contract minted when a transaction is marked isReward (spec.md §2,
// "Reward escrow", and §4.1 step 2, "Reward injection"). It is the only
// contract an engine mints without user code behind it, the analogue of
// the teacher's asset issuance (protocol/bc/issuance.go): value created
// once, under the engine's own authority, rather than transferred from
// an existing escrow.
package reward

import (
	"github.com/therewillbecode/Fae-1/contract"
	"github.com/therewillbecode/Fae-1/escrow"
	"github.com/therewillbecode/Fae-1/ids"
)

// Token is the value a reward escrow yields when spent. Amount is fixed
// at 1 per mint; spec.md does not specify a reward schedule, so this
// engine mints a flat unit per reward transaction and leaves any
// weighting to the caller-supplied body.
type Token struct {
	Amount uint64
}

// Mint installs a fresh one-shot reward escrow into escrows under an ID
// drawn from src, and returns an EscrowID naming it. The escrow accepts
// any argument (the body calls useEscrow on it with unit) and spends,
// yielding a Token.
func Mint(src *contract.IDSource, escrows map[ids.EntryID]*contract.Contract) escrow.ID[interface{}, Token] {
	entry := src.NextEscrowID()
	c := contract.New(func(f *contract.Frame, arg escrow.Dynamic) (contract.Step, error) {
		return contract.Spend(escrow.NewDynamic(Token{Amount: 1})), nil
	})
	escrows[entry] = c
	return escrow.Direct[interface{}, Token](entry)
}

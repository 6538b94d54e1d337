package engine

import (
	"fmt"

	"github.com/therewillbecode/Fae-1/ids"
)

// ErrBadInput is returned by input dispatch when a resolved slot holds
// no live contract.
type ErrBadInput struct {
	CID ids.ContractID
}

func (e *ErrBadInput) Error() string {
	return fmt.Sprintf("bad input: no live contract at %s", e.CID)
}

// ErrBadChainedInput is returned when a Trusted input arg references an
// earlier input index that does not exist.
type ErrBadChainedInput struct {
	CID   ids.ContractID
	Index int
}

func (e *ErrBadChainedInput) Error() string {
	return fmt.Sprintf("bad chained input at %s: no earlier input %d", e.CID, e.Index)
}

// ErrUntrustedInput is returned when a Trusted input arg's source is not
// in the trust set declared when the current input's contract was
// published.
type ErrUntrustedInput struct {
	CID, Source ids.ContractID
}

func (e *ErrUntrustedInput) Error() string {
	return fmt.Sprintf("untrusted input: %s does not trust %s", e.CID, e.Source)
}

// ErrOpenEscrows is returned by the closure check when the transaction's
// escrow map is non-empty after the body runs.
type ErrOpenEscrows struct {
	Remaining int
}

func (e *ErrOpenEscrows) Error() string {
	return fmt.Sprintf("open escrows: %d escrow(s) left unresolved at transaction end", e.Remaining)
}

// ErrTooManyInputs is returned by input deserialization when more
// results were produced than the body declares.
type ErrTooManyInputs struct {
	Got, Want int
}

func (e *ErrTooManyInputs) Error() string {
	return fmt.Sprintf("too many inputs: got %d, body expects %d", e.Got, e.Want)
}

// ErrNotEnoughInputs is returned by input deserialization when fewer
// results were produced than the body declares.
type ErrNotEnoughInputs struct {
	Got, Want int
}

func (e *ErrNotEnoughInputs) Error() string {
	return fmt.Sprintf("not enough inputs: got %d, body expects %d", e.Got, e.Want)
}

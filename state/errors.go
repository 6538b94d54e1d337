package state

import (
	"fmt"

	"github.com/therewillbecode/Fae-1/ids"
)

// ErrBadTransactionID is returned when a Path descends into a
// TransactionID Storage has no entry for.
type ErrBadTransactionID struct {
	Tx ids.TransactionID
}

func (e *ErrBadTransactionID) Error() string {
	return fmt.Sprintf("no transaction entry at %s", e.Tx)
}

// ErrBadInputID is returned when a Path descends into a ShortContractID
// an entry's inputOutputs has no record for.
type ErrBadInputID struct {
	Tx    ids.TransactionID
	Short ids.ShortContractID
}

func (e *ErrBadInputID) Error() string {
	return fmt.Sprintf("no input record for %s in transaction %s", e.Short, e.Tx)
}

// ErrBadContractID is returned when a Path's output index has no slot --
// neither populated nor previously assigned -- at the level it descends
// to.
type ErrBadContractID struct {
	Index int
}

func (e *ErrBadContractID) Error() string {
	return fmt.Sprintf("no output slot at index %d", e.Index)
}

// ErrInvalidContractID is returned when a ContractID's shape does not
// match the storage level being addressed (e.g. an InputOutput ID
// presented where a TransactionOutput is expected).
type ErrInvalidContractID struct {
	Detail string
}

func (e *ErrInvalidContractID) Error() string {
	return "invalid contract id: " + e.Detail
}

// ErrBadNonce is returned by a nonce-suffixed read whose asserted nonce
// does not match the slot's current nonce.
type ErrBadNonce struct {
	CID              ids.ContractID
	Asserted, Actual uint64
}

func (e *ErrBadNonce) Error() string {
	return fmt.Sprintf("bad nonce at %s: asserted %d, actual %d", e.CID, e.Asserted, e.Actual)
}

// ErrInvalidNonceAt is returned when a nonce assertion is attached to a
// ContractID variant that carries no slot to assert against (e.g.
// JustTransaction).
type ErrInvalidNonceAt struct {
	Detail string
}

func (e *ErrInvalidNonceAt) Error() string {
	return "invalid nonce assertion: " + e.Detail
}

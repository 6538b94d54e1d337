package contract

import (
	"fmt"

	"github.com/therewillbecode/Fae-1/ids"
)

// ErrBadEscrowID is returned by UseEscrow when no escrow is resident
// under the given entry ID.
type ErrBadEscrowID struct {
	Entry ids.EntryID
}

func (e *ErrBadEscrowID) Error() string {
	return fmt.Sprintf("bad escrow id: no escrow resident at %s", e.Entry)
}

// ErrDuplicateEscrow is returned when a value crossing a call boundary
// references the same backing entry more than once.
type ErrDuplicateEscrow struct {
	Entry ids.EntryID
}

func (e *ErrDuplicateEscrow) Error() string {
	return fmt.Sprintf("duplicate escrow reference: %s", e.Entry)
}

// ErrMissingEscrow is returned when a value crossing a call boundary
// references an entry that is not resident in the source escrow map.
type ErrMissingEscrow struct {
	Entry ids.EntryID
}

func (e *ErrMissingEscrow) Error() string {
	return fmt.Sprintf("missing escrow backing: %s", e.Entry)
}

// ErrSpentContract is returned by Invoke when called on a contract whose
// body has already spent.
type ErrSpentContract struct {
	Entry ids.EntryID
}

func (e *ErrSpentContract) Error() string {
	return fmt.Sprintf("contract already spent: %s", e.Entry)
}

// ErrInvalidTransactionOp is named by spec.md §7 for release/spend calls
// inside a transaction body. In this implementation the restriction is
// enforced statically: TXFrame's method set has no Release or Spend, so
// the condition this error names cannot arise through ordinary use. It
// is retained, per spec.md §7's taxonomy, for internal defensive checks
// and for any embedder that reaches into package internals.
type ErrInvalidTransactionOp struct {
	Op string
}

func (e *ErrInvalidTransactionOp) Error() string {
	return fmt.Sprintf("invalid operation in transaction body: %s", e.Op)
}

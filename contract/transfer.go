package contract

import (
	"github.com/therewillbecode/Fae-1/escrow"
	"github.com/therewillbecode/Fae-1/ids"
)

// transferInto moves every escrow referenced (transitively) by value out
// of src and into dst. It fails closed: a reference with no matching
// entry in src is ErrMissingEscrow, and a value referencing the same
// entry twice is ErrDuplicateEscrow, even if that entry exists in src
// (spec.md invariant 6, "escrow conservation"). On any error, src and
// dst are left unmodified.
func transferInto(value interface{}, src, dst map[ids.EntryID]*Contract) error {
	refs, err := escrow.CollectEntries(value)
	if err != nil {
		return err
	}

	seen := make(map[ids.EntryID]bool, len(refs))
	for _, r := range refs {
		if seen[r.Entry] {
			return &ErrDuplicateEscrow{Entry: r.Entry}
		}
		seen[r.Entry] = true
		if _, ok := src[r.Entry]; !ok {
			return &ErrMissingEscrow{Entry: r.Entry}
		}
	}

	for entry := range seen {
		dst[entry] = src[entry]
		delete(src, entry)
	}
	return nil
}

package escrow

import (
	"strings"

	"github.com/therewillbecode/Fae-1/errors"
)

// Locator is a symbolic path of record/constructor names, resolved
// against some destination-scope value to find the unique live escrow
// reference it denotes (spec.md §4.3). It is never itself a resolved
// reference: using a Locator in any operational context fails with
// ErrUnresolvedLocator.
type Locator struct {
	Path []string
}

// String prints a Locator as "EscrowLocator a.b.c", matching spec.md §6.
func (l Locator) String() string {
	return "EscrowLocator " + strings.Join(l.Path, ".")
}

// ParseLocator parses a dot-separated path string into a Locator,
// tolerating whitespace around the dots, per spec.md §6.
func ParseLocator(s string) (Locator, error) {
	parts := strings.Split(s, ".")
	path := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return Locator{}, errors.New("escrow: empty path component in locator")
		}
		path = append(path, p)
	}
	return Locator{Path: path}, nil
}

// ErrUnresolvedLocator is raised whenever a Locator escrow ID reaches an
// operational point (UseEscrow, Transfer, Release, Spend) without having
// first been resolved against its destination-scope container.
type ErrUnresolvedLocator struct {
	Path []string
}

func (e *ErrUnresolvedLocator) Error() string {
	return Locator{Path: e.Path}.String() + ": unresolved escrow locator"
}

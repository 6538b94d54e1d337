package escrow

import (
	"github.com/therewillbecode/Fae-1/errors"
	"github.com/therewillbecode/Fae-1/ids"
)

// ResolveLocator finds the unique EscrowID<A,V> living at path inside
// container and returns it. Zero matches or more than one match fails
// with ErrUnresolvedLocator (spec.md §4.3).
func ResolveLocator[A any, V any](container interface{}, path []string) (ID[A, V], error) {
	var matches []ref
	for _, v := range Traverse(container) {
		if pathsEqual(v.Path, path) {
			matches = append(matches, v.id)
		}
	}
	if len(matches) != 1 {
		return ID[A, V]{}, &ErrUnresolvedLocator{Path: path}
	}
	id, ok := matches[0].(ID[A, V])
	if !ok {
		return ID[A, V]{}, errors.New("escrow: locator target has unexpected escrow type")
	}
	return id, nil
}

func pathsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CollectEntries returns the backing EntryIDs of every resolved (non-
// Locator) EscrowID transitively reachable in v, in traversal order.
// Any unresolved Locator reachable in v causes an error, per spec.md
// invariant 6.
func CollectEntries(v interface{}) ([]EntryRef, error) {
	visits := Traverse(v)
	out := make([]EntryRef, 0, len(visits))
	for _, vis := range visits {
		if path, ok := vis.LocatorPath(); ok {
			return nil, &ErrUnresolvedLocator{Path: path}
		}
		entry, ok := vis.EntryID()
		if !ok {
			continue
		}
		out = append(out, EntryRef{Path: vis.Path, Entry: entry})
	}
	return out, nil
}

// EntryRef names one backing entry found during CollectEntries, together
// with the path at which it was found.
type EntryRef struct {
	Path  []string
	Entry ids.EntryID
}

package escrow

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/therewillbecode/Fae-1/ids"
)

var refType = reflect.TypeOf((*ref)(nil)).Elem()

// Visit is one EscrowID found during a Traverse, together with its
// structural path (spec.md §4.3).
type Visit struct {
	Path []string
	id   ref
}

// PathString joins a Visit's path into the dot-separated form Locator
// uses.
func (v Visit) PathString() string { return strings.Join(v.Path, ".") }

// Kind reports which EscrowID variant was found.
func (v Visit) Kind() Kind { return v.id.Kind() }

// EntryID returns the backing entry, if the visited ID is not a Locator.
func (v Visit) EntryID() (ids.EntryID, bool) { return v.id.entryID() }

// DeferredArg returns the captured argument, if the visited ID is a TXIn.
func (v Visit) DeferredArg() (interface{}, bool) { return v.id.deferredArg() }

// LocatorPath returns the symbolic path, if the visited ID is a Locator.
func (v Visit) LocatorPath() ([]string, bool) { return v.id.locatorPath() }

// Traverse performs a structural walk over v, visiting every EscrowID it
// transitively contains and recording the accumulating path of
// field/index names at which each was found (spec.md §4.3). It is pure
// and total for well-formed values, grounded on the reflective write-walk
// in the teacher's protocol/tx/entry.go (writeForHash/writeForHashReflect).
func Traverse(v interface{}) []Visit {
	if v == nil {
		return nil
	}
	var out []Visit
	walk(reflect.ValueOf(v), nil, &out)
	return out
}

func walk(v reflect.Value, path []string, out *[]Visit) {
	if !v.IsValid() {
		return
	}

	// An EscrowID leaf: for TXIn, traverse the captured argument first
	// (spec.md §4.3's deferred-call binding rule), then present the
	// TXIn/Direct/TXOut/Locator itself.
	if v.Type().Implements(refType) {
		r := v.Interface().(ref)
		if arg, ok := r.deferredArg(); ok {
			walk(reflect.ValueOf(arg), append(append([]string{}, path...), "arg"), out)
		}
		*out = append(*out, Visit{Path: append([]string{}, path...), id: r})
		return
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return
		}
		walk(v.Elem(), path, out)

	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue // unexported field, not part of the declared shape
			}
			walk(v.Field(i), append(append([]string{}, path...), f.Name), out)
		}

	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			walk(v.Index(i), append(append([]string{}, path...), "["+strconv.Itoa(i)+"]"), out)
		}

	case reflect.Map:
		// Map iteration order is randomized by the runtime; sort keys by
		// their formatted text first so traversal order -- and therefore
		// escrow transfer order -- is deterministic (spec.md §5).
		keys := v.MapKeys()
		formatted := make([]string, len(keys))
		for i, k := range keys {
			formatted[i] = formatMapKey(k)
		}
		order := make([]int, len(keys))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool { return formatted[order[i]] < formatted[order[j]] })
		for _, i := range order {
			walk(v.MapIndex(keys[i]), append(append([]string{}, path...), "["+formatted[i]+"]"), out)
		}
	}
	// Other kinds (bool, numeric, string, func, chan) carry no escrows.
}

func formatMapKey(k reflect.Value) string {
	return fmt.Sprintf("%v", k.Interface())
}

// Package sha3pool is a freelist for SHA3-256 hash states.
package sha3pool

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

var pool = &sync.Pool{New: func() interface{} { return sha3.New256() }}

// Get256 returns a reset SHA3-256 hash.Hash from the free list.
// The caller should call Put256 when finished with the returned hash.
func Get256() hash.Hash {
	return pool.Get().(hash.Hash)
}

// Put256 resets h and adds it to the free list.
func Put256(h hash.Hash) {
	h.Reset()
	pool.Put(h)
}

// Package hash provides deterministic, fixed-seed 64-bit hashing for
// cache keys. Recording and querying must use the same seed so a key
// always maps to the same slots inside a bucket.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// DefaultSeed is the seed used by the access tracker for key hashing.
const DefaultSeed uint64 = 314159

// Sum64String hashes key together with seed into a 64-bit value.
func Sum64String(key string, seed uint64) uint64 {
	var d xxhash.Digest
	d.Reset()
	writeSeed(&d, seed)
	_, _ = d.WriteString(key)
	return d.Sum64()
}

// Sum64Bytes hashes key together with seed into a 64-bit value.
// Sum64Bytes(b, s) equals Sum64String(string(b), s).
func Sum64Bytes(key []byte, seed uint64) uint64 {
	var d xxhash.Digest
	d.Reset()
	writeSeed(&d, seed)
	_, _ = d.Write(key)
	return d.Sum64()
}

func writeSeed(d *xxhash.Digest, seed uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	_, _ = d.Write(b[:])
}

// Package runtime exposes low-level scheduler primitives used by the
// spin locks guarding tracker buckets.
package runtime

import (
	_ "unsafe" // for go:linkname
)

// Procyield spins for the given number of cycles without yielding to the
// scheduler. On x86 it issues the CPU PAUSE instruction, which keeps the
// spin cheap relative to an OS-level wait.
//
//go:linkname Procyield runtime.procyield
func Procyield(cycles uint32)

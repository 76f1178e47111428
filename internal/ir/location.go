package ir

import "fmt"

// LocationDescriptor is the frontend-specific identity of a block packed into
// 64 bits. It is comparable, ordered and usable as a map key.
type LocationDescriptor uint64

// Less reports whether l sorts before o.
func (l LocationDescriptor) Less(o LocationDescriptor) bool {
	return l < o
}

// String implements fmt.Stringer.
func (l LocationDescriptor) String() string {
	return fmt.Sprintf("{%016x}", uint64(l))
}

// Package bitutil extracts single bits and bit ranges from instruction words.
package bitutil

// Bit returns true when bit n of word is set. n must be in [0, 31].
func Bit(n uint, word uint32) bool {
	return (word>>n)&1 == 1
}

// Bits extracts the inclusive bit range [hi:lo] of word, shifted down to bit 0.
func Bits(hi, lo uint, word uint32) uint32 {
	if hi < lo || hi > 31 {
		panic("BUG: invalid bit range")
	}
	width := hi - lo + 1
	if width == 32 {
		return word
	}
	return (word >> lo) & (1<<width - 1)
}

// Ones returns a value with the lowest n bits set.
func Ones(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return 1<<n - 1
}

// SignExtend sign-extends the lowest `from` bits of v to 64 bits.
func SignExtend(from uint, v uint64) int64 {
	shift := 64 - from
	return int64(v<<shift) >> shift
}

// BoolToU32 returns 1 for true and 0 for false.
func BoolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

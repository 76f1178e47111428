package decoder

// ThumbToARM converts a 32-bit Thumb ASIMD data processing word, first
// halfword in the high bits, into the equivalent A32 word. The Thumb form
// 111U1111 in the top byte becomes 1111001U. ok is false for any other word.
func ThumbToARM(word uint32) (arm uint32, ok bool) {
	if word&0xef00_0000 != 0xef00_0000 {
		return 0, false
	}
	u := (word >> 28) & 1
	return 0xf200_0000 | u<<24 | word&0x00ff_ffff, true
}

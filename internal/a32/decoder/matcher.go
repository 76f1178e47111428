package decoder

import (
	"fmt"
	"math/bits"
	"sort"
)

// matcher recognises one encoding: a word w matches when w&mask == expect.
type matcher struct {
	tag          Tag
	mask, expect uint32
}

// newMatcher parses a 32 character bit pattern, most significant bit first.
// '0' and '1' are fixed bits and every other character is a field bit the
// matcher ignores.
func newMatcher(tag Tag, pattern string) matcher {
	if len(pattern) != 32 {
		panic(fmt.Sprintf("BUG: pattern for %s must have 32 bits but has %d", tag, len(pattern)))
	}
	m := matcher{tag: tag}
	for i := 0; i < 32; i++ {
		bit := uint32(1) << (31 - i)
		switch pattern[i] {
		case '0':
			m.mask |= bit
		case '1':
			m.mask |= bit
			m.expect |= bit
		}
	}
	return m
}

func (m *matcher) matches(word uint32) bool {
	return word&m.mask == m.expect
}

// sortMatchers orders ms so that the matcher with the most fixed bits is
// tried first. Ties keep their table order.
func sortMatchers(ms []matcher) {
	sort.SliceStable(ms, func(i, j int) bool {
		return bits.OnesCount32(ms[i].mask) > bits.OnesCount32(ms[j].mask)
	})
}

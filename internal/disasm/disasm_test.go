package disasm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a32ir/a32ir/internal/a32/decoder"
)

func TestWord(t *testing.T) {
	for _, tc := range []struct {
		word uint32
		exp  string
	}{
		{word: 0xf2010802, exp: "vadd.i8 d0, d1, d2"},
		{word: 0xf3120044, exp: "vhadd.u16 q0, q1, q2"},
		{word: 0xf2010112, exp: "vand d0, d1, d2"},
		{word: 0xf3110112, exp: "vbsl d0, d1, d2"},
		{word: 0xf3010902, exp: "vmls.i8 d0, d1, d2"},
		{word: 0xf3010912, exp: "vmul.p8 d0, d1, d2"},
		{word: 0xf2010d02, exp: "vadd.f32 d0, d1, d2"},
		{word: 0xf2010f12, exp: "vrecps.f32 d0, d1, d2"},
		{word: 0xf2010041, exp: "vhadd.s8 q0, q<d1>, q<d1>"},
	} {
		require.Equal(t, tc.exp, Word(tc.word), "%#x", tc.word)
	}
}

func TestWord_fallback(t *testing.T) {
	got := Word(0xe0810002)
	require.Contains(t, got, "add")
	require.Contains(t, got, "r2")
}

func TestASIMD_highRegisters(t *testing.T) {
	f := decoder.Fields{D: true, Vd: 1, N: true, Vn: 2, M: true, Vm: 3, Op: true, U: true, Sz: 2}
	require.Equal(t, "vmin.u32 d17, d18, d19", ASIMD(decoder.TagVMAX, f))
	f.Q, f.Vd, f.Vn, f.Vm = true, 0, 2, 4
	require.Equal(t, "vmin.u32 q8, q9, q10", ASIMD(decoder.TagVMAX, f))
	require.Equal(t, "invalid", ASIMD(decoder.TagInvalid, f))
}

func TestForms(t *testing.T) {
	for _, tag := range decoder.Tags() {
		_, ok := forms[tag]
		require.True(t, ok, tag.String())
	}
}

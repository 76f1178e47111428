package translate

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/a32ir/a32ir/internal/a32"
	"github.com/a32ir/a32ir/internal/a32/decoder"
	"github.com/a32ir/a32ir/internal/interpreter"
	"github.com/a32ir/a32ir/internal/ir"
)

func newTestTranslator() *Translator {
	tr := NewTranslator(Options{})
	tr.Reset(a32.LocationDescriptor{})
	return tr
}

// validFields returns operands every handler of tag accepts.
func validFields(tag decoder.Tag) decoder.Fields {
	f := decoder.Fields{Vd: 0, Vn: 2, Vm: 4}
	if tag == decoder.TagVQDMULH || tag == decoder.TagVQRDMULH {
		f.Sz = 0b01
	}
	return f
}

func TestTranslateASIMD_accepted(t *testing.T) {
	for _, tag := range decoder.Tags() {
		t.Run(tag.String(), func(t *testing.T) {
			tr := newTestTranslator()
			require.True(t, tr.TranslateASIMD(tag, validFields(tag)))

			b := tr.Block()
			require.NotZero(t, b.Len())
			last := b.Instruction(b.Len() - 1)
			require.Equal(t, ir.OpcodeA32SetVector, last.Opcode())
			require.Equal(t, a32.D(0), last.ExtReg())
		})
	}
}

func TestTranslateASIMD_misalignedQuad(t *testing.T) {
	for _, tag := range decoder.Tags() {
		for _, f := range []decoder.Fields{
			{Q: true, Vd: 1, Vn: 2, Vm: 4},
			{Q: true, Vd: 0, Vn: 3, Vm: 4},
			{Q: true, Vd: 0, Vn: 2, Vm: 5},
		} {
			f.Sz = validFields(tag).Sz
			tr := newTestTranslator()
			require.False(t, tr.TranslateASIMD(tag, f), tag.String())
			require.Zero(t, tr.Block().Len(), tag.String())
			require.Equal(t, a32.ExceptionUndefinedInstruction, tr.Exception())
		}
	}
}

func TestTranslateASIMD_quad(t *testing.T) {
	doublewordOnly := map[decoder.Tag]bool{
		decoder.TagVPMAX:      true,
		decoder.TagVPADD:      true,
		decoder.TagVPMAXFloat: true,
		decoder.TagVPMINFloat: true,
	}
	for _, tag := range decoder.Tags() {
		f := validFields(tag)
		f.Q, f.D = true, true
		tr := newTestTranslator()
		require.Equal(t, !doublewordOnly[tag], tr.TranslateASIMD(tag, f), tag.String())
		if doublewordOnly[tag] {
			require.Zero(t, tr.Block().Len(), tag.String())
			continue
		}
		b := tr.Block()
		require.Equal(t, a32.Q(8), b.Instruction(b.Len()-1).ExtReg(), tag.String())
	}
}

func TestTranslateASIMD_size64(t *testing.T) {
	accepts := map[decoder.Tag]bool{
		decoder.TagVADD:   true,
		decoder.TagVSUB:   true,
		decoder.TagVSHL:   true,
		decoder.TagVQSHL:  true,
		decoder.TagVRSHL:  true,
		decoder.TagVQRSHL: true,
	}
	for _, tag := range []decoder.Tag{
		decoder.TagVHADD, decoder.TagVQADD, decoder.TagVRHADD, decoder.TagVHSUB, decoder.TagVQSUB,
		decoder.TagVCGT, decoder.TagVCGE, decoder.TagVSHL, decoder.TagVQSHL, decoder.TagVRSHL,
		decoder.TagVQRSHL, decoder.TagVMAX, decoder.TagVABD, decoder.TagVABA, decoder.TagVADD,
		decoder.TagVTST, decoder.TagVSUB, decoder.TagVCEQ, decoder.TagVMLA, decoder.TagVMUL,
		decoder.TagVPMAX, decoder.TagVQDMULH, decoder.TagVQRDMULH, decoder.TagVPADD,
	} {
		f := validFields(tag)
		f.Sz = 0b11
		tr := newTestTranslator()
		ok := tr.TranslateASIMD(tag, f)
		require.Equal(t, accepts[tag], ok, tag.String())
		if !ok {
			require.Zero(t, tr.Block().Len(), tag.String())
			continue
		}
		for i := 0; i < tr.Block().Len(); i++ {
			if instr := tr.Block().Instruction(i); instr.Opcode().LaneSized() {
				require.Equal(t, 64, instr.ESize(), tag.String())
			}
		}
	}
}

func TestTranslateASIMD_sizeRules(t *testing.T) {
	for _, tc := range []struct {
		name string
		tag  decoder.Tag
		f    decoder.Fields
		ok   bool
	}{
		{name: "vqdmulh.8", tag: decoder.TagVQDMULH, f: decoder.Fields{Sz: 0b00}},
		{name: "vqdmulh.32", tag: decoder.TagVQDMULH, f: decoder.Fields{Sz: 0b10}, ok: true},
		{name: "vqrdmulh.8", tag: decoder.TagVQRDMULH, f: decoder.Fields{Sz: 0b00}},
		{name: "vmul.p16", tag: decoder.TagVMUL, f: decoder.Fields{U: true, Sz: 0b01}},
		{name: "vmul.p8", tag: decoder.TagVMUL, f: decoder.Fields{U: true}, ok: true},
		{name: "vmul.i16", tag: decoder.TagVMUL, f: decoder.Fields{Sz: 0b01}, ok: true},
		{name: "vadd.f16", tag: decoder.TagVADDFloat, f: decoder.Fields{Sz: 0b01}},
		{name: "vsub.f32", tag: decoder.TagVSUBFloat, f: decoder.Fields{Sz: 0b10}, ok: true},
		{name: "vceq.f16", tag: decoder.TagVCEQFloat, f: decoder.Fields{Sz: 0b01}},
		{name: "vacgt.f16", tag: decoder.TagVACGT, f: decoder.Fields{Sz: 0b11}},
		{name: "vrecps.f16", tag: decoder.TagVRECPS, f: decoder.Fields{Sz: 0b01}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tr := newTestTranslator()
			require.Equal(t, tc.ok, tr.TranslateASIMD(tc.tag, tc.f))
			if !tc.ok {
				require.Zero(t, tr.Block().Len())
			}
		})
	}
}

func TestTranslateASIMD_invalidTag(t *testing.T) {
	tr := newTestTranslator()
	require.False(t, tr.TranslateASIMD(decoder.TagInvalid, decoder.Fields{}))
	require.Zero(t, tr.Block().Len())
}

// formatWord translates word and returns the instruction lines.
func formatWord(t *testing.T, word uint32) []string {
	tr := newTestTranslator()
	require.True(t, tr.TranslateWord(0, word, false))
	var ret []string
	for i := 0; i < tr.Block().Len(); i++ {
		ret = append(ret, tr.Block().Instruction(i).Format())
	}
	return ret
}

func TestTranslateWord_emission(t *testing.T) {
	for _, tc := range []struct {
		name string
		word uint32
		exp  []string
	}{
		{
			name: "vsub.i8 d0, d1, d2",
			word: 0xf3010802,
			exp: []string{
				"v0:u128 = A32GetVector d2",
				"v1:u128 = A32GetVector d1",
				"v2:u128 = VectorSub.8 v1, v0",
				"A32SetVector d0, v2",
			},
		},
		{
			name: "vshl.s8 d0, d2, d1",
			word: 0xf2010402,
			exp: []string{
				"v0:u128 = A32GetVector d2",
				"v1:u128 = A32GetVector d1",
				"v2:u128 = VectorArithmeticVShift.8 v0, v1",
				"A32SetVector d0, v2",
			},
		},
		{
			name: "vmls.i8 d0, d1, d2",
			word: 0xf3010902,
			exp: []string{
				"v0:u128 = A32GetVector d1",
				"v1:u128 = A32GetVector d2",
				"v2:u128 = A32GetVector d0",
				"v3:u128 = VectorMultiply.8 v1, v0",
				"v4:u128 = VectorSub.8 v2, v3",
				"A32SetVector d0, v4",
			},
		},
		{
			name: "vaba.u8 d0, d1, d2",
			word: 0xf3010712,
			exp: []string{
				"v0:u128 = A32GetVector d1",
				"v1:u128 = A32GetVector d2",
				"v2:u128 = A32GetVector d0",
				"v3:u128 = VectorUnsignedAbsoluteDifference.8 v0, v1",
				"v4:u128 = VectorAdd.8 v2, v3",
				"A32SetVector d0, v4",
			},
		},
		{
			name: "vbsl d0, d1, d2",
			word: 0xf3110112,
			exp: []string{
				"v0:u128 = A32GetVector d0",
				"v1:u128 = A32GetVector d2",
				"v2:u128 = A32GetVector d1",
				"v3:u128 = VectorAnd v2, v0",
				"v4:u128 = VectorNot v0",
				"v5:u128 = VectorAnd v1, v4",
				"v6:u128 = VectorOr v3, v5",
				"A32SetVector d0, v6",
			},
		},
		{
			name: "vfms.f32 d0, d1, d2",
			word: 0xf2210c12,
			exp: []string{
				"v0:u128 = A32GetVector d0",
				"v1:u128 = A32GetVector d1",
				"v2:u128 = A32GetVector d2",
				"v3:u128 = FPVectorNeg.32 v1",
				"v4:u128 = FPVectorMulAdd.32 v0, v3, v2",
				"A32SetVector d0, v4",
			},
		},
		{
			name: "vacgt.f32 d0, d1, d2",
			word: 0xf3210e12,
			exp: []string{
				"v0:u128 = A32GetVector d1",
				"v1:u128 = A32GetVector d2",
				"v2:u128 = FPVectorAbs.32 v0",
				"v3:u128 = FPVectorAbs.32 v1",
				"v4:u128 = FPVectorGreater.32 v2, v3",
				"A32SetVector d0, v4",
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.exp, formatWord(t, tc.word)); diff != "" {
				t.Errorf("unexpected IR (-want +got):\n%s", diff)
			}
		})
	}
}

// run translates word and evaluates it against s.
func run(t *testing.T, word uint32, s *interpreter.State) {
	tr := newTestTranslator()
	require.True(t, tr.TranslateWord(0, word, false))
	exit := interpreter.Eval(tr.Block(), s)
	require.False(t, exit.Raised)
}

func TestTranslateWord_vbsl(t *testing.T) {
	const n, m = 0x0123_4567_89ab_cdef, 0xfedc_ba98_7654_3210
	for _, tc := range []struct {
		mask, exp uint64
	}{
		{mask: math.MaxUint64, exp: n},
		{mask: 0, exp: m},
		{mask: 0xffff_ffff_0000_0000, exp: 0x0123_4567_7654_3210},
	} {
		s := interpreter.State{}
		s.D[0], s.D[1], s.D[2] = tc.mask, n, m
		run(t, 0xf3110112, &s) // vbsl d0, d1, d2
		require.Equal(t, tc.exp, s.D[0])
	}
}

func TestTranslateWord_vtst(t *testing.T) {
	s := interpreter.State{}
	s.D[1] = 0x0100_8000_0000_00ff
	run(t, 0xf2010811, &s) // vtst.8 d0, d1, d1
	require.Equal(t, uint64(0xff00_ff00_0000_00ff), s.D[0])
}

func TestTranslateWord_vhaddQuad(t *testing.T) {
	s := interpreter.State{}
	s.SetQ(11, 0x0001_0003_7fff_fffe, 0x8000_8000_ffff_0000)
	s.SetQ(10, 0x0001_0002_7fff_ffff, 0x8000_7fff_0001_ffff)
	run(t, 0xf35600e4, &s) // vhadd.u16 q8, q11, q10
	lo, hi := s.Q(8)
	require.Equal(t, uint64(0x0001_0002_7fff_fffe), lo)
	require.Equal(t, uint64(0x8000_7fff_8000_7fff), hi)
}

func TestTranslateWord_vqdmulh(t *testing.T) {
	s := interpreter.State{}
	s.D[1] = 0x8000_8000_4000_0001
	s.D[2] = 0x8000_7fff_4000_4000
	run(t, 0xf2110b02, &s) // vqdmulh.s16 d0, d1, d2
	require.Equal(t, uint64(0x7fff_8001_2000_0000), s.D[0])
}

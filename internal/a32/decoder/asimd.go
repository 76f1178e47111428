// Package decoder maps raw A32 words of the ASIMD "three registers of the
// same length" class to a closed set of handler tags.
package decoder

import "github.com/a32ir/a32ir/internal/bitutil"

// Tag identifies the handler for a decoded encoding.
type Tag uint16

const (
	TagInvalid Tag = iota

	TagVHADD
	TagVQADD
	TagVRHADD
	TagVAND
	TagVBIC
	TagVORR
	TagVORN
	TagVEOR
	TagVBSL
	TagVBIT
	TagVBIF
	TagVHSUB
	TagVQSUB
	TagVCGT
	TagVCGE
	TagVSHL
	TagVQSHL
	TagVRSHL
	TagVQRSHL
	// TagVMAX covers VMAX and VMIN; Fields.Op selects VMIN.
	TagVMAX
	TagVABD
	TagVABA
	TagVADD
	TagVTST
	TagVSUB
	TagVCEQ
	// TagVMLA covers VMLA and VMLS; Fields.U selects VMLS.
	TagVMLA
	// TagVMUL covers the integer and polynomial forms; Fields.U is the P bit.
	TagVMUL
	// TagVPMAX covers integer VPMAX and VPMIN; Fields.Op selects VPMIN.
	TagVPMAX
	TagVQDMULH
	TagVQRDMULH
	TagVPADD
	TagVFMA
	TagVFMS
	TagVADDFloat
	TagVSUBFloat
	TagVPADDFloat
	TagVABDFloat
	TagVMLAFloat
	TagVMLSFloat
	TagVMULFloat
	TagVCEQFloat
	TagVCGEFloat
	TagVCGTFloat
	TagVACGE
	TagVACGT
	TagVMAXFloat
	TagVMINFloat
	TagVPMAXFloat
	TagVPMINFloat
	TagVRECPS
	TagVRSQRTS

	tagEnd
)

var tagNames = [tagEnd]string{
	TagInvalid:    "invalid",
	TagVHADD:      "VHADD",
	TagVQADD:      "VQADD",
	TagVRHADD:     "VRHADD",
	TagVAND:       "VAND_reg",
	TagVBIC:       "VBIC_reg",
	TagVORR:       "VORR_reg",
	TagVORN:       "VORN_reg",
	TagVEOR:       "VEOR_reg",
	TagVBSL:       "VBSL",
	TagVBIT:       "VBIT",
	TagVBIF:       "VBIF",
	TagVHSUB:      "VHSUB",
	TagVQSUB:      "VQSUB",
	TagVCGT:       "VCGT_reg",
	TagVCGE:       "VCGE_reg",
	TagVSHL:       "VSHL_reg",
	TagVQSHL:      "VQSHL_reg",
	TagVRSHL:      "VRSHL",
	TagVQRSHL:     "VQRSHL",
	TagVMAX:       "VMAX",
	TagVABD:       "VABD",
	TagVABA:       "VABA",
	TagVADD:       "VADD_int",
	TagVTST:       "VTST",
	TagVSUB:       "VSUB_int",
	TagVCEQ:       "VCEQ_reg",
	TagVMLA:       "VMLA",
	TagVMUL:       "VMUL",
	TagVPMAX:      "VPMAX_int",
	TagVQDMULH:    "VQDMULH",
	TagVQRDMULH:   "VQRDMULH",
	TagVPADD:      "VPADD",
	TagVFMA:       "VFMA",
	TagVFMS:       "VFMS",
	TagVADDFloat:  "VADD_float",
	TagVSUBFloat:  "VSUB_float",
	TagVPADDFloat: "VPADD_float",
	TagVABDFloat:  "VABD_float",
	TagVMLAFloat:  "VMLA_float",
	TagVMLSFloat:  "VMLS_float",
	TagVMULFloat:  "VMUL_float",
	TagVCEQFloat:  "VCEQ_reg_float",
	TagVCGEFloat:  "VCGE_reg_float",
	TagVCGTFloat:  "VCGT_reg_float",
	TagVACGE:      "VACGE",
	TagVACGT:      "VACGT",
	TagVMAXFloat:  "VMAX_float",
	TagVMINFloat:  "VMIN_float",
	TagVPMAXFloat: "VPMAX_float",
	TagVPMINFloat: "VPMIN_float",
	TagVRECPS:     "VRECPS",
	TagVRSQRTS:    "VRSQRTS",
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	if t >= tagEnd {
		return "invalid"
	}
	return tagNames[t]
}

// Tags returns every valid Tag in declaration order.
func Tags() []Tag {
	ret := make([]Tag, 0, tagEnd-1)
	for t := TagInvalid + 1; t < tagEnd; t++ {
		ret = append(ret, t)
	}
	return ret
}

// Fields are the operand fields shared by every encoding of the class.
type Fields struct {
	// U is bit 24. Some encodings use it as the op or P bit.
	U bool
	D bool
	// Sz is bits 21:20. Floating point encodings only use its low bit.
	Sz uint32
	Vn uint32
	Vd uint32
	N  bool
	Q  bool
	M  bool
	// Op is bit 4.
	Op bool
	Vm uint32
}

// ExtractFields reads the operand fields of word.
func ExtractFields(word uint32) Fields {
	return Fields{
		U:  bitutil.Bit(24, word),
		D:  bitutil.Bit(22, word),
		Sz: bitutil.Bits(21, 20, word),
		Vn: bitutil.Bits(19, 16, word),
		Vd: bitutil.Bits(15, 12, word),
		N:  bitutil.Bit(7, word),
		Q:  bitutil.Bit(6, word),
		M:  bitutil.Bit(5, word),
		Op: bitutil.Bit(4, word),
		Vm: bitutil.Bits(3, 0, word),
	}
}

// FloatSz returns the single bit size field of floating point encodings.
func (f Fields) FloatSz() bool {
	return f.Sz&1 == 1
}

var asimdTable = func() []matcher {
	ms := []matcher{
		newMatcher(TagVHADD, "1111001U0Dzznnnndddd0000NQM0mmmm"),
		newMatcher(TagVQADD, "1111001U0Dzznnnndddd0000NQM1mmmm"),
		newMatcher(TagVRHADD, "1111001U0Dzznnnndddd0001NQM0mmmm"),
		newMatcher(TagVAND, "111100100D00nnnndddd0001NQM1mmmm"),
		newMatcher(TagVBIC, "111100100D01nnnndddd0001NQM1mmmm"),
		newMatcher(TagVORR, "111100100D10nnnndddd0001NQM1mmmm"),
		newMatcher(TagVORN, "111100100D11nnnndddd0001NQM1mmmm"),
		newMatcher(TagVEOR, "111100110D00nnnndddd0001NQM1mmmm"),
		newMatcher(TagVBSL, "111100110D01nnnndddd0001NQM1mmmm"),
		newMatcher(TagVBIT, "111100110D10nnnndddd0001NQM1mmmm"),
		newMatcher(TagVBIF, "111100110D11nnnndddd0001NQM1mmmm"),
		newMatcher(TagVHSUB, "1111001U0Dzznnnndddd0010NQM0mmmm"),
		newMatcher(TagVQSUB, "1111001U0Dzznnnndddd0010NQM1mmmm"),
		newMatcher(TagVCGT, "1111001U0Dzznnnndddd0011NQM0mmmm"),
		newMatcher(TagVCGE, "1111001U0Dzznnnndddd0011NQM1mmmm"),
		newMatcher(TagVSHL, "1111001U0Dzznnnndddd0100NQM0mmmm"),
		newMatcher(TagVQSHL, "1111001U0Dzznnnndddd0100NQM1mmmm"),
		newMatcher(TagVRSHL, "1111001U0Dzznnnndddd0101NQM0mmmm"),
		newMatcher(TagVQRSHL, "1111001U0Dzznnnndddd0101NQM1mmmm"),
		newMatcher(TagVMAX, "1111001U0Dzznnnndddd0110NQMommmm"),
		newMatcher(TagVABD, "1111001U0Dzznnnndddd0111NQM0mmmm"),
		newMatcher(TagVABA, "1111001U0Dzznnnndddd0111NQM1mmmm"),
		newMatcher(TagVADD, "111100100Dzznnnndddd1000NQM0mmmm"),
		newMatcher(TagVTST, "111100100Dzznnnndddd1000NQM1mmmm"),
		newMatcher(TagVSUB, "111100110Dzznnnndddd1000NQM0mmmm"),
		newMatcher(TagVCEQ, "111100110Dzznnnndddd1000NQM1mmmm"),
		newMatcher(TagVMLA, "1111001o0Dzznnnndddd1001NQM0mmmm"),
		newMatcher(TagVMUL, "1111001P0Dzznnnndddd1001NQM1mmmm"),
		newMatcher(TagVPMAX, "1111001U0Dzznnnndddd1010NQMommmm"),
		newMatcher(TagVQDMULH, "111100100Dzznnnndddd1011NQM0mmmm"),
		newMatcher(TagVQRDMULH, "111100110Dzznnnndddd1011NQM0mmmm"),
		newMatcher(TagVPADD, "111100100Dzznnnndddd1011NQM1mmmm"),
		newMatcher(TagVFMA, "111100100D0znnnndddd1100NQM1mmmm"),
		newMatcher(TagVFMS, "111100100D1znnnndddd1100NQM1mmmm"),
		newMatcher(TagVADDFloat, "111100100D0znnnndddd1101NQM0mmmm"),
		newMatcher(TagVSUBFloat, "111100100D1znnnndddd1101NQM0mmmm"),
		newMatcher(TagVPADDFloat, "111100110D0znnnndddd1101NQM0mmmm"),
		newMatcher(TagVABDFloat, "111100110D1znnnndddd1101NQM0mmmm"),
		newMatcher(TagVMLAFloat, "111100100D0znnnndddd1101NQM1mmmm"),
		newMatcher(TagVMLSFloat, "111100100D1znnnndddd1101NQM1mmmm"),
		newMatcher(TagVMULFloat, "111100110D0znnnndddd1101NQM1mmmm"),
		newMatcher(TagVCEQFloat, "111100100D0znnnndddd1110NQM0mmmm"),
		newMatcher(TagVCGEFloat, "111100110D0znnnndddd1110NQM0mmmm"),
		newMatcher(TagVCGTFloat, "111100110D1znnnndddd1110NQM0mmmm"),
		newMatcher(TagVACGE, "111100110D0znnnndddd1110NQM1mmmm"),
		newMatcher(TagVACGT, "111100110D1znnnndddd1110NQM1mmmm"),
		newMatcher(TagVMAXFloat, "111100100D0znnnndddd1111NQM0mmmm"),
		newMatcher(TagVMINFloat, "111100100D1znnnndddd1111NQM0mmmm"),
		newMatcher(TagVPMAXFloat, "111100110D0znnnndddd1111NQM0mmmm"),
		newMatcher(TagVPMINFloat, "111100110D1znnnndddd1111NQM0mmmm"),
		newMatcher(TagVRECPS, "111100100D0znnnndddd1111NQM1mmmm"),
		newMatcher(TagVRSQRTS, "111100100D1znnnndddd1111NQM1mmmm"),
	}
	sortMatchers(ms)
	return ms
}()

// DecodeASIMD looks word up in the decode table. ok is false when word is not
// an encoding of the class.
func DecodeASIMD(word uint32) (tag Tag, fields Fields, ok bool) {
	for i := range asimdTable {
		if m := &asimdTable[i]; m.matches(word) {
			return m.tag, ExtractFields(word), true
		}
	}
	return TagInvalid, Fields{}, false
}

// Package disasm renders A32 words as assembly text for logs and the CLI.
// Words of the ASIMD three-same class are named from the decode table. Every
// other word is handed to golang.org/x/arch.
package disasm

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/arch/arm/armasm"

	"github.com/a32ir/a32ir/internal/a32/decoder"
	"github.com/a32ir/a32ir/internal/bitutil"
)

type suffix byte

const (
	suffixNone suffix = iota
	// suffixSigned is .s<esize> or .u<esize> depending on U.
	suffixSigned
	suffixInteger
	suffixUntyped
	suffixPolyOrInteger
	suffixSignedOnly
	suffixFloat
)

type form struct {
	mnemonic, alt string
	suffix        suffix
	// altBit selects alt.
	altBit func(decoder.Fields) bool
}

func byOp(f decoder.Fields) bool { return f.Op }
func byU(f decoder.Fields) bool  { return f.U }

var forms = map[decoder.Tag]form{
	decoder.TagVHADD:       {mnemonic: "vhadd", suffix: suffixSigned},
	decoder.TagVQADD:       {mnemonic: "vqadd", suffix: suffixSigned},
	decoder.TagVRHADD:      {mnemonic: "vrhadd", suffix: suffixSigned},
	decoder.TagVAND:        {mnemonic: "vand"},
	decoder.TagVBIC:        {mnemonic: "vbic"},
	decoder.TagVORR:        {mnemonic: "vorr"},
	decoder.TagVORN:        {mnemonic: "vorn"},
	decoder.TagVEOR:        {mnemonic: "veor"},
	decoder.TagVBSL:        {mnemonic: "vbsl"},
	decoder.TagVBIT:        {mnemonic: "vbit"},
	decoder.TagVBIF:        {mnemonic: "vbif"},
	decoder.TagVHSUB:       {mnemonic: "vhsub", suffix: suffixSigned},
	decoder.TagVQSUB:       {mnemonic: "vqsub", suffix: suffixSigned},
	decoder.TagVCGT:        {mnemonic: "vcgt", suffix: suffixSigned},
	decoder.TagVCGE:        {mnemonic: "vcge", suffix: suffixSigned},
	decoder.TagVSHL:        {mnemonic: "vshl", suffix: suffixSigned},
	decoder.TagVQSHL:       {mnemonic: "vqshl", suffix: suffixSigned},
	decoder.TagVRSHL:       {mnemonic: "vrshl", suffix: suffixSigned},
	decoder.TagVQRSHL:      {mnemonic: "vqrshl", suffix: suffixSigned},
	decoder.TagVMAX:        {mnemonic: "vmax", alt: "vmin", altBit: byOp, suffix: suffixSigned},
	decoder.TagVABD:        {mnemonic: "vabd", suffix: suffixSigned},
	decoder.TagVABA:        {mnemonic: "vaba", suffix: suffixSigned},
	decoder.TagVADD:        {mnemonic: "vadd", suffix: suffixInteger},
	decoder.TagVTST:        {mnemonic: "vtst", suffix: suffixUntyped},
	decoder.TagVSUB:        {mnemonic: "vsub", suffix: suffixInteger},
	decoder.TagVCEQ:        {mnemonic: "vceq", suffix: suffixInteger},
	decoder.TagVMLA:        {mnemonic: "vmla", alt: "vmls", altBit: byU, suffix: suffixInteger},
	decoder.TagVMUL:        {mnemonic: "vmul", suffix: suffixPolyOrInteger},
	decoder.TagVPMAX:       {mnemonic: "vpmax", alt: "vpmin", altBit: byOp, suffix: suffixSigned},
	decoder.TagVQDMULH:     {mnemonic: "vqdmulh", suffix: suffixSignedOnly},
	decoder.TagVQRDMULH:    {mnemonic: "vqrdmulh", suffix: suffixSignedOnly},
	decoder.TagVPADD:       {mnemonic: "vpadd", suffix: suffixInteger},
	decoder.TagVFMA:        {mnemonic: "vfma", suffix: suffixFloat},
	decoder.TagVFMS:        {mnemonic: "vfms", suffix: suffixFloat},
	decoder.TagVADDFloat:   {mnemonic: "vadd", suffix: suffixFloat},
	decoder.TagVSUBFloat:   {mnemonic: "vsub", suffix: suffixFloat},
	decoder.TagVPADDFloat:  {mnemonic: "vpadd", suffix: suffixFloat},
	decoder.TagVABDFloat:   {mnemonic: "vabd", suffix: suffixFloat},
	decoder.TagVMLAFloat:   {mnemonic: "vmla", suffix: suffixFloat},
	decoder.TagVMLSFloat:   {mnemonic: "vmls", suffix: suffixFloat},
	decoder.TagVMULFloat:   {mnemonic: "vmul", suffix: suffixFloat},
	decoder.TagVCEQFloat:   {mnemonic: "vceq", suffix: suffixFloat},
	decoder.TagVCGEFloat:   {mnemonic: "vcge", suffix: suffixFloat},
	decoder.TagVCGTFloat:   {mnemonic: "vcgt", suffix: suffixFloat},
	decoder.TagVACGE:       {mnemonic: "vacge", suffix: suffixFloat},
	decoder.TagVACGT:       {mnemonic: "vacgt", suffix: suffixFloat},
	decoder.TagVMAXFloat:   {mnemonic: "vmax", suffix: suffixFloat},
	decoder.TagVMINFloat:   {mnemonic: "vmin", suffix: suffixFloat},
	decoder.TagVPMAXFloat:  {mnemonic: "vpmax", suffix: suffixFloat},
	decoder.TagVPMINFloat:  {mnemonic: "vpmin", suffix: suffixFloat},
	decoder.TagVRECPS:      {mnemonic: "vrecps", suffix: suffixFloat},
	decoder.TagVRSQRTS:     {mnemonic: "vrsqrts", suffix: suffixFloat},
}

// ASIMD formats a decoded three-same instruction, e.g. "vadd.i8 d0, d1, d2".
func ASIMD(tag decoder.Tag, f decoder.Fields) string {
	fm, ok := forms[tag]
	if !ok {
		return tag.String()
	}
	mnemonic := fm.mnemonic
	if fm.altBit != nil && fm.altBit(f) {
		mnemonic = fm.alt
	}

	esize := 8 << f.Sz
	switch fm.suffix {
	case suffixSigned:
		if f.U {
			mnemonic += fmt.Sprintf(".u%d", esize)
		} else {
			mnemonic += fmt.Sprintf(".s%d", esize)
		}
	case suffixInteger:
		mnemonic += fmt.Sprintf(".i%d", esize)
	case suffixUntyped:
		mnemonic += fmt.Sprintf(".%d", esize)
	case suffixPolyOrInteger:
		if f.U {
			mnemonic += fmt.Sprintf(".p%d", esize)
		} else {
			mnemonic += fmt.Sprintf(".i%d", esize)
		}
	case suffixSignedOnly:
		mnemonic += fmt.Sprintf(".s%d", esize)
	case suffixFloat:
		if f.FloatSz() {
			mnemonic += ".f16"
		} else {
			mnemonic += ".f32"
		}
	}
	return fmt.Sprintf("%s %s, %s, %s", mnemonic,
		vector(f.Q, f.Vd, f.D), vector(f.Q, f.Vn, f.N), vector(f.Q, f.Vm, f.M))
}

func vector(q bool, base uint32, bit bool) string {
	n := base | bitutil.BoolToU32(bit)<<4
	if q {
		if n&1 != 0 {
			return fmt.Sprintf("q<d%d>", n)
		}
		return fmt.Sprintf("q%d", n>>1)
	}
	return fmt.Sprintf("d%d", n)
}

// Word formats any A32 word. Words armasm cannot decode print as .word.
func Word(word uint32) string {
	if tag, f, ok := decoder.DecodeASIMD(word); ok {
		return ASIMD(tag, f)
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], word)
	inst, err := armasm.Decode(buf[:], armasm.ModeARM)
	if err != nil {
		return fmt.Sprintf(".word %#08x", word)
	}
	return armasm.GNUSyntax(inst)
}

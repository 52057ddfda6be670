package si5351a

// Fractional synthesizer register encoding per Skyworks AN619, "Manually
// Generating an Si5351 Register Map for 10-MSOP and 20-QFN Devices". Both the
// PLL feedback stage and the per-clock multisynth output stage share the same
// P1/P2/P3 encoding of a fractional ratio a + b/c; only the surrounding block
// layout differs.

// SynthSettings holds the AN619 P1/P2/P3 encoding of a fractional divider
// ratio a + b/c.
type SynthSettings struct {
	P1 uint32 // 18-bit integer part field
	P2 uint32 // 20-bit fractional numerator field
	P3 uint32 // 20-bit fractional denominator field
}

// NewSynthSettings converts the fractional ratio a + b/c into its AN619
// register encoding:
//
//	P1 = 128*a + floor(128*b/c) - 512
//	P2 = 128*b - c*floor(128*b/c)
//	P3 = c
//
// The caller is responsible for keeping a, b, c within the chip's parameter
// ranges (see the planner constants); the conversion itself is total.
func NewSynthSettings(a, b, c uint32) SynthSettings {
	f := (128 * b) / c
	return SynthSettings{
		P1: 128*a + f - 512,
		P2: 128*b - c*f,
		P3: c,
	}
}

// Ratio is the inverse of NewSynthSettings: it recovers the integer part a
// exactly and the fractional part b/c to within 1/P3.
func (s SynthSettings) Ratio() (a uint32, frac float64) {
	a = (s.P1 + 512) / 128
	rem := (s.P1 + 512) % 128
	frac = (float64(rem) + float64(s.P2)/float64(s.P3)) / 128
	return a, frac
}

// splitBytes20 splits a 20-bit field into its three register bytes. The chip
// wants them written most-significant first, so index 0 holds the MSB.
func splitBytes20(v uint32) [3]byte {
	return [3]byte{byte(v >> 16), byte(v >> 8), byte(v)}
}

// splitBytes16 splits a 16-bit (or narrower) field into [msb, lsb].
func splitBytes16(v uint32) [2]byte {
	return [2]byte{byte(v >> 8), byte(v)}
}

// PLLBlock packs the settings into the 8-byte register image written at a
// PLL feedback multisynth base address (register 26 for PLL A, 34 for PLL B).
// Byte order is the one the chip's auto-incrementing block write expects:
//
//	[P3_mid, P3_lsb, P1_msb, P1_mid, P1_lsb, (P3_msb<<4)|P2_msb, P2_mid, P2_lsb]
func (s SynthSettings) PLLBlock() [8]byte {
	p1 := splitBytes20(s.P1)
	p2 := splitBytes20(s.P2)
	p3 := splitBytes20(s.P3)
	return [8]byte{
		p3[1], p3[2],
		p1[0], p1[1], p1[2],
		(p3[0] << 4) | p2[0],
		p2[1], p2[2],
	}
}

// MultisynthBlock packs the settings into the 8-byte register image written
// at a clock multisynth base address (registers 42/50/58 for CLK0/1/2). The
// layout matches PLLBlock except that the P1 MSB byte additionally carries
// the 3-bit RDIV code in bits 6:4 and the 2-bit DIVBY4 code in bits 3:2.
func (s SynthSettings) MultisynthBlock(rdiv RDiv, divBy4 bool) [8]byte {
	blk := s.PLLBlock()
	var db4 byte
	if divBy4 {
		db4 = 0b11
	}
	blk[2] |= (rdiv.Code() << 4) | (db4 << 2)
	return blk
}

// RDiv is the power-of-two post-divider applied after the multisynth stage.
type RDiv uint8

// Valid output post-divider values.
const (
	RDiv1   RDiv = 1
	RDiv2   RDiv = 2
	RDiv4   RDiv = 4
	RDiv8   RDiv = 8
	RDiv16  RDiv = 16
	RDiv32  RDiv = 32
	RDiv64  RDiv = 64
	RDiv128 RDiv = 128
)

// Code returns the 3-bit register encoding of the post-divider (log2 of its
// value). Unrecognized dividers encode as 0b000, i.e. divide by 1, which is
// the chip's reset default.
func (r RDiv) Code() byte {
	switch r {
	case RDiv1:
		return 0b000
	case RDiv2:
		return 0b001
	case RDiv4:
		return 0b010
	case RDiv8:
		return 0b011
	case RDiv16:
		return 0b100
	case RDiv32:
		return 0b101
	case RDiv64:
		return 0b110
	case RDiv128:
		return 0b111
	}
	return 0b000
}

// RegisterImage is one block write: an ordered byte sequence tagged with the
// base register address it is written at. Images are ephemeral; they are
// produced by the codecs, written once, and discarded.
type RegisterImage struct {
	Base byte
	Data []byte
}

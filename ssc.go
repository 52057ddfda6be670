package si5351a

import "math"

// SSCMode selects the spread-spectrum profile.
type SSCMode byte

// Spread-spectrum modes. CENTER dithers symmetrically about the carrier,
// DOWN spreads below it only.
const (
	SSCCenter SSCMode = iota
	SSCDown
)

// sscModRateHz is the fixed spread-spectrum modulation rate divisor; the
// resulting modulation frequency is approximately 31.5 kHz.
const sscModRateHz = 31500

// SpreadSpectrumParams holds the inputs of the spread-spectrum register
// derivation. PLLARatio is the integer approximation of the PLL A feedback
// ratio a + b/c; it is used only to scale the modulation depth.
type SpreadSpectrumParams struct {
	Amplitude float64 // peak-to-peak spread fraction, e.g. 0.015 = 1.5%
	Mode      SSCMode
	PLLARatio int
}

// Block derives the fixed 13-byte spread-spectrum register image for
// registers 149-161 from the parameters and the crystal frequency (Hz).
//
// The up- and down-spread field triples follow AN619:
//
//	SSUDP = floor(xtal / (4*31500))
//	SSUP  = 128*ratio*amp / ((1-amp)*SSUDP)    (amp one-sided, i.e. p-p/2)
//	SSDN  = 128*ratio*amp / ((1+amp)*SSUDP)
//
// with P1 = floor(x), P2 = round(32767*(x-P1)), P3 = 32767 for each of SSUP
// and SSDN. In DOWN mode the up-spread triple is instead pinned to P1=0,
// P2=0, P3=1, disabling up-spread entirely; this yields an asymmetric spread
// profile rather than a symmetric zero-amplitude one, and is kept exactly as
// the chip vendor flow produces it. Bit 7 of the SSDN P3 high byte carries
// the mode (1 = CENTER, 0 = DOWN).
func (p SpreadSpectrumParams) Block(xtalHz float64) [13]byte {
	amp := p.Amplitude / 2
	ratio := float64(p.PLLARatio)

	ssudp := math.Floor(xtalHz / (4 * sscModRateHz))
	ssup := 128 * ratio * amp / ((1 - amp) * ssudp)
	ssdn := 128 * ratio * amp / ((1 + amp) * ssudp)

	dnP1 := math.Floor(ssdn)
	dn1 := splitBytes16(uint32(dnP1))
	dn2 := splitBytes16(uint32(math.Round(32767 * (ssdn - dnP1))))
	dn3 := splitBytes16(32767)

	var up1, up2, up3 [2]byte
	if SSCCenter == p.Mode {
		upP1 := math.Floor(ssup)
		up1 = splitBytes16(uint32(upP1))
		up2 = splitBytes16(uint32(math.Round(32767 * (ssup - upP1))))
		up3 = splitBytes16(32767)
		dn3[0] |= 0x80
	} else {
		up1 = splitBytes16(0)
		up2 = splitBytes16(0)
		up3 = splitBytes16(1)
		dn3[0] &= 0x7F
	}

	udp := splitBytes16(uint32(ssudp))

	return [13]byte{
		dn2[0], dn2[1],
		dn3[0], dn3[1],
		dn1[1],
		(udp[0] << 4) | dn1[0],
		udp[1],
		up2[0], up2[1],
		up3[0], up3[1],
		up1[1],
		0x0F & up1[0],
	}
}

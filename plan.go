package si5351a

import (
	"errors"
	"fmt"
	"math"
)

// Hard numeric limits of the synthesis parameters, from the chip datasheet
// and AN619.
const (
	VCOMinMHz = 600 // PLL (VCO) frequency lower bound
	VCOMaxMHz = 900 // PLL (VCO) frequency upper bound

	PLLMultMin = 15 // feedback multiplier integer part a
	PLLMultMax = 90

	FracNumMin = 0 // fractional numerator b
	FracNumMax = 1048575
	FracDenMin = 1 // fractional denominator c
	FracDenMax = 1048575

	// The multisynth divider d is specified down to 3, but is kept at 6 or
	// more here so that the full divide ratio d + b/c stays at 6 or more.
	DividerMin = 6
	DividerMax = 2049

	DivideRatioMin = 6 // valid multisynth divide ratio range
	DivideRatioMax = 1800
)

// rdivTable lists the valid post-divider values in ascending order. Selection
// walks this table and stops at the first divider that lifts the multisynth
// output above 50 MHz.
var rdivTable = [...]RDiv{RDiv1, RDiv2, RDiv4, RDiv8, RDiv16, RDiv32, RDiv64, RDiv128}

// divBy4Frequencies are the output frequencies (MHz) the DIVBY4 branch can
// generate from an even integer multiplier with a 25 MHz class crystal.
// Requests above 150 MHz snap to the nearest of these.
var divBy4Frequencies = [...]float64{150.0, 162.5, 175.0, 187.5, 200.0}

var (
	// ErrNoSolution is returned when no (a, d) parameter pair satisfies the
	// VCO and output constraints for the requested frequency, or when a
	// DIVBY4 snap result falls outside chip limits. It is a soft failure:
	// nothing was written and the caller decides how to report it.
	ErrNoSolution = errors.New("si5351a: no valid synthesis parameters")

	// ErrDivideRatio is returned when the selected multisynth divider falls
	// outside [DivideRatioMin, DivideRatioMax] in non-DIVBY4 mode. Unlike
	// ErrNoSolution this indicates the planner itself produced an
	// out-of-range ratio and aborts the planning call.
	ErrDivideRatio = errors.New("si5351a: multisynth divide ratio out of range")
)

// Crystal describes the reference crystal attached to the chip. It is
// immutable; construct one with NewCrystal.
type Crystal struct {
	Hz  float64
	MHz float64
}

// NewCrystal returns the reference description for a crystal of the given
// frequency in MHz (typically 25 or 27).
func NewCrystal(mhz float64) Crystal {
	return Crystal{Hz: mhz * 1e6, MHz: mhz}
}

// PLLConfig is a resolved feedback multiplier: vco = xtal * (A + B/C).
type PLLConfig struct {
	A           uint32
	B           uint32
	C           uint32
	IntegerMode bool
}

// Ratio returns A + B/C.
func (p PLLConfig) Ratio() float64 {
	return float64(p.A) + float64(p.B)/float64(p.C)
}

// MultisynthConfig is a resolved output divider stage. Under DIVBY4 the
// divider D is fixed at 4 and the fractional stage is bypassed.
type MultisynthConfig struct {
	D      uint32
	RDiv   RDiv
	DivBy4 bool
}

// FrequencyPlan is the complete, chip-valid parameter set for one output
// frequency. Plans are value objects: immutable once produced, free of any
// reference to the transport.
type FrequencyPlan struct {
	Fout           float64 // requested (or DIVBY4-snapped) frequency, MHz
	PLL            PLLConfig
	Multisynth     MultisynthConfig
	VCO            float64 // resulting PLL frequency, MHz
	CalculatedFout float64 // frequency the plan actually generates, MHz
}

// Plan searches for PLL and divider parameters that reproduce fout (MHz) as
// closely as the chip allows.
//
// For fout at or below 150 MHz the planner exhaustively enumerates integer
// multiplier/divider pairs, keeping the pair whose output lands closest at or
// below fout, then refines the remaining error with the PLL fractional stage.
// Above 150 MHz the multisynth runs in DIVBY4 mode and fout snaps to the
// nearest entry of divBy4Frequencies; the returned plan reports the snapped
// frequency, and the caller bears responsibility for checking the resulting
// error against its own tolerance.
//
// When sscEnabled is true the PLL is forced to fractional mode, which spread
// spectrum operation requires.
//
// Plan is a pure function: identical arguments produce identical plans. A
// search that finds no parameters returns ErrNoSolution; a selected divider
// outside the chip's ratio range returns ErrDivideRatio.
func (x Crystal) Plan(fout float64, sscEnabled bool) (FrequencyPlan, error) {

	// smallest post-divider that lifts the multisynth output above 50 MHz;
	// strict comparison, and the largest divider is used when none qualifies
	rdiv := rdivTable[0]
	for _, r := range rdivTable {
		rdiv = r
		if fout*float64(r) > 50 {
			break
		}
	}
	fRDiv := float64(rdiv)

	var (
		a, d   uint32
		found  bool
		divBy4 bool
	)

	if fout <= 150 {

		minDiff := math.Inf(1)
		for ai := uint32(PLLMultMin); ai <= PLLMultMax; ai++ {
			fvco := x.MHz * float64(ai)
			if fvco < VCOMinMHz || fvco > VCOMaxMHz {
				continue
			}
			for di := uint32(DividerMin); di <= DividerMax; di++ {
				cand := fvco / (float64(di) * fRDiv)
				if cand > fout {
					continue
				}
				diff := fout - cand
				// the VCO may sit exactly on the upper bound only for an
				// exact frequency hit
				if diff != 0 && fvco >= VCOMaxMHz {
					continue
				}
				if diff < minDiff {
					minDiff = diff
					a, d = ai, di
					found = true
				}
			}
		}
		if !found {
			return FrequencyPlan{}, fmt.Errorf("%w for %.6f MHz", ErrNoSolution, fout)
		}

	} else {

		// DIVBY4 mode: the multisynth divides by exactly 4 and the output
		// frequency snaps to the nearest stable point
		divBy4 = true
		snapped := divBy4Frequencies[0]
		for _, f := range divBy4Frequencies[1:] {
			if math.Abs(f-fout) < math.Abs(snapped-fout) {
				snapped = f
			}
		}

		targetVCO := snapped * 4 * fRDiv
		ai := int(math.Round(targetVCO / x.MHz))
		if ai%2 != 0 {
			// an odd multiplier is nudged to whichever neighbor lands closer
			lo, hi := ai-1, ai+1
			if math.Abs(float64(lo)*x.MHz/(4*fRDiv)-snapped) <=
				math.Abs(float64(hi)*x.MHz/(4*fRDiv)-snapped) {
				ai = lo
			} else {
				ai = hi
			}
		}
		if ai < PLLMultMin || ai > PLLMultMax {
			return FrequencyPlan{}, fmt.Errorf("%w: DIVBY4 multiplier %d outside [%d, %d]",
				ErrNoSolution, ai, PLLMultMin, PLLMultMax)
		}
		if fvco := x.MHz * float64(ai); fvco < VCOMinMHz || fvco > VCOMaxMHz {
			return FrequencyPlan{}, fmt.Errorf("%w: DIVBY4 VCO %.3f MHz outside [%d, %d] MHz",
				ErrNoSolution, fvco, VCOMinMHz, VCOMaxMHz)
		}

		a, d = uint32(ai), 4
		fout = snapped
	}

	b, c := uint32(0), uint32(1)
	fvco := x.MHz * float64(a)
	cand := fvco / (float64(d) * fRDiv)
	diff := math.Abs(fout - cand)

	if !divBy4 && (d < DivideRatioMin || d > DivideRatioMax) {
		return FrequencyPlan{}, fmt.Errorf("%w: d=%d rdiv=%d", ErrDivideRatio, d, rdiv)
	}

	// The fractional stage can only raise the VCO, so refinement requires an
	// undershoot. The exhaustive search guarantees cand <= fout; a DIVBY4
	// snap does not (the even multiplier may round up past the snap point,
	// e.g. with an off-grid crystal), and such a plan keeps its integer
	// parameters with the overshoot reported in CalculatedFout.
	if diff != 0 && cand < fout {
		// refer the remaining error to the VCO domain and pick the fraction
		// denominator by its magnitude bracket
		dr := float64(d) * fRDiv
		n := (fout*dr - cand*dr) / x.MHz
		switch {
		case n < 1:
			c = 1000000
		case n < 10:
			c = 100000
		case n < 100:
			c = 10000
		default:
			c = 1000
		}
		b = uint32(math.Round(n * float64(c)))
	}

	fvco = x.MHz * (float64(a) + float64(b)/float64(c))
	if fvco > VCOMaxMHz {
		// pull b back so the VCO sits exactly on the upper bound
		maxB := math.Floor((VCOMaxMHz/x.MHz - float64(a)) * float64(c))
		b = uint32(maxB)
		fvco = x.MHz * (float64(a) + float64(b)/float64(c))
	}
	calc := fvco / (float64(d) * fRDiv)

	intMode := false
	if !sscEnabled {
		intMode = b == 0 && a%2 == 0
	}

	return FrequencyPlan{
		Fout:           fout,
		PLL:            PLLConfig{A: a, B: b, C: c, IntegerMode: intMode},
		Multisynth:     MultisynthConfig{D: d, RDiv: rdiv, DivBy4: divBy4},
		VCO:            fvco,
		CalculatedFout: calc,
	}, nil
}

// Package si5351a configures the Skyworks SI5351A fractional-N clock
// generator over a register-oriented bus. It contains the frequency plan
// solver (Crystal.Plan), the AN619 P1/P2/P3 register codec, the
// spread-spectrum parameter derivation, and the device controller that
// sequences register writes through a RegisterTransport.
//
// The physical bus is pluggable: package cp2112 drives the chip through a
// Silicon Labs CP2112 USB-HID-to-SMBus bridge, package i2cbus through a
// native I²C bus. The controller never branches on which backend is active.
//
// Register map: Skyworks AN619 - Manually Generating an Si5351 Register Map.
package si5351a

import (
	"fmt"
	"log"
)

// AddrPrimary and AddrAlternate are the two 7-bit bus addresses SI5351A
// parts ship with.
const (
	AddrPrimary   byte = 0x60
	AddrAlternate byte = 0x61
)

// Register addresses the controller encodes against.
const (
	regStatus        byte = 1   // sticky interrupt status
	regOutputEnable  byte = 3   // per-clock output enable mask (0 = enabled)
	regOEBMask       byte = 9   // per-clock OEB pin enable mask (0 = enabled)
	regPLLSource     byte = 15  // PLL input source selection
	regClockControl  byte = 16  // CLK0 control; CLK1/CLK2 at 17/18
	regPLLAMode      byte = 22  // PLL A integer/fractional mode, bit 6
	regPLLBMode      byte = 23  // PLL B integer/fractional mode, bit 6
	regDisableState  byte = 24  // CLK0-3 disable states; CLK4-7 at 25
	regPLLABase      byte = 26  // PLL A feedback multisynth, 8 bytes
	regPLLBBase      byte = 34  // PLL B feedback multisynth, 8 bytes
	regMultisynth0   byte = 42  // CLK0 multisynth, 8 bytes; CLK1/CLK2 at 50/58
	regSpreadBase    byte = 149 // spread-spectrum block, 13 bytes
	regPhaseOffset   byte = 165 // CLK0 initial phase offset; CLK1-7 follow
	regPLLReset      byte = 177 // PLL soft reset
	regXtalLoad      byte = 183 // crystal internal load capacitance
	regFanout        byte = 187 // fanout enable
)

// ClockCount is the number of output channels the chip exposes. Only the
// first MultisynthCount of them have an addressable multisynth block on the
// 10-MSOP part this package targets.
const (
	ClockCount      = 8
	MultisynthCount = 3
)

// PLL identifies one of the two feedback multiplier stages.
type PLL byte

// The two PLL stages.
const (
	PLLA PLL = iota
	PLLB
)

// modeReg returns the one-byte control register carrying the stage's
// integer/fractional mode bit.
func (p PLL) modeReg() byte {
	if PLLB == p {
		return regPLLBMode
	}
	return regPLLAMode
}

// baseReg returns the base address of the stage's 8-byte feedback block.
func (p PLL) baseReg() byte {
	if PLLB == p {
		return regPLLBBase
	}
	return regPLLABase
}

// sourceBit returns the stage's multisynth source selection bit for a clock
// control register.
func (p PLL) sourceBit() byte {
	if PLLB == p {
		return 1
	}
	return 0
}

// ClockSource selects what a clock output pin actually emits.
type ClockSource byte

// Clock source codes for bits 3:2 of a clock control register.
const (
	SourceXtal  ClockSource = 0b00
	SourceCLKIN ClockSource = 0b01
	SourceCLK0  ClockSource = 0b10
	SourceSynth ClockSource = 0b11
)

// code returns the 2-bit register encoding. Unrecognized sources encode as
// SourceSynth, the default this package always configures.
func (s ClockSource) code() byte {
	if s > SourceSynth {
		return byte(SourceSynth)
	}
	return byte(s)
}

// DriveStrength is the output driver strength in mA.
type DriveStrength byte

// Valid output drive strengths.
const (
	Drive2mA DriveStrength = 2
	Drive4mA DriveStrength = 4
	Drive6mA DriveStrength = 6
	Drive8mA DriveStrength = 8
)

// code returns the 2-bit register encoding. Unrecognized strengths encode as
// 2 mA, the chip's reset default.
func (s DriveStrength) code() byte {
	switch s {
	case Drive4mA:
		return 0b01
	case Drive6mA:
		return 0b10
	case Drive8mA:
		return 0b11
	}
	return 0b00
}

// DisableState is what a clock output drives while disabled.
type DisableState byte

// Disable state codes for the 2-bit fields of registers 24/25.
const (
	DisableLow           DisableState = 0b00
	DisableHigh          DisableState = 0b01
	DisableHighImpedance DisableState = 0b10
	DisableNever         DisableState = 0b11
)

// XtalLoad is the crystal internal load capacitance setting.
type XtalLoad byte

// Valid crystal load capacitance values.
const (
	XtalLoad6pF  XtalLoad = 0b01
	XtalLoad8pF  XtalLoad = 0b10
	XtalLoad10pF XtalLoad = 0b11
)

// ClockControl describes one CLK0-2 control register (16-18).
type ClockControl struct {
	PowerDown     bool
	IntegerMode   bool
	Source        PLL // multisynth source PLL
	Invert        bool
	ClockSource   ClockSource
	DriveStrength DriveStrength
}

// controlByte packs the control fields into their register encoding.
func (c ClockControl) controlByte() byte {
	var b byte
	if c.PowerDown {
		b |= 1 << 7
	}
	if c.IntegerMode {
		b |= 1 << 6
	}
	b |= c.Source.sourceBit() << 5
	if c.Invert {
		b |= 1 << 4
	}
	b |= c.ClockSource.code() << 2
	b |= c.DriveStrength.code()
	return b
}

// DisableStateAssignment pairs one clock channel with its disable state.
type DisableStateAssignment struct {
	Clock uint8
	State DisableState
}

// -----------------------------------------------------------------------------
// -- DEVICE -------------------------------------------------------- [start] --
//

// SI5351A is the primary object used for interacting with the device.
// The struct holds the register transport through which all bus traffic
// flows and the reference crystal description; it carries no other state,
// and the device itself is treated as a stateless register file. Every bit
// not explicitly targeted by an operation is preserved via read-before-
// write, so a shared device handle must be serialized externally around
// each logical operation.
type SI5351A struct {
	Bus   RegisterTransport
	Xtal  Crystal
	Debug bool // log every register access
}

// New returns a device handle bound to the given transport and crystal. No
// bus traffic occurs until Initialize or one of the register operations is
// called.
func New(bus RegisterTransport, xtal Crystal) *SI5351A {
	return &SI5351A{Bus: bus, Xtal: xtal}
}

// valid verifies the receiver and its transport are both not nil.
//
// Returns false with a descriptive error if any required field is nil.
func (dev *SI5351A) valid() (bool, error) {

	if nil == dev {
		return false, fmt.Errorf("nil SI5351A")
	}

	if nil == dev.Bus {
		return false, fmt.Errorf("nil register transport")
	}

	return true, nil
}

// writeReg writes one register, tracing the access in debug mode.
func (dev *SI5351A) writeReg(reg byte, value byte) error {
	if dev.Debug {
		log.Printf("write: reg 0x%02X = 0x%02X", reg, value)
	}
	return dev.Bus.WriteRegister(reg, value)
}

// writeImage writes one register image as a block.
func (dev *SI5351A) writeImage(img RegisterImage) error {
	if dev.Debug {
		log.Printf("write: reg 0x%02X = % 02X", img.Base, img.Data)
	}
	return dev.Bus.WriteBlock(img.Base, img.Data)
}

// readReg reads one register, tracing the access in debug mode.
func (dev *SI5351A) readReg(reg byte) (byte, error) {
	value, err := dev.Bus.ReadRegister(reg)
	if nil == err && dev.Debug {
		log.Printf("read:  reg 0x%02X = 0x%02X", reg, value)
	}
	return value, err
}

// updateReg read-modify-writes one register: the bits selected by mask are
// replaced with value, all other bits are preserved.
func (dev *SI5351A) updateReg(reg byte, mask byte, value byte) error {

	cur, err := dev.readReg(reg)
	if nil != err {
		return fmt.Errorf("readReg(0x%02X): %w", reg, err)
	}

	return dev.writeReg(reg, (cur&^mask)|(value&mask))
}

// Initialize performs the fixed device bring-up sequence, leaving every
// output disabled, both PLLs at a safe 600 MHz integer-mode default (for a
// 25 MHz crystal), all multisynths at a 125 kHz default, spread spectrum
// parameterized but disabled, and the sticky status register cleared.
func (dev *SI5351A) Initialize() error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	if err := dev.DisableAllOutputs(true); nil != err {
		return fmt.Errorf("DisableAllOutputs(): %w", err)
	}

	if err := dev.DisableAllOEBPins(); nil != err {
		return fmt.Errorf("DisableAllOEBPins(): %w", err)
	}

	if err := dev.SetCrystalLoad(XtalLoad8pF); nil != err {
		return fmt.Errorf("SetCrystalLoad(): %w", err)
	}

	// both PLLs to 600 MHz integer mode
	for _, pll := range []PLL{PLLA, PLLB} {
		if err := dev.SetPLL(pll, PLLConfig{A: 24, B: 0, C: 1, IntegerMode: true}); nil != err {
			return fmt.Errorf("SetPLL(%d): %w", pll, err)
		}
	}

	// all three clocks powered, integer mode, 2 mA; CLK0/1 from PLL A,
	// CLK2 from PLL B
	for clk := uint8(0); clk < MultisynthCount; clk++ {
		source := PLLA
		if 2 == clk {
			source = PLLB
		}
		ctl := ClockControl{
			IntegerMode:   true,
			Source:        source,
			ClockSource:   SourceSynth,
			DriveStrength: Drive2mA,
		}
		if err := dev.SetClockControl(clk, ctl); nil != err {
			return fmt.Errorf("SetClockControl(%d): %w", clk, err)
		}
	}

	// all three multisynths to 600/(1200*4) = 125 kHz
	for clk := uint8(0); clk < MultisynthCount; clk++ {
		ms := MultisynthConfig{D: 1200, RDiv: RDiv4}
		if err := dev.SetClockSynth(clk, ms, true); nil != err {
			return fmt.Errorf("SetClockSynth(%d): %w", clk, err)
		}
	}

	if err := dev.PLLReset(); nil != err {
		return fmt.Errorf("PLLReset(): %w", err)
	}

	if err := dev.FanoutEnable(false, false, false); nil != err {
		return fmt.Errorf("FanoutEnable(): %w", err)
	}

	// precompute default spread-spectrum parameters but leave the feature
	// disabled
	ssc := SpreadSpectrumParams{Amplitude: 0.015, Mode: SSCCenter, PLLARatio: 24}
	if err := dev.SetSpreadSpectrum(ssc); nil != err {
		return fmt.Errorf("SetSpreadSpectrum(): %w", err)
	}
	if err := dev.SpreadSpectrumEnable(false); nil != err {
		return fmt.Errorf("SpreadSpectrumEnable(): %w", err)
	}

	states := make([]DisableStateAssignment, ClockCount)
	for clk := range states {
		states[clk] = DisableStateAssignment{Clock: uint8(clk), State: DisableHighImpedance}
	}
	if err := dev.SetDisableStates(states...); nil != err {
		return fmt.Errorf("SetDisableStates(): %w", err)
	}

	for clk := uint8(0); clk < ClockCount; clk++ {
		if err := dev.SetInitialOffset(clk, 0); nil != err {
			return fmt.Errorf("SetInitialOffset(%d): %w", clk, err)
		}
	}

	if err := dev.ClearStatus(); nil != err {
		return fmt.Errorf("ClearStatus(): %w", err)
	}

	return nil
}

// -- DEVICE ---------------------------------------------------------- [end] --
// -----------------------------------------------------------------------------

// -----------------------------------------------------------------------------
// -- SYNTHESIS ----------------------------------------------------- [start] --

// SetPLL programs the feedback multisynth of the given PLL stage with the
// ratio cfg.A + cfg.B/cfg.C and selects integer or fractional mode. The PLL
// input source is pinned to the crystal.
//
// Returns an error if the receiver is invalid or any register operation
// fails.
func (dev *SI5351A) SetPLL(pll PLL, cfg PLLConfig) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	// both PLLs fed from the crystal; this is the register's reset value
	if err := dev.writeReg(regPLLSource, 0x00); nil != err {
		return fmt.Errorf("writeReg(0x%02X): %w", regPLLSource, err)
	}

	var mode byte
	if cfg.IntegerMode {
		mode = 1 << 6
	}
	if err := dev.updateReg(pll.modeReg(), 1<<6, mode); nil != err {
		return fmt.Errorf("updateReg(0x%02X): %w", pll.modeReg(), err)
	}

	blk := NewSynthSettings(cfg.A, cfg.B, cfg.C).PLLBlock()
	if err := dev.writeImage(RegisterImage{Base: pll.baseReg(), Data: blk[:]}); nil != err {
		return fmt.Errorf("writeImage(0x%02X): %w", pll.baseReg(), err)
	}

	return nil
}

// SetClockSynth programs the output multisynth of clock 0, 1 or 2 with the
// divider stage ms (an integer divider; the fractional output stage is not
// used by this package) and selects integer or fractional mode for the
// stage.
//
// Returns an error if the receiver or clock index is invalid, or any
// register operation fails.
func (dev *SI5351A) SetClockSynth(clk uint8, ms MultisynthConfig, intMode bool) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	if clk >= MultisynthCount {
		return fmt.Errorf("invalid multisynth clock: %d", clk)
	}

	var mode byte
	if intMode {
		mode = 1 << 6
	}
	if err := dev.updateReg(regClockControl+clk, 1<<6, mode); nil != err {
		return fmt.Errorf("updateReg(0x%02X): %w", regClockControl+clk, err)
	}

	blk := NewSynthSettings(ms.D, 0, 1).MultisynthBlock(ms.RDiv, ms.DivBy4)
	base := regMultisynth0 + 8*clk
	if err := dev.writeImage(RegisterImage{Base: base, Data: blk[:]}); nil != err {
		return fmt.Errorf("writeImage(0x%02X): %w", base, err)
	}

	return nil
}

// SetDivBy4 toggles the fixed divide-by-4 mode of one clock's multisynth
// directly, preserving the rest of its P1 high byte.
//
// Returns an error if the receiver or clock index is invalid, or any
// register operation fails.
func (dev *SI5351A) SetDivBy4(clk uint8, enabled bool) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	if clk >= MultisynthCount {
		return fmt.Errorf("invalid multisynth clock: %d", clk)
	}

	// the MS_DIVBY4 field lives in bits 3:2 of the P1 high byte, two bytes
	// past the multisynth block base (registers 0x2C/0x34/0x3C)
	reg := regMultisynth0 + 8*clk + 2
	var bits byte
	if enabled {
		bits = 0b11 << 2
	}

	if err := dev.updateReg(reg, 0b11<<2, bits); nil != err {
		return fmt.Errorf("updateReg(0x%02X): %w", reg, err)
	}

	return nil
}

// ApplyPlan programs one PLL stage and one clock multisynth from a computed
// frequency plan. Outputs remain in whatever enable state they were; call
// PLLReset and SetOutputs afterwards to make the plan take effect.
func (dev *SI5351A) ApplyPlan(pll PLL, clk uint8, plan FrequencyPlan) error {

	if err := dev.SetPLL(pll, plan.PLL); nil != err {
		return fmt.Errorf("SetPLL(): %w", err)
	}

	if err := dev.SetClockSynth(clk, plan.Multisynth, plan.PLL.IntegerMode); nil != err {
		return fmt.Errorf("SetClockSynth(): %w", err)
	}

	return nil
}

// SetClockControl writes the control register of clock 0, 1 or 2: power,
// integer/fractional mode, source PLL, output inversion, clock source and
// drive strength.
//
// Returns an error if the receiver or clock index is invalid, or the write
// fails.
func (dev *SI5351A) SetClockControl(clk uint8, ctl ClockControl) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	if clk >= MultisynthCount {
		return fmt.Errorf("invalid control clock: %d", clk)
	}

	if err := dev.writeReg(regClockControl+clk, ctl.controlByte()); nil != err {
		return fmt.Errorf("writeReg(0x%02X): %w", regClockControl+clk, err)
	}

	return nil
}

// -- SYNTHESIS ------------------------------------------------------- [end] --
// -----------------------------------------------------------------------------

// -----------------------------------------------------------------------------
// -- OUTPUT CONTROL ------------------------------------------------ [start] --

// DisableAllOutputs disables every clock output and, if powerDown is true,
// powers down all eight output drivers.
func (dev *SI5351A) DisableAllOutputs(powerDown bool) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	if err := dev.writeReg(regOutputEnable, 0xFF); nil != err {
		return fmt.Errorf("writeReg(0x%02X): %w", regOutputEnable, err)
	}

	if powerDown {
		down := [8]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}
		img := RegisterImage{Base: regClockControl, Data: down[:]}
		if err := dev.writeImage(img); nil != err {
			return fmt.Errorf("writeImage(0x%02X): %w", regClockControl, err)
		}
	}

	return nil
}

// SetOutputs enables or disables the given clock outputs in the register 3
// mask, preserving the state of every other channel. A cleared mask bit
// enables the output.
//
// Returns an error if the receiver is invalid, any clock index is out of
// range, or a register operation fails.
func (dev *SI5351A) SetOutputs(enable bool, clks ...uint8) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	return dev.setMaskBits(regOutputEnable, enable, clks)
}

// DisableAllOEBPins disables the external output-enable (OEB) pin function
// for every clock output.
func (dev *SI5351A) DisableAllOEBPins() error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	if err := dev.writeReg(regOEBMask, 0xFF); nil != err {
		return fmt.Errorf("writeReg(0x%02X): %w", regOEBMask, err)
	}

	return nil
}

// SetOEBPins enables or disables the OEB pin function for the given clock
// outputs in the register 9 mask, preserving every other channel. A cleared
// mask bit enables the pin.
func (dev *SI5351A) SetOEBPins(enable bool, clks ...uint8) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	return dev.setMaskBits(regOEBMask, enable, clks)
}

// setMaskBits read-modify-writes one of the per-clock mask registers, where
// a cleared bit means enabled.
func (dev *SI5351A) setMaskBits(reg byte, enable bool, clks []uint8) error {

	cur, err := dev.readReg(reg)
	if nil != err {
		return fmt.Errorf("readReg(0x%02X): %w", reg, err)
	}

	for _, clk := range clks {
		if clk >= ClockCount {
			return fmt.Errorf("invalid clock: %d", clk)
		}
		if enable {
			cur &^= 1 << clk
		} else {
			cur |= 1 << clk
		}
	}

	if err := dev.writeReg(reg, cur); nil != err {
		return fmt.Errorf("writeReg(0x%02X): %w", reg, err)
	}

	return nil
}

// SetDisableStates sets the disabled-output state for one or more clock
// channels. Each channel occupies a 2-bit field across registers 24 (CLK0-3)
// and 25 (CLK4-7); unassigned channels are preserved.
//
// Returns an error if the receiver is invalid, any clock index is out of
// range, or a register operation fails.
func (dev *SI5351A) SetDisableStates(assign ...DisableStateAssignment) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	blk, err := dev.Bus.ReadBlock(regDisableState, 2)
	if nil != err {
		return fmt.Errorf("ReadBlock(0x%02X): %w", regDisableState, err)
	}
	if len(blk) < 2 {
		return fmt.Errorf("ReadBlock(0x%02X): short read (%d of 2 bytes)", regDisableState, len(blk))
	}

	for _, a := range assign {
		if a.Clock >= ClockCount {
			return fmt.Errorf("invalid clock: %d", a.Clock)
		}
		shift := (a.Clock % 4) * 2
		i := a.Clock / 4
		blk[i] = (blk[i] &^ (0b11 << shift)) | (byte(a.State) << shift)
	}

	img := RegisterImage{Base: regDisableState, Data: blk[:2]}
	if err := dev.writeImage(img); nil != err {
		return fmt.Errorf("writeImage(0x%02X): %w", regDisableState, err)
	}

	return nil
}

// SetInitialOffset sets the initial phase offset of one clock channel
// (registers 165-172).
func (dev *SI5351A) SetInitialOffset(clk uint8, offset byte) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	if clk >= ClockCount {
		return fmt.Errorf("invalid clock: %d", clk)
	}

	if err := dev.writeReg(regPhaseOffset+clk, offset); nil != err {
		return fmt.Errorf("writeReg(0x%02X): %w", regPhaseOffset+clk, err)
	}

	return nil
}

// FanoutEnable enables or disables the direct fanout paths from the crystal,
// the CLKIN input, and the multisynth 0/4 stages to the clock outputs.
func (dev *SI5351A) FanoutEnable(xtal bool, clkin bool, multisynth bool) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	var b byte
	if clkin {
		b |= 1 << 7
	}
	if xtal {
		b |= 1 << 6
	}
	if multisynth {
		b |= 1 << 4
	}

	if err := dev.writeReg(regFanout, b); nil != err {
		return fmt.Errorf("writeReg(0x%02X): %w", regFanout, err)
	}

	return nil
}

// -- OUTPUT CONTROL -------------------------------------------------- [end] --
// -----------------------------------------------------------------------------

// -----------------------------------------------------------------------------
// -- SPREAD SPECTRUM / MISC ---------------------------------------- [start] --

// SetSpreadSpectrum derives and writes the 13-byte spread-spectrum parameter
// block (registers 149-161). It does not enable the feature; see
// SpreadSpectrumEnable. When spread spectrum is in use, PLL A must run in
// fractional mode.
func (dev *SI5351A) SetSpreadSpectrum(params SpreadSpectrumParams) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	blk := params.Block(dev.Xtal.Hz)
	if err := dev.writeImage(RegisterImage{Base: regSpreadBase, Data: blk[:]}); nil != err {
		return fmt.Errorf("writeImage(0x%02X): %w", regSpreadBase, err)
	}

	return nil
}

// SpreadSpectrumEnable switches spread spectrum on or off for PLL A and its
// clock outputs (bit 7 of register 149), preserving the parameter bits in
// the same register.
func (dev *SI5351A) SpreadSpectrumEnable(enable bool) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	var bit byte
	if enable {
		bit = 1 << 7
	}

	if err := dev.updateReg(regSpreadBase, 1<<7, bit); nil != err {
		return fmt.Errorf("updateReg(0x%02X): %w", regSpreadBase, err)
	}

	return nil
}

// PLLReset soft-resets both PLL stages, latching newly written feedback
// parameters into the running synthesizers.
func (dev *SI5351A) PLLReset() error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	if err := dev.writeReg(regPLLReset, 0xA0); nil != err {
		return fmt.Errorf("writeReg(0x%02X): %w", regPLLReset, err)
	}

	return nil
}

// SetCrystalLoad sets the crystal's internal load capacitance.
//
// Returns an error if the receiver is invalid, the load value is not one of
// the XtalLoad constants, or the write fails.
func (dev *SI5351A) SetCrystalLoad(load XtalLoad) error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	if load < XtalLoad6pF || load > XtalLoad10pF {
		return fmt.Errorf("invalid crystal load capacitance: %d", load)
	}

	// the low 6 bits must be written as 0b010010 per the register map
	if err := dev.writeReg(regXtalLoad, (byte(load)<<6)|0b010010); nil != err {
		return fmt.Errorf("writeReg(0x%02X): %w", regXtalLoad, err)
	}

	return nil
}

// ReadStatus returns the value of the sticky interrupt status register.
func (dev *SI5351A) ReadStatus() (byte, error) {

	if ok, err := dev.valid(); !ok {
		return 0, err
	}

	value, err := dev.readReg(regStatus)
	if nil != err {
		return 0, fmt.Errorf("readReg(0x%02X): %w", regStatus, err)
	}

	return value, nil
}

// ClearStatus clears the sticky interrupt status register.
func (dev *SI5351A) ClearStatus() error {

	if ok, err := dev.valid(); !ok {
		return err
	}

	if err := dev.writeReg(regStatus, 0x00); nil != err {
		return fmt.Errorf("writeReg(0x%02X): %w", regStatus, err)
	}

	return nil
}

// -- SPREAD SPECTRUM / MISC ------------------------------------------ [end] --
// -----------------------------------------------------------------------------

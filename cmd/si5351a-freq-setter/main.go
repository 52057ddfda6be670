// Command si5351a-freq-setter configures an SI5351A clock generator: it
// solves the PLL and divider parameters for the requested output frequencies
// and programs them through a CP2112 USB bridge or a native I²C bus.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"periph.io/x/host/v3"

	si5351a "github.com/hwengjp/si5351a-freq-setter"
	"github.com/hwengjp/si5351a-freq-setter/cp2112"
	"github.com/hwengjp/si5351a-freq-setter/i2cbus"
)

// ANSI color codes for the terminal report.
const (
	colorRed     = "\033[91m"
	colorMagenta = "\033[95m"
	colorReset   = "\033[0m"
)

// useColor gates the ANSI codes on stdout actually being a terminal.
var useColor = isatty.IsTerminal(os.Stdout.Fd())

// paint wraps s in the given ANSI code when stdout is a terminal.
func paint(s string, code string) string {
	if useColor {
		return code + s + colorReset
	}
	return s
}

type options struct {
	differential int
	ssc          bool
	amp          float64
	mode         string
	transport    string
	bus          string
	address      uint8
	xtal         float64
	debug        bool
}

func main() {
	var opt options

	rootCmd := &cobra.Command{
		Use:   "si5351a-freq-setter [flags] [fout0 [fout2]]",
		Short: "SI5351A clock generator frequency setter",
		Long: `si5351a-freq-setter initializes an SI5351A clock generator and programs
its outputs: fout0 (MHz) drives CLK0 from PLL A, and the optional fout2
(MHz) drives CLK2 from PLL B. A differential pair can be formed by
mirroring CLK0 inverted onto CLK1 or CLK2.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(opt, args)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().IntVarP(&opt.differential, "differential", "d", 0,
		"enable differential output on the given channel (1 or 2)")
	rootCmd.Flags().BoolVarP(&opt.ssc, "ssc", "s", false,
		"enable spread spectrum clocking")
	rootCmd.Flags().Float64VarP(&opt.amp, "amp", "a", 0.015,
		"spread spectrum amplitude (peak-to-peak fraction)")
	rootCmd.Flags().StringVarP(&opt.mode, "mode", "m", "DOWN",
		"spread spectrum mode (CENTER or DOWN)")
	addTransportFlags(rootCmd, &opt)

	planCmd := &cobra.Command{
		Use:   "plan <fout>",
		Short: "Compute synthesis parameters without touching hardware",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPlan(opt, args[0])
		},
		SilenceUsage: true,
	}
	planCmd.Flags().BoolVarP(&opt.ssc, "ssc", "s", false,
		"plan for spread spectrum clocking (forces fractional mode)")
	planCmd.Flags().Float64Var(&opt.xtal, "xtal", 25,
		"crystal frequency (MHz)")
	rootCmd.AddCommand(planCmd)

	if err := rootCmd.Execute(); nil != err {
		fmt.Fprintf(os.Stderr, "%s %v\n", paint("Error:", colorRed), err)
		os.Exit(1)
	}
}

func addTransportFlags(cmd *cobra.Command, opt *options) {
	cmd.Flags().StringVarP(&opt.transport, "transport", "T", "cp2112",
		"register transport backend (cp2112 or i2c)")
	cmd.Flags().StringVar(&opt.bus, "bus", "",
		"I²C bus name for the i2c transport (empty selects the first bus)")
	cmd.Flags().Uint8Var(&opt.address, "address", si5351a.AddrPrimary,
		"7-bit device address")
	cmd.Flags().Float64Var(&opt.xtal, "xtal", 25,
		"crystal frequency (MHz)")
	cmd.Flags().BoolVar(&opt.debug, "debug", false,
		"trace every register access")
}

// openTransport opens the selected backend bound to the device address.
func openTransport(opt options) (si5351a.RegisterTransport, func() error, error) {

	switch opt.transport {

	case "cp2112":
		t, err := cp2112.New(0, opt.address, si5351a.DefaultRetryPolicy)
		if nil != err {
			return nil, nil, fmt.Errorf("cp2112.New(): %w", err)
		}
		return t, t.Close, nil

	case "i2c":
		if _, err := host.Init(); nil != err {
			return nil, nil, fmt.Errorf("host.Init(): %w", err)
		}
		t, err := i2cbus.Open(opt.bus, opt.address)
		if nil != err {
			return nil, nil, fmt.Errorf("i2cbus.Open(): %w", err)
		}
		return t, t.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown transport %q (want cp2112 or i2c)", opt.transport)
}

func parseMode(s string) (si5351a.SSCMode, error) {
	switch strings.ToUpper(s) {
	case "CENTER":
		return si5351a.SSCCenter, nil
	case "DOWN":
		return si5351a.SSCDown, nil
	}
	return 0, fmt.Errorf("invalid spread spectrum mode %q (want CENTER or DOWN)", s)
}

func parseFreq(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if nil != err || f <= 0 {
		return 0, fmt.Errorf("invalid frequency %q (want a positive value in MHz)", s)
	}
	return f, nil
}

// planFor computes a frequency plan and reports solver failures in user
// terms.
func planFor(xtal si5351a.Crystal, clk int, fout float64, ssc bool) (si5351a.FrequencyPlan, error) {

	plan, err := xtal.Plan(fout, ssc)
	if nil != err {
		if errors.Is(err, si5351a.ErrNoSolution) {
			return plan, fmt.Errorf("cannot calculate parameters for clock %d at %g MHz", clk, fout)
		}
		return plan, err
	}

	return plan, nil
}

// printPlan prints one clock's resolved parameters the way the report
// formats them.
func printPlan(clk int, requested float64, plan si5351a.FrequencyPlan) {
	fmt.Printf("Clock %d - Calculated parameters: a=%d, b=%d, c=%d, d=%d, rdiv=%d, divby4=%v, pll_intmode=%v\n",
		clk, plan.PLL.A, plan.PLL.B, plan.PLL.C,
		plan.Multisynth.D, plan.Multisynth.RDiv, plan.Multisynth.DivBy4,
		plan.PLL.IntegerMode)
	fmt.Printf("Clock %d - Frequency: Request=%g, Actual=%.7g, fvco=%.7g\n",
		clk, requested, plan.CalculatedFout, plan.VCO)
}

// reportFreq formats one achieved frequency, highlighted when it differs
// from the request by more than 1 Hz equivalent.
func reportFreq(requested float64, plan si5351a.FrequencyPlan) string {
	s := fmt.Sprintf("%.7g MHz", plan.CalculatedFout)
	if diff := requested - plan.CalculatedFout; diff > 0.000001 || diff < -0.000001 {
		return paint(s, colorMagenta)
	}
	return s
}

func runPlan(opt options, arg string) error {

	fout, err := parseFreq(arg)
	if nil != err {
		return err
	}

	plan, err := planFor(si5351a.NewCrystal(opt.xtal), 0, fout, opt.ssc)
	if nil != err {
		return err
	}

	printPlan(0, fout, plan)
	return nil
}

func run(opt options, args []string) error {

	if opt.differential != 0 && opt.differential != 1 && opt.differential != 2 {
		return fmt.Errorf("invalid differential channel %d (want 1 or 2)", opt.differential)
	}
	if 2 == opt.differential && len(args) > 1 {
		return fmt.Errorf("channel 2 cannot carry both the differential output and an independent frequency")
	}

	mode, err := parseMode(opt.mode)
	if nil != err {
		return err
	}

	bus, closeBus, err := openTransport(opt)
	if nil != err {
		return err
	}
	defer closeBus()

	dev := si5351a.New(bus, si5351a.NewCrystal(opt.xtal))
	dev.Debug = opt.debug

	if err := dev.Initialize(); nil != err {
		return fmt.Errorf("Initialize(): %w", err)
	}

	if 0 == len(args) {
		fmt.Println("SI5351A initialized. No frequency configuration applied.")
		return nil
	}

	fout0, err := parseFreq(args[0])
	if nil != err {
		return err
	}

	plan0, err := planFor(dev.Xtal, 0, fout0, opt.ssc)
	if nil != err {
		return err
	}
	printPlan(0, fout0, plan0)

	var (
		fout2 float64
		plan2 si5351a.FrequencyPlan
		have2 bool
	)
	if len(args) > 1 {
		if fout2, err = parseFreq(args[1]); nil != err {
			return err
		}
		// spread spectrum only affects PLL A
		if plan2, err = planFor(dev.Xtal, 2, fout2, false); nil != err {
			return err
		}
		printPlan(2, fout2, plan2)
		have2 = true
	}

	if err := dev.SetPLL(si5351a.PLLA, plan0.PLL); nil != err {
		return fmt.Errorf("SetPLL(A): %w", err)
	}
	if have2 {
		if err := dev.SetPLL(si5351a.PLLB, plan2.PLL); nil != err {
			return fmt.Errorf("SetPLL(B): %w", err)
		}
	}

	// CLK0 always carries fout0
	ctl0 := si5351a.ClockControl{
		IntegerMode:   plan0.PLL.IntegerMode,
		Source:        si5351a.PLLA,
		ClockSource:   si5351a.SourceSynth,
		DriveStrength: si5351a.Drive8mA,
	}
	if err := dev.SetClockControl(0, ctl0); nil != err {
		return fmt.Errorf("SetClockControl(0): %w", err)
	}

	// CLK1 is either the inverted differential mirror of CLK0 or powered
	// down
	ctl1 := ctl0
	ctl1.Invert = true
	ctl1.PowerDown = 1 != opt.differential
	if ctl1.PowerDown {
		ctl1.Invert = false
	}
	if err := dev.SetClockControl(1, ctl1); nil != err {
		return fmt.Errorf("SetClockControl(1): %w", err)
	}

	// CLK2 carries the differential mirror, fout2, or nothing
	ctl2 := si5351a.ClockControl{
		Source:        si5351a.PLLB,
		ClockSource:   si5351a.SourceSynth,
		DriveStrength: si5351a.Drive8mA,
	}
	switch {
	case 2 == opt.differential:
		ctl2.Source = si5351a.PLLA
		ctl2.Invert = true
		ctl2.IntegerMode = plan0.PLL.IntegerMode
	case have2:
		ctl2.IntegerMode = plan2.PLL.IntegerMode
	default:
		ctl2.PowerDown = true
		ctl2.IntegerMode = plan0.PLL.IntegerMode
	}
	if err := dev.SetClockControl(2, ctl2); nil != err {
		return fmt.Errorf("SetClockControl(2): %w", err)
	}

	if err := dev.SetClockSynth(0, plan0.Multisynth, plan0.PLL.IntegerMode); nil != err {
		return fmt.Errorf("SetClockSynth(0): %w", err)
	}
	if 1 == opt.differential {
		if err := dev.SetClockSynth(1, plan0.Multisynth, plan0.PLL.IntegerMode); nil != err {
			return fmt.Errorf("SetClockSynth(1): %w", err)
		}
	}
	if 2 == opt.differential {
		if err := dev.SetClockSynth(2, plan0.Multisynth, plan0.PLL.IntegerMode); nil != err {
			return fmt.Errorf("SetClockSynth(2): %w", err)
		}
	} else if have2 {
		if err := dev.SetClockSynth(2, plan2.Multisynth, plan2.PLL.IntegerMode); nil != err {
			return fmt.Errorf("SetClockSynth(2): %w", err)
		}
	}

	var sscRatio int
	if opt.ssc {
		sscRatio = int(plan0.PLL.Ratio())
		params := si5351a.SpreadSpectrumParams{
			Amplitude: opt.amp,
			Mode:      mode,
			PLLARatio: sscRatio,
		}
		if err := dev.SetSpreadSpectrum(params); nil != err {
			return fmt.Errorf("SetSpreadSpectrum(): %w", err)
		}
		if err := dev.SpreadSpectrumEnable(true); nil != err {
			return fmt.Errorf("SpreadSpectrumEnable(): %w", err)
		}
	}

	if err := dev.PLLReset(); nil != err {
		return fmt.Errorf("PLLReset(): %w", err)
	}

	enabled := []uint8{0}
	if 1 == opt.differential {
		enabled = append(enabled, 1)
	}
	if 2 == opt.differential || have2 {
		enabled = append(enabled, 2)
	}
	if err := dev.SetOutputs(true, enabled...); nil != err {
		return fmt.Errorf("SetOutputs(): %w", err)
	}

	fmt.Println("=== Configuration Results ===")
	fmt.Printf("Clock 0: %s\n", reportFreq(fout0, plan0))
	if 1 == opt.differential {
		fmt.Printf("Clock 1: %s Inverted (Differential)\n", reportFreq(fout0, plan0))
	}
	if 2 == opt.differential {
		fmt.Printf("Clock 2: %s Inverted (Differential)\n", reportFreq(fout0, plan0))
	} else if have2 {
		fmt.Printf("Clock 2: %s\n", reportFreq(fout2, plan2))
	}
	if opt.ssc {
		fmt.Printf("SSC: amplitude = %g, mode = %s, pllARatio = %d\n",
			opt.amp, strings.ToUpper(opt.mode), sscRatio)
	}

	return nil
}

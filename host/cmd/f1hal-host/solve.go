package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/claymcleod/stm32f1xx-hal/core"
	"github.com/claymcleod/stm32f1xx-hal/timer"
)

var (
	solveOpts = struct {
		clock   uint32
		bus     string
		systick bool
	}{}

	solveCmd = &cobra.Command{
		Use:   "solve <hz>",
		Short: "Compute the prescaler and reload pair for a target frequency",
		Long: "Compute the prescaler and reload pair a timer needs to overflow at\n" +
			"the given frequency, using the board's clock tree. The same solver\n" +
			"runs on the target when a countdown is started by frequency.",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runSolve(args[0]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}
)

func init() {
	solveCmd.Flags().Uint32Var(&solveOpts.clock, "clock", 0, "input clock in Hz (overrides the board clock tree)")
	solveCmd.Flags().StringVar(&solveOpts.bus, "bus", "apb1", "peripheral bus feeding the timer (apb1 or apb2)")
	solveCmd.Flags().BoolVar(&solveOpts.systick, "systick", false, "solve for the 24-bit core timer instead of a general-purpose timer")
}

func runSolve(arg string) error {
	target, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return fmt.Errorf("bad target frequency %q: %w", arg, err)
	}
	if target == 0 {
		return fmt.Errorf("target frequency must be nonzero")
	}

	board, err := loadBoard()
	if err != nil {
		return err
	}
	clocks := board.Clocks()

	var clock core.Hertz
	var source string
	switch {
	case solveOpts.clock != 0:
		clock = core.Hertz(solveOpts.clock)
		source = "from flag"
	case solveOpts.systick:
		clock = clocks.SysClk()
		source = "core clock"
	case solveOpts.bus == "apb1":
		clock = clocks.TimerClock(core.BusAPB1)
		source = "APB1 timer clock"
	case solveOpts.bus == "apb2":
		clock = clocks.TimerClock(core.BusAPB2)
		source = "APB2 timer clock"
	default:
		return fmt.Errorf("unknown bus %q (want apb1 or apb2)", solveOpts.bus)
	}

	// The solver reports unreachable ratios by panicking. Surface those
	// as ordinary command errors.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			os.Exit(1)
		}
	}()

	fmt.Printf("Input clock:  %s (%s, %s)\n", clock, board.Name, source)
	fmt.Printf("Target:       %dHz\n", target)

	if solveOpts.systick {
		reload := timer.SolveSysTick(core.Hertz(target), clock)
		printSolution(1, uint64(reload)+1, uint64(clock), float64(target))
		return nil
	}

	psc, reload := timer.SolveGeneral(core.Hertz(target), clock)
	fmt.Printf("Prescaler:    %d (divide by %d)\n", psc, uint64(psc)+1)
	printSolution(uint64(psc)+1, uint64(reload)+1, uint64(clock), float64(target))
	return nil
}

func printSolution(prediv, counts, clock uint64, target float64) {
	fmt.Printf("Reload:       %d (%d counts per period)\n", counts-1, counts)

	total := prediv * counts
	actual := float64(clock) / float64(total)
	ppm := (actual - target) / target * 1e6
	fmt.Printf("Actual:       %.6fHz (%+.3f ppm)\n", actual, ppm)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"

	"github.com/claymcleod/stm32f1xx-hal/core"
	"github.com/claymcleod/stm32f1xx-hal/host/serial"
	"github.com/claymcleod/stm32f1xx-hal/trace"
)

var (
	monitorOpts = struct {
		device   string
		baud     int
		count    int
		expectHz float64
		verbose  bool
	}{}

	monitorCmd = &cobra.Command{
		Use:   "monitor",
		Short: "Capture the trace stream and report period statistics",
		Long: "Capture the trace stream a board emits over serial, check record\n" +
			"sequence numbers for drops, and report statistics over the intervals\n" +
			"between update records. Stops after --count updates or once the\n" +
			"stream goes quiet.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runMonitor(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}
)

func init() {
	monitorCmd.Flags().StringVarP(&monitorOpts.device, "device", "d", "", "serial device (overrides the board description)")
	monitorCmd.Flags().IntVar(&monitorOpts.baud, "baud", 0, "baud rate (overrides the board description)")
	monitorCmd.Flags().IntVarP(&monitorOpts.count, "count", "n", 100, "stop after this many update records (0 = until the stream ends)")
	monitorCmd.Flags().Float64Var(&monitorOpts.expectHz, "expect-hz", 0, "expected update frequency, reports the ppm error against it")
	monitorCmd.Flags().BoolVarP(&monitorOpts.verbose, "verbose", "v", false, "print every record as it arrives")
}

func runMonitor() error {
	board, err := loadBoard()
	if err != nil {
		return err
	}

	cfg := serial.DefaultConfig(board.Device)
	cfg.Baud = board.Baud
	if monitorOpts.device != "" {
		cfg.Device = monitorOpts.device
	}
	if monitorOpts.baud != 0 {
		cfg.Baud = monitorOpts.baud
	}

	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	defer port.Close()

	refClk := core.Hertz(board.HClkHz)
	fmt.Printf("Monitoring %s at %d baud, reference clock %s\n", cfg.Device, cfg.Baud, refClk)

	sess := &session{refHz: float64(refClk)}
	scanner := trace.NewScanner(port)

	for monitorOpts.count == 0 || sess.updates < monitorOpts.count {
		payload, err := scanner.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		rec, err := trace.ParseRecord(payload)
		if err != nil {
			sess.malformed++
			continue
		}

		if monitorOpts.verbose {
			fmt.Printf("%8d  %-8s %12d\n", rec.Seq, rec.Kind, rec.Ticks)
		}
		sess.observe(rec)
	}

	sess.report()
	if n := scanner.Skipped(); n > 0 {
		fmt.Printf("Skipped %d bytes of corrupt or partial frames\n", n)
	}
	return nil
}

// session accumulates statistics over one capture.
type session struct {
	refHz float64

	periods []float64 // intervals between successive updates, in reference ticks

	starts    int
	updates   int
	cancels   int
	overruns  int
	malformed int
	drops     uint32

	lastSeq   uint32
	haveSeq   bool
	lastTicks uint32
	havePrev  bool
}

func (s *session) observe(r trace.Record) {
	if s.haveSeq {
		if gap := r.Seq - s.lastSeq - 1; gap > 0 {
			s.drops += gap
			// The updates on either side of a gap are not adjacent, so
			// their interval spans an unknown number of periods.
			s.havePrev = false
		}
	}
	s.lastSeq = r.Seq
	s.haveSeq = true

	switch r.Kind {
	case trace.KindStart:
		s.starts++
		s.havePrev = false
	case trace.KindUpdate:
		s.updates++
		if s.havePrev {
			// Wrapping subtraction keeps the interval right across a
			// timestamp rollover.
			s.periods = append(s.periods, float64(r.Ticks-s.lastTicks))
		}
		s.lastTicks = r.Ticks
		s.havePrev = true
	case trace.KindCancel:
		s.cancels++
		s.havePrev = false
	case trace.KindOverrun:
		s.overruns++
	}
}

func (s *session) report() {
	fmt.Printf("\nRecords: %d updates, %d starts, %d cancels, %d overruns\n",
		s.updates, s.starts, s.cancels, s.overruns)
	if s.malformed > 0 {
		fmt.Printf("Malformed records: %d\n", s.malformed)
	}
	if s.drops > 0 {
		fmt.Printf("Dropped records: %d (queue overflow on the target)\n", s.drops)
	}

	if len(s.periods) < 2 {
		fmt.Println("Not enough adjacent updates for period statistics")
		return
	}

	slices.Sort(s.periods)
	mean := stat.Mean(s.periods, nil)
	median := stat.Quantile(0.5, stat.Empirical, s.periods, nil)
	sigma := stat.StdDev(s.periods, nil)

	fmt.Printf("Periods (n=%d, reference ticks):\n", len(s.periods))
	fmt.Printf("  mean %.1f (%.3fus)  median %.1f  stddev %.1f\n",
		mean, mean/s.refHz*1e6, median, sigma)
	fmt.Printf("  min %.0f  max %.0f\n", s.periods[0], s.periods[len(s.periods)-1])

	if monitorOpts.expectHz > 0 {
		ideal := s.refHz / monitorOpts.expectHz
		ppm := (mean - ideal) / ideal * 1e6
		fmt.Printf("Against %gHz (%.1f ticks ideal): %+.1f ppm\n",
			monitorOpts.expectHz, ideal, ppm)
	}
}

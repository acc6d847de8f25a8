package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claymcleod/stm32f1xx-hal/host/config"
)

var (
	boardFile string

	rootCmd = &cobra.Command{
		Use:   "f1hal-host",
		Short: "Host-side tools for boards running the timer layer",
		Long: "Host-side tools for boards running the timer layer: solve register\n" +
			"pairs offline and monitor the trace stream a board emits over serial.",
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&boardFile, "board", "b", "", "board description file (JSON), default is a stock Blue Pill")
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(monitorCmd)
}

// loadBoard resolves the board description the subcommands work against.
func loadBoard() (*config.Board, error) {
	if boardFile == "" {
		return config.DefaultBluePill(), nil
	}
	board, err := config.LoadFile(boardFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load board description: %w", err)
	}
	return board, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

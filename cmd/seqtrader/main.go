package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"seqtrader/internal/cli"
	"seqtrader/internal/logging"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339

	// Configuration is loaded per command so --config is honoured; until
	// then, log with the defaults.
	rootCmd := cli.NewRootCmd(nil, logging.NewLogger())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var rootCmd = &cobra.Command{
	Use:   "soma",
	Short: "A cycle-accurate spiking neuron simulator",
	Long: `soma simulates a chain of spike buffers and leaky-integrate-and-fire
neurons on one global clock, recording spikes, membrane potentials, and
buffer activity along the way.`,
}

// Execute runs the root command and exits through atexit so that the data
// recorder and the trace files are flushed.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Fatal(err)
	}

	atexit.Exit(0)
}

func init() {
	// A .env file can override the flag defaults, e.g. SOMA_MONITOR_PORT.
	_ = godotenv.Load()
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return i
}

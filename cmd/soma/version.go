package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of soma",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("soma version " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

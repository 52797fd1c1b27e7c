package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridable at build time:
//
//	go build -ldflags "-X main.version=v1.2.3" ./cmd/webiogen
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the webiogen version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "webiogen %s\n", version)
	},
}

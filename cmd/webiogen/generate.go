package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/webiokit/gen"
)

var generateCmd = &cobra.Command{
	Use:   "generate [dirs...]",
	Short: "Run the pre-build pass over source directories",
	Long: `Generate discovers Go packages under the given directories (the
current directory by default), rewrites entry points and constant
template calls, and lists the files a write would change. With -w
the changes are written in place, atomically. A unit with
diagnostics writes nothing.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolP("write", "w", false, "write results to source files in place")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	write, _ := cmd.Flags().GetBool("write")

	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	mode := gen.ModeList
	if write {
		mode = gen.ModeWrite
	}

	g := gen.New(cfg, newLogger(cmd))
	report, err := g.Run(cmd.Context(), dirs, gen.RunOptions{Mode: mode})
	if err != nil {
		return err
	}
	if len(report.Diags) > 0 {
		printDiags(cmd, report.Diags)
		return fmt.Errorf("%d diagnostic(s)", len(report.Diags))
	}

	for _, path := range report.Changed() {
		if write {
			fmt.Fprintf(cmd.OutOrStdout(), "rewrote %s\n", path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "would rewrite %s\n", path)
		}
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/webiokit/gen"
)

var checkCmd = &cobra.Command{
	Use:   "check [dirs...]",
	Short: "Report diagnostics without generating anything",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	g := gen.New(cfg, newLogger(cmd))
	diags, err := g.Check(cmd.Context(), dirs)
	if err != nil {
		return err
	}
	if len(diags) > 0 {
		printDiags(cmd, diags)
		return fmt.Errorf("%d diagnostic(s)", len(diags))
	}
	return nil
}

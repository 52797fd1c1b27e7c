package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/webiokit/rewrite"
)

var foldCmd = &cobra.Command{
	Use:   "fold FILE",
	Short: "Rewrite a single file to stdout",
	Long: `Fold is the pure source-to-source boundary of the toolkit: one Go
file in, the rewritten file out on stdout. Pass - to read from
stdin. Nothing is written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runFold,
}

func runFold(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	name := args[0]
	var src []byte
	if name == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
		name = "stdin.go"
	} else {
		src, err = os.ReadFile(name)
	}
	if err != nil {
		return err
	}

	opts := rewrite.Options{
		TemplateImport: cfg.TemplateImport,
		RuntimeImport:  cfg.RuntimeImport,
		Aliases:        cfg.Aliases,
		Fold:           true,
		Entry:          true,
	}
	out, diags, err := rewrite.Source(name, src, opts)
	if err != nil {
		return err
	}
	if len(diags) > 0 {
		printDiags(cmd, diags)
		return fmt.Errorf("%d diagnostic(s)", len(diags))
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}

package main

import (
	"bytes"
	"fmt"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/webiokit/bundle"
)

var bundleCmd = &cobra.Command{
	Use:   "bundle MANIFEST",
	Short: "Precompile a template manifest into generated Go source",
	Args:  cobra.ExactArgs(1),
	RunE:  runBundle,
}

func init() {
	bundleCmd.Flags().Bool("print", false, "write the generated source to stdout instead of the manifest's output file")
}

func runBundle(cmd *cobra.Command, args []string) error {
	m, diags, err := bundle.Load(args[0])
	if err != nil {
		return err
	}
	if len(diags) > 0 {
		printDiags(cmd, diags)
		return fmt.Errorf("%d diagnostic(s)", len(diags))
	}

	src, diags := m.Generate()
	if len(diags) > 0 {
		printDiags(cmd, diags)
		return fmt.Errorf("%d diagnostic(s)", len(diags))
	}

	if print, _ := cmd.Flags().GetBool("print"); print {
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}

	target := m.OutputPath()
	if err := atomic.WriteFile(target, bytes.NewReader(src)); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
	return nil
}

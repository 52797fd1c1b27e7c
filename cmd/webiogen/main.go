// Command webiogen is the pre-build source-generation pass of the WebIO
// toolkit. It rewrites annotated async entry points into synchronous
// bootstraps and folds constant template calls into string literals, so
// the main build compiles plain Go with no generation cost left at
// runtime.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/webiokit/config"
	"github.com/randalmurphal/webiokit/diag"
)

var rootCmd = &cobra.Command{
	Use:   "webiogen",
	Short: "Pre-build source generation for the WebIO toolkit",
	Long: `webiogen scans Go source for //webio:main entry annotations and
constant template calls, and rewrites both before the main build:
the entry point becomes a synchronous bootstrap driving the async
runtime, and constant templates become plain string literals.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(foldCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "configuration file (default: discover webiogen.{toml,yaml,json})")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose progress logging")

	if err := rootCmd.Execute(); err != nil {
		if err.Error() != "" {
			rootCmd.PrintErrln("webiogen:", err)
		}
		os.Exit(1)
	}
}

// loadConfig resolves the configuration for a command: the --config flag
// when given, a discovered project file otherwise.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.Discover(".")
	return cfg, err
}

// newLogger builds the progress logger for a command.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// colorEnabled resolves the --color mode, deferring to terminal detection
// on auto.
func colorEnabled(cmd *cobra.Command) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return !color.NoColor
	}
}

// printDiags reports diagnostics on stderr in deterministic order.
func printDiags(cmd *cobra.Command, diags diag.List) {
	diags.Sort()
	diag.Fprint(os.Stderr, diags, diag.PrintOptions{Color: colorEnabled(cmd)})
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssratchet"
	"github.com/yacobolo/cssratchet/internal/term"
)

var runCmd = &cobra.Command{
	Use:   "run [patterns...]",
	Short: "Lint stylesheets and check the report against the baseline",
	Long: `Lint the given files or glob patterns, write the report to --dest and
compare it with the baseline. Patterns given as arguments replace the
files configured in the config file.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRatchet,
}

func init() {
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("dest", defaultDest, "Report file written on every run")
	f.String("baseline", defaultBaseline, "Accepted report the run is compared with")
	f.String("format", defaultFormat, "Report format: compact|text|json")
	f.Bool("absolute-file-paths", false, "Use absolute file paths in reports")
	f.Bool("update-baseline", false, "Overwrite the baseline with the current report")
	f.String("diff-command", defaultDiffCommand, "Command used to diff baseline and report")
}

func runRatchet(_ *cobra.Command, args []string) error {
	cfg, err := buildRatchetConfig(args)
	if err != nil {
		return err
	}

	verbose := getBool("verbose", false)
	quiet := getBool("quiet", false)
	if verbose && !quiet {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = cssratchet.Run(ctx, cfg, cssratchet.Options{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Verbose:   verbose,
		Quiet:     quiet,
		UseColors: term.ShouldUseColors(getBool("color", false)),
	})
	return err
}

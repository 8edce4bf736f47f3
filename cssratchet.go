// Package cssratchet is a CSS lint ratchet for build pipelines.
//
// A run lints a set of stylesheets, writes the report to a destination file
// and compares it with an accepted baseline report. The build only fails
// when the report grows and differs from the baseline, so legacy violations
// are tolerated while new ones are rejected.
//
// # Library use
//
//	outcome, err := cssratchet.Run(ctx, cssratchet.Config{
//		Files: []string{"web/styles/**/*.css"},
//		Dest:  "report/csslint.txt",
//		Rules: ruleset.Options{"*": false, "important": 2},
//	}, cssratchet.Options{Stdout: os.Stdout, Stderr: os.Stderr})
//	os.Exit(cssratchet.ExitCode(err))
//
// The first run creates report/csslint_base.txt from the current report.
// Commit it; later runs are measured against it.
//
// # CLI Tool
//
//	go install github.com/yacobolo/cssratchet/cmd/cssratchet@latest
package cssratchet

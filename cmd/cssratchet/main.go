// Package main provides the cssratchet CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/yacobolo/cssratchet"
	"github.com/yacobolo/cssratchet/internal/term"
)

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if !k.Bool("quiet") {
		useColors := term.ShouldUseColors(k.Bool("color"))
		fmt.Fprintln(os.Stderr, term.RenderStyle(term.StyleRed, "Error: "+err.Error(), useColors))
	}
	os.Exit(cssratchet.ExitCode(err))
}

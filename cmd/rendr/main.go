package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rendr/internal/config"
	"github.com/vango-dev/rendr/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌┐┌┌┬┐┬─┐
  ├┬┘├┤ │││ ││├┬┘
  ┴└─└─┘┘└┘─┴┘┴└─
`

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

// globals holds flags shared by every command.
type globals struct {
	dir string
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "rendr",
		Short: "Reactive virtual DOM toolkit",
		Long: `rendr drives a reactive runtime and a keyed virtual DOM renderer.

Commands work on YAML tree fixtures:

  • diff two trees and print the host operations
  • render a tree to HTML, locally or to S3
  • serve a live demo over WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&g.dir, "dir", "C", ".", "Directory containing "+config.ConfigFileName)

	cmd.AddCommand(
		initCmd(),
		diffCmd(),
		renderCmd(g),
		lisCmd(),
		serveCmd(g),
		versionCmd(),
	)
	return cmd
}

// loadConfig reads rendr.yaml from the --dir directory, using defaults
// when there is none.
func (g *globals) loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(g.dir)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rendr/internal/errors"
	"github.com/vango-dev/rendr/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template string
		addr     string
	)

	cmd := &cobra.Command{
		Use:   "init <dir>",
		Short: "Create rendr.yaml and example fixtures",
		Long: `Create a directory with rendr.yaml and, by default, example
fixtures for diff and render.

Templates:
  fixtures  rendr.yaml plus example trees (default)
  minimal   rendr.yaml only

Examples:
  rendr init site
  rendr init site --template=minimal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args[0], template, addr)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "fixtures", "Starter template (fixtures, minimal)")
	cmd.Flags().StringVar(&addr, "addr", "", "Live server address for rendr.yaml")

	return cmd
}

func runInit(cmd *cobra.Command, dir, templateName, addr string) error {
	name := filepath.Base(filepath.Clean(dir))
	if !isValidProjectName(name) {
		return errors.New("E173").
			WithDetailf("%q is not a valid project name", name).
			WithSuggestion("Use letters, numbers and hyphens")
	}

	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
		return errors.New("E171").
			WithDetail("Directory '" + dir + "' is not empty").
			WithSuggestion("Choose a different directory or remove its contents")
	}

	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}
	if err := tmpl.Create(dir, templates.Config{ProjectName: name, Addr: addr}); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	success(w, "Created %s from the %s template", dir, tmpl.Name)
	for _, p := range tmpl.Paths() {
		info(w, "%s", filepath.Join(dir, filepath.FromSlash(p)))
	}
	return nil
}

func isValidProjectName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	for _, r := range name {
		if r == ' ' || r == '/' || r == '\\' || r == ':' {
			return false
		}
	}
	return true
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rendr/internal/fixture"
	"github.com/vango-dev/rendr/pkg/dom"
	"github.com/vango-dev/rendr/pkg/snapshot"
)

func renderCmd(g *globals) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render TREE.yaml",
		Short: "Render a tree to HTML",
		Long: `Render a YAML tree to HTML and print it, or store it with --out.

--out accepts a file path or an s3://bucket/key URL. S3 credentials and
region are read from the standard AWS_* environment variables. Without
--out, snapshot.out from rendr.yaml is used when set.

Examples:
  rendr render page.yaml
  rendr render page.yaml --out dist/index.html
  rendr render page.yaml --out s3://site/index.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			tree, err := fixture.ParseFile(args[0])
			if err != nil {
				return err
			}
			html := dom.RenderString(tree)

			if out == "" {
				out = cfg.Snapshot.Out
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), html)
				return nil
			}

			target, err := snapshot.ParseTarget(out, snapshot.S3FromEnv)
			if err != nil {
				return err
			}
			loc, err := target.Save(cmd.Context(), []byte(html))
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s (%d bytes)", loc, len(html))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "File path or s3://bucket/key")

	return cmd
}

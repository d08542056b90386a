package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rendr/internal/fixture"
	"github.com/vango-dev/rendr/pkg/dom"
	"github.com/vango-dev/rendr/pkg/reactive"
	"github.com/vango-dev/rendr/pkg/renderer"
	"github.com/vango-dev/rendr/pkg/vtest"
)

func diffCmd() *cobra.Command {
	var (
		asJSON bool
		noHTML bool
	)

	cmd := &cobra.Command{
		Use:   "diff OLD.yaml NEW.yaml",
		Short: "Print the host operations that turn one tree into another",
		Long: `Mount OLD into an in-memory document, patch it to NEW and print
the host operations the renderer issued, followed by the final HTML.

Examples:
  rendr diff before.yaml after.yaml
  rendr diff --json before.yaml after.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldTree, err := fixture.ParseFile(args[0])
			if err != nil {
				return err
			}
			newTree, err := fixture.ParseFile(args[1])
			if err != nil {
				return err
			}

			var mutations []dom.Mutation
			doc := dom.NewDocument(dom.WithObserver(func(m dom.Mutation) {
				mutations = append(mutations, m)
			}))
			rt := reactive.New()
			rec := vtest.NewRecorder(doc.Host())
			r := renderer.New(rt, rec)

			r.Render(oldTree, doc.Body())
			rt.Tick()
			rec.Reset()
			mutations = nil

			r.Render(newTree, doc.Body())
			rt.Tick()

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if mutations == nil {
					mutations = []dom.Mutation{}
				}
				return enc.Encode(mutations)
			}

			fmt.Fprint(w, rec.String())
			fmt.Fprintf(w, "-- %d mutations, %d inserts, %d removals\n",
				len(rec.Mutations()), rec.Count(vtest.OpInsert), rec.Count(vtest.OpRemove))
			if !noHTML {
				fmt.Fprintln(w, dom.InnerHTML(doc.Body()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print document mutations as JSON")
	cmd.Flags().BoolVar(&noHTML, "no-html", false, "Do not print the final HTML")

	return cmd
}

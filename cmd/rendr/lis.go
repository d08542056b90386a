package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/rendr/internal/errors"
	"github.com/vango-dev/rendr/pkg/renderer"
)

func lisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lis N...",
		Short: "Print a longest increasing subsequence",
		Long: `Print the indices and values of one longest strictly increasing
subsequence of the given integers. Negative values are skipped; put --
before them so they are not read as flags.

Examples:
  rendr lis 3 0 1 2
  rendr lis -- 2 -1 0 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := make([]int, len(args))
			for i, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return errors.New("E170").WithDetailf("%q is not an integer", a)
				}
				seq[i] = n
			}

			idx := renderer.LIS(seq)
			vals := make([]string, len(idx))
			strIdx := make([]string, len(idx))
			for i, j := range idx {
				strIdx[i] = strconv.Itoa(j)
				vals[i] = strconv.Itoa(seq[j])
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "indices: %s\n", strings.Join(strIdx, " "))
			fmt.Fprintf(w, "values:  %s\n", strings.Join(vals, " "))
			return nil
		},
	}
}

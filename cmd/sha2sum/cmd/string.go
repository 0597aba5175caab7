package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"massnet.org/sha2/logging"
	"massnet.org/sha2/sumfile"
)

func (a *app) newStringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "string <text>...",
		Short: "Print checksums of literal strings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algos, err := sumfile.ParseAlgorithms(a.config.Sum.Algorithms)
			if err != nil {
				return err
			}
			var results []sumfile.Result
			for _, text := range args {
				for _, algo := range algos {
					results = append(results, sumfile.Result{
						Path:      strconv.Quote(text),
						Algorithm: algo,
						Digest:    algo.Sum([]byte(text)),
					})
				}
			}
			logging.VPrint(logging.DEBUG, "strings summed", logging.LogFormat{"count": len(args)})
			return printResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.format(), len(algos), results)
		},
	}
	addAlgoFlags(cmd)
	return cmd
}

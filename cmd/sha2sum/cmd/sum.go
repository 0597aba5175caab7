package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"massnet.org/sha2/config"
	cerrors "massnet.org/sha2/errors"
	"massnet.org/sha2/logging"
	"massnet.org/sha2/massutil/ccache"
	"massnet.org/sha2/sumfile"
)

func (a *app) newSumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sum [file...]",
		Short: "Print checksums of files, standard input when none or - is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSum(cmd, args)
		},
	}
	addAlgoFlags(cmd)
	return cmd
}

func addAlgoFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(config.KeyAlgorithms, "a", config.DefaultAlgorithms, "comma separated algorithms: "+algorithmNames())
	cmd.Flags().Bool(config.KeyTag, false, "create a BSD-style checksum")
}

func algorithmNames() string {
	var names []string
	for _, algo := range sumfile.Algorithms() {
		names = append(names, algo.Name())
	}
	return strings.Join(names, ", ")
}

func (a *app) format() sumfile.Format {
	if a.config.Sum.Tag {
		return sumfile.FormatBSD
	}
	return sumfile.FormatGNU
}

func (a *app) newHasher() (*sumfile.Hasher, error) {
	opts := sumfile.Options{
		Workers:     a.config.Sum.Workers,
		MaxFileSize: a.config.Sum.MaxFileSize,
	}
	if a.config.Sum.CacheSize > 0 {
		opts.Cache = ccache.NewDigestCache(a.config.Sum.CacheSize)
	}
	return sumfile.NewHasher(opts)
}

func (a *app) runSum(cmd *cobra.Command, args []string) error {
	algos, err := sumfile.ParseAlgorithms(a.config.Sum.Algorithms)
	if err != nil {
		return err
	}
	hasher, err := a.newHasher()
	if err != nil {
		return err
	}
	defer hasher.Close()

	if len(args) == 0 {
		args = []string{sumfile.StdinName}
	}
	var results []sumfile.Result
	for _, group := range splitStdin(args) {
		if group[0] == sumfile.StdinName {
			results = append(results, hasher.SumReader(sumfile.StdinName, cmd.InOrStdin(), algos)...)
			continue
		}
		results = append(results, hasher.SumFiles(context.Background(), group, algos)...)
	}

	logging.VPrint(logging.INFO, "sum finished", logging.LogFormat{"inputs": len(args), "algos": len(algos)})
	return printResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.format(), len(algos), results)
}

// splitStdin breaks args into runs of file paths and single "-" entries,
// keeping their order.
func splitStdin(args []string) [][]string {
	var groups [][]string
	start := 0
	for i, arg := range args {
		if arg != sumfile.StdinName {
			continue
		}
		if i > start {
			groups = append(groups, args[start:i])
		}
		groups = append(groups, args[i:i+1])
		start = i + 1
	}
	if start < len(args) {
		groups = append(groups, args[start:])
	}
	return groups
}

// printResults writes one line per digest and reports each failed input once
// on errOut. results holds one block of perInput entries per input, as
// SumFiles returns them. The returned error carries the code of the first
// failure.
func printResults(out, errOut io.Writer, format sumfile.Format, perInput int, results []sumfile.Result) error {
	var (
		first  error
		failed int
	)
	for start := 0; start < len(results); start += perInput {
		var reported bool
		for _, r := range results[start : start+perInput] {
			if r.Err == nil {
				fmt.Fprintln(out, sumfile.FormatLine(format, r.Algorithm, r.Path, r.Digest))
				continue
			}
			if first == nil {
				first = r.Err
			}
			if !reported {
				fmt.Fprintf(errOut, "sha2sum: %v\n", r.Err)
				reported = true
				failed++
			}
		}
	}
	if first != nil {
		return cerrors.Errorf(cerrors.Code(first), "%d of %d input(s) failed", failed, len(results)/perInput)
	}
	return nil
}

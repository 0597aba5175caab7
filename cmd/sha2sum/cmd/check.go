package cmd

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"
	"massnet.org/sha2/config"
	cerrors "massnet.org/sha2/errors"
	"massnet.org/sha2/sumfile"
)

type checkFlags struct {
	quiet         bool
	status        bool
	ignoreMissing bool
}

func (a *app) newCheckCmd() *cobra.Command {
	var flags checkFlags
	cmd := &cobra.Command{
		Use:   "check <list>...",
		Short: "Verify files against checksum lists, - reads a list from standard input",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args, flags)
		},
	}
	cmd.Flags().StringP(config.KeyAlgorithms, "a", config.DefaultAlgorithms, "algorithms tried first for lines without a tag")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "don't print OK for each successfully verified file")
	cmd.Flags().BoolVar(&flags.status, "status", false, "don't output anything, the exit code shows success")
	cmd.Flags().BoolVar(&flags.ignoreMissing, "ignore-missing", false, "don't fail or report status for missing files")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, lists []string, flags checkFlags) error {
	prefer, err := sumfile.ParseAlgorithms(a.config.Sum.Algorithms)
	if err != nil {
		return err
	}
	hasher, err := a.newHasher()
	if err != nil {
		return err
	}
	defer hasher.Close()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if flags.status {
		out, errOut = ioutil.Discard, ioutil.Discard
	}

	var first error
	for _, list := range lists {
		err := a.checkList(cmd, hasher, list, prefer, flags, out, errOut)
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (a *app) checkList(cmd *cobra.Command, hasher *sumfile.Hasher, list string, prefer []sumfile.Algorithm, flags checkFlags, out, errOut io.Writer) error {
	var r io.Reader
	if list == sumfile.StdinName {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(list)
		if err != nil {
			return cerrors.Wrapf(cerrors.ErrFileOpen, err, "open checksum list %s", list)
		}
		defer f.Close()
		r = f
	}

	report, err := hasher.Check(context.Background(), r, sumfile.CheckOptions{
		Prefer:        prefer,
		IgnoreMissing: flags.ignoreMissing,
	})
	if err != nil {
		return err
	}

	for _, res := range report.Results {
		switch {
		case res.Status == sumfile.StatusOK && flags.quiet:
		case res.Status == sumfile.StatusMissing && flags.ignoreMissing:
		default:
			fmt.Fprintf(out, "%s: %s\n", res.Entry.Path, res.Status)
		}
		if res.Err != nil && !(res.Status == sumfile.StatusMissing && flags.ignoreMissing) {
			fmt.Fprintf(errOut, "sha2sum: %v\n", res.Err)
		}
	}
	if report.BadLines > 0 {
		fmt.Fprintf(errOut, "sha2sum: WARNING: %d line(s) improperly formatted in %s\n", report.BadLines, list)
	}
	if report.Failed > 0 {
		fmt.Fprintf(errOut, "sha2sum: WARNING: %d computed checksum(s) did NOT match in %s\n", report.Failed, list)
	}
	if n := report.Unreadable + report.Missing; n > 0 && !flags.ignoreMissing {
		fmt.Fprintf(errOut, "sha2sum: WARNING: %d listed file(s) could not be read in %s\n", n, list)
	}
	if err := report.Err(); err != nil {
		return cerrors.Wrapf(cerrors.Code(err), err, "%s", list)
	}
	return nil
}

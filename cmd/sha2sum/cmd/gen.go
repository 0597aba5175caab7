package cmd

import (
	"io/ioutil"
	"strings"

	"github.com/spf13/cobra"
	cerrors "massnet.org/sha2/errors"
	"massnet.org/sha2/gen"
	"massnet.org/sha2/logging"
)

func (a *app) newGenCmd() *cobra.Command {
	var (
		output string
		pkg    string
	)
	cmd := &cobra.Command{
		Use:   "gen name=algo:text...",
		Short: "Generate Go source declaring digests of literal strings",
		Long: `Generate Go source declaring one byte array per name=algo:text entry,
for use in go:generate directives:

  //go:generate sha2sum gen -o digests.go -p mypkg Empty=sha256:`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := gen.File{
				Package: pkg,
				Command: "sha2sum gen -p " + pkg + " " + strings.Join(args, " "),
			}
			for _, arg := range args {
				entry, err := gen.ParseEntry(arg)
				if err != nil {
					return err
				}
				file.Entries = append(file.Entries, entry)
			}
			src, err := gen.Source(file)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(src)
				return cerrors.Wrap(cerrors.ErrFileWrite, err, "write source")
			}
			if err := ioutil.WriteFile(output, src, 0644); err != nil {
				return cerrors.Wrapf(cerrors.ErrFileWrite, err, "write %s", output)
			}
			logging.VPrint(logging.INFO, "source generated", logging.LogFormat{
				"file":    output,
				"package": pkg,
				"entries": len(file.Entries),
			})
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, standard output when empty")
	cmd.Flags().StringVarP(&pkg, "package", "p", "main", "package name of the generated file")
	return cmd
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"massnet.org/sha2/config"
	cerrors "massnet.org/sha2/errors"
	"massnet.org/sha2/logging"
)

// flags bound to config keys; a flag set on the command line wins over the
// config file and the environment
var boundFlags = []string{
	config.KeyLogDir,
	config.KeyLogLevel,
	config.KeyWorkers,
	config.KeyAlgorithms,
	config.KeyTag,
}

// app carries the state shared by the subcommands of one root command.
type app struct {
	v               *viper.Viper
	cfgFile         string
	usingConfigFile bool
	config          *config.Config
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)
	defaults := config.DefaultConfig()

	root := &cobra.Command{
		Use:               "sha2sum",
		Short:             "Compute and check SHA-2 message digests",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.DefaultConfigName+".json)")
	root.PersistentFlags().String(config.KeyLogDir, defaults.Log.LogDir, "directory for log files")
	root.PersistentFlags().String(config.KeyLogLevel, defaults.Log.LogLevel, "level of logs (trace, debug, info, warn, error, fatal, panic)")
	root.PersistentFlags().Int(config.KeyWorkers, defaults.Sum.Workers, "number of files hashed in parallel")

	root.AddCommand(
		a.newSumCmd(),
		a.newCheckCmd(),
		a.newStringCmd(),
		a.newGenCmd(),
		newVersionCmd(),
	)
	return root
}

// init loads the config and the logger for the command about to run.
func (a *app) init(cmd *cobra.Command, args []string) error {
	for _, name := range boundFlags {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(name, f); err != nil {
				return cerrors.Wrapf(cerrors.ErrInvalidParameter, err, "bind flag %s", name)
			}
		}
	}

	used, err := config.ReadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.usingConfigFile = used
	if a.config, err = config.LoadConfig(a.v); err != nil {
		return err
	}

	logging.Init(a.config.Log.LogDir, config.DefaultLoggingFilename, a.config.Log.LogLevel, a.config.Log.LogAge, a.config.Log.DisableCPrint)
	logging.VPrint(logging.DEBUG, "command started", logging.LogFormat{
		"command":     cmd.CommandPath(),
		"args":        len(args),
		"config_file": a.usingConfigFile,
		"workers":     a.config.Sum.Workers,
	})
	return nil
}

// Run executes the command line args against a fresh command tree and
// returns the process exit status.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "sha2sum:", err)
		logging.VPrint(logging.ERROR, "command failed", logging.LogFormat{
			"err":  err,
			"code": cerrors.Code(err),
		})
	}
	return cerrors.ExitCode(err)
}

// Execute runs the command line of the process and exits.
func Execute() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	os.Exit(Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

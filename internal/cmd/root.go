package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/adamancini/vsixinstaller/internal/config"
	"github.com/adamancini/vsixinstaller/internal/extension"
	"github.com/adamancini/vsixinstaller/internal/interactive"
	"github.com/adamancini/vsixinstaller/internal/registry"
)

// app holds the process streams, global flags and the factories commands use
// to reach the registry and the extension manager. Tests swap the factories.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	loadConfig func(path string) (*config.Config, string, error)
	newStore   func(cfg *config.Config) registry.Store
	newService func(cfg *config.Config, log *slog.Logger) (extension.Service, error)
	isTerminal func() bool

	version string
	commit  string
	date    string

	// Global flags
	configPath string
	verbose    bool
	quiet      bool
}

func newApp(version, commit, date string) *app {
	return &app{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		loadConfig: config.Resolve,
		newStore:   defaultStore,
		newService: defaultService,
		isTerminal: interactive.IsTerminal,
		version:    version,
		commit:     commit,
		date:       date,
	}
}

// Execute runs the command line in os.Args. Usage problems print the usage
// text to stderr before the error is returned.
func Execute(version, commit, date string) error {
	return newApp(version, commit, date).run(os.Args[1:])
}

func (a *app) run(args []string) error {
	rootCmd := a.newRootCmd()
	rootCmd.SetArgs(translateHelp(args))
	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	err := rootCmd.Execute()
	var uerr *usageError
	if errors.As(err, &uerr) {
		_, _ = fmt.Fprint(a.stderr, uerr.cmd.UsageString())
	}
	return err
}

func (a *app) newRootCmd() *cobra.Command {
	opts := &installOptions{}

	rootCmd := &cobra.Command{
		Use:   "vsixinstaller [<version>] <rootSuffix> <vsixPath>",
		Short: "Install a VSIX extension into an installed copy of Visual Studio",
		Long: `vsixinstaller installs a VSIX package into one installed copy of Visual Studio,
optionally into an isolated configuration selected by its root suffix.

Any installed extension with the same identifier is uninstalled first. When
<version> is omitted the newest installed Visual Studio is used.`,
		Example: `  vsixinstaller Exp MyExtension.vsix
  vsixinstaller 15.0 Exp MyExtension.vsix
  vsixinstaller --vsix MyExtension.vsix --version 16.0`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInstall(cmd, opts, args)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Mirror log output to stderr")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Quiet mode (errors only)")

	rootCmd.Flags().StringVarP(&opts.vsix, "vsix", "f", "", "Path to the VSIX file to install")
	rootCmd.Flags().StringVarP(&opts.version, "version", "v", "", "Visual Studio version to install into (default 14.0 with --vsix)")
	rootCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Ask before replacing an installed extension")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{cmd: cmd, msg: err.Error()}
	})

	rootCmd.AddCommand(a.newVersionsCmd())
	rootCmd.AddCommand(a.newVersionCmd())
	rootCmd.AddCommand(a.newInitCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// usageError is a command-line mistake; the usage text accompanies it.
type usageError struct {
	cmd *cobra.Command
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// translateHelp maps the DOS-style help switches onto --help.
func translateHelp(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		switch arg {
		case "-?", "/?":
			out[i] = "--help"
		default:
			out[i] = arg
		}
	}
	return out
}

func defaultStore(cfg *config.Config) registry.Store {
	if len(cfg.Installations) > 0 {
		return registry.FromInstallations(cfg.RegistryNamespace, cfg.Installations)
	}
	return registry.NewRegistryStore()
}

func defaultService(cfg *config.Config, log *slog.Logger) (extension.Service, error) {
	return extension.NewHostService(extension.HostOptions{
		LockDir:        cfg.LockDir,
		ExtensionsRoot: cfg.ExtensionsRoot,
		Logger:         log,
	})
}

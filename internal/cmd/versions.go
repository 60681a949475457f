package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adamancini/vsixinstaller/internal/locator"
	"github.com/adamancini/vsixinstaller/internal/output"
)

// installationList renders detected installations, newest last.
type installationList []locator.Installation

func (l installationList) RenderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, inst := range l {
		exe := inst.ExePath
		if exe == "" {
			exe = "(no executable registered)"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", inst.Version, exe); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (a *app) newVersionsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List installed Visual Studio versions",
		Long: `List the Visual Studio versions registered on this machine, in ascending
order, with the path of each devenv.exe.

Examples:
  vsixinstaller versions
  vsixinstaller versions -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVersions(format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format: text, json, yaml")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (a *app) runVersions(format string) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	s, err := a.openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	installs, err := a.locator(s).Installations()
	if err != nil {
		return err
	}
	if len(installs) == 0 {
		return locator.ErrNoInstallations
	}

	return output.NewWriter(a.stdout, f).Write(installationList(installs))
}

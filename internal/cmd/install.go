package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adamancini/vsixinstaller/internal/extension"
	"github.com/adamancini/vsixinstaller/internal/installer"
	"github.com/adamancini/vsixinstaller/internal/interactive"
	"github.com/adamancini/vsixinstaller/internal/types"
)

type installOptions struct {
	vsix        string
	version     string
	interactive bool
}

// installRequest is the normalized form of both command-line shapes.
type installRequest struct {
	// version is empty when the newest installation should be used.
	version    string
	rootSuffix string
	vsixPath   string
	// flagForm is set for --vsix invocations, which fall back to the
	// configured default version rather than auto-detection.
	flagForm bool
}

// parseInstallArgs accepts either --vsix with no positionals, or
// [<version>] <rootSuffix> <vsixPath>.
func parseInstallArgs(cmd *cobra.Command, opts *installOptions, args []string) (installRequest, error) {
	if opts.vsix != "" {
		if len(args) > 0 {
			return installRequest{}, &usageError{cmd: cmd, msg: "positional arguments cannot be combined with --vsix"}
		}
		return installRequest{version: opts.version, vsixPath: opts.vsix, flagForm: true}, nil
	}

	switch len(args) {
	case 2:
		return installRequest{version: opts.version, rootSuffix: args[0], vsixPath: args[1]}, nil
	case 3:
		if opts.version != "" {
			return installRequest{}, &usageError{cmd: cmd, msg: "version given both as --version and as an argument"}
		}
		return installRequest{version: args[0], rootSuffix: args[1], vsixPath: args[2]}, nil
	case 0:
		return installRequest{}, &usageError{cmd: cmd, msg: "a VSIX file is required"}
	default:
		return installRequest{}, &usageError{cmd: cmd, msg: fmt.Sprintf("expected 2 or 3 arguments, got %d", len(args))}
	}
}

func (a *app) runInstall(cmd *cobra.Command, opts *installOptions, args []string) error {
	req, err := parseInstallArgs(cmd, opts, args)
	if err != nil {
		return err
	}

	if info, err := os.Stat(req.vsixPath); err != nil || info.IsDir() {
		return fmt.Errorf("cannot find VSIX file %s", req.vsixPath)
	}

	s, err := a.openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if !strings.EqualFold(filepath.Ext(req.vsixPath), types.VSIXExtension) {
		s.log.Warn("package does not have a .vsix extension", "path", req.vsixPath)
	}

	if req.flagForm && req.version == "" {
		req.version = s.cfg.DefaultVersion
	}

	inst, err := a.locator(s).Resolve(req.version)
	if err != nil {
		return err
	}
	s.log.Info("resolved installation", "version", inst.Version, "exe", inst.ExePath, "root_suffix", req.rootSuffix)

	svc, err := a.newService(s.cfg, s.log)
	if err != nil {
		return err
	}

	pkg, err := svc.ParsePackage(req.vsixPath)
	if err != nil {
		return err
	}

	progress := a.progress()
	_, _ = fmt.Fprintf(progress, "Installing %s version %s\n", pkg.Name, pkg.Version)

	instOpts := []installer.Option{installer.WithLogger(s.log)}
	if opts.interactive {
		if a.isTerminal() {
			prompter := interactive.NewPrompterWithIO(a.stdin, a.stderr)
			instOpts = append(instOpts, installer.WithConfirm(prompter.ConfirmReplace))
		} else {
			s.log.Warn("--interactive ignored: stdin is not a terminal")
		}
	}

	target := extension.Target{
		ExePath:    inst.ExePath,
		RootSuffix: req.rootSuffix,
		Version:    inst.Version,
	}
	res, err := installer.New(svc, progress, instOpts...).Install(target, pkg)
	if err != nil {
		return err
	}

	s.log.Info("install complete", "id", res.Package.ID, "change", res.Change, "scope", res.Scope)
	return nil
}

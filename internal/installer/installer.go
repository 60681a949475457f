// Package installer sequences the extension-manager calls that replace or
// install one VSIX inside a settings scope.
package installer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/adamancini/vsixinstaller/internal/extension"
	"github.com/adamancini/vsixinstaller/internal/types"
)

// Change describes how the new package relates to what was installed.
type Change string

const (
	ChangeInstall   Change = "install"
	ChangeUpgrade   Change = "upgrade"
	ChangeReinstall Change = "reinstall"
	ChangeDowngrade Change = "downgrade"
	// ChangeReplace is used when the installed version cannot be compared.
	ChangeReplace Change = "replace"
)

// ConfirmFunc is asked before an installed extension is replaced. Returning
// false aborts the run without touching the scope.
type ConfirmFunc func(installed *extension.Installed, pkg *extension.Package, change Change) bool

// Result reports what Install did.
type Result struct {
	Package  *extension.Package   `json:"package" yaml:"package"`
	Replaced *extension.Installed `json:"replaced,omitempty" yaml:"replaced,omitempty"`
	Change   Change               `json:"change" yaml:"change"`
	Scope    types.InstallScope   `json:"scope" yaml:"scope"`
}

// Installer orchestrates one install against an extension.Service.
type Installer struct {
	svc     extension.Service
	out     io.Writer
	log     *slog.Logger
	confirm ConfirmFunc
}

// Option configures an Installer.
type Option func(*Installer)

// WithConfirm sets a hook consulted before an existing extension is removed.
func WithConfirm(fn ConfirmFunc) Option {
	return func(i *Installer) { i.confirm = fn }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(i *Installer) { i.log = log }
}

// New creates an Installer. Progress messages are written to out.
func New(svc extension.Service, out io.Writer, opts ...Option) *Installer {
	i := &Installer{
		svc: svc,
		out: out,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.out == nil {
		i.out = io.Discard
	}
	return i
}

// DeclinedError is returned when the confirm hook rejects a replacement.
type DeclinedError struct {
	Installed *extension.Installed
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("not replacing installed %s version %s", e.Installed.Name, e.Installed.Version)
}

// Install opens the scope for target, uninstalls any extension sharing the
// package identifier, then installs pkg for the current user. The scope is
// closed on every path. Any failure aborts the whole operation.
func (i *Installer) Install(target extension.Target, pkg *extension.Package) (res *Result, err error) {
	scope, err := i.svc.OpenScope(target)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings for %s: %w", target.ExePath, err)
	}
	defer func() {
		if cerr := scope.Close(); cerr != nil {
			i.log.Warn("failed to release extension scope", "error", cerr)
			if err == nil {
				err = fmt.Errorf("failed to release settings scope: %w", cerr)
				res = nil
			}
		}
	}()

	res = &Result{Package: pkg, Change: ChangeInstall, Scope: types.InstallScopeUser}

	installed, found, err := scope.FindInstalled(pkg.ID)
	if err != nil {
		return nil, err
	}

	if found {
		res.Replaced = installed
		res.Change = classify(installed, pkg)
		i.log.Info("extension already installed",
			"id", installed.ID, "installed_version", installed.Version,
			"new_version", pkg.Version, "change", res.Change)

		if i.confirm != nil && !i.confirm(installed, pkg, res.Change) {
			return nil, &DeclinedError{Installed: installed}
		}

		fmt.Fprintf(i.out, "Extension %s version %s already installed, uninstalling first.\n",
			installed.Name, installed.Version)
		if err := scope.Uninstall(installed); err != nil {
			return nil, err
		}
	}

	if err := scope.Install(pkg, res.Scope.PerMachine()); err != nil {
		return nil, err
	}

	i.log.Info("extension installed", "id", pkg.ID, "version", pkg.Version,
		"root_suffix", target.RootSuffix, "exe", target.ExePath)
	return res, nil
}

func classify(installed *extension.Installed, pkg *extension.Package) Change {
	c, err := extension.CompareVersions(pkg.Version, installed.Version)
	if err != nil {
		return ChangeReplace
	}
	switch {
	case c > 0:
		return ChangeUpgrade
	case c < 0:
		return ChangeDowngrade
	}
	return ChangeReinstall
}

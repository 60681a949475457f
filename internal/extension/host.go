package extension

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/adamancini/vsixinstaller/internal/types"
)

// DefaultLockTimeout bounds how long OpenScope waits for another process
// holding the same scope.
const DefaultLockTimeout = 30 * time.Second

// HostOptions configures a HostService.
type HostOptions struct {
	// Runner executes VSIXInstaller.exe. Defaults to DefaultCommandRunner.
	Runner CommandRunner
	// LockDir holds scope lock files. Defaults to <user cache>/vsixinstaller/locks.
	LockDir string
	// ExtensionsRoot is the parent of the per-version user stores.
	// Defaults to %LOCALAPPDATA%\Microsoft\VisualStudio.
	ExtensionsRoot string
	// LockTimeout defaults to DefaultLockTimeout.
	LockTimeout time.Duration
	Logger      *slog.Logger
}

// HostService drives the IDE's own VSIXInstaller.exe and reads the per-user
// extension store to find installed extensions.
type HostService struct {
	runner         CommandRunner
	lockDir        string
	extensionsRoot string
	lockTimeout    time.Duration
	log            *slog.Logger
}

// NewHostService creates a HostService, filling defaults for unset options.
func NewHostService(opts HostOptions) (*HostService, error) {
	h := &HostService{
		runner:         opts.Runner,
		lockDir:        opts.LockDir,
		extensionsRoot: opts.ExtensionsRoot,
		lockTimeout:    opts.LockTimeout,
		log:            opts.Logger,
	}
	if h.runner == nil {
		h.runner = &DefaultCommandRunner{}
	}
	if h.log == nil {
		h.log = slog.New(slog.DiscardHandler)
	}
	if h.lockTimeout <= 0 {
		h.lockTimeout = DefaultLockTimeout
	}
	if h.lockDir == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get cache dir: %w", err)
		}
		h.lockDir = filepath.Join(cacheDir, "vsixinstaller", "locks")
	}
	if h.extensionsRoot == "" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			cacheDir, err := os.UserCacheDir()
			if err != nil {
				return nil, fmt.Errorf("failed to determine LOCALAPPDATA: %w", err)
			}
			localAppData = cacheDir
		}
		h.extensionsRoot = filepath.Join(localAppData, "Microsoft", "VisualStudio")
	}
	return h, nil
}

// ParsePackage implements Service.
func (h *HostService) ParsePackage(path string) (*Package, error) {
	return LoadPackage(path)
}

// OpenScope implements Service. It takes an exclusive lock on the
// (executable, root suffix) pair that is held until Close.
func (h *HostService) OpenScope(target Target) (Scope, error) {
	if target.ExePath == "" {
		return nil, errors.New("no IDE executable path given")
	}

	installer := filepath.Join(exeDir(target.ExePath), types.VSIXInstallerExe)
	if _, err := os.Stat(installer); err != nil {
		return nil, fmt.Errorf("cannot find %s next to %s", types.VSIXInstallerExe, target.ExePath)
	}

	lock, err := h.acquireLock(target)
	if err != nil {
		return nil, err
	}

	s := &hostScope{
		host:      h,
		target:    target,
		installer: installer,
		storeDir:  filepath.Join(h.extensionsRoot, target.Version+target.RootSuffix, "Extensions"),
		lock:      lock,
	}
	h.log.Debug("opened extension scope",
		"exe", target.ExePath, "root_suffix", target.RootSuffix, "store", s.storeDir)
	return s, nil
}

// acquireLock serializes scopes across processes. The lock file name is a
// hash of the case-folded target so any spelling of the same path collides.
func (h *HostService) acquireLock(target Target) (*flock.Flock, error) {
	if err := os.MkdirAll(h.lockDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	sum := sha256.Sum256([]byte(strings.ToLower(target.ExePath) + "|" + strings.ToLower(target.RootSuffix)))
	lockFile := filepath.Join(h.lockDir, hex.EncodeToString(sum[:8])+".lock")

	ctx, cancel := context.WithTimeout(context.Background(), h.lockTimeout)
	defer cancel()

	fileLock := flock.New(lockFile)
	locked, err := fileLock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire extension scope lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire extension scope lock (timeout)")
	}
	return fileLock, nil
}

// exeDir returns the directory of an executable path using either separator,
// since registry paths are Windows paths regardless of the host.
func exeDir(exe string) string {
	i := strings.LastIndexAny(exe, `\/`)
	if i < 0 {
		return "."
	}
	return exe[:i]
}

type hostScope struct {
	host      *HostService
	target    Target
	installer string
	storeDir  string
	lock      *flock.Flock
	closed    bool
}

// FindInstalled implements Scope by scanning the per-user store for a
// manifest with a matching identifier.
func (s *hostScope) FindInstalled(id string) (*Installed, bool, error) {
	if s.closed {
		return nil, false, ErrScopeClosed
	}

	var found *Installed
	err := filepath.WalkDir(s.storeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.storeDir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.EqualFold(d.Name(), types.ManifestFileName) {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		pkg, perr := ReadManifest(f)
		f.Close()
		if perr != nil {
			s.host.log.Warn("skipping unreadable manifest", "path", path, "error", perr)
			return nil
		}

		if strings.EqualFold(pkg.ID, id) {
			found = &Installed{ID: pkg.ID, Name: pkg.Name, Version: pkg.Version, Dir: filepath.Dir(path)}
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to scan extension store %s: %w", s.storeDir, err)
	}

	return found, found != nil, nil
}

// Uninstall implements Scope.
func (s *hostScope) Uninstall(ext *Installed) error {
	if s.closed {
		return ErrScopeClosed
	}

	args := append(s.baseArgs(), "/uninstall:"+ext.ID)
	if err := s.run(args); err != nil {
		return fmt.Errorf("failed to uninstall %s: %w", ext.ID, err)
	}
	return nil
}

// Install implements Scope.
func (s *hostScope) Install(pkg *Package, perMachine bool) error {
	if s.closed {
		return ErrScopeClosed
	}

	args := s.baseArgs()
	if perMachine {
		args = append(args, "/admin")
	}
	args = append(args, pkg.Path)

	if err := s.run(args); err != nil {
		return fmt.Errorf("failed to install %s: %w", pkg.ID, err)
	}
	return nil
}

// Close implements Scope.
func (s *hostScope) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.host.log.Debug("released extension scope", "exe", s.target.ExePath, "root_suffix", s.target.RootSuffix)
	return s.lock.Unlock()
}

func (s *hostScope) baseArgs() []string {
	args := []string{"/quiet"}
	if s.target.RootSuffix != "" {
		args = append(args, "/rootSuffix:"+s.target.RootSuffix)
	}
	return args
}

// run executes VSIXInstaller.exe. The full output goes to the log; the
// returned error stays on one line.
func (s *hostScope) run(args []string) error {
	s.host.log.Info("running installer", "command", s.installer, "args", args)

	output, err := s.host.runner.Run(s.installer, args...)
	if err != nil {
		s.host.log.Error("installer failed", "args", args, "error", err, "output", string(output))
		if line := lastLine(output); line != "" {
			return fmt.Errorf("%w: %s", err, line)
		}
		return err
	}

	s.host.log.Debug("installer succeeded", "output", string(output))
	return nil
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

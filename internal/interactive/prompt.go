// Package interactive provides interactive prompts for user confirmation.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/adamancini/vsixinstaller/internal/extension"
	"github.com/adamancini/vsixinstaller/internal/installer"
)

// Response represents the user's response to a prompt.
type Response int

const (
	ResponseYes Response = iota // Proceed
	ResponseNo                  // Decline
)

// Prompter asks yes/no questions on a line-oriented stream.
type Prompter struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewPrompterWithIO creates a prompter with custom input/output (for testing).
func NewPrompterWithIO(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

// IsTerminal checks if stdin is a terminal (TTY).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// prompt displays a question and reads the response. Anything other than
// an explicit yes, including end of input, declines.
func (p *Prompter) prompt(format string, args ...interface{}) Response {
	_, _ = fmt.Fprintf(p.out, format, args...)
	_, _ = fmt.Fprint(p.out, " [y/N] ")

	if !p.scanner.Scan() {
		_, _ = fmt.Fprintln(p.out)
		return ResponseNo
	}

	switch strings.ToLower(strings.TrimSpace(p.scanner.Text())) {
	case "y", "yes":
		return ResponseYes
	default:
		return ResponseNo
	}
}

// ConfirmReplace asks whether an installed extension may be replaced.
// It satisfies installer.ConfirmFunc.
func (p *Prompter) ConfirmReplace(installed *extension.Installed, pkg *extension.Package, change installer.Change) bool {
	verb := "Replace"
	switch change {
	case installer.ChangeUpgrade:
		verb = "Upgrade"
	case installer.ChangeDowngrade:
		verb = "Downgrade"
	case installer.ChangeReinstall:
		verb = "Reinstall"
	}
	return p.prompt("%s %s %s with %s?", verb, installed.Name, installed.Version, pkg.Version) == ResponseYes
}

package interactive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/adamancini/vsixinstaller/internal/extension"
	"github.com/adamancini/vsixinstaller/internal/installer"
)

func TestPrompterResponses(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Response
	}{
		{"yes short", "y\n", ResponseYes},
		{"yes long", "YES\n", ResponseYes},
		{"no", "n\n", ResponseNo},
		{"empty defaults to no", "\n", ResponseNo},
		{"garbage defaults to no", "maybe\n", ResponseNo},
		{"eof defaults to no", "", ResponseNo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := &bytes.Buffer{}
			p := NewPrompterWithIO(strings.NewReader(tt.input), output)

			if got := p.prompt("Proceed?"); got != tt.want {
				t.Errorf("prompt() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(output.String(), "Proceed? [y/N]") {
				t.Errorf("output = %q", output.String())
			}
		})
	}
}

func TestConfirmReplace(t *testing.T) {
	installed := &extension.Installed{ID: "A", Name: "Contoso Tools", Version: "1.0"}
	pkg := &extension.Package{ID: "A", Version: "2.0"}

	output := &bytes.Buffer{}
	p := NewPrompterWithIO(strings.NewReader("y\n"), output)

	if !p.ConfirmReplace(installed, pkg, installer.ChangeUpgrade) {
		t.Error("ConfirmReplace() should accept 'y'")
	}
	if !strings.Contains(output.String(), "Upgrade Contoso Tools 1.0 with 2.0?") {
		t.Errorf("output = %q", output.String())
	}
}

func TestConfirmReplaceSatisfiesConfirmFunc(t *testing.T) {
	p := NewPrompterWithIO(strings.NewReader("n\n"), &bytes.Buffer{})

	var fn installer.ConfirmFunc = p.ConfirmReplace
	if fn(&extension.Installed{}, &extension.Package{}, installer.ChangeReplace) {
		t.Error("ConfirmReplace() should decline 'n'")
	}
}

package types

import (
	"testing"
)

func TestInstallScopeValidate(t *testing.T) {
	tests := []struct {
		name    string
		scope   InstallScope
		wantErr bool
	}{
		{"user valid", InstallScopeUser, false},
		{"machine valid", InstallScopeMachine, false},
		{"empty invalid", "", true},
		{"invalid value", "global", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scope.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("InstallScope.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInstallScopePerMachine(t *testing.T) {
	if InstallScopeUser.PerMachine() {
		t.Error("user.PerMachine() should be false")
	}
	if !InstallScopeMachine.PerMachine() {
		t.Error("machine.PerMachine() should be true")
	}
}

package locator

import "testing"

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		equal string // a canonical spelling that must compare equal
	}{
		{"14.0", true, "14"},
		{"14", true, "14.0"},
		{" 15.0 ", true, "15"},
		{"+12.0", true, "12"},
		{"12.0-", true, "-12"},
		{"1,000.5", true, "1000.5"},
		{"14.", true, "14"},
		{".5", true, "0.5"},
		{"16.0_5f1c2a3b", false, ""},
		{"abc", false, ""},
		{"", false, ""},
		{"1.2.3", false, ""},
		{",14", false, ""},
		{"14.0,5", false, ""},
		{"+14-", false, ""},
		{"Debugger", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, ok := ParseVersion(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseVersion(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if v.Name != tt.input {
				t.Errorf("Name = %q, want %q", v.Name, tt.input)
			}
			other, _ := ParseVersion(tt.equal)
			if v.Compare(other) != 0 {
				t.Errorf("ParseVersion(%q) != %q", tt.input, tt.equal)
			}
		})
	}
}

func TestVersionCompareIsNumeric(t *testing.T) {
	// Decimal ordering, not dotted-component ordering.
	a, _ := ParseVersion("14.10")
	b, _ := ParseVersion("14.9")
	if a.Compare(b) >= 0 {
		t.Error("14.10 should sort before 14.9 as a decimal")
	}

	c, _ := ParseVersion("9.0")
	d, _ := ParseVersion("10.0")
	if c.Compare(d) >= 0 {
		t.Error("9.0 should sort before 10.0")
	}
}

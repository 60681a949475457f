package extension

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0.0", 0},
		{"1.0.0.4", "1.0.0.5", -1},
		{"1.2.0.0", "1.1.9.9", 1},
		{"2.0", "10.0", -1},
		{"1.0.0.1", "1.0.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			got, err := CompareVersions(tt.a, tt.b)
			if err != nil {
				t.Fatalf("CompareVersions() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CompareVersions(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareVersionsInvalid(t *testing.T) {
	if _, err := CompareVersions("1.0.0.x", "1.0"); err == nil {
		t.Error("expected error for non-numeric revision")
	}
	if _, err := CompareVersions("1.0", "banana"); err == nil {
		t.Error("expected error for non-version string")
	}
}

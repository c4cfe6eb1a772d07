package utils

import (
	"regexp"
	"testing"
)

var joinCodePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

func TestGenerateJoinCode(t *testing.T) {
	tests := []struct {
		name       string
		seed       string
		wantPrefix string
	}{
		{name: "name seed", seed: "Budi", wantPrefix: "BUD"},
		{name: "short seed padded", seed: "Al", wantPrefix: "AL"},
		{name: "empty seed", seed: ""},
		{name: "non letters ignored", seed: "4x 9y!z", wantPrefix: "XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := GenerateJoinCode(tt.seed)
			if !joinCodePattern.MatchString(code) {
				t.Fatalf("GenerateJoinCode(%q) = %q, want three letters and three digits", tt.seed, code)
			}
			if tt.wantPrefix != "" && code[:len(tt.wantPrefix)] != tt.wantPrefix {
				t.Errorf("GenerateJoinCode(%q) = %q, want prefix %q", tt.seed, code, tt.wantPrefix)
			}
		})
	}
}

package utils

import "testing"

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice", "bob_99", "A1ice", "x2z"}
	for _, u := range valid {
		if err := ValidateUsername(u); err != nil {
			t.Errorf("ValidateUsername(%q): unexpected error %v", u, err)
		}
	}

	invalid := []string{"ab", "", "way_too_long_username_here", "_alice", "al ice", "al!ce"}
	for _, u := range invalid {
		if err := ValidateUsername(u); err == nil {
			t.Errorf("ValidateUsername(%q): expected error", u)
		}
	}
}

func TestNormalizeUsername(t *testing.T) {
	if got := NormalizeUsername("  AlIcE "); got != "alice" {
		t.Errorf("NormalizeUsername: got %q, want %q", got, "alice")
	}
}

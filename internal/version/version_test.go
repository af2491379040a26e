package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	// Save original values
	origVersion := Version
	origCommit := Commit
	t.Cleanup(func() {
		Version = origVersion
		Commit = origCommit
	})

	t.Run("without commit", func(t *testing.T) {
		Version = "1.2.3"
		Commit = "unknown"
		if got := Info(); got != "1.2.3" {
			t.Errorf("Info() = %q, want 1.2.3", got)
		}
	})

	t.Run("with commit", func(t *testing.T) {
		Version = "1.2.3"
		Commit = "abcdef1234567890"
		if got := Info(); got != "1.2.3 (abcdef1)" {
			t.Errorf("Info() = %q, want 1.2.3 (abcdef1)", got)
		}
	})
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.Contains(full, "firloc version") {
		t.Errorf("Full() should contain product name: %q", full)
	}
	if !strings.Contains(full, "Commit:") || !strings.Contains(full, "Built:") {
		t.Errorf("Full() should contain commit and build date: %q", full)
	}
}

package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestRunFindRequiresExactlyOneSelector(t *testing.T) {
	viper.Set("db", filepath.Join(t.TempDir(), "aucat.db"))
	defer viper.Reset()

	// Neither flag set
	if err := runFind(findCmd, nil); err == nil {
		t.Error("expected error when no selector flag is set")
	}

	// Both flags set
	findCmd.Flags().Set("artist", "smith")
	findCmd.Flags().Set("hash", strings.Repeat("a", 64))
	defer func() {
		findCmd.Flags().Set("artist", "")
		findCmd.Flags().Set("hash", "")
	}()

	if err := runFind(findCmd, nil); err == nil {
		t.Error("expected error when both selector flags are set")
	}
}

func TestRunFindUnknownHash(t *testing.T) {
	viper.Set("db", filepath.Join(t.TempDir(), "aucat.db"))
	defer viper.Reset()

	findCmd.Flags().Set("hash", strings.Repeat("a", 64))
	defer findCmd.Flags().Set("hash", "")

	// Unknown hash prints "not found" and succeeds
	if err := runFind(findCmd, nil); err != nil {
		t.Errorf("expected clean exit for unknown hash, got %v", err)
	}
}

// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

func TestSetHomeDir_RestoresOriginal(t *testing.T) {
	envVar := "HOME"
	if runtime.GOOS == "windows" {
		envVar = "USERPROFILE"
	}

	tmpDir := t.TempDir()
	original := os.Getenv(envVar)

	cleanup := SetHomeDir(t, tmpDir)
	if got := os.Getenv(envVar); got != tmpDir {
		t.Errorf("%s = %q, want %q", envVar, got, tmpDir)
	}

	cleanup()
	if got := os.Getenv(envVar); got != original {
		t.Errorf("After cleanup, %s = %q, want %q", envVar, got, original)
	}
}

// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform config directory when set.
// os.UserHomeDir() does not honour HOME on every platform, so tests use this instead.
var configDirOverride string

// Reset clears test overrides.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride points ConfigDir at dir. Intended for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

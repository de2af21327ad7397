// SPDX-License-Identifier: MPL-2.0

// Package config handles packloader configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/packloader/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/packloader/config.cue on macOS,
// %APPDATA%\packloader\config.cue on Windows), falling back to ./config.cue. Every key can
// be overridden through PACKLOADER_* environment variables, e.g. PACKLOADER_EXTRACT_CACHE_DIR.
//
// Files are validated against an embedded CUE schema (config_schema.cue) before they are
// merged over the defaults.
package config

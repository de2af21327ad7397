// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for packloader.
//
// The root command carries the global flags (--config, --dir, --workers,
// --verbose); every subcommand loads the configuration through the App and
// runs one package load.
package cmd

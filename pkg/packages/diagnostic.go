// SPDX-License-Identifier: MPL-2.0

package packages

const (
	// SeverityInfo marks a diagnostic that needs no action.
	SeverityInfo Severity = "info"
	// SeverityWarning indicates a recoverable load warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates content that was dropped from the load.
	SeverityError Severity = "error"
)

// Diagnostic codes.
const (
	CodeArchiveOpenFailed   = "archive_open_failed"
	CodeManifestInvalid     = "manifest_invalid"
	CodePackageIDCollision  = "package_id_collision"
	CodePrerequisiteCycle   = "prerequisite_cycle"
	CodeMissingPrerequisite = "missing_prerequisite"
	CodeMissingField        = "missing_field"
	CodeDuplicateDefinition = "duplicate_definition"
	CodeDefinitionInvalid   = "definition_invalid"
	CodeOverrideInvalid     = "override_invalid"
	CodeOrphanOverride      = "orphan_override"
	CodeConfigMissing       = "config_missing"
	CodeExtractFailed       = "extract_failed"
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// Diagnostic is a structured, non-fatal load problem. Diagnostics are
	// returned to callers instead of being written to stderr so the CLI layer
	// decides how to render them.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity
		// Code is a machine-readable identifier (e.g., "missing_prerequisite").
		Code string
		// Message is the human-readable description.
		Message string
		// Package is the id of the package involved (optional).
		Package string
		// Path is the archive path involved (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	s := string(d.Severity) + " [" + d.Code + "] " + d.Message
	if d.Package != "" {
		s += " (package " + d.Package + ")"
	}
	return s
}

// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"errors"
	"fmt"

	"github.com/bee2/packloader/pkg/proptree"
)

var (
	// ErrInvalidPackage is the sentinel error wrapped by InvalidPackageError.
	ErrInvalidPackage = errors.New("invalid package")
	// ErrMissingPrerequisite is the sentinel error wrapped by MissingPrerequisiteError.
	ErrMissingPrerequisite = errors.New("missing prerequisite")
	// ErrDuplicateDefinition is the sentinel error wrapped by DuplicateDefinitionError.
	ErrDuplicateDefinition = errors.New("duplicate definition")
	// ErrMissingField is returned when a required manifest field is absent.
	ErrMissingField = proptree.ErrMissingField
)

type (
	// InvalidPackageError is returned when an archive lacks its manifest or
	// a definition references a resource the archive does not contain.
	InvalidPackageError struct {
		// Archive is the path of the offending archive.
		Archive string
		// Resource is the archive entry involved, if any.
		Resource string
		// Reason is a short human-readable explanation.
		Reason string
		// Cause is the underlying error (optional).
		Cause error
	}

	// MissingPrerequisiteError is returned when a package requires a package
	// that is not registered.
	MissingPrerequisiteError struct {
		Package      string
		Prerequisite string
	}

	// DuplicateDefinitionError describes a second original definition of an id.
	DuplicateDefinitionError struct {
		Category Category
		ID       string
		// Package is the package whose definition was dropped.
		Package string
		// Kept is the package whose definition is retained.
		Kept string
	}
)

// Error implements the error interface.
func (e *InvalidPackageError) Error() string {
	msg := fmt.Sprintf("invalid package %s", e.Archive)
	if e.Resource != "" {
		msg += fmt.Sprintf(" (%s)", e.Resource)
	}
	msg += ": " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns ErrInvalidPackage and the cause for errors.Is() compatibility.
func (e *InvalidPackageError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidPackage}
	}
	return []error{ErrInvalidPackage, e.Cause}
}

// Error implements the error interface.
func (e *MissingPrerequisiteError) Error() string {
	return fmt.Sprintf("package %q required for %q - ignoring package", e.Prerequisite, e.Package)
}

// Unwrap returns ErrMissingPrerequisite for errors.Is() compatibility.
func (e *MissingPrerequisiteError) Unwrap() error { return ErrMissingPrerequisite }

// Error implements the error interface.
func (e *DuplicateDefinitionError) Error() string {
	return `ERROR! "` + e.ID + `" defined twice!`
}

// Unwrap returns ErrDuplicateDefinition for errors.Is() compatibility.
func (e *DuplicateDefinitionError) Unwrap() error { return ErrDuplicateDefinition }

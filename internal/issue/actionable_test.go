// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("permission denied")

	tests := []struct {
		name  string
		setup func() *ErrorContext
		check func(t *testing.T, err *ActionableError)
	}{
		{
			name:  "no operation yields nil",
			setup: func() *ErrorContext { return NewErrorContext().WithResource("packages") },
			check: func(t *testing.T, err *ActionableError) {
				t.Helper()
				if err != nil {
					t.Errorf("Build() = %v, want nil", err)
				}
			},
		},
		{
			name: "all fields",
			setup: func() *ErrorContext {
				return NewErrorContext().
					WithOperation("load packages").
					WithResource("./packages").
					WithIssue(PackagesDirNotFoundId).
					WithSuggestion("Pass --dir").
					WithSuggestions("Check permissions", "Set PACKLOADER_PACKAGES_DIR").
					Wrap(cause)
			},
			check: func(t *testing.T, err *ActionableError) {
				t.Helper()
				if err == nil {
					t.Fatal("Build() = nil")
				}
				if err.Error() != "failed to load packages: ./packages: permission denied" {
					t.Errorf("Error() = %q", err.Error())
				}
				if len(err.Suggestions) != 3 || !err.HasSuggestions() {
					t.Errorf("Suggestions = %v", err.Suggestions)
				}
				if !errors.Is(err, cause) {
					t.Error("errors.Is(err, cause) = false")
				}
				if iss := err.CatalogIssue(); iss == nil || iss.Id() != PackagesDirNotFoundId {
					t.Errorf("CatalogIssue() = %v", iss)
				}
			},
		},
		{
			name:  "operation only",
			setup: func() *ErrorContext { return NewErrorContext().WithOperation("dump snapshot") },
			check: func(t *testing.T, err *ActionableError) {
				t.Helper()
				if err.Error() != "failed to dump snapshot" {
					t.Errorf("Error() = %q", err.Error())
				}
				if err.HasSuggestions() || err.CatalogIssue() != nil {
					t.Error("unexpected suggestions or issue")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, tt.setup().Build())
		})
	}
}

func TestErrorContext_BuildIsolated(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("extract resources").WithSuggestion("first")
	first := ctx.Build()
	ctx.WithSuggestion("second")
	if len(first.Suggestions) != 1 {
		t.Errorf("built error shares suggestions with its builder: %v", first.Suggestions)
	}
}

func TestErrorContext_BuildErrorNil(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want untyped nil", err)
	}
}

func TestWrapWithOperation(t *testing.T) {
	t.Parallel()

	if WrapWithOperation(nil, "read config") != nil {
		t.Error("WrapWithOperation(nil) should be nil")
	}
	err := WrapWithOperation(fs.ErrNotExist, "read config")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("wrapped error lost its cause")
	}
	if NewActionableError("read config").Error() != "failed to read config" {
		t.Error("NewActionableError message mismatch")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("zip: not a valid zip file")
	err := NewErrorContext().
		WithOperation("open archive").
		WithResource("broken.zip").
		WithSuggestion("Re-download the package").
		Wrap(WrapWithOperation(inner, "read central directory")).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "• Re-download the package") {
		t.Errorf("Format(false) missing suggestion:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain") {
		t.Errorf("Format(false) should not include the chain:\n%s", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "2. zip: not a valid zip file") {
		t.Errorf("Format(true) chain incomplete:\n%s", verbose)
	}
}

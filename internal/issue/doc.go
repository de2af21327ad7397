// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for the user. Errors may point at an Issue from the catalog, a
// Markdown page rendered with glamour that explains the problem at length.
package issue

// SPDX-License-Identifier: MPL-2.0

// Package proptree provides the ordered property tree used by package manifests
// and their resource files.
//
// A tree is made of named nodes. A node either carries a string value (a leaf)
// or a list of children (a block). Keys may repeat and their order is kept, so a
// manifest can declare several "Style" or "Item" blocks side by side. Name lookups
// are case-insensitive.
//
// The text format is the usual keyvalues layout:
//
//	"ID"   "BEE2_CLEAN"
//	"Name" "Clean Style Pack"
//	"Style"
//		{
//		"ID"     "BEE2_CLEAN"
//		"Folder" "clean"
//		}
//
// Tokens may be quoted or bare, and "//" starts a comment that runs to the end
// of the line.
package proptree

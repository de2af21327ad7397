// SPDX-License-Identifier: MPL-2.0

// Package packages loads content packages and resolves their definitions.
//
// A package is an archive with an info.txt manifest at its root. The manifest
// names the package, lists prerequisite packages and declares content blocks:
// styles, items, quote packs, skyboxes, goo, music and style variables. A load
// runs in fixed stages, each consuming the previous stage's output:
//
//  1. Every archive's manifest is read and the package is registered.
//  2. Each package's definitions are collected. Packages with missing
//     prerequisites are rejected. Duplicate ids are reported.
//  3. Every original definition is parsed into a typed object, then the
//     override definitions for its id are merged onto it in scan order.
//  4. Style base chains are linked and item versions inherit data for every
//     style from the nearest ancestor, or from their default style.
//  5. Optionally, UI and instance resources are extracted to a cache.
//
// Problems scoped to one archive or one definition never abort the load; they
// are returned as Diagnostic values on the Result. Only an unreadable packages
// directory makes LoadDir fail.
package packages

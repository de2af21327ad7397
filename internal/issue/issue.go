// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	PackagesDirNotFoundId Id = iota + 1
	NoPackagesFoundId
	ConfigLoadFailedId
	MissingPrerequisiteId
	DuplicateDefinitionId
	InvalidPackageId
	PrerequisiteCycleId
	ResourceExtractionFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using a glamour style
// ("dark", "light", "notty", ... or a path to a style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	packagesDirNotFoundIssue = &Issue{
		id: PackagesDirNotFoundId,
		mdMsg: `
# Packages directory not found!

The loader could not list the packages directory.

## Things you can try:
- Point the loader at the right directory:
~~~
$ packloader load --dir /path/to/packages
~~~
- Set it once in your configuration:
~~~cue
packages_dir: "/path/to/packages"
~~~
- Or through the environment:
~~~
$ export PACKLOADER_PACKAGES_DIR=/path/to/packages
~~~`,
	}

	noPackagesFoundIssue = &Issue{
		id: NoPackagesFoundId,
		mdMsg: `
# No packages found!

The packages directory exists but holds no ` + "`.zip`" + ` archives.

## Things you can try:
- Copy your package archives into the directory
- Check that the files end in ` + "`.zip`" + `; other files are ignored`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config.cue could not be read or does not match the schema.

## Things you can try:
- Print the effective configuration:
~~~
$ packloader config show
~~~
- Write a fresh default file and edit it:
~~~
$ packloader config init
~~~`,
	}

	missingPrerequisiteIssue = &Issue{
		id: MissingPrerequisiteId,
		mdMsg: `
# A package is missing a prerequisite!

A package lists another package under ` + "`Prerequisites`" + ` that is not installed.
Its content was skipped; everything else loaded normally.

## Things you can try:
- Install the required package into the packages directory
- Inspect the prerequisite graph:
~~~
$ packloader deps
~~~`,
	}

	duplicateDefinitionIssue = &Issue{
		id: DuplicateDefinitionId,
		mdMsg: `
# An id is defined twice!

Two packages define the same id in one category. The first definition wins.

## Things you can try:
- Rename one of the definitions
- Mark the later one as an override:
~~~
"overrideOrig" "1"
~~~`,
	}

	invalidPackageIssue = &Issue{
		id: InvalidPackageId,
		mdMsg: `
# Invalid package!

An archive has no ` + "`info.txt`" + ` manifest, or a definition refers to a file the
archive does not contain. The affected archive or definition was skipped.

## Things you can try:
- Open the archive and check that ` + "`info.txt`" + ` sits at its root
- Check the folder names referenced by ` + "`folder`" + ` and item ` + "`styles`" + ` blocks`,
	}

	prerequisiteCycleIssue = &Issue{
		id: PrerequisiteCycleId,
		mdMsg: `
# Prerequisite cycle detected!

Packages require each other in a loop. Loading still works, but the
dependency order cannot be computed.

## Things you can try:
- Remove one of the ` + "`Prerequisites`" + ` entries forming the loop`,
	}

	resourceExtractionFailedIssue = &Issue{
		id: ResourceExtractionFailedId,
		mdMsg: `
# Resource extraction failed!

Package resources could not be copied into the cache directories.

## Things you can try:
- Check that the cache, images and instances directories are writable
- Run the load again without extraction:
~~~
$ packloader load --extract=false
~~~`,
	}

	issues = map[Id]*Issue{
		packagesDirNotFoundIssue.Id():      packagesDirNotFoundIssue,
		noPackagesFoundIssue.Id():          noPackagesFoundIssue,
		configLoadFailedIssue.Id():         configLoadFailedIssue,
		missingPrerequisiteIssue.Id():      missingPrerequisiteIssue,
		duplicateDefinitionIssue.Id():      duplicateDefinitionIssue,
		invalidPackageIssue.Id():           invalidPackageIssue,
		prerequisiteCycleIssue.Id():        prerequisiteCycleIssue,
		resourceExtractionFailedIssue.Id(): resourceExtractionFailedIssue,
	}
)

// Values returns every catalog issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}

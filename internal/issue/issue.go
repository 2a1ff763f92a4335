// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestParseErrorId
	MalformedSpecifierMapId
	MalformedPatternTargetId
	InvalidLocationId
	InvalidResolutionTypeId
	ScanFailedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // reference documentation for the failing field
	extLinks []HttpLink
}

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

// Render renders the guide as terminal Markdown using the glamour style at
// stylePath ("auto", "dark", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))

	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

const nodePackagesDocs HttpLink = "https://nodejs.org/api/packages.html"

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No package.json found!

The location you gave does not point at a readable package manifest.

## Accepted locations:
1. A directory containing a package.json
2. The path of the package.json file itself
3. A file:// URL of the package.json file

## Things you can try:
- List the current directory's package:
~~~
$ pkgsurface exports .
~~~

- Check for typos in the path and that the file is readable`,
		docLinks: []HttpLink{nodePackagesDocs},
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse package.json!

The manifest is not valid JSON, or its root is not an object.

## Common issues:
- Trailing commas after the last property
- Comments (package.json does not allow them)
- Single quotes instead of double quotes

## Things you can try:
- Check the error message above for the line and column
- Run with verbose mode for the full error chain:
~~~
$ pkgsurface --verbose exports .
~~~`,
	}

	malformedSpecifierMapIssue = &Issue{
		id: MalformedSpecifierMapId,
		mdMsg: `
# Malformed exports or imports field!

The keys of the field cannot be interpreted.

## Rules:
- **exports** keys are either all subpaths ("." or "./...") or all condition names
- **imports** must be an object and every key must start with "#"

## Example:
~~~json
{
  "exports": {
    ".": "./index.js",
    "./features/*": "./src/features/*.js"
  },
  "imports": {
    "#internal/*": "./src/internal/*.js"
  }
}
~~~`,
		docLinks: []HttpLink{nodePackagesDocs + "#subpath-exports", nodePackagesDocs + "#subpath-imports"},
	}

	malformedPatternTargetIssue = &Issue{
		id: MalformedPatternTargetId,
		mdMsg: `
# Wildcard key without wildcard target!

A key containing "*" resolved to a target without "*", so there is nothing to
substitute the matched text into.

## Example:
~~~json
{
  "exports": {
    "./features/*": "./src/features/*.js"
  }
}
~~~

## Things you can try:
- Add "*" to every conditional target of the key
- Or turn the key into a fixed subpath without "*"`,
		docLinks: []HttpLink{nodePackagesDocs + "#subpath-patterns"},
	}

	invalidLocationIssue = &Issue{
		id: InvalidLocationId,
		mdMsg: `
# Invalid package location!

The location must be a non-empty path or a file:// URL. Other URL schemes
(http, https, ...) are not supported.`,
	}

	invalidResolutionTypeIssue = &Issue{
		id: InvalidResolutionTypeId,
		mdMsg: `
# Invalid resolution type!

## Valid types:
- **import**: ESM consumers ("import" and "default" conditions)
- **require**: CommonJS consumers ("require" and "default" conditions)
- **default**: only the "default" condition
- **none**: no type condition at all

## Example:
~~~
$ pkgsurface exports --type require .
~~~`,
		docLinks: []HttpLink{nodePackagesDocs + "#conditional-exports"},
	}

	scanFailedIssue = &Issue{
		id: ScanFailedId,
		mdMsg: `
# Failed to scan the package directory!

Expanding a wildcard target requires walking the package directory, and a
directory could not be read.

## Things you can try:
- Check the permissions of the package directory and its subdirectories
- Run with verbose mode for the failing path:
~~~
$ pkgsurface --verbose exports .
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the pkgsurface configuration file.

## Configuration file locations:
- Linux: ~/.config/pkgsurface/config.cue
- macOS: ~/Library/Application Support/pkgsurface/config.cue
- Windows: %APPDATA%\pkgsurface\config.cue
- Project: ./pkgsurface.cue

## Things you can try:
- Create a default configuration:
~~~
$ pkgsurface config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
type: "require"
environment: "node"
extra_conditions: ["development"]
format: "table"
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to read the package manifest or one of its
directories.

## Things you can try:
- Check file and directory permissions
- Run pkgsurface as the user owning the package`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():       manifestNotFoundIssue,
		manifestParseErrorIssue.Id():     manifestParseErrorIssue,
		malformedSpecifierMapIssue.Id():  malformedSpecifierMapIssue,
		malformedPatternTargetIssue.Id(): malformedPatternTargetIssue,
		invalidLocationIssue.Id():        invalidLocationIssue,
		invalidResolutionTypeIssue.Id():  invalidResolutionTypeIssue,
		scanFailedIssue.Id():             scanFailedIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		permissionDeniedIssue.Id():       permissionDeniedIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	vs := maps.Values(issues)
	slices.SortFunc(vs, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return vs
}

func Get(id Id) *Issue {
	return issues[id]
}

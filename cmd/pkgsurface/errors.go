// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/invowk/pkgsurface/internal/config"
	"github.com/invowk/pkgsurface/internal/filter"
	"github.com/invowk/pkgsurface/internal/issue"
	"github.com/invowk/pkgsurface/pkg/surface"
	"github.com/invowk/pkgsurface/pkg/types"
)

// classifyListError maps a listing failure to its issue and exit code and
// wraps it with suggestions for the user.
func classifyListError(err error, operation, resource string) *ExitError {
	ctx := issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource)
	code := types.ExitFailure

	switch {
	case errors.Is(err, fs.ErrNotExist):
		ctx.WithIssue(issue.ManifestNotFoundId).
			WithSuggestion("Pass the directory that contains package.json, or the manifest itself")
	case errors.Is(err, fs.ErrPermission):
		ctx.WithIssue(issue.PermissionDeniedId).
			WithSuggestion("Check the read permissions of the package directory")
	case errors.Is(err, surface.ErrInvalidManifest):
		ctx.WithIssue(issue.ManifestParseErrorId).
			WithSuggestion("Check that package.json is valid JSON with an object at the top level")
	case errors.Is(err, surface.ErrMalformedSpecifierMap):
		ctx.WithIssue(issue.MalformedSpecifierMapId).
			WithSuggestion(`Use either subpath keys ("./x") or condition names at one level, never both`).
			WithSuggestion(`Start every "imports" key with "#"`)
	case errors.Is(err, surface.ErrMalformedPatternTarget):
		ctx.WithIssue(issue.MalformedPatternTargetId).
			WithSuggestion(`Every target of a wildcard key must contain "*"`)
	case errors.Is(err, types.ErrInvalidManifestLocation):
		ctx.WithIssue(issue.InvalidLocationId).
			WithSuggestion("Use a path or a file:// URL")
		code = types.ExitUsage
	case errors.Is(err, types.ErrInvalidResolutionType):
		ctx.WithIssue(issue.InvalidResolutionTypeId).
			WithSuggestion("Use one of: import, require, default, none")
		code = types.ExitUsage
	case errors.Is(err, types.ErrInvalidConditionName),
		errors.Is(err, config.ErrInvalidOutputFormat),
		errors.Is(err, filter.ErrInvalidPattern):
		code = types.ExitUsage
	default:
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			return &ExitError{Code: exitCodeFor(ae), Err: err}
		}
		ctx.WithIssue(issue.ScanFailedId)
	}

	return &ExitError{Code: code, Err: ctx.Wrap(err).BuildError()}
}

func exitCodeFor(ae *issue.ActionableError) types.ExitCode {
	if ae.IssueId == issue.ConfigLoadFailedId {
		return types.ExitUsage
	}
	return types.ExitFailure
}

// formatErrorForDisplay uses the ActionableError format when available.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderError writes err and, in verbose mode, the guide of its issue.
func renderError(w io.Writer, err error, verbose bool, guideStyle string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))

	if !verbose {
		return
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue() == nil {
		return
	}
	guide, renderErr := ae.Issue().Render(guideStyle)
	if renderErr != nil {
		fmt.Fprintf(w, "%s failed to render guide: %v\n", WarningStyle.Render("Warning:"), renderErr)
		return
	}
	fmt.Fprint(w, guide)
}

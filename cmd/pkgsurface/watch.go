// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/invowk/pkgsurface/internal/watch"
	"github.com/invowk/pkgsurface/pkg/specifier"
)

// runWatchMode lists once, then lists again after every batch of changes in
// the package directory until ctx is canceled. Listing failures are reported
// and watching continues, so a broken manifest can be fixed in place.
func runWatchMode(ctx context.Context, app *App, req *listRequest, clearScreen bool) error {
	_, dir, err := req.location.Resolve()
	if err != nil {
		return classifyListError(err, "watch "+specifier.FieldName(req.isImports), req.location.String())
	}

	relist := func(ctx context.Context) {
		if err := listOnce(ctx, app, req); err != nil {
			renderError(app.stderr, err, req.verbose, app.guideStyle)
		}
	}

	w, err := watch.New(watch.Config{
		BaseDir:     dir,
		Debounce:    req.cfg.Watch.Debounce,
		ClearScreen: clearScreen,
		Stdout:      app.stdout,
		Logger:      req.logger,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(app.stderr, "%s %d change(s), listing again\n", KeyStyle.Render("→"), len(changed))
			relist(ctx)
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	relist(ctx)
	fmt.Fprintf(app.stderr, "%s watching %s (Ctrl+C to stop)\n", KeyStyle.Render("→"), w.BaseDir())
	return w.Run(ctx)
}

package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Faultbox/castle-showcase/internal/config"
	"github.com/Faultbox/castle-showcase/internal/engine/audio"
	"github.com/Faultbox/castle-showcase/internal/logger"
	"github.com/Faultbox/castle-showcase/internal/showcase"
)

func newAssetsCmd(ov *config.Overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "assets",
		Short: "Load every registered asset and report the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(ov, true)
			if err != nil {
				return err
			}
			defer logger.Sync()

			flags, err := memoryFlags()
			if err != nil {
				return err
			}
			app, err := showcase.New(cfg, showcase.Deps{Audio: audio.NewNull(), Flags: flags})
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := loadAll(ctx, app); err != nil {
				return err
			}
			return printSummary(cmd, app)
		},
	}
}

// loadAll drives the App's main loop in real time until loading completes.
func loadAll(ctx context.Context, app *showcase.App) error {
	const frame = 10 * time.Millisecond
	app.Start(ctx)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()
	for {
		if err := app.Frame(time.Since(last)); err != nil {
			return err
		}
		last = time.Now()
		if app.Snapshot().Phase != showcase.PhaseLoading {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func printSummary(cmd *cobra.Command, app *showcase.App) error {
	snap := app.Snapshot()
	failed := make(map[string]bool, len(snap.Failed))
	for _, name := range snap.Failed {
		failed[name] = true
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tPATH\tSTATUS")
	for _, d := range app.Registry().Descriptors() {
		status := "ok"
		switch {
		case failed[d.Name]:
			status = "failed"
		case !loaded(app, d.Name):
			status = "pending"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.Kind, d.Path, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d/%d completed, %d failed, timed out: %v\n",
		snap.Loading.Completed, snap.Loading.Total, len(snap.Failed), snap.Loading.TimedOut)

	hotspots := app.Hotspots()
	disabled := 0
	for _, h := range hotspots {
		if !h.Enabled {
			disabled++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d hotspots, %d disabled\n", len(hotspots), disabled)

	if len(snap.Failed) > 0 || snap.Loading.TimedOut {
		return fmt.Errorf("loading incomplete: %d failed, timed out: %v", len(snap.Failed), snap.Loading.TimedOut)
	}
	return nil
}

func loaded(app *showcase.App, name string) bool {
	_, err := app.Loader().Asset(name)
	return err == nil
}

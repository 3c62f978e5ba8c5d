package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Faultbox/castle-showcase/internal/config"
	"github.com/Faultbox/castle-showcase/internal/engine/audio"
	"github.com/Faultbox/castle-showcase/internal/logger"
	"github.com/Faultbox/castle-showcase/internal/showcase"
	"github.com/Faultbox/castle-showcase/internal/ui"
)

func newTUICmd(ov *config.Overrides) *cobra.Command {
	var withSound bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Walk through the castle in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(ov, false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			factory := func() (*showcase.App, error) {
				if withSound {
					return newApp(cfg)
				}
				return showcase.New(cfg, showcase.Deps{Audio: audio.NewNull()})
			}
			return runTUI(cmd.Context(), factory, ui.NewLocalizer(cfg.UI.Language))
		},
	}
	cmd.Flags().BoolVar(&withSound, "sound", false, "play audio through the speaker")
	return cmd
}

func runTUI(ctx context.Context, factory ui.Factory, loc ui.Localizer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	model, err := ui.NewModel(ctx, factory, loc)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if m, ok := final.(ui.Model); ok && m.App() != nil {
		if cerr := m.App().Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

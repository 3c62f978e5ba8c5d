package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/castle-showcase/internal/config"
	"github.com/Faultbox/castle-showcase/internal/logger"
	"github.com/Faultbox/castle-showcase/internal/storage"
)

func newVisitCmd(ov *config.Overrides) *cobra.Command {
	visit := &cobra.Command{Use: "visit", Short: "Inspect or reset the first-visit flag"}

	withStore := func(fn func(ctx context.Context, s *storage.Store) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(ov, true)
			if err != nil {
				return err
			}
			defer logger.Sync()

			s, err := storage.Open(cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return fn(ctx, s)
		}
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the castle was visited before",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, s *storage.Store) error {
				v, err := s.GetBool(ctx, storage.KeyVisited)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "visited: %v\n", v)
				return nil
			})(cmd, args)
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the visit so the first-visit hint shows again",
		RunE: withStore(func(ctx context.Context, s *storage.Store) error {
			return s.Delete(ctx, storage.KeyVisited)
		}),
	}

	visit.AddCommand(statusCmd, resetCmd)
	return visit
}

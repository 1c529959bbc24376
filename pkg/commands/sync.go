package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"tableflip.dev/today/pkg/auth"
	"tableflip.dev/today/pkg/remote"
	sync "tableflip.dev/today/pkg/sync"
)

func addSync(topLevel *cobra.Command) {
	var follow bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Merge with the remote store; --follow keeps the session live",
		Example: `
today sync
today sync --follow
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, ok := auth.Config{}.UserID()
			if !ok {
				return errors.New("no user configured; set `user` in .today.yaml")
			}

			s, log, err := loadStore()
			if err != nil {
				return err
			}

			path := viper.GetString("remote.path")
			if path == "" {
				return errors.New("no remote configured; set `remote.path` in .today.yaml")
			}
			r, err := remote.OpenBolt(path, log)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			e := sync.New(s, r, log)
			if err := e.Start(ctx, userID); err != nil {
				return err
			}
			log.Info("sync: merged", zap.String("state", e.State().String()))

			if follow {
				if err := e.Follow(ctx); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&follow, "follow", false, "Stay connected and apply live changes until interrupted.")

	topLevel.AddCommand(cmd)
}

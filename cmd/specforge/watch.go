package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/artpar/specforge/app"
	"github.com/artpar/specforge/bootstrap"
	"github.com/artpar/specforge/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate on schema changes and serve the spec API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()

		// Config hot reload only makes sense with a config file present;
		// without one, watch runs on built-in defaults like the other
		// commands.
		var holder *config.Holder
		if _, err := os.Stat(cfgFile); err == nil || rootCmd.PersistentFlags().Changed("config") {
			h, err := config.NewHolder(cfgFile, bootstrap.NewLogger(cfg.Logging))
			if err != nil {
				return err
			}
			holder = h
			cfg = holder.Get()
		}

		a, err := bootstrap.New(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		watcher := app.NewWatcher(a.Generator, cfg.Schemas.Dir, cfg.Generator.Debounce, a.Logger)

		if holder != nil {
			// Generator tuning and the debounce follow config edits;
			// schema and output locations stay fixed for the session.
			holder.OnChange(func(next *config.Config) {
				a.Generator.SetOptions(app.Options{
					MaxDepth:           next.Generator.MaxDepth,
					PromotionThreshold: next.Generator.PromotionThreshold,
					Workers:            next.Generator.Workers,
				})
				watcher.SetDebounce(next.Generator.Debounce)
			})
			if err := holder.WatchFile(); err != nil {
				a.Logger.Warn().Err(err).Msg("config hot reload unavailable")
			}
			defer holder.Stop()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if a.Server != nil {
			go func() {
				if err := a.Server.ListenAndServe(ctx, cfg.Server.Addr()); err != nil && ctx.Err() == nil {
					a.Logger.Error().Err(err).Msg("spec API stopped")
				}
			}()
		}

		return watcher.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

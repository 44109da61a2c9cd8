package main

import (
	"context"

	"hydration-tracker/internal/handler"
	"hydration-tracker/internal/ledger"
	"hydration-tracker/internal/logger"
	"hydration-tracker/internal/service"
	"hydration-tracker/internal/store"
	"hydration-tracker/internal/web"

	"github.com/spf13/cobra"
)

func apiCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "api",
		Short:       "Start the water record REST API",
		Annotations: map[string]string{serverAnnotation: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := cfg.OpenGormDB()
			if db == nil {
				logger.Error("db open failed", "driver", cfg.Database.Driver, "err", err)
				return err
			}
			if err != nil {
				// Keep serving; requests fail until the database is reachable.
				logger.Error("db connect failed", "driver", cfg.Database.Driver, "err", err)
			} else {
				logger.Info("db connected", "driver", cfg.Database.Driver)
			}

			svc := service.NewWaterService(db)
			if err := svc.Migrate(context.Background()); err != nil {
				logger.Warn("db migrate deferred to first request", "err", err)
			}

			r := handler.NewAPIRouter(handler.NewWaterHandler(svc))
			logger.Info("api starting", "addr", cfg.Addr())
			if err := r.Run(cfg.Addr()); err != nil {
				logger.Error("api failed", "err", err)
				return err
			}
			return nil
		},
	}
}

func webCmd() *cobra.Command {
	var ephemeral bool

	cmd := &cobra.Command{
		Use:         "web",
		Short:       "Start the tracker page",
		Annotations: map[string]string{serverAnnotation: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			var l *ledger.Ledger
			if ephemeral {
				l = ledger.New(store.NewMemory())
				if err := l.Initialize(); err != nil {
					return err
				}
			} else {
				var closeStore func() error
				var err error
				if l, closeStore, err = openLedger(); err != nil {
					logger.Error("ledger open failed", "path", cfg.Ledger.Path, "err", err)
					return err
				}
				defer closeStore()
			}

			tmpl, err := web.Load()
			if err != nil {
				return err
			}

			r := handler.NewWebRouter(handler.NewTrackerHandler(l, tmpl))
			logger.Info("web starting", "addr", cfg.WebAddr(), "ledger", cfg.Ledger.Path, "ephemeral", ephemeral)
			if err := r.Run(cfg.WebAddr()); err != nil {
				logger.Error("web failed", "err", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep the ledger in memory only")
	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/cropcal/internal/activity"
	"github.com/rcliao/cropcal/internal/planner"
	"github.com/rcliao/cropcal/internal/server"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve plans and calendars over HTTP",
		Long: `Serves GET|POST /plan, GET|POST /calendar, GET /plans, /healthz and /metrics.
Listens on the configured address (default :8000, or :$PORT). A configured keyword
table file is watched and reloaded on change.`,
		Run: runServe,
	}

	cmd.Flags().String("listen", "", "Listen address (overrides config and PORT)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Listen = listen
	}
	ctx := cmd.Context()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	st, err := s.Stats(ctx, cfg.DB)
	if err != nil {
		exitErr("inspect database", err)
	}
	if st.TotalRows == 0 {
		logger.Warn("database is empty, run cropcal import first", "db", cfg.DB)
	} else {
		logger.Info("database ready", "db", cfg.DB, "rows", st.TotalRows, "calendars", st.TotalPlans)
	}

	table, err := loadKeywordTable()
	if err != nil {
		exitErr("load keywords", err)
	}
	categorizer := activity.NewCategorizer(table)
	if cfg.Keywords != "" {
		if err := activity.Watch(ctx, activity.WatchConfig{Path: cfg.Keywords, Logger: logger}, categorizer); err != nil {
			exitErr("watch keywords", err)
		}
	}

	var cache *planner.Cache
	if cfg.Cache.Enabled {
		cache = planner.NewCache()
	}
	p, err := newPlanner(s, categorizer, cache, nil)
	if err != nil {
		exitErr("configure planner", err)
	}

	srv, err := server.New(p, server.Config{
		Addr:    cfg.Listen,
		Logger:  logger,
		Catalog: s,
		Cache:   cache,
	})
	if err != nil {
		exitErr("configure server", err)
	}
	if err := srv.ListenAndServe(ctx); err != nil {
		exitErr("serve", err)
	}
}

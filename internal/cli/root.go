// Package cli implements the cropcal CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rcliao/cropcal/internal/activity"
	"github.com/rcliao/cropcal/internal/config"
	"github.com/rcliao/cropcal/internal/planner"
	"github.com/rcliao/cropcal/internal/store"
	"github.com/rcliao/cropcal/internal/translate"
)

var (
	cfgFile    string
	formatFlag string

	cfg    *config.Config
	logger *slog.Logger
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "cropcal",
	Short: "Crop calendar planning engine",
	Long: `Turns seasonal crop calendars into week-by-week action plans.
Calendars live in a SQLite database imported from CSV; plans are served as JSON over HTTP or printed here.`,
	PersistentPreRunE: initConfig,
	SilenceUsage:      true,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: $HOME/.config/cropcal/cropcal.yaml or ./cropcal.yaml)")
	flags.StringP("db", "d", "", "Database path (default: $CROPCAL_DB or ~/.cropcal/calendar.db)")
	flags.StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")

	_ = viper.BindPFlag("db", flags.Lookup("db"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
}

func initConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	l, err := config.NewLogger(os.Stderr, c.Logging.Level, c.Logging.Format)
	if err != nil {
		return err
	}
	if formatFlag != "json" && formatFlag != "text" {
		return fmt.Errorf("invalid output format: %s", formatFlag)
	}
	slog.SetDefault(l)
	cfg, logger = c, l
	logger.Debug("config loaded", "file", c.File, "db", c.DB)
	return nil
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DB)
}

func loadDictionary() (*translate.Dictionary, error) {
	return translate.Load(cfg.Dictionary)
}

func loadKeywordTable() (*activity.KeywordTable, error) {
	if cfg.Keywords == "" {
		return activity.DefaultKeywordTable(), nil
	}
	return activity.LoadKeywordTable(cfg.Keywords)
}

func defaultStartMonth() (time.Month, error) {
	m, ok := planner.MonthIndex(cfg.DefaultStartMonth)
	if !ok {
		return 0, fmt.Errorf("default_start_month: unknown month %q", cfg.DefaultStartMonth)
	}
	return m, nil
}

// newPlanner wires a planner over src from the loaded configuration. A nil
// now means the wall clock.
func newPlanner(src planner.RecordSource, categorizer *activity.Categorizer, cache *planner.Cache, now func() time.Time) (*planner.Planner, error) {
	start, err := defaultStartMonth()
	if err != nil {
		return nil, err
	}
	dict, err := loadDictionary()
	if err != nil {
		return nil, err
	}
	return planner.New(src, planner.Config{
		Categorizer:       categorizer,
		Labels:            dict,
		Cache:             cache,
		Now:               now,
		DefaultStartMonth: start,
		Logger:            logger,
	}), nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

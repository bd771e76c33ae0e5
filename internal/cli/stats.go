package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), cfg.DB)
	if err != nil {
		exitErr("stats", err)
	}

	if formatFlag == "text" {
		fmt.Printf("%s: %d rows (%d bilingual), %d calendars, %d bytes\n",
			stats.DBPath, stats.TotalRows, stats.BilingualRows, stats.TotalPlans, stats.DBSizeBytes)
		for _, cs := range stats.Seasons {
			fmt.Printf("  %s/%s: %d varieties, %d months\n", cs.Season, cs.Crop, cs.Varieties, cs.Months)
		}
		return
	}

	b, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Println(string(b))
}

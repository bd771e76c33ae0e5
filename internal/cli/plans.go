package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/cropcal/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "plans [query]",
		Short: "List the calendars in the database",
		Long:  "List season/crop/variety calendars, optionally filtered by a substring of any of them.",
		Run:   runPlans,
	}

	cmd.Flags().StringP("season", "s", "", "Filter by season")
	cmd.Flags().StringP("crop", "c", "", "Filter by crop")
	cmd.Flags().IntP("limit", "n", 100, "Max results")
	cmd.Flags().Bool("names-only", false, "Only output season/crop/variety lines")

	RootCmd.AddCommand(cmd)
}

func runPlans(cmd *cobra.Command, args []string) {
	season, _ := cmd.Flags().GetString("season")
	crop, _ := cmd.Flags().GetString("crop")
	limit, _ := cmd.Flags().GetInt("limit")
	namesOnly, _ := cmd.Flags().GetBool("names-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	plans, err := s.Plans(cmd.Context(), store.SearchParams{
		Season: season,
		Crop:   crop,
		Query:  strings.Join(args, " "),
		Limit:  limit,
	})
	if err != nil {
		exitErr("plans", err)
	}

	if namesOnly || formatFlag == "text" {
		for _, p := range plans {
			fmt.Printf("%s/%s/%s\n", p.Season, p.Crop, p.Variety)
		}
		return
	}

	b, _ := json.MarshalIndent(plans, "", "  ")
	fmt.Println(string(b))
}

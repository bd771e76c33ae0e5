package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/cropcal/internal/activity"
	"github.com/rcliao/cropcal/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build the weekly action plan of a crop calendar",
		Long:  "Classifies every active week of a calendar and reports where today falls in it.",
		Run:   runPlan,
	}

	addQueryFlags(cmd)
	cmd.Flags().String("date", "", "Compute progress as of this date (YYYY-MM-DD, default today)")

	RootCmd.AddCommand(cmd)
}

// addQueryFlags registers the flags that identify a calendar.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("season", "s", "", "Season, e.g. Kharif (required)")
	cmd.Flags().StringP("crop", "c", "", "Crop, e.g. Paddy (required)")
	cmd.Flags().StringP("variety", "v", "", "Variety or part of it, e.g. MO-4 (required)")
	cmd.Flags().StringP("lang", "l", "source", "Display language: source (en) or localized (kn)")

	cmd.MarkFlagRequired("season")
	cmd.MarkFlagRequired("crop")
	cmd.MarkFlagRequired("variety")
}

func readQuery(cmd *cobra.Command) (model.PlanQuery, error) {
	season, _ := cmd.Flags().GetString("season")
	crop, _ := cmd.Flags().GetString("crop")
	variety, _ := cmd.Flags().GetString("variety")
	langStr, _ := cmd.Flags().GetString("lang")

	lang, err := model.ParseLanguage(langStr)
	if err != nil {
		return model.PlanQuery{}, err
	}
	q := model.PlanQuery{Season: season, Crop: crop, Variety: variety, Language: lang}
	return q, q.Validate()
}

func runPlan(cmd *cobra.Command, args []string) {
	q, err := readQuery(cmd)
	if err != nil {
		exitErr("plan", err)
	}

	today := time.Now()
	if d, _ := cmd.Flags().GetString("date"); d != "" {
		today, err = time.ParseInLocation(time.DateOnly, d, time.Local)
		if err != nil {
			exitErr("parse --date", err)
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	table, err := loadKeywordTable()
	if err != nil {
		exitErr("load keywords", err)
	}
	p, err := newPlanner(s, activity.NewCategorizer(table), nil, func() time.Time { return today })
	if err != nil {
		exitErr("configure planner", err)
	}

	plan, err := p.Plan(cmd.Context(), q)
	if err != nil {
		exitErr("plan", err)
	}

	if formatFlag == "text" {
		renderPlan(os.Stdout, plan)
		return
	}
	b, _ := json.MarshalIndent(plan, "", "  ")
	fmt.Println(string(b))
}

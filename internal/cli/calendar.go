package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/cropcal/internal/activity"
)

func init() {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the raw month rows of a crop calendar",
		Run:   runCalendar,
	}

	addQueryFlags(cmd)

	RootCmd.AddCommand(cmd)
}

func runCalendar(cmd *cobra.Command, args []string) {
	q, err := readQuery(cmd)
	if err != nil {
		exitErr("calendar", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := newPlanner(s, activity.NewCategorizer(nil), nil, nil)
	if err != nil {
		exitErr("configure planner", err)
	}

	cal, err := p.Calendar(cmd.Context(), q)
	if err != nil {
		exitErr("calendar", err)
	}

	if formatFlag == "text" {
		renderCalendar(os.Stdout, cal)
		return
	}
	b, _ := json.MarshalIndent(cal, "", "  ")
	fmt.Println(string(b))
}

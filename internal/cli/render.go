package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rcliao/cropcal/internal/activity"
	"github.com/rcliao/cropcal/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	monthStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	nowStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// renderPlan prints a plan as an indented, human-readable timeline.
func renderPlan(w io.Writer, plan *model.Plan) {
	c := plan.Context
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s · %s · %s", c.Season, c.Crop, c.Variety)))
	fmt.Fprintf(w, "%s %d weeks (%s, keywords %s)\n",
		labelStyle.Render("duration:"), c.TotalDurationWeeks, c.Language, c.KeywordTableVersion)

	p := plan.Progress
	week := "not in season"
	if p.CurrentWeek > 0 {
		week = fmt.Sprintf("week %d", p.CurrentWeek)
	}
	fmt.Fprintln(w, nowStyle.Render(fmt.Sprintf("now: %s · %s · %s", week, p.CurrentPhase, p.UpcomingOperation)))

	for _, m := range plan.Timeline {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", monthStyle.Render(m.MonthLabel), labelStyle.Render(plan.SummaryByMonth[m.Month]))
		if len(m.MajorOperations) > 0 {
			fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("major:"), strings.Join(m.MajorOperations, "; "))
		}
		if len(m.CriticalActions) > 0 {
			fmt.Fprintf(w, "  %s %s\n", alertStyle.Render("critical:"), strings.Join(m.CriticalActions, "; "))
		}
		for _, wk := range m.Weeks {
			marker := " "
			if wk.WeekNumber == p.CurrentWeek {
				marker = nowStyle.Render("▶")
			}
			fmt.Fprintf(w, " %s week %2d  %s\n", marker, wk.WeekNumber, wk.Stage)
			for _, f := range []struct{ label, text string }{
				{"irrigation", wk.Irrigation},
				{"fertilizer", wk.Fertilizer},
				{"weeds", wk.Weed},
				{"protection", wk.Protection},
				{"field", wk.Field},
			} {
				if f.text == activity.StandardCare {
					continue
				}
				fmt.Fprintf(w, "      %s %s\n", labelStyle.Render(f.label+":"), f.text)
			}
		}
	}
}

// renderCalendar prints raw month rows, one week per line.
func renderCalendar(w io.Writer, cal *model.Calendar) {
	md := cal.Metadata
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s · %s · %s (%d months, %s)", md.Season, md.Crop, md.Variety, md.Count, md.Language)))
	for _, e := range cal.Calendar {
		fmt.Fprintln(w, monthStyle.Render(e.Month))
		for i, text := range []string{e.Week1, e.Week2, e.Week3, e.Week4} {
			fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("W%d", i+1)), text)
		}
	}
}

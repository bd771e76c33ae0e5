package planner

import (
	"log/slog"
	"strings"
	"time"

	"github.com/rcliao/cropcal/internal/model"
)

const (
	// DefaultStartMonth is assumed when the first month of a plan has an
	// unrecognized name.
	DefaultStartMonth = time.June

	// DefaultPhase is reported for a plan with no weeks.
	DefaultPhase = "Planning"
	// DefaultOperation is reported for a plan with no weeks.
	DefaultOperation = "Soil preparation"

	// maxPlausibleWeek guards against runaway week numbers; a computed week at
	// or above it is reported as 0.
	maxPlausibleWeek = 24

	daysPerWeek = 7
)

var monthNames = map[string]time.Month{
	"ಜನವರಿ":      time.January,
	"ಫೆಬ್ರವರಿ":    time.February,
	"ಮಾರ್ಚ್":      time.March,
	"ಏಪ್ರಿಲ್":     time.April,
	"ಮೇ":         time.May,
	"ಜೂನ್":       time.June,
	"ಜುಲೈ":       time.July,
	"ಆಗಸ್ಟ್":      time.August,
	"ಸೆಪ್ಟೆಂಬರ್":  time.September,
	"ಅಕ್ಟೋಬರ್":    time.October,
	"ನವೆಂಬರ್":     time.November,
	"ಡಿಸೆಂಬರ್":    time.December,
}

func init() {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		monthNames[name] = m
		monthNames[name[:3]] = m
	}
	monthNames["sept"] = time.September
}

// MonthIndex resolves an English (full or abbreviated, any case) or localized
// month name.
func MonthIndex(name string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// ProgressCalculator locates "today" within a plan timeline.
//
// Every month is assumed to span exactly four plan weeks, and the week within
// a month is derived from the day of month alone. Plans with resting weeks or
// with months of other lengths therefore map to calendar weeks only
// approximately.
type ProgressCalculator struct {
	// DefaultStart replaces an unrecognized start month. Zero means DefaultStartMonth.
	DefaultStart time.Month
	Logger       *slog.Logger
}

// ComputeProgress uses a zero ProgressCalculator.
func ComputeProgress(timeline []model.MonthlyActivity, totalWeeks int, today time.Time) model.Progress {
	return ProgressCalculator{}.Compute(timeline, totalWeeks, today)
}

// CurrentWeekNumber returns the unclamped plan week for today given the plan's
// start month.
func CurrentWeekNumber(start time.Month, today time.Time) int {
	monthsSinceStart := ((int(today.Month())-int(start))%12 + 12) % 12
	return monthsSinceStart*model.WeeksPerMonth + (today.Day()-1)/daysPerWeek + 1
}

// Compute returns the progress pointer for today.
func (pc ProgressCalculator) Compute(timeline []model.MonthlyActivity, totalWeeks int, today time.Time) model.Progress {
	start := pc.startMonth(timeline)
	current := CurrentWeekNumber(start, today)

	active, ok := findWeek(timeline, current)
	if !ok {
		if current > totalWeeks {
			active, ok = lastWeek(timeline)
		} else {
			active, ok = firstWeek(timeline)
		}
	}

	if current >= maxPlausibleWeek {
		current = 0
	}

	p := model.Progress{
		CurrentWeek:       current,
		CurrentPhase:      DefaultPhase,
		UpcomingOperation: DefaultOperation,
	}
	if ok {
		p.CurrentPhase = string(active.Stage)
		p.UpcomingOperation = active.Field
	}
	return p
}

func (pc ProgressCalculator) startMonth(timeline []model.MonthlyActivity) time.Month {
	fallback := pc.DefaultStart
	if fallback == 0 {
		fallback = DefaultStartMonth
	}
	if len(timeline) == 0 {
		return fallback
	}
	m, ok := MonthIndex(timeline[0].Month)
	if !ok {
		logger := pc.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("unrecognized start month, using default",
			"month", timeline[0].Month, "default", fallback.String())
		return fallback
	}
	return m
}

func findWeek(timeline []model.MonthlyActivity, n int) (model.WeeklyActivity, bool) {
	for _, m := range timeline {
		for _, w := range m.Weeks {
			if w.WeekNumber == n {
				return w, true
			}
		}
	}
	return model.WeeklyActivity{}, false
}

func firstWeek(timeline []model.MonthlyActivity) (model.WeeklyActivity, bool) {
	for _, m := range timeline {
		if len(m.Weeks) > 0 {
			return m.Weeks[0], true
		}
	}
	return model.WeeklyActivity{}, false
}

func lastWeek(timeline []model.MonthlyActivity) (model.WeeklyActivity, bool) {
	for i := len(timeline) - 1; i >= 0; i-- {
		if ws := timeline[i].Weeks; len(ws) > 0 {
			return ws[len(ws)-1], true
		}
	}
	return model.WeeklyActivity{}, false
}

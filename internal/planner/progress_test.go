package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/cropcal/internal/activity"
	"github.com/rcliao/cropcal/internal/model"
)

func TestComputeProgressMidPlan(t *testing.T) {
	timeline, total := BuildTimeline(paddyRecords(), TimelineOptions{})

	p := ComputeProgress(timeline, total, date(time.July, 10))
	assert.Equal(t, 6, p.CurrentWeek)
	assert.Equal(t, string(model.StageVegetative), p.CurrentPhase)
	assert.Equal(t, activity.StandardCare, p.UpcomingOperation)
}

func TestComputeProgressPastEndUsesLastWeek(t *testing.T) {
	timeline, total := BuildTimeline(paddyRecords(), TimelineOptions{})

	p := ComputeProgress(timeline, total, date(time.September, 25))
	assert.Equal(t, 16, p.CurrentWeek)
	assert.Equal(t, string(model.StageHarvest), p.CurrentPhase)
	assert.Equal(t, "🚜Cut and collect the crop", p.UpcomingOperation)
}

func TestComputeProgressClampsImplausibleWeek(t *testing.T) {
	timeline, total := BuildTimeline(paddyRecords(), TimelineOptions{})

	// May is eleven months after a June start.
	p := ComputeProgress(timeline, total, date(time.May, 3))
	assert.Equal(t, 0, p.CurrentWeek)
	assert.Equal(t, string(model.StageHarvest), p.CurrentPhase)

	assert.Equal(t, 0, ComputeProgress(timeline, total, date(time.November, 22)).CurrentWeek)
	assert.Equal(t, 23, ComputeProgress(timeline, total, date(time.November, 15)).CurrentWeek)
}

func TestComputeProgressBeforeFirstWeekUsesFirstWeek(t *testing.T) {
	timeline := []model.MonthlyActivity{{
		Month: "June",
		Weeks: []model.WeeklyActivity{
			{WeekNumber: 3, Stage: model.StageVegetative, Field: "Land prep"},
			{WeekNumber: 4, Stage: model.StageReproductive, Field: "Standard care"},
		},
	}}

	p := ComputeProgress(timeline, 4, date(time.June, 1))
	assert.Equal(t, 1, p.CurrentWeek)
	assert.Equal(t, string(model.StageVegetative), p.CurrentPhase)
	assert.Equal(t, "Land prep", p.UpcomingOperation)
}

func TestComputeProgressEmptyTimeline(t *testing.T) {
	p := ComputeProgress(nil, 0, date(time.July, 10))
	assert.Equal(t, model.Progress{
		CurrentWeek:       6,
		CurrentPhase:      DefaultPhase,
		UpcomingOperation: DefaultOperation,
	}, p)
}

func TestComputeProgressUnknownStartMonth(t *testing.T) {
	timeline := []model.MonthlyActivity{{
		Month: "Juen",
		Weeks: []model.WeeklyActivity{{WeekNumber: 1, Stage: model.StageVegetative, Field: "Sow"}},
	}}

	assert.Equal(t, 6, ComputeProgress(timeline, 1, date(time.July, 10)).CurrentWeek)

	pc := ProgressCalculator{DefaultStart: time.July}
	assert.Equal(t, 2, pc.Compute(timeline, 1, date(time.July, 10)).CurrentWeek)
}

func TestCurrentWeekNumber(t *testing.T) {
	tests := []struct {
		name  string
		start time.Month
		today time.Time
		want  int
	}{
		{"first day", time.June, date(time.June, 1), 1},
		{"day seven", time.June, date(time.June, 7), 1},
		{"day eight", time.June, date(time.June, 8), 2},
		{"next month", time.June, date(time.July, 10), 6},
		{"wraps the year", time.November, date(time.February, 3), 13},
		{"start after today", time.December, date(time.January, 15), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentWeekNumber(tt.start, tt.today))
		})
	}
}

// A month is always four plan weeks, so days 29-31 share a week number with
// the start of the following month.
func TestCurrentWeekNumberFourWeekMonthApproximation(t *testing.T) {
	end := CurrentWeekNumber(time.June, date(time.June, 29))
	next := CurrentWeekNumber(time.June, date(time.July, 1))
	assert.Equal(t, 5, end)
	assert.Equal(t, end, next)
}

func TestMonthIndex(t *testing.T) {
	tests := map[string]time.Month{
		"June":      time.June,
		" june ":    time.June,
		"JUN":       time.June,
		"Sept":      time.September,
		"ಜೂನ್":      time.June,
		"ಡಿಸೆಂಬರ್":  time.December,
	}
	for in, want := range tests {
		got, ok := MonthIndex(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := MonthIndex("Juen")
	assert.False(t, ok)
}

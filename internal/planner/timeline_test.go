package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/cropcal/internal/activity"
	"github.com/rcliao/cropcal/internal/model"
)

func TestBuildTimelineSkipsRestingWeeks(t *testing.T) {
	timeline, total := BuildTimeline(paddyRecords(), TimelineOptions{})

	assert.Equal(t, 11, total)
	require.Len(t, timeline, 3, "fully resting August must be dropped")
	assert.Equal(t, "June", timeline[0].Month)
	assert.Equal(t, "July", timeline[1].Month)
	assert.Equal(t, "September", timeline[2].Month)

	assert.Len(t, timeline[0].Weeks, 3)
	assert.Len(t, timeline[1].Weeks, 4)
	assert.Len(t, timeline[2].Weeks, 4)
}

func TestBuildTimelineWeekNumbersAreContiguous(t *testing.T) {
	timeline, total := BuildTimeline(paddyRecords(), TimelineOptions{})

	want := 1
	for _, m := range timeline {
		for _, w := range m.Weeks {
			assert.Equal(t, want, w.WeekNumber)
			want++
		}
	}
	assert.Equal(t, total, want-1)
}

func TestBuildTimelineClassifiesWeeks(t *testing.T) {
	timeline, _ := BuildTimeline(paddyRecords(), TimelineOptions{})

	transplant := timeline[1].Weeks[0]
	assert.Equal(t, 4, transplant.WeekNumber)
	assert.Contains(t, transplant.Field, "🚜Transplant (15-18d)")
	assert.Equal(t, "Give water after planting", transplant.Irrigation)
	assert.Equal(t, activity.StandardCare, transplant.Fertilizer)
	assert.Equal(t, model.StageVegetative, transplant.Stage)

	stages := []model.Stage{}
	for _, w := range timeline[2].Weeks {
		stages = append(stages, w.Stage)
	}
	assert.Equal(t, []model.Stage{
		model.StageReproductive,
		model.StageReproductive,
		model.StageMaturity,
		model.StageHarvest,
	}, stages)
}

func TestBuildTimelineMajorAndCritical(t *testing.T) {
	timeline, _ := BuildTimeline(paddyRecords(), TimelineOptions{})

	assert.Equal(t, []string{"📅Book Tractor & Labor"}, timeline[0].MajorOperations)
	assert.Empty(t, timeline[0].CriticalActions)

	assert.Equal(t, []string{"🚜Transplant (15-18d)"}, timeline[1].MajorOperations)
	assert.Equal(t, []string{"⚠️Scout: BPH", "⚠️Critical: Stem Borer"}, timeline[1].CriticalActions)

	assert.Equal(t, []string{"🚜Cut and collect the crop"}, timeline[2].MajorOperations)
}

func TestBuildTimelineCapsAndDeduplicates(t *testing.T) {
	records := []model.MonthRecord{
		month("October", "🚜Plough | a", "🚜Plough | b", "📅Book Thresher | ⚠️x", "🚜Level land | critical y"),
		month("November", "🚜Sow | ⚠️one", "🚜Sow | ⚠️two", "🚜Weed | critical three", "📅Store | ⚠️four"),
	}
	timeline, _ := BuildTimeline(records, TimelineOptions{})
	require.Len(t, timeline, 2)

	assert.Equal(t, []string{"🚜Plough", "📅Book Thresher", "🚜Level land"}, timeline[0].MajorOperations)
	assert.Equal(t, []string{"⚠️x", "critical y"}, timeline[0].CriticalActions)

	assert.Equal(t, []string{"🚜Sow", "🚜Weed", "📅Store"}, timeline[1].MajorOperations)
	assert.Len(t, timeline[1].CriticalActions, 2)
	assert.Equal(t, []string{"⚠️one", "⚠️two"}, timeline[1].CriticalActions)
}

func TestBuildTimelineLocalized(t *testing.T) {
	rec := month("July",
		"🚜Transplant (15-18d)|Give water after planting",
		"Gaps/Weeding | ⚠️Scout: BPH",
		"Field resting",
		"Harvest soon")
	rec.WeeksLocalized = [4]string{
		"🚜15-18 ದಿನಗಳ ಸಸಿಗಳನ್ನು ನಾಟಿ ಮಾಡಿ | ನಾಟಿ ಮಾಡಿದ ನಂತರ ನೀರು ಕೊಡಿ",
		"ಕಳೆ ತೆಗೆಯಿರಿ | ⚠️ಪರಿಶೀಲಿಸಿ: ಜಿಗಿ ಹುಳು",
		"ಜಮೀನಿಗೆ ವಿಶ್ರಾಂತಿ",
		"",
	}

	timeline, total := BuildTimeline([]model.MonthRecord{rec}, TimelineOptions{
		Language: model.LanguageLocalized,
		Labels:   fixedLabels{"July": "ಜುಲೈ"},
	})
	require.Len(t, timeline, 1)
	assert.Equal(t, 3, total)

	m := timeline[0]
	assert.Equal(t, "July", m.Month)
	assert.Equal(t, "ಜುಲೈ", m.MonthLabel)
	assert.Equal(t, []string{"🚜15-18 ದಿನಗಳ ಸಸಿಗಳನ್ನು ನಾಟಿ ಮಾಡಿ"}, m.MajorOperations)
	assert.Equal(t, []string{"⚠️ಪರಿಶೀಲಿಸಿ: ಜಿಗಿ ಹುಳು"}, m.CriticalActions)

	assert.Equal(t, "ನಾಟಿ ಮಾಡಿದ ನಂತರ ನೀರು ಕೊಡಿ", m.Weeks[0].Irrigation)
	assert.Equal(t, "ಕಳೆ ತೆಗೆಯಿರಿ", m.Weeks[1].Weed)

	// Missing localized text falls back to source; stage always uses source.
	assert.Equal(t, "Harvest soon", m.Weeks[2].Field)
	assert.Equal(t, model.StageHarvest, m.Weeks[2].Stage)
}

func TestBuildTimelineSourceIgnoresLocalizedText(t *testing.T) {
	rec := month("July", "Gaps/Weeding")
	rec.WeeksLocalized[0] = "ಕಳೆ ತೆಗೆಯಿರಿ"
	rec.Weeks[1], rec.Weeks[2], rec.Weeks[3] = "Field resting", "Field resting", "Field resting"

	timeline, _ := BuildTimeline([]model.MonthRecord{rec}, TimelineOptions{Language: model.LanguageSource})
	require.Len(t, timeline, 1)
	assert.Equal(t, "Gaps/Weeding", timeline[0].Weeks[0].Weed)
	assert.Equal(t, "July", timeline[0].MonthLabel)
}

func TestBuildTimelineEmpty(t *testing.T) {
	timeline, total := BuildTimeline(nil, TimelineOptions{})
	assert.Empty(t, timeline)
	assert.NotNil(t, timeline)
	assert.Equal(t, 0, total)
}

func TestCapUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, capUnique([]string{"a", "a", "", "b", "c"}, 2))
	assert.Equal(t, []string{}, capUnique(nil, 3))
}

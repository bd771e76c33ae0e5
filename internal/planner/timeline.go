package planner

import (
	"strings"

	"github.com/rcliao/cropcal/internal/activity"
	"github.com/rcliao/cropcal/internal/model"
)

const (
	maxMajorOperations = 3
	maxCriticalActions = 2
)

// Markers scanned in raw source text.
const (
	warningGlyph  = "⚠"
	criticalWord  = "critical"
	scheduleGlyph = "📅"
	tractorGlyph  = "🚜"
)

// TimelineOptions configures BuildTimeline.
type TimelineOptions struct {
	Language    model.Language
	Categorizer *activity.Categorizer
	// Labels localizes month names when Language is localized. Optional.
	Labels Labeler
}

// BuildTimeline classifies every non-resting week of records, in order, and
// returns the per-month timeline plus the number of weeks in it. Week numbers
// run across the whole plan; resting weeks are skipped without consuming one.
func BuildTimeline(records []model.MonthRecord, opts TimelineOptions) ([]model.MonthlyActivity, int) {
	categorizer := opts.Categorizer
	if categorizer == nil {
		categorizer = activity.NewCategorizer(nil)
	}

	timeline := []model.MonthlyActivity{}
	week := 1
	for _, rec := range records {
		month := model.MonthlyActivity{
			Month:      rec.Month,
			MonthLabel: rec.Month,
		}
		if opts.Language == model.LanguageLocalized && opts.Labels != nil {
			month.MonthLabel = opts.Labels.Label(rec.Month)
		}

		var major, critical []string
		for slot := 0; slot < model.WeeksPerMonth; slot++ {
			raw := rec.Weeks[slot]
			if activity.IsResting(raw) {
				continue
			}
			display := rec.DisplayWeek(slot, opts.Language)
			cats := categorizer.CategorizeAll(display)

			month.Weeks = append(month.Weeks, model.WeeklyActivity{
				WeekNumber: week,
				Irrigation: cats[model.CategoryIrrigation],
				Fertilizer: cats[model.CategoryFertilizer],
				Weed:       cats[model.CategoryWeed],
				Protection: cats[model.CategoryProtection],
				Field:      cats[model.CategoryField],
				Stage:      activity.InferStage(raw),
			})
			week++

			if isMajor(raw) {
				major = append(major, firstFragment(display))
			}
			if i, ok := criticalFragment(raw); ok {
				critical = append(critical, fragmentAt(display, i))
			}
		}

		if len(month.Weeks) == 0 {
			continue
		}
		month.MajorOperations = capUnique(major, maxMajorOperations)
		month.CriticalActions = capUnique(critical, maxCriticalActions)
		timeline = append(timeline, month)
	}
	return timeline, week - 1
}

func isMajor(raw string) bool {
	return strings.Contains(raw, scheduleGlyph) || strings.Contains(raw, tractorGlyph)
}

// criticalFragment returns the position of the first raw fragment that carries
// the warning glyph or the word "critical".
func criticalFragment(raw string) (int, bool) {
	for i, frag := range activity.SplitFragments(raw) {
		if strings.Contains(frag, warningGlyph) || strings.Contains(strings.ToLower(frag), criticalWord) {
			return i, true
		}
	}
	return 0, false
}

func firstFragment(text string) string {
	return activity.SplitFragments(text)[0]
}

// fragmentAt returns fragment i of text, or the first fragment when the
// localized text has fewer fragments than the source.
func fragmentAt(text string, i int) string {
	frags := activity.SplitFragments(text)
	if i < len(frags) && frags[i] != "" {
		return frags[i]
	}
	return frags[0]
}

// capUnique drops repeated strings, keeping first occurrences in order, and
// truncates to limit. Empty strings are dropped.
func capUnique(items []string, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if len(out) == limit {
			break
		}
	}
	return out
}

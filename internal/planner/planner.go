// Package planner turns calendar month records into classified week-by-week
// plans with a "where am I today" progress pointer.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rcliao/cropcal/internal/activity"
	"github.com/rcliao/cropcal/internal/model"
)

var (
	// ErrPlanNotFound is returned when the record store has no rows for a query.
	ErrPlanNotFound = errors.New("no matching calendar found")
	// ErrInvalidQuery is returned for queries missing an identifying field.
	ErrInvalidQuery = errors.New("invalid plan query")
	// ErrInternal wraps unexpected faults while assembling a plan.
	ErrInternal = errors.New("internal failure")
)

// RecordSource supplies the ordered month records of a plan.
type RecordSource interface {
	Months(ctx context.Context, q model.PlanQuery) ([]model.MonthRecord, error)
}

// Labeler localizes single labels such as month names.
type Labeler interface {
	Label(s string) string
}

// Config configures a Planner.
type Config struct {
	Categorizer *activity.Categorizer
	Labels      Labeler

	// Cache enables read-through caching of assembled plans. Nil disables it.
	Cache *Cache

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// DefaultStartMonth replaces unrecognized start months. Zero means June.
	DefaultStartMonth time.Month

	Logger *slog.Logger
}

// Planner assembles plans from a record source.
type Planner struct {
	src      RecordSource
	cfg      Config
	progress ProgressCalculator
	group    singleflight.Group
}

// New creates a Planner reading from src.
func New(src RecordSource, cfg Config) *Planner {
	if cfg.Categorizer == nil {
		cfg.Categorizer = activity.NewCategorizer(nil)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Planner{
		src: src,
		cfg: cfg,
		progress: ProgressCalculator{
			DefaultStart: cfg.DefaultStartMonth,
			Logger:       cfg.Logger,
		},
	}
}

// Plan returns the plan for q, serving it from the cache when present.
// Concurrent requests for the same uncached key share one assembly.
func (p *Planner) Plan(ctx context.Context, q model.PlanQuery) (*model.Plan, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if q.Language == "" {
		q.Language = model.LanguageSource
	}

	key := CacheKey(q)
	if p.cfg.Cache != nil {
		if plan, ok := p.cfg.Cache.Get(key); ok {
			p.cfg.Logger.Debug("cache hit", "key", key)
			return plan, nil
		}
	}

	// The shared assembly outlives any single caller; each caller still
	// stops waiting when its own context ends.
	ch := p.group.DoChan(key, func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)
		records, err := p.fetch(ctx, q)
		if err != nil {
			return nil, err
		}
		plan, err := p.Assemble(q, records, p.cfg.Now())
		if err != nil {
			return nil, err
		}
		if p.cfg.Cache != nil {
			plan = p.cfg.Cache.Put(key, plan)
			p.cfg.Logger.Debug("cache seeded", "key", key)
		}
		return plan, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.Plan), nil
	}
}

// Calendar returns the raw month rows of a plan in the requested language.
func (p *Planner) Calendar(ctx context.Context, q model.PlanQuery) (*model.Calendar, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	records, err := p.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	cal := &model.Calendar{
		Metadata: model.CalendarMetadata{
			Season:   q.Season,
			Crop:     q.Crop,
			Variety:  q.Variety,
			Language: q.Language.Tag(),
			Count:    len(records),
		},
		Calendar: make([]model.CalendarEntry, 0, len(records)),
	}
	for _, r := range records {
		cal.Calendar = append(cal.Calendar, model.CalendarEntry{
			Month: r.Month,
			Week1: r.DisplayWeek(0, q.Language),
			Week2: r.DisplayWeek(1, q.Language),
			Week3: r.DisplayWeek(2, q.Language),
			Week4: r.DisplayWeek(3, q.Language),
		})
	}
	return cal, nil
}

func (p *Planner) fetch(ctx context.Context, q model.PlanQuery) ([]model.MonthRecord, error) {
	records, err := p.src.Months(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch months: %w", err)
	}
	if len(records) == 0 {
		p.cfg.Logger.Info("plan not found", "season", q.Season, "crop", q.Crop, "variety", q.Variety)
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrPlanNotFound, q.Season, q.Crop, q.Variety)
	}
	return records, nil
}

// Assemble builds a plan from already-fetched records as of today. It does no
// I/O and gives identical output for identical input.
func (p *Planner) Assemble(q model.PlanQuery, records []model.MonthRecord, today time.Time) (plan *model.Plan, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.cfg.Logger.Error("plan assembly failed", "season", q.Season, "crop", q.Crop, "variety", q.Variety, "panic", r)
			plan, err = nil, fmt.Errorf("%w: assemble plan: %v", ErrInternal, r)
		}
	}()

	// One table for the whole plan, even if a reload lands mid-assembly.
	table := p.cfg.Categorizer.Table()

	timeline, total := BuildTimeline(records, TimelineOptions{
		Language:    q.Language,
		Categorizer: activity.NewCategorizer(table),
		Labels:      p.cfg.Labels,
	})

	plan = &model.Plan{
		Context: model.PlanContext{
			Season:              q.Season,
			Crop:                q.Crop,
			Variety:             q.Variety,
			Language:            q.Language.Tag(),
			TotalDurationWeeks:  total,
			KeywordTableVersion: table.Version,
		},
		Timeline:       timeline,
		SummaryByMonth: summarize(timeline),
		Progress:       p.progress.Compute(timeline, total, today),
	}
	return plan, nil
}

func summarize(timeline []model.MonthlyActivity) map[string]string {
	counts := make(map[string]int, len(timeline))
	for _, m := range timeline {
		if len(m.Weeks) > 0 {
			counts[m.Month] += len(m.Weeks)
		}
	}
	out := make(map[string]string, len(counts))
	for month, n := range counts {
		if n == 1 {
			out[month] = "1 active week"
		} else {
			out[month] = fmt.Sprintf("%d active weeks", n)
		}
	}
	return out
}

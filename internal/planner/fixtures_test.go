package planner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rcliao/cropcal/internal/model"
)

type fakeSource struct {
	records []model.MonthRecord
	err     error
	calls   atomic.Int32
}

func (f *fakeSource) Months(ctx context.Context, q model.PlanQuery) ([]model.MonthRecord, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func month(name string, weeks ...string) model.MonthRecord {
	r := model.MonthRecord{Season: "Kharif", Crop: "Paddy", Variety: "MO-4", Month: name}
	copy(r.Weeks[:], weeks)
	return r
}

// paddyRecords is a four-month plan with one resting week in June and a fully
// resting August: weeks 1-3 in June, 4-7 in July, 8-11 in September.
func paddyRecords() []model.MonthRecord {
	return []model.MonthRecord{
		month("June",
			"📅Book Tractor & Labor | Check Weather",
			"Land prep & puddling | 🧪Soil testing & compost application",
			"Field resting",
			"Get small plants ready in trays or bed"),
		month("July",
			"🚜Transplant (15-18d)|Give water after planting",
			"Gaps/Weeding | ⚠️Scout: BPH",
			"Apply 25% N (tillering) split | 💧Water Saving (Water only if soil is dry)",
			"Pull out weeds | ⚠️Critical: Stem Borer"),
		month("August",
			"Field resting", "field resting", "FIELD RESTING", "ಜಮೀನಿಗೆ ವಿಶ್ರಾಂತಿ"),
		month("September",
			"Panicle emergence monitoring",
			"Apply 25% N (Grain forming stage )",
			"Reduce water and stop watering",
			"🚜Cut and collect the crop | Dry grain to 14% moisture"),
	}
}

func date(m time.Month, day int) time.Time {
	return time.Date(2025, m, day, 9, 0, 0, 0, time.UTC)
}

type fixedLabels map[string]string

func (l fixedLabels) Label(s string) string {
	if v, ok := l[s]; ok {
		return v
	}
	return s
}

type panicLabels struct{}

func (panicLabels) Label(string) string { panic("label table corrupted") }

// blockingSource holds every fetch until release is closed, failing early if
// the fetch context ends first.
type blockingSource struct {
	records []model.MonthRecord
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingSource(records []model.MonthRecord) *blockingSource {
	return &blockingSource{records: records, started: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingSource) Months(ctx context.Context, q model.PlanQuery) ([]model.MonthRecord, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.release:
		return b.records, nil
	}
}

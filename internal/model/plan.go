package model

// WeeklyActivity is one classified, non-resting week of a plan.
type WeeklyActivity struct {
	WeekNumber int    `json:"week_number"`
	Irrigation string `json:"irrigation"`
	Fertilizer string `json:"fertilizer"`
	Weed       string `json:"weed_management"`
	Protection string `json:"protection"`
	Field      string `json:"field_operations"`
	Stage      Stage  `json:"stage"`
}

// MonthlyActivity groups the weeks of one month record.
type MonthlyActivity struct {
	Month           string           `json:"month"`
	MonthLabel      string           `json:"month_label"`
	MajorOperations []string         `json:"major_operations"`
	CriticalActions []string         `json:"critical_actions"`
	Weeks           []WeeklyActivity `json:"weeks"`
}

// Progress is the "where am I today" pointer into a plan.
type Progress struct {
	CurrentWeek       int    `json:"current_week"`
	CurrentPhase      string `json:"current_phase"`
	UpcomingOperation string `json:"upcoming_operation"`
}

// PlanContext echoes the request and describes the plan as a whole.
type PlanContext struct {
	Season              string `json:"season"`
	Crop                string `json:"crop"`
	Variety             string `json:"variety"`
	Language            string `json:"language"`
	TotalDurationWeeks  int    `json:"total_duration_weeks"`
	KeywordTableVersion string `json:"keyword_table_version,omitempty"`
}

// Plan is the assembled response for one (season, crop, variety).
type Plan struct {
	Context        PlanContext       `json:"context"`
	Timeline       []MonthlyActivity `json:"timeline"`
	SummaryByMonth map[string]string `json:"summary_by_month"`
	Progress       Progress          `json:"progress"`
}

// CalendarEntry is one raw month row as served by the calendar endpoint.
type CalendarEntry struct {
	Month string `json:"month"`
	Week1 string `json:"week_1"`
	Week2 string `json:"week_2"`
	Week3 string `json:"week_3"`
	Week4 string `json:"week_4"`
}

// CalendarMetadata describes a raw calendar response.
type CalendarMetadata struct {
	Season   string `json:"season"`
	Crop     string `json:"crop"`
	Variety  string `json:"variety"`
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Calendar is the untransformed month-by-month calendar.
type Calendar struct {
	Metadata CalendarMetadata `json:"metadata"`
	Calendar []CalendarEntry  `json:"calendar"`
}

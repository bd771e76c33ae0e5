package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath        string      `json:"db_path"`
	DBSizeBytes   int64       `json:"db_size_bytes"`
	TotalRows     int         `json:"total_rows"`
	BilingualRows int         `json:"bilingual_rows"`
	TotalPlans    int         `json:"total_plans"`
	Seasons       []CropStats `json:"seasons"`
}

// CropStats holds per-season, per-crop counts.
type CropStats struct {
	Season    string `json:"season"`
	Crop      string `json:"crop"`
	Varieties int    `json:"varieties"`
	Months    int    `json:"months"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM crop_calendar`).Scan(&st.TotalRows); err != nil {
		return st, err
	}
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM crop_calendar
		WHERE week_1_kn <> '' OR week_2_kn <> '' OR week_3_kn <> '' OR week_4_kn <> ''`).Scan(&st.BilingualRows)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM (SELECT DISTINCT season, crop, variety FROM crop_calendar)`).Scan(&st.TotalPlans)

	rows, err := s.db.QueryContext(ctx, `
		SELECT season, crop, COUNT(DISTINCT variety), COUNT(*)
		FROM crop_calendar
		GROUP BY season, crop ORDER BY MIN(seq)`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var cs CropStats
		rows.Scan(&cs.Season, &cs.Crop, &cs.Varieties, &cs.Months)
		st.Seasons = append(st.Seasons, cs)
	}

	return st, rows.Err()
}

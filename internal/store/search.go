package store

import (
	"context"
	"fmt"
	"strings"
)

// Plans lists the distinct plans in the store, in the order they were first imported.
func (s *SQLiteStore) Plans(ctx context.Context, p SearchParams) ([]PlanSummary, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 100
	}

	var where []string
	var args []interface{}

	if p.Season != "" {
		where = append(where, "LOWER(season) = LOWER(?)")
		args = append(args, p.Season)
	}
	if p.Crop != "" {
		where = append(where, "LOWER(crop) = LOWER(?)")
		args = append(args, p.Crop)
	}
	if q := strings.TrimSpace(p.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		where = append(where, "(LOWER(season) LIKE ? OR LOWER(crop) LIKE ? OR LOWER(variety) LIKE ?)")
		args = append(args, like, like, like)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT season, crop, variety, COUNT(*) AS months,
		       MAX(week_1_kn <> '' OR week_2_kn <> '' OR week_3_kn <> '' OR week_4_kn <> '') AS bilingual
		FROM crop_calendar
		%s
		GROUP BY season, crop, variety
		ORDER BY MIN(seq)
		LIMIT ?`, whereSQL)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []PlanSummary{}
	for rows.Next() {
		var ps PlanSummary
		if err := rows.Scan(&ps.Season, &ps.Crop, &ps.Variety, &ps.Months, &ps.Bilingual); err != nil {
			return nil, err
		}
		plans = append(plans, ps)
	}
	return plans, rows.Err()
}

package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rcliao/cropcal/internal/model"
)

// ExportAll returns every calendar row in sequence order.
func (s *SQLiteStore) ExportAll(ctx context.Context) ([]model.MonthRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM crop_calendar ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.MonthRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// WriteCSV writes records in the import format, including the localized
// week columns.
func WriteCSV(w io.Writer, records []model.MonthRecord) error {
	cw := csv.NewWriter(w)

	header := []string{colSeason, colCrop, colVariety, colMonth}
	for i := 0; i < model.WeeksPerMonth; i++ {
		header = append(header, weekColumn(i))
	}
	for i := 0; i < model.WeeksPerMonth; i++ {
		header = append(header, localizedWeekColumn(i))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{r.Season, r.Crop, r.Variety, r.Month}
		row = append(row, r.Weeks[:]...)
		row = append(row, r.WeeksLocalized[:]...)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/cropcal/internal/model"
	"github.com/rcliao/cropcal/internal/translate"
)

// CSV header names, as produced by the calendar spreadsheet.
const (
	colSeason  = "Season"
	colCrop    = "Crop"
	colVariety = "Variety"
	colMonth   = "Month"
)

func weekColumn(i int) string          { return fmt.Sprintf("Week %d", i+1) }
func localizedWeekColumn(i int) string { return fmt.Sprintf("Week %d (KN)", i+1) }

// ReadCSV parses calendar rows. Values are trimmed. The localized week columns
// are optional.
func ReadCSV(r io.Reader) ([]model.MonthRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read csv header: empty input")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	required := []string{colSeason, colCrop, colVariety, colMonth}
	for i := 0; i < model.WeeksPerMonth; i++ {
		required = append(required, weekColumn(i))
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("csv header: missing column %q", col)
		}
	}

	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []model.MonthRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		rec := model.MonthRecord{
			Season:  get(row, colSeason),
			Crop:    get(row, colCrop),
			Variety: get(row, colVariety),
			Month:   get(row, colMonth),
		}
		if rec.Season == "" && rec.Crop == "" && rec.Variety == "" && rec.Month == "" {
			continue
		}
		for i := 0; i < model.WeeksPerMonth; i++ {
			rec.Weeks[i] = get(row, weekColumn(i))
			rec.WeeksLocalized[i] = get(row, localizedWeekColumn(i))
		}
		records = append(records, rec)
	}
	return records, nil
}

// Localize fills in missing localized week texts using the translator.
func Localize(records []model.MonthRecord, tr translate.Translator) {
	for i := range records {
		for w := 0; w < model.WeeksPerMonth; w++ {
			if strings.TrimSpace(records[i].WeeksLocalized[w]) == "" {
				records[i].WeeksLocalized[w] = tr.Text(records[i].Weeks[w])
			}
		}
	}
}

// ImportCSV reads calendar rows from r and stores them in file order.
func (s *SQLiteStore) ImportCSV(ctx context.Context, r io.Reader, p ImportParams) (int, error) {
	records, err := ReadCSV(r)
	if err != nil {
		return 0, err
	}
	if p.Translator != nil {
		Localize(records, p.Translator)
	}
	return s.insert(ctx, records, p.Replace)
}

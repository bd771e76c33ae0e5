// Package store provides the calendar record store interface and SQLite implementation.
package store

import (
	"context"

	"github.com/rcliao/cropcal/internal/model"
	"github.com/rcliao/cropcal/internal/translate"
)

// ImportParams holds parameters for importing calendar rows.
type ImportParams struct {
	// Replace drops all existing rows before inserting.
	Replace bool
	// Translator fills in localized week texts for rows that have none. Optional.
	Translator translate.Translator
}

// SearchParams holds parameters for listing plans.
type SearchParams struct {
	Season string
	Crop   string
	Query  string // substring matched against season, crop and variety
	Limit  int
}

// PlanSummary describes one (season, crop, variety) plan held by the store.
type PlanSummary struct {
	Season    string `json:"season"`
	Crop      string `json:"crop"`
	Variety   string `json:"variety"`
	Months    int    `json:"months"`
	Bilingual bool   `json:"bilingual"`
}

// Store defines the calendar storage interface.
type Store interface {
	// Months returns the month records of a plan in calendar order. The variety
	// is matched as a case-insensitive substring. No match yields an empty slice.
	Months(ctx context.Context, q model.PlanQuery) ([]model.MonthRecord, error)

	// Insert appends records after the current last sequence position.
	Insert(ctx context.Context, records []model.MonthRecord) (int, error)

	// Plans lists the plans matching the given filters.
	Plans(ctx context.Context, p SearchParams) ([]PlanSummary, error)

	// Close closes the store.
	Close() error
}

// Package model defines the crop calendar data types.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// WeeksPerMonth is the number of weekly slots held by every month record.
const WeeksPerMonth = 4

// ErrUnknownLanguage is returned when a language option cannot be parsed.
var ErrUnknownLanguage = errors.New("unknown language")

// Language selects which text a plan is displayed in.
type Language string

const (
	LanguageSource    Language = "source"
	LanguageLocalized Language = "localized"
)

// ValidLanguages maps accepted spellings to their language.
var ValidLanguages = map[string]Language{
	"":          LanguageSource,
	"source":    LanguageSource,
	"en":        LanguageSource,
	"english":   LanguageSource,
	"localized": LanguageLocalized,
	"kn":        LanguageLocalized,
	"kannada":   LanguageLocalized,
}

// ParseLanguage resolves a user-supplied language option.
func ParseLanguage(s string) (Language, error) {
	l, ok := ValidLanguages[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q (valid: source, localized)", ErrUnknownLanguage, s)
	}
	return l, nil
}

// Tag returns the short language tag echoed in plan context.
func (l Language) Tag() string {
	if l == LanguageLocalized {
		return "kn"
	}
	return "en"
}

// Category is one of the operational facets a fragment may belong to.
type Category string

const (
	CategoryIrrigation Category = "irrigation"
	CategoryFertilizer Category = "fertilizer"
	CategoryWeed       Category = "weed"
	CategoryProtection Category = "protection"
	CategoryField      Category = "field"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryIrrigation,
	CategoryFertilizer,
	CategoryWeed,
	CategoryProtection,
	CategoryField,
}

// Stage is a coarse growth-phase label.
type Stage string

const (
	StageHarvest      Stage = "Harvest"
	StageMaturity     Stage = "Maturity"
	StageReproductive Stage = "Reproductive"
	StageVegetative   Stage = "Vegetative"
)

// MonthRecord is one row of the calendar as held by the record store.
type MonthRecord struct {
	ID             string                `json:"id,omitempty"`
	Seq            int                   `json:"seq"`
	Season         string                `json:"season"`
	Crop           string                `json:"crop"`
	Variety        string                `json:"variety"`
	Month          string                `json:"month"`
	Weeks          [WeeksPerMonth]string `json:"weeks"`
	WeeksLocalized [WeeksPerMonth]string `json:"weeks_kn"`
}

// Bilingual reports whether any localized week text is present.
func (r MonthRecord) Bilingual() bool {
	for _, w := range r.WeeksLocalized {
		if strings.TrimSpace(w) != "" {
			return true
		}
	}
	return false
}

// DisplayWeek returns the text of week slot i (0-based) in the given language,
// falling back to the source text when no localized text exists.
func (r MonthRecord) DisplayWeek(i int, lang Language) string {
	if lang == LanguageLocalized && strings.TrimSpace(r.WeeksLocalized[i]) != "" {
		return r.WeeksLocalized[i]
	}
	return r.Weeks[i]
}

// PlanQuery identifies a plan in the record store.
type PlanQuery struct {
	Season   string   `json:"season"`
	Crop     string   `json:"crop"`
	Variety  string   `json:"variety"`
	Language Language `json:"lang,omitempty"`
}

// Validate checks that all identifying fields are present.
func (q PlanQuery) Validate() error {
	var missing []string
	if strings.TrimSpace(q.Season) == "" {
		missing = append(missing, "season")
	}
	if strings.TrimSpace(q.Crop) == "" {
		missing = append(missing, "crop")
	}
	if strings.TrimSpace(q.Variety) == "" {
		missing = append(missing, "variety")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

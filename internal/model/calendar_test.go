package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthRecordJSONAlwaysCarriesLocalizedWeeks(t *testing.T) {
	r := MonthRecord{Seq: 1, Season: "Kharif", Crop: "Paddy", Variety: "MO-4", Month: "June"}
	r.Weeks[0] = "Land prep"

	b, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.JSONEq(t, `["","","",""]`, string(raw["weeks_kn"]))
	assert.False(t, r.Bilingual())
}

func TestDisplayWeek(t *testing.T) {
	r := MonthRecord{}
	r.Weeks = [WeeksPerMonth]string{"Sow", "Weed", "Field resting", "Scout"}
	r.WeeksLocalized[0] = "ಬಿತ್ತನೆ"

	assert.True(t, r.Bilingual())
	assert.Equal(t, "ಬಿತ್ತನೆ", r.DisplayWeek(0, LanguageLocalized))
	assert.Equal(t, "Weed", r.DisplayWeek(1, LanguageLocalized), "falls back to source text")
	assert.Equal(t, "Sow", r.DisplayWeek(0, LanguageSource))
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"", LanguageSource},
		{"en", LanguageSource},
		{" English ", LanguageSource},
		{"kn", LanguageLocalized},
		{"KANNADA", LanguageLocalized},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLanguage("fr")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestPlanQueryValidate(t *testing.T) {
	assert.NoError(t, PlanQuery{Season: "Kharif", Crop: "Paddy", Variety: "MO-4"}.Validate())

	err := PlanQuery{Season: "Kharif", Crop: " "}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crop, variety")
}

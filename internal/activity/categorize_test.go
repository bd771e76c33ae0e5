package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/cropcal/internal/model"
)

func TestIsResting(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"sentinel", "Field resting", true},
		{"sentinel lower", "field resting", true},
		{"sentinel upper padded", "  FIELD RESTING  ", true},
		{"localized sentinel", "ಜಮೀನಿಗೆ ವಿಶ್ರಾಂತಿ", true},
		{"empty", "", true},
		{"blank", " \t ", true},
		{"activity", "🚜Transplant (15-18d)", false},
		{"sentinel inside text", "Field resting | Check Weather", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsResting(tt.text))
		})
	}
}

func TestSplitFragments(t *testing.T) {
	got := SplitFragments(" a | b||c ")
	assert.Equal(t, []string{"a", "b", "", "c"}, got)

	assert.Equal(t, []string{"no pipes"}, SplitFragments("no pipes"))
}

func TestCategorizeTransplantWeek(t *testing.T) {
	c := NewCategorizer(nil)
	text := "🚜Transplant (15-18d)|Give water after planting"

	field := c.Categorize(text, model.CategoryField)
	assert.Contains(t, field, "🚜Transplant (15-18d)")

	irrigation := c.Categorize(text, model.CategoryIrrigation)
	assert.Contains(t, irrigation, "Give water after planting")
	assert.NotContains(t, irrigation, "Transplant")

	assert.Equal(t, StandardCare, c.Categorize(text, model.CategoryWeed))
}

func TestCategorizePreservesOrderAndJoins(t *testing.T) {
	c := NewCategorizer(nil)
	text := "Apply Basal Mixture (Urea+DAP+Potash) | Check Weather | 🧪Apply 8 kg/Acre Zinc"

	got := c.Categorize(text, model.CategoryFertilizer)
	assert.Equal(t, "Apply Basal Mixture (Urea+DAP+Potash) | 🧪Apply 8 kg/Acre Zinc", got)
}

func TestCategorizeIsNotExclusive(t *testing.T) {
	c := NewCategorizer(nil)
	text := "💧Irrigate then apply Urea | Scout: BPH"

	assert.Equal(t, "💧Irrigate then apply Urea", c.Categorize(text, model.CategoryIrrigation))
	assert.Equal(t, "💧Irrigate then apply Urea", c.Categorize(text, model.CategoryFertilizer))
	assert.Equal(t, "Scout: BPH", c.Categorize(text, model.CategoryProtection))
}

func TestCategorizeResting(t *testing.T) {
	c := NewCategorizer(nil)
	for _, cat := range model.Categories {
		assert.Equal(t, NoActivity, c.Categorize("Field resting", cat))
		assert.Equal(t, NoActivity, c.Categorize("ಜಮೀನಿಗೆ ವಿಶ್ರಾಂತಿ", cat))
	}
}

func TestCategorizeIsIdempotentOnLabels(t *testing.T) {
	c := NewCategorizer(nil)
	for _, cat := range model.Categories {
		t.Run(string(cat), func(t *testing.T) {
			assert.Equal(t, StandardCare, c.Categorize(StandardCare, cat))
			assert.Equal(t, StandardCare, c.Categorize(NoActivity, cat))
		})
	}
}

func TestCategorizeMalformedText(t *testing.T) {
	c := NewCategorizer(nil)
	for _, text := range []string{"|||", " | ", "lorem ipsum", "||  ||"} {
		for _, cat := range model.Categories {
			assert.Equal(t, StandardCare, c.Categorize(text, cat), "text %q category %s", text, cat)
		}
	}
}

func TestCategorizeLocalizedText(t *testing.T) {
	c := NewCategorizer(nil)
	text := "🚜15-18 ದಿನಗಳ ಸಸಿಗಳನ್ನು ನಾಟಿ ಮಾಡಿ | ನಾಟಿ ಮಾಡಿದ ನಂತರ ನೀರು ಕೊಡಿ"

	assert.Contains(t, c.Categorize(text, model.CategoryField), "ಸಸಿಗಳನ್ನು ನಾಟಿ ಮಾಡಿ")
	assert.Equal(t, "ನಾಟಿ ಮಾಡಿದ ನಂತರ ನೀರು ಕೊಡಿ", c.Categorize(text, model.CategoryIrrigation))
	assert.Equal(t, "ಪರಿಶೀಲಿಸಿ: ಜಿಗಿ ಹುಳು", c.Categorize("ಪರಿಶೀಲಿಸಿ: ಜಿಗಿ ಹುಳು", model.CategoryProtection))
}

func TestCategorizeGlyphHints(t *testing.T) {
	c := NewCategorizer(nil)
	tests := []struct {
		text string
		cat  model.Category
	}{
		{"💧 keep it going", model.CategoryIrrigation},
		{"🧪 mix", model.CategoryFertilizer},
		{"🔎 look around", model.CategoryProtection},
		{"⚠️ be careful", model.CategoryProtection},
		{"🚜 go", model.CategoryField},
		{"📅 schedule", model.CategoryField},
		{"✂️ go", model.CategoryField},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.text, c.Categorize(tt.text, tt.cat))
	}
}

func TestCategorizeAll(t *testing.T) {
	c := NewCategorizer(nil)
	got := c.CategorizeAll("Pull out weeds | Spray early morning/evening only")
	require.Len(t, got, len(model.Categories))
	assert.Equal(t, "Pull out weeds", got[model.CategoryWeed])
	assert.Equal(t, "Spray early morning/evening only", got[model.CategoryProtection])
	assert.Equal(t, StandardCare, got[model.CategoryIrrigation])
}

func TestSetTableSwapsKeywords(t *testing.T) {
	c := NewCategorizer(nil)
	custom, err := ParseKeywordTable([]byte(`
version: test
categories:
  - {category: irrigation, keywords: [sprinkle]}
  - {category: fertilizer, keywords: [feed]}
  - {category: weed, keywords: [hoe]}
  - {category: protection, keywords: [guard]}
  - {category: field, keywords: [plough]}
`))
	require.NoError(t, err)

	c.SetTable(custom)
	assert.Equal(t, "test", c.Table().Version)
	assert.Equal(t, "sprinkle rows", c.Categorize("sprinkle rows | give water", model.CategoryIrrigation))

	c.SetTable(nil)
	assert.Equal(t, "test", c.Table().Version, "nil table must be ignored")
}

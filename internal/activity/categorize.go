package activity

import (
	"strings"
	"sync/atomic"

	"github.com/rcliao/cropcal/internal/model"
)

const (
	// NoActivity is returned for resting weeks.
	NoActivity = "No specific activity"
	// StandardCare is returned when no fragment matches a category.
	StandardCare = "Standard care"
)

// fragmentSeparator joins the fragments retained for a category.
const fragmentSeparator = " | "

// Categorizer partitions weekly texts by category. The keyword table can be
// swapped at runtime; every call sees one consistent table.
type Categorizer struct {
	table atomic.Pointer[KeywordTable]
}

// NewCategorizer returns a Categorizer using t, or the default table if t is nil.
func NewCategorizer(t *KeywordTable) *Categorizer {
	if t == nil {
		t = DefaultKeywordTable()
	}
	c := &Categorizer{}
	c.table.Store(t)
	return c
}

// Table returns the keyword table currently in use.
func (c *Categorizer) Table() *KeywordTable {
	return c.table.Load()
}

// SetTable replaces the keyword table.
func (c *Categorizer) SetTable(t *KeywordTable) {
	if t != nil {
		c.table.Store(t)
	}
}

// Categorize returns the fragments of text that belong to category, joined by
// " | " in their original order.
func (c *Categorizer) Categorize(text string, category model.Category) string {
	return categorize(c.Table(), text, category)
}

// CategorizeAll categorizes text once per category against a single table.
func (c *Categorizer) CategorizeAll(text string) map[model.Category]string {
	t := c.Table()
	out := make(map[model.Category]string, len(model.Categories))
	for _, cat := range model.Categories {
		out[cat] = categorize(t, text, cat)
	}
	return out
}

func categorize(t *KeywordTable, text string, category model.Category) string {
	if IsResting(text) {
		return NoActivity
	}
	keywords := t.Keywords(category)

	var matched []string
	for _, frag := range SplitFragments(text) {
		if frag == "" {
			continue
		}
		if matchesAny(frag, keywords) {
			matched = append(matched, frag)
		}
	}
	if len(matched) == 0 {
		return StandardCare
	}
	return strings.Join(matched, fragmentSeparator)
}

func matchesAny(fragment string, lowerKeywords []string) bool {
	lf := strings.ToLower(fragment)
	for _, kw := range lowerKeywords {
		if strings.Contains(lf, kw) {
			return true
		}
	}
	return false
}

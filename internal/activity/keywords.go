package activity

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/cropcal/internal/model"
)

//go:embed keywords.yaml
var defaultKeywordsYAML []byte

// ErrInvalidKeywordTable is returned when a keyword table fails validation.
var ErrInvalidKeywordTable = errors.New("invalid keyword table")

// CategoryKeywords is the keyword list of one category.
type CategoryKeywords struct {
	Category model.Category `yaml:"category" json:"category"`
	Keywords []string       `yaml:"keywords" json:"keywords"`
}

// KeywordTable maps each category to the keywords that select it.
type KeywordTable struct {
	Version    string             `yaml:"version" json:"version"`
	Categories []CategoryKeywords `yaml:"categories" json:"categories"`

	once    sync.Once
	lowered map[model.Category][]string
}

// DefaultKeywordTable returns the table compiled into the binary.
func DefaultKeywordTable() *KeywordTable {
	t, err := ParseKeywordTable(defaultKeywordsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded keyword table: %v", err))
	}
	return t
}

// LoadKeywordTable reads and validates a keyword table file.
func LoadKeywordTable(path string) (*KeywordTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword table: %w", err)
	}
	t, err := ParseKeywordTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseKeywordTable decodes a YAML keyword table and validates it.
func ParseKeywordTable(data []byte) (*KeywordTable, error) {
	var t KeywordTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeywordTable, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.once.Do(t.compile)
	return &t, nil
}

// Validate checks that every category is present exactly once, that no keyword
// is blank and that no keyword occurs inside the fixed fallback labels.
func (t *KeywordTable) Validate() error {
	seen := make(map[model.Category]bool, len(t.Categories))
	for _, ck := range t.Categories {
		if !isKnownCategory(ck.Category) {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidKeywordTable, ck.Category)
		}
		if seen[ck.Category] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidKeywordTable, ck.Category)
		}
		seen[ck.Category] = true
		if len(ck.Keywords) == 0 {
			return fmt.Errorf("%w: category %q has no keywords", ErrInvalidKeywordTable, ck.Category)
		}
		for _, kw := range ck.Keywords {
			lk := strings.ToLower(strings.TrimSpace(kw))
			if lk == "" {
				return fmt.Errorf("%w: blank keyword in %q", ErrInvalidKeywordTable, ck.Category)
			}
			for _, label := range []string{StandardCare, NoActivity} {
				if strings.Contains(strings.ToLower(label), lk) {
					return fmt.Errorf("%w: keyword %q of %q matches the label %q", ErrInvalidKeywordTable, kw, ck.Category, label)
				}
			}
		}
	}
	for _, c := range model.Categories {
		if !seen[c] {
			return fmt.Errorf("%w: missing category %q", ErrInvalidKeywordTable, c)
		}
	}
	return nil
}

// Keywords returns the lower-cased keywords of a category.
func (t *KeywordTable) Keywords(c model.Category) []string {
	t.once.Do(t.compile)
	return t.lowered[c]
}

func (t *KeywordTable) compile() {
	t.lowered = make(map[model.Category][]string, len(t.Categories))
	for _, ck := range t.Categories {
		kws := make([]string, 0, len(ck.Keywords))
		for _, kw := range ck.Keywords {
			kws = append(kws, strings.ToLower(strings.TrimSpace(kw)))
		}
		t.lowered[ck.Category] = kws
	}
}

func isKnownCategory(c model.Category) bool {
	for _, known := range model.Categories {
		if c == known {
			return true
		}
	}
	return false
}

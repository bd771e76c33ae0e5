// Package translate localizes calendar text with a closed phrase dictionary.
package translate

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed dictionary.yaml
var defaultDictionaryYAML []byte

// Translator localizes calendar text.
type Translator interface {
	// Text localizes a pipe-delimited weekly text.
	Text(text string) string
	// Label localizes a single label such as a month, season or crop name.
	Label(s string) string
}

// Entry maps one source phrase to its localized phrase.
type Entry struct {
	Source    string `yaml:"source"`
	Localized string `yaml:"localized"`
}

// Dictionary is an ordered phrase table. Phrases are replaced in table order.
type Dictionary struct {
	Version  string  `yaml:"version"`
	Language string  `yaml:"language"`
	Resting  string  `yaml:"resting"`
	Entries  []Entry `yaml:"entries"`

	exact map[string]string
}

// Default returns the dictionary compiled into the binary.
func Default() *Dictionary {
	d, err := Parse(defaultDictionaryYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded dictionary: %v", err))
	}
	return d
}

// Load reads a dictionary file. An empty path yields the default dictionary.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a YAML dictionary.
func Parse(data []byte) (*Dictionary, error) {
	var d Dictionary
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse dictionary: %w", err)
	}
	if d.Resting == "" {
		return nil, fmt.Errorf("parse dictionary: resting phrase is required")
	}
	d.exact = make(map[string]string, len(d.Entries))
	for i, e := range d.Entries {
		if e.Source == "" {
			return nil, fmt.Errorf("parse dictionary: entry %d has no source phrase", i)
		}
		d.exact[strings.ToLower(e.Source)] = e.Localized
	}
	return &d, nil
}

// Text localizes a weekly text fragment by fragment. Empty and resting texts
// become the localized resting phrase.
func (d *Dictionary) Text(text string) string {
	t := strings.TrimSpace(text)
	if t == "" || strings.EqualFold(t, "field resting") {
		return d.Resting
	}

	parts := strings.Split(text, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, d.replace(strings.TrimSpace(p)))
	}
	return strings.Join(out, " | ")
}

// Label localizes a single label, preferring an exact (case-insensitive) entry.
func (d *Dictionary) Label(s string) string {
	if l, ok := d.exact[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l
	}
	return d.replace(s)
}

func (d *Dictionary) replace(s string) string {
	for _, e := range d.Entries {
		if strings.Contains(s, e.Source) {
			s = strings.ReplaceAll(s, e.Source, e.Localized)
		}
	}
	return s
}

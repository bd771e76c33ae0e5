// Package activity classifies free-text weekly calendar activities into
// operational categories and growth stages.
package activity

import "strings"

const (
	// RestingSentinel marks a week with no agronomic activity.
	RestingSentinel = "Field resting"
	// RestingSentinelLocalized is RestingSentinel in the localized language.
	RestingSentinelLocalized = "ಜಮೀನಿಗೆ ವಿಶ್ರಾಂತಿ"
)

// IsResting reports whether a weekly text is empty, blank or a resting sentinel.
func IsResting(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}
	return strings.EqualFold(t, RestingSentinel) || t == RestingSentinelLocalized
}

// SplitFragments splits a weekly text on "|" and trims every part.
// Empty parts are kept.
func SplitFragments(text string) []string {
	parts := strings.Split(text, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func containsFold(s, lowerSubstr string) bool {
	return strings.Contains(strings.ToLower(s), lowerSubstr)
}

package businessflow

import (
	"regexp"

	"github.com/amirphl/campaign-forge/models"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Interpolate replaces {key} tokens in pattern with the display form of values[key].
// Absent keys keep their literal token; null values render empty. Substituted text is never rescanned.
func Interpolate(pattern string, values models.RowData) string {
	if pattern == "" {
		return ""
	}

	return placeholderPattern.ReplaceAllStringFunc(pattern, func(token string) string {
		key := token[1 : len(token)-1]
		value, ok := values[key]
		if !ok {
			return token
		}
		return value.DisplayString()
	})
}

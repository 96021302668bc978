package businessflow

import (
	"strings"
	"testing"

	"github.com/amirphl/campaign-forge/models"
	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	values := models.RowData{
		"brand":    models.StringValue("Nike"),
		"Brand":    models.StringValue("NIKE"),
		"category": models.StringValue("Shoes"),
		"price":    models.NumberValue(99.99),
		"count":    models.NumberValue(100),
		"note":     models.NullValue(),
		"promo":    models.StringValue("50% off & free {shipping}!"),
	}

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "empty pattern", pattern: "", want: ""},
		{name: "no tokens", pattern: "Performance Max", want: "Performance Max"},
		{name: "single token", pattern: "Performance - {brand}", want: "Performance - Nike"},
		{name: "multiple tokens", pattern: "{brand} {category}", want: "Nike Shoes"},
		{name: "repeated token", pattern: "{brand}/{brand}", want: "Nike/Nike"},
		{name: "decimal number", pattern: "${price}", want: "$99.99"},
		{name: "integral number", pattern: "{count} units", want: "100 units"},
		{name: "null renders empty", pattern: "[{note}]", want: "[]"},
		{name: "missing key keeps token", pattern: "{brand} - {missing}", want: "Nike - {missing}"},
		{name: "case sensitive lookup", pattern: "{brand}|{Brand}|{BRAND}", want: "Nike|NIKE|{BRAND}"},
		{name: "special characters pass through", pattern: "{promo}", want: "50% off & free {shipping}!"},
		{name: "invalid identifier untouched", pattern: "{brand name} {brand-x} {}", want: "{brand name} {brand-x} {}"},
		{name: "adjacent braces", pattern: "{{brand}}", want: "{Nike}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpolate(tt.pattern, values))
		})
	}
}

func TestInterpolate_EmptyPatternIgnoresValues(t *testing.T) {
	assert.Equal(t, "", Interpolate("", nil))
	assert.Equal(t, "", Interpolate("", models.RowData{"a": models.StringValue("x")}))
}

func TestInterpolate_KnownKeysResolveAllTokens(t *testing.T) {
	values := models.RowData{
		"a": models.StringValue("alpha"),
		"b": models.NumberValue(2),
		"c": models.NullValue(),
	}

	patterns := []string{"{a}", "{a}{b}{c}", "x {c} y {b} z {a}", "{b}-{b}-{b}"}
	for _, pattern := range patterns {
		out := Interpolate(pattern, values)
		assert.False(t, strings.ContainsAny(out, "{}"), "pattern %q rendered %q", pattern, out)
	}
}

func TestInterpolate_NilValues(t *testing.T) {
	assert.Equal(t, "{brand} shoes", Interpolate("{brand} shoes", nil))
}

package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already safe", "discount_rate", "discount_rate"},
		{"uppercase folded", "DiscountRate", "discountrate"},
		{"spaces and symbols stripped", "  price ($) override! ", "priceoverride"},
		{"dashes kept", "rule-type", "rule-type"},
		{"fully invalid", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeKey(tt.in))
		})
	}
}

func TestSanitizePreservesScalarTypes(t *testing.T) {
	got := Sanitize(Map{
		"enabled":  true,
		"discount": 10.5,
		"limit":    3,
		"label":    "<b>Deal</b> of the day",
	})

	assert.Equal(t, true, got["enabled"])
	assert.Equal(t, 10.5, got["discount"])
	assert.Equal(t, 3, got["limit"])
	assert.Equal(t, "Deal of the day", got["label"])
}

func TestSanitizeRecursesIntoNestedMappings(t *testing.T) {
	got := Sanitize(Map{
		"Display Rules": map[string]any{
			"Position":   "<script>alert(1)</script>below_cart",
			"Max Items!": 4,
		},
		"tags": []any{"<i>new</i>", "sale"},
	})

	nested, ok := got["displayrules"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "alert(1)below_cart", nested["position"])
	assert.Equal(t, 4, nested["maxitems"])
	assert.Equal(t, []any{"new", "sale"}, got["tags"])
}

func TestSanitizeDropsEmptyKeys(t *testing.T) {
	got := Sanitize(Map{"!!!": "value", "kept": "value"})
	assert.Len(t, got, 1)
	assert.Contains(t, got, "kept")
}

func TestDecodeMalformedBlobYieldsEmptyMap(t *testing.T) {
	assert.Equal(t, Map{}, Decode(nil))
	assert.Equal(t, Map{}, Decode(datatypes.JSON(`not json at all`)))
	assert.Equal(t, Map{}, Decode(datatypes.JSON(`null`)))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := Sanitize(Map{
		"discount": 10,
		"enabled":  true,
		"display":  map[string]any{"position": "below_cart"},
	})

	raw, err := Encode(original)
	assert.NoError(t, err)

	decoded := Decode(raw)
	assert.Equal(t, true, decoded["enabled"])
	assert.Equal(t, float64(10), decoded["discount"])
	display, _ := decoded["display"].(map[string]any)
	assert.Equal(t, "below_cart", display["position"])
}

func TestMergeOverrideWinsAtTopLevel(t *testing.T) {
	base := Map{"enabled": false, "limit": 5}
	override := Map{"enabled": true}

	merged := Merge(base, override)
	assert.Equal(t, true, merged["enabled"])
	assert.Equal(t, 5, merged["limit"])

	// Inputs untouched.
	assert.Equal(t, false, base["enabled"])
}

func TestCloneIsIndependent(t *testing.T) {
	original := Map{"display": map[string]any{"position": "below_cart"}}
	copied := Clone(original)

	copied["display"].(map[string]any)["position"] = "above_cart"

	assert.Equal(t, "below_cart", original["display"].(map[string]any)["position"])
}

func TestLookupDottedPath(t *testing.T) {
	m := Map{"display": map[string]any{"position": "below_cart"}, "limit": 3}

	v, ok := Lookup(m, "display.position")
	assert.True(t, ok)
	assert.Equal(t, "below_cart", v)

	v, ok = Lookup(m, "limit")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = Lookup(m, "display.missing")
	assert.False(t, ok)
	_, ok = Lookup(m, "limit.nested")
	assert.False(t, ok)
}

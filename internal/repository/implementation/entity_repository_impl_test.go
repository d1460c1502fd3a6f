package implementation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOrderBy(t *testing.T) {
	tests := []struct {
		name    string
		orderBy string
		want    string
	}{
		{"allow-listed column", "name", "name"},
		{"priority itself", "priority", "priority"},
		{"created_at", "created_at", "created_at"},
		{"injection attempt", "id; DROP TABLE storeboost_entities", "priority"},
		{"existing but unlisted column", "feature_id", "priority"},
		{"empty", "", "priority"},
		{"case-sensitive allow-list", "NAME", "priority"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeOrderBy(tt.orderBy))
		})
	}
}

func TestNormalizeOrder(t *testing.T) {
	assert.Equal(t, "DESC", normalizeOrder("DESC"))
	assert.Equal(t, "DESC", normalizeOrder("desc"))
	assert.Equal(t, "ASC", normalizeOrder("ASC"))
	assert.Equal(t, "ASC", normalizeOrder(""))
	assert.Equal(t, "ASC", normalizeOrder("DESC; DROP TABLE x"))
	assert.Equal(t, "ASC", normalizeOrder("descending"))
}

func TestSettingEquals(t *testing.T) {
	// Decoded JSON numbers are float64; callers usually pass ints.
	assert.True(t, settingEquals(float64(10), 10))
	assert.True(t, settingEquals(float64(10.5), 10.5))
	assert.False(t, settingEquals(float64(10), 11))
	assert.True(t, settingEquals("below_cart", "below_cart"))
	assert.False(t, settingEquals("below_cart", "above_cart"))
	assert.True(t, settingEquals(true, true))
	assert.False(t, settingEquals(true, "true"))
	assert.False(t, settingEquals("10", 10))
}

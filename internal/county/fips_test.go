package county

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateAbbr_Known(t *testing.T) {
	tests := []struct {
		fips string
		abbr string
	}{
		{"01", "AL"},
		{"06", "CA"},
		{"11", "DC"},
		{"36", "NY"},
		{"53", "WA"},
		{"56", "WY"},
	}
	for _, tt := range tests {
		abbr, ok := StateAbbr(tt.fips)
		assert.True(t, ok, tt.fips)
		assert.Equal(t, tt.abbr, abbr)
	}
}

func TestStateAbbr_Unknown(t *testing.T) {
	for _, fips := range []string{"99", "60", "72", "", "6"} {
		abbr, ok := StateAbbr(fips)
		assert.False(t, ok, fips)
		assert.Empty(t, abbr)
	}
}

func TestStateAbbr_TableSize(t *testing.T) {
	// 50 states plus DC.
	assert.Len(t, stateAbbr, 51)
}

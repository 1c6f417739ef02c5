package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownCodes(t *testing.T) {
	tests := []struct {
		code   string
		abbrev string
	}{
		{"USA", "US"},
		{"BRA", "BR"},
		{"DEU", "DE"},
		{"gbr", "GB"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			name, abbrev := Lookup(tt.code)
			assert.Equal(t, tt.abbrev, abbrev)
			assert.NotEmpty(t, name)
			assert.NotEqual(t, tt.code, name)
		})
	}
}

func TestLookupUnknownFallsBack(t *testing.T) {
	name, abbrev := Lookup("XXX")
	assert.Equal(t, "XXX", name)
	assert.Equal(t, "XX", abbrev)
}

func TestLookupShortOrEmpty(t *testing.T) {
	name, abbrev := Lookup("")
	assert.Equal(t, "", name)
	assert.Equal(t, "", abbrev)

	name, abbrev = Lookup("Q")
	assert.Equal(t, "Q", name)
	assert.Equal(t, "Q", abbrev)
}

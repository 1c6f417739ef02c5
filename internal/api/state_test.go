package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salarydash/internal/config"
	"salarydash/internal/engine"
)

func TestParseState(t *testing.T) {
	cs := fixtureStore()
	dash := config.DefaultConfig().Dashboard
	all := engine.DefaultSelection(cs)

	tests := []struct {
		name  string
		query string
		check func(t *testing.T, s engine.State)
	}{
		{
			name:  "no parameters selects everything",
			query: "",
			check: func(t *testing.T, s engine.State) {
				assert.Equal(t, all, s.Selection)
				assert.Equal(t, 10, s.TopN)
				assert.Equal(t, 30, s.Bins)
			},
		},
		{
			name:  "repeated values",
			query: "year=2022&year=2023&seniority=senior&seniority=pleno",
			check: func(t *testing.T, s engine.State) {
				assert.Equal(t, []int{2022, 2023}, s.Selection.Years)
				assert.Equal(t, []string{"senior", "pleno"}, s.Selection.Seniorities)
				assert.Equal(t, all.Contracts, s.Selection.Contracts)
			},
		},
		{
			name:  "blank value selects nothing",
			query: "company_size=",
			check: func(t *testing.T, s engine.State) {
				assert.NotNil(t, s.Selection.CompanySizes)
				assert.Empty(t, s.Selection.CompanySizes)
				assert.Equal(t, all.Years, s.Selection.Years)
			},
		},
		{
			name:  "blank entries are dropped beside real ones",
			query: "contract=&contract=integral",
			check: func(t *testing.T, s engine.State) {
				assert.Equal(t, []string{"integral"}, s.Selection.Contracts)
			},
		},
		{
			name:  "sliders are clamped",
			query: "top_n=1&bins=999",
			check: func(t *testing.T, s engine.State) {
				assert.Equal(t, 5, s.TopN)
				assert.Equal(t, 50, s.Bins)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			s, err := parseState(q, cs, dash)
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestParseStateRejectsBadIntegers(t *testing.T) {
	cs := fixtureStore()
	dash := config.DefaultConfig().Dashboard

	for _, query := range []string{"year=x", "top_n=1e3", "bins=-"} {
		q, _ := url.ParseQuery(query)
		_, err := parseState(q, cs, dash)
		require.Error(t, err, query)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}
}

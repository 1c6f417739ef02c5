package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"salarydash/internal/config"
	"salarydash/internal/engine"
)

// Filter query parameters. Each may repeat. An absent parameter selects
// every observed value; a present but blank one selects nothing.
const (
	paramYear        = "year"
	paramSeniority   = "seniority"
	paramContract    = "contract"
	paramCompanySize = "company_size"
	paramTopN        = "top_n"
	paramBins        = "bins"
	paramFrame       = "frame"
)

// parseState builds the dashboard state for a request. Slider values are
// clamped to their configured bounds; malformed integers are a 400.
func parseState(q url.Values, cs *engine.ColumnStore, dash config.DashboardConfig) (engine.State, error) {
	state := engine.State{Selection: engine.DefaultSelection(cs)}

	if raw, ok := q[paramYear]; ok {
		years := make([]int, 0, len(raw))
		for _, v := range nonBlank(raw) {
			y, err := strconv.Atoi(v)
			if err != nil {
				return state, badParam(paramYear, v)
			}
			years = append(years, y)
		}
		state.Selection.Years = years
	}
	if raw, ok := q[paramSeniority]; ok {
		state.Selection.Seniorities = nonBlank(raw)
	}
	if raw, ok := q[paramContract]; ok {
		state.Selection.Contracts = nonBlank(raw)
	}
	if raw, ok := q[paramCompanySize]; ok {
		state.Selection.CompanySizes = nonBlank(raw)
	}

	var err error
	if state.TopN, err = sliderParam(q, paramTopN, dash.TopN); err != nil {
		return state, err
	}
	if state.Bins, err = sliderParam(q, paramBins, dash.Bins); err != nil {
		return state, err
	}
	return state, nil
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func sliderParam(q url.Values, name string, s config.SliderConfig) (int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return s.Default, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badParam(name, v)
	}
	return s.Clamp(n), nil
}

func badParam(name, value string) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s %q", name, value))
}

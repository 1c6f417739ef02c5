package engine

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"salarydash/internal/models"
)

// Slider bounds and defaults of the dashboard controls.
const (
	DefaultTopN        = 10
	DefaultBins        = 30
	DefaultPreviewRows = 1000
)

// State is everything a dashboard render depends on besides the data.
type State struct {
	Selection Selection
	TopN      int
	Bins      int
}

// ViewOptions carries deployment settings that are not user input.
type ViewOptions struct {
	TargetRole  string
	PreviewRows int
}

func (o ViewOptions) withDefaults() ViewOptions {
	if o.TargetRole == "" {
		o.TargetRole = DefaultTargetRole
	}
	if o.PreviewRows <= 0 {
		o.PreviewRows = DefaultPreviewRows
	}
	return o
}

// BuildDashboard filters cs with state and computes every dashboard section.
// When nothing matches only the zero-valued metrics are filled in.
func BuildDashboard(cs *ColumnStore, state State, opts ViewOptions) *models.DashboardData {
	opts = opts.withDefaults()
	view := Filter(cs, state.Selection)

	data := &models.DashboardData{
		State:   models.StateEcho{TopN: state.TopN, Bins: state.Bins},
		Metrics: FormatMetrics(Summarize(view)),
		Preview: []models.Record{},
		Total:   view.Len(),
	}
	if view.Len() == 0 {
		data.Empty = true
		return data
	}

	data.TopRoles = TopRolesByMean(view, state.TopN)
	data.Histogram = Histogram(view, state.Bins)
	data.Remote = RemoteShare(view)
	if rows := CountryYearMeans(view, opts.TargetRole); len(rows) > 0 {
		data.Countries = &models.CountrySection{
			Role:   opts.TargetRole,
			Frames: Frames(rows),
		}
	}
	data.Preview = Preview(view, opts.PreviewRows)
	return data
}

// FormatMetrics fills the display strings of m, e.g. "$60,000".
func FormatMetrics(m models.Metrics) models.Metrics {
	m.MeanSalaryText = FormatUSD(m.MeanSalary)
	m.MaxSalaryText = FormatUSD(m.MaxSalary)
	m.RecordCountText = message.NewPrinter(language.English).Sprintf("%d", m.RecordCount)
	return m
}

// FormatUSD renders v as whole dollars with thousands separators.
func FormatUSD(v float64) string {
	return message.NewPrinter(language.English).Sprintf("$%.0f", v)
}

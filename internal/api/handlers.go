package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"salarydash/internal/charts"
	"salarydash/internal/config"
	"salarydash/internal/engine"
	"salarydash/internal/export"
	"salarydash/internal/logger"
	"salarydash/internal/models"
)

const storeKey = "store"

// Handler serves the dashboard over the currently published dataset.
type Handler struct {
	store atomic.Pointer[engine.ColumnStore]
	dash  config.DashboardConfig
	log   *logger.Logger
}

func NewHandler(dash config.DashboardConfig, log *logger.Logger) *Handler {
	return &Handler{dash: dash, log: log}
}

// SetStore publishes a loaded dataset. Requests made before the first call
// receive 503.
func (h *Handler) SetStore(cs *engine.ColumnStore) {
	h.store.Store(cs)
}

// Ready reports whether a dataset has been published.
func (h *Handler) Ready() bool {
	return h.store.Load() != nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.GetIndex)
	e.GET("/health", h.GetHealth)

	api := e.Group("/api", h.requireData)
	api.GET("/options", h.GetOptions)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/metrics", h.GetMetrics)
	api.GET("/roles/top", h.GetTopRoles)
	api.GET("/salaries/histogram", h.GetHistogram)
	api.GET("/remote", h.GetRemote)
	api.GET("/countries/yearly", h.GetCountriesYearly)
	api.GET("/records", h.GetRecords)
	api.GET("/records/export.arrow", h.ExportArrow)

	img := e.Group("/charts", h.requireData)
	img.GET("/top-roles.png", h.ChartTopRoles)
	img.GET("/histogram.png", h.ChartHistogram)
	img.GET("/remote.png", h.ChartRemote)
	img.GET("/countries.png", h.ChartCountries)
}

// requireData rejects requests until the dataset is loaded and hands the
// store to the handler.
func (h *Handler) requireData(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cs := h.store.Load()
		if cs == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "dataset loading")
		}
		c.Set(storeKey, cs)
		return next(c)
	}
}

func storeFrom(c echo.Context) *engine.ColumnStore {
	return c.Get(storeKey).(*engine.ColumnStore)
}

func (h *Handler) viewOptions() engine.ViewOptions {
	return engine.ViewOptions{TargetRole: h.dash.TargetRole, PreviewRows: h.dash.PreviewRows}
}

func (h *Handler) targetRole() string {
	if h.dash.TargetRole == "" {
		return engine.DefaultTargetRole
	}
	return h.dash.TargetRole
}

// filtered parses the request state and applies its selection.
func (h *Handler) filtered(c echo.Context) (engine.State, *engine.View, error) {
	cs := storeFrom(c)
	state, err := parseState(c.QueryParams(), cs, h.dash)
	if err != nil {
		return state, nil, err
	}
	return state, engine.Filter(cs, state.Selection), nil
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"loaded": h.Ready(),
	})
}

func (h *Handler) GetOptions(c echo.Context) error {
	opts := storeFrom(c).Options()
	opts.TopN = slider(h.dash.TopN)
	opts.Bins = slider(h.dash.Bins)
	return sendJSON(c, opts)
}

func slider(s config.SliderConfig) models.Slider {
	return models.Slider{Min: s.Min, Max: s.Max, Default: s.Default}
}

func (h *Handler) GetDashboard(c echo.Context) error {
	cs := storeFrom(c)
	state, err := parseState(c.QueryParams(), cs, h.dash)
	if err != nil {
		return err
	}
	return sendJSON(c, engine.BuildDashboard(cs, state, h.viewOptions()))
}

func (h *Handler) GetMetrics(c echo.Context) error {
	_, view, err := h.filtered(c)
	if err != nil {
		return err
	}
	return sendJSON(c, engine.FormatMetrics(engine.Summarize(view)))
}

func (h *Handler) GetTopRoles(c echo.Context) error {
	state, view, err := h.filtered(c)
	if err != nil {
		return err
	}
	return sendJSON(c, engine.TopRolesByMean(view, state.TopN))
}

func (h *Handler) GetHistogram(c echo.Context) error {
	state, view, err := h.filtered(c)
	if err != nil {
		return err
	}
	return sendJSON(c, engine.Histogram(view, state.Bins))
}

func (h *Handler) GetRemote(c echo.Context) error {
	_, view, err := h.filtered(c)
	if err != nil {
		return err
	}
	return sendJSON(c, engine.RemoteShare(view))
}

func (h *Handler) GetCountriesYearly(c echo.Context) error {
	_, view, err := h.filtered(c)
	if err != nil {
		return err
	}
	role := h.targetRole()
	return sendJSON(c, models.CountrySection{
		Role:   role,
		Frames: engine.Frames(engine.CountryYearMeans(view, role)),
	})
}

// GetRecords pages through the raw rows of the filtered view.
func (h *Handler) GetRecords(c echo.Context) error {
	_, view, err := h.filtered(c)
	if err != nil {
		return err
	}
	total := view.Len()
	limit, offset := getPaginationParams(c, h.dash.PreviewRows)

	rows := []models.Record{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		rows = make([]models.Record, 0, end-offset)
		for i := offset; i < end; i++ {
			rows = append(rows, view.Record(i))
		}
	}

	return sendJSON(c, map[string]interface{}{
		"data":   rows,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) ExportArrow(c echo.Context) error {
	_, view, err := h.filtered(c)
	if err != nil {
		return err
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, export.ArrowContentType)
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="salaries.arrow"`)
	res.WriteHeader(http.StatusOK)
	if err := export.WriteArrow(res, view); err != nil {
		// headers are already sent, the client sees a truncated stream
		h.log.Errorw("arrow export failed", "rows", view.Len(), "error", err)
		return err
	}
	return nil
}

// --- CHARTS ---

// renderChart sends the PNG produced by draw, or 204 when the section has
// nothing to show.
func renderChart(c echo.Context, draw func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		if errors.Is(err, charts.ErrNoData) {
			return c.NoContent(http.StatusNoContent)
		}
		return err
	}
	return sendBlob(c, "image/png", buf.Bytes())
}

func (h *Handler) ChartTopRoles(c echo.Context) error {
	state, view, err := h.filtered(c)
	if err != nil {
		return err
	}
	return renderChart(c, func(buf *bytes.Buffer) error {
		return charts.TopRoles(buf, engine.TopRolesByMean(view, state.TopN))
	})
}

func (h *Handler) ChartHistogram(c echo.Context) error {
	state, view, err := h.filtered(c)
	if err != nil {
		return err
	}
	return renderChart(c, func(buf *bytes.Buffer) error {
		return charts.Histogram(buf, engine.Histogram(view, state.Bins))
	})
}

func (h *Handler) ChartRemote(c echo.Context) error {
	_, view, err := h.filtered(c)
	if err != nil {
		return err
	}
	return renderChart(c, func(buf *bytes.Buffer) error {
		return charts.Remote(buf, engine.RemoteShare(view))
	})
}

// ChartCountries draws one year of the country animation, the earliest
// year unless ?frame= picks another. The year filter still applies.
func (h *Handler) ChartCountries(c echo.Context) error {
	_, view, err := h.filtered(c)
	if err != nil {
		return err
	}
	role := h.targetRole()
	frames := engine.Frames(engine.CountryYearMeans(view, role))
	if len(frames) == 0 {
		return c.NoContent(http.StatusNoContent)
	}

	frame := frames[0]
	if y := c.QueryParam(paramFrame); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid frame year "+strconv.Quote(y))
		}
		found := false
		for _, f := range frames {
			if f.Year == year {
				frame, found = f, true
				break
			}
		}
		if !found {
			return echo.NewHTTPError(http.StatusNotFound, "no data for year "+y)
		}
	}

	scale := charts.DeviationScale(frames)
	return renderChart(c, func(buf *bytes.Buffer) error {
		return charts.Countries(buf, role, frame, scale)
	})
}

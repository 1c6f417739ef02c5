package api

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"

	"salarydash/internal/engine"
	"salarydash/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageRenderer implements echo.Renderer over the embedded templates.
type pageRenderer struct {
	templates *template.Template
}

func newPageRenderer() *pageRenderer {
	funcs := template.FuncMap{
		"has":        func(s []string, v string) bool { return slices.Contains(s, v) },
		"hasYear":    func(s []int, v int) bool { return slices.Contains(s, v) },
		"usd":        engine.FormatUSD,
		"frameQuery": frameQuery,
	}
	return &pageRenderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *pageRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

type indexPage struct {
	Loading   bool
	Options   models.Options
	Selection engine.Selection
	Data      *models.DashboardData
	Query     template.URL
	Years     []int
}

// GetIndex renders the dashboard page. Charts are <img> tags pointing at
// the PNG routes with the same query string.
func (h *Handler) GetIndex(c echo.Context) error {
	cs := h.store.Load()
	if cs == nil {
		return c.Render(http.StatusOK, "index.html", indexPage{Loading: true})
	}

	state, err := parseState(c.QueryParams(), cs, h.dash)
	if err != nil {
		return err
	}
	opts := cs.Options()
	opts.TopN = slider(h.dash.TopN)
	opts.Bins = slider(h.dash.Bins)

	page := indexPage{
		Options:   opts,
		Selection: state.Selection,
		Data:      engine.BuildDashboard(cs, state, h.viewOptions()),
		Query:     pageQuery(c.QueryParams()),
	}
	if page.Data.Countries != nil {
		for _, f := range page.Data.Countries.Frames {
			page.Years = append(page.Years, f.Year)
		}
	}
	return c.Render(http.StatusOK, "index.html", page)
}

// pageQuery re-encodes the request filters for the chart links, minus any
// frame selection, which each country image sets itself.
func pageQuery(params url.Values) template.URL {
	q := make(url.Values, len(params))
	for k, v := range params {
		if k != paramFrame {
			q[k] = v
		}
	}
	return template.URL(q.Encode())
}

func frameQuery(query template.URL, year int) template.URL {
	frame := paramFrame + "=" + strconv.Itoa(year)
	if query == "" {
		return template.URL(frame)
	}
	return query + template.URL("&"+frame)
}

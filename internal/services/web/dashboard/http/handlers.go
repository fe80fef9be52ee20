// Package http provides the dashboard page and summary endpoint
package http

import (
	"embed"
	"html/template"
	stdhttp "net/http"

	"datamonitor/internal/modkit/httpkit"
	phttp "datamonitor/internal/platform/net/http"
	"datamonitor/internal/platform/net/http/bind"
	"datamonitor/internal/services/web/dashboard/domain"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

// limitRule bounds the limit query parameter
const limitRule = "min=0,max=1000"

var page = template.Must(template.New("").Funcs(template.FuncMap{
	"comma":    func(n int) string { return humanize.Comma(int64(n)) },
	"maxCount": maxCount,
	"pct":      pct,
}).ParseFS(templateFS, "templates/*.html"))

// RegisterPage mounts the HTML dashboard at the router root
func RegisterPage(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	r.GetHead("/", h.index)
}

// RegisterAPI mounts the JSON summary endpoint
func RegisterAPI(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/summary", h.summary)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) index(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.HTML(w, r, page, "index.html", h.svc.Dashboard(r.Context(), 0))
}

// swagger:route GET /dashboard/summary Dashboard dashboardSummary
// @Summary Summary figures, day histogram and records table
// @Tags Dashboard
// @Produce json
// @Param limit query int false "table rows, 0 uses the default"
// @Success 200 type domain.View ok
// @Router /dashboard/summary [get]
func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	limit, err := bind.QueryInt(r, "limit", 0, limitRule)
	if err != nil {
		return nil, err
	}
	return h.svc.Dashboard(r.Context(), limit), nil
}

func maxCount(counts []int) int {
	m := 0
	for _, c := range counts {
		if c > m {
			m = c
		}
	}
	return m
}

// pct is the bar width of n relative to max, in whole percent
func pct(n, max int) int {
	if max <= 0 {
		return 0
	}
	return n * 100 / max
}

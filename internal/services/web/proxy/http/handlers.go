// Package http exposes the pass-through proxy
package http

import (
	stdhttp "net/http"

	"datamonitor/internal/modkit/httpkit"
	phttp "datamonitor/internal/platform/net/http"
	svc "datamonitor/internal/services/web/proxy/service"
)

// ErrorBody is the failure payload, kept flat for the browser charts
type ErrorBody struct {
	Error string `json:"error" example:"upstream proxy: status 502"`
}

// Path is where the proxy answers
const Path = "/api/proxy"

// Register mounts the proxy with and without the trailing slash
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	r.Get(Path, h.forward)
	r.Get(Path+"/", h.forward)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /api/proxy Proxy proxyForward
// @Summary Remote JSON forwarded verbatim
// @Tags Proxy
// @Produce json
// @Success 200 "remote body"
// @Failure 500 type ErrorBody
// @Router /api/proxy [get]
func (h *handlers) forward(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	raw, err := h.svc.Forward(r.Context())
	if err != nil {
		phttp.JSON(w, stdhttp.StatusInternalServerError, ErrorBody{Error: err.Error()})
		return
	}
	phttp.RawJSON(w, stdhttp.StatusOK, raw)
}

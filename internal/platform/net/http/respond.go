// Package http provides the router seam, server and response helpers with a consistent envelope
package http

import (
	"bytes"
	"cmp"
	"encoding/json"
	"html/template"
	stdhttp "net/http"

	"datamonitor/internal/platform/logger"
	pnet "datamonitor/internal/platform/net"
)

// Envelope is the standard response body for JSON API endpoints
type Envelope = pnet.Envelope

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RawJSON writes an already encoded JSON document untouched
func RawJSON(w stdhttp.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

// HTML renders a named template into a buffer first so a failing template
// never leaves a half written 200 behind
func HTML(w stdhttp.ResponseWriter, r *stdhttp.Request, t *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		logger.C(r.Context()).Error().Err(err).Str("template", name).Msg("template render failed")
		stdhttp.Error(w, stdhttp.StatusText(stdhttp.StatusInternalServerError), stdhttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = buf.WriteTo(w)
}

// RespondOK writes a 200 envelope with data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusOK, pnet.Reply(stdhttp.StatusOK, data, pnet.RequestID(r.Context())))
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	Error(err).writeTo(w, r)
}

// Response is what return-style handlers produce. A non-nil error Body is
// written as an error envelope whatever Status says, a zero Status is 200
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).writeTo(w, r)
	}
}

func (resp Response) writeTo(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	hdr := w.Header()
	for k, vv := range resp.Header {
		k = stdhttp.CanonicalHeaderKey(k)
		hdr[k] = append(hdr[k], vv...)
	}

	reqID := pnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := pnet.Fail(err, reqID)
		JSON(w, status, env)
		return
	}
	switch status := cmp.Or(resp.Status, stdhttp.StatusOK); status {
	case stdhttp.StatusNoContent:
		w.WriteHeader(status)
	default:
		JSON(w, status, pnet.Reply(status, resp.Body, reqID))
	}
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }

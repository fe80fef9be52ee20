package net

import (
	"net/http"

	perr "datamonitor/internal/platform/errors"
)

// Envelope is the body of every JSON API answer. Data is set on success,
// Code and Error on failure
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Reply builds a success envelope for status
func Reply(status int, data any, reqID string) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// Fail maps err through perr and returns the status to write with its
// envelope. A nil err is a 200 with no data
func Fail(err error, reqID string) (int, Envelope) {
	status, w := perr.HTTP(err)
	env := Reply(status, nil, reqID)
	env.Code = w.Code
	env.Error = w.Message
	return status, env
}

// Package records defines the form submission record and turns any decoded
// upstream payload shape into a flat sequence of records
package records

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Well known record fields
const (
	FieldNombre    = "nombre"
	FieldMotivo    = "motivo"
	FieldMensaje   = "mensaje"
	FieldTimestamp = "timestamp"
	FieldFecha     = "fecha"
)

// Record is one form submission. The upstream schema is loose: every field
// may be missing and unknown fields are kept untouched
type Record map[string]any

// Str returns the field as a string. Absent, null and the JSON falsy values
// (false, zero, "") are all "", so they never count as a value. Other
// numbers and true keep their JSON spelling
func (r Record) Str(key string) string {
	switch t := r[key].(type) {
	case string:
		return t
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return ""
		}
		return t.String()
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case bool:
		if !t {
			return ""
		}
		return "true"
	default:
		return ""
	}
}

// Has reports whether key holds a non-empty string value
func (r Record) Has(key string) bool { return strings.TrimSpace(r.Str(key)) != "" }

// Timestamp is the record's moment: timestamp when present and non-empty,
// otherwise fecha, otherwise ""
func (r Record) Timestamp() string {
	if ts := r.Str(FieldTimestamp); ts != "" {
		return ts
	}
	return r.Str(FieldFecha)
}

// TableDate is what the records table prints in its date column: fecha
// when present, else timestamp, both untouched
func (r Record) TableDate() string {
	if f := r.Str(FieldFecha); f != "" {
		return f
	}
	return r.Str(FieldTimestamp)
}

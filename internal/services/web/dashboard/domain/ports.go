package domain

import "context"

// ServicePort is consumed by handlers
type ServicePort interface {
	// Dashboard never fails; an unreachable upstream yields an empty view
	// with Source set to SourceUnavailable. limit caps the table rows, 0
	// means the configured default
	Dashboard(ctx context.Context, limit int) View
}

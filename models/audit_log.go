package models

import "time"

// AuditLogEntry represents a single admin mutation event
type AuditLogEntry struct {
	ID        int64
	Timestamp time.Time
	ClientIP  string
	Method    string
	Path      string
	FormData  string
	UserAgent string
}

package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dishlist-app/dishlist/clientctx"
	"github.com/dishlist-app/dishlist/models"
	"github.com/dishlist-app/dishlist/repositories"
)

// AuditLogger records every admin mutation with the client IP that made it
func AuditLogger(auditRepo repositories.AuditRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodDelete {
				entry := &models.AuditLogEntry{
					ClientIP:  auditIPAddress(r),
					Method:    r.Method,
					Path:      r.URL.Path,
					UserAgent: r.UserAgent(),
					FormData:  captureFormData(r),
				}

				// Log asynchronously to avoid blocking the request
				go func() {
					if err := auditRepo.Create(entry); err != nil {
						log.Printf("Failed to create audit log: %v", err)
					}
				}()
			}

			next.ServeHTTP(w, r)
		})
	}
}

// auditIPAddress returns the forwarded client address for the audit trail.
// The allowlist decision never trusts these headers; this is informational.
func auditIPAddress(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return clientctx.GetClientIP(r.Context())
}

// captureFormData captures form data as a JSON string
func captureFormData(r *http.Request) string {
	if err := r.ParseForm(); err != nil {
		return ""
	}

	formMap := make(map[string]interface{})
	for key, values := range r.Form {
		if len(values) == 1 {
			formMap[key] = values[0]
		} else {
			formMap[key] = values
		}
	}

	jsonData, err := json.Marshal(formMap)
	if err != nil {
		return ""
	}

	return string(jsonData)
}

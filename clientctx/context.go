package clientctx

import "context"

// Context key type
type contextKey string

const clientIPKey contextKey = "client_ip"

// SetClientIP adds the verified client IP to the request context
func SetClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// GetClientIP retrieves the client IP from the request context
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey).(string); ok {
		return ip
	}
	return ""
}

package middleware

import (
	"net"
	"net/http"
	"net/netip"

	"github.com/dishlist-app/dishlist/clientctx"
	"github.com/dishlist-app/dishlist/services"
)

// RequireAllowlistedIP gates a route subtree behind the admin network allowlist.
// The config is consulted on every request so allowlist edits apply immediately.
// Only RemoteAddr is trusted here; forwarding headers are spoofable and this
// check is the sole admin gate.
func RequireAllowlistedIP(config services.ConfigService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			addr, err := netip.ParseAddr(host)
			if err != nil {
				http.Error(w, "Admin access restricted", http.StatusForbidden)
				return
			}

			cfg, err := config.Get()
			if err != nil {
				http.Error(w, "Failed to load config: "+err.Error(), http.StatusInternalServerError)
				return
			}

			if !ipAllowed(addr, cfg.AdminNetworks) {
				http.Error(w, "Admin access restricted", http.StatusForbidden)
				return
			}

			ctx := clientctx.SetClientIP(r.Context(), host)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ipAllowed reports whether addr falls inside any configured network. Bare IPs
// are treated as single-address prefixes; malformed entries are skipped.
func ipAllowed(addr netip.Addr, networks []string) bool {
	addr = addr.Unmap()

	for _, network := range networks {
		prefix, err := netip.ParsePrefix(network)
		if err != nil {
			single, err := netip.ParseAddr(network)
			if err != nil {
				continue
			}
			prefix = netip.PrefixFrom(single, single.BitLen())
		}

		if prefix.Addr().Is4() != addr.Is4() {
			continue
		}
		if prefix.Contains(addr) {
			return true
		}
	}

	return false
}

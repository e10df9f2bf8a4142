package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dishlist-app/dishlist/clientctx"
	"github.com/dishlist-app/dishlist/models"
)

// staticConfig is a ConfigService stub returning a fixed allowlist
type staticConfig struct {
	networks []string
}

func (s staticConfig) Get() (models.AppConfig, error) {
	return models.AppConfig{
		DishTypes:     []string{"Main Dish"},
		AdminNetworks: s.networks,
	}, nil
}

func (s staticConfig) Update(dishTypes, adminNetworks []string) (models.AppConfig, error) {
	return models.AppConfig{DishTypes: dishTypes, AdminNetworks: adminNetworks}, nil
}

func requestThroughAllowlist(t *testing.T, networks []string, remoteAddr string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var capturedIP string
	handler := RequireAllowlistedIP(staticConfig{networks: networks})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capturedIP = clientctx.GetClientIP(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/pantry-admin", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec, capturedIP
}

func TestAllowlist_ExactMatch(t *testing.T) {
	rec, ip := requestThroughAllowlist(t, []string{"127.0.0.1/32"}, "127.0.0.1:54321")

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for allowlisted IP, got %d", rec.Code)
	}
	if ip != "127.0.0.1" {
		t.Errorf("Expected client IP in context, got %q", ip)
	}
}

func TestAllowlist_CIDRContainment(t *testing.T) {
	rec, _ := requestThroughAllowlist(t, []string{"192.168.1.0/24"}, "192.168.1.42:1000")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for IP inside CIDR, got %d", rec.Code)
	}

	rec, _ = requestThroughAllowlist(t, []string{"192.168.1.0/24"}, "192.168.2.42:1000")
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for IP outside CIDR, got %d", rec.Code)
	}
}

func TestAllowlist_BareIPEntry(t *testing.T) {
	rec, _ := requestThroughAllowlist(t, []string{"10.0.0.5"}, "10.0.0.5:9999")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for bare IP entry, got %d", rec.Code)
	}

	rec, _ = requestThroughAllowlist(t, []string{"10.0.0.5"}, "10.0.0.6:9999")
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-matching bare IP, got %d", rec.Code)
	}
}

func TestAllowlist_Denied(t *testing.T) {
	rec, _ := requestThroughAllowlist(t, []string{"127.0.0.1/32"}, "203.0.113.9:4242")
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-allowlisted IP, got %d", rec.Code)
	}
}

func TestAllowlist_MalformedEntrySkipped(t *testing.T) {
	rec, _ := requestThroughAllowlist(t, []string{"not-a-network", "127.0.0.1/32"}, "127.0.0.1:1")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected malformed entries to be skipped, got %d", rec.Code)
	}

	rec, _ = requestThroughAllowlist(t, []string{"not-a-network"}, "127.0.0.1:1")
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 when only malformed entries exist, got %d", rec.Code)
	}
}

func TestAllowlist_IPv6(t *testing.T) {
	rec, _ := requestThroughAllowlist(t, []string{"::1/128"}, "[::1]:5000")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for allowlisted IPv6 loopback, got %d", rec.Code)
	}
}

func TestAllowlist_MalformedRemoteAddr(t *testing.T) {
	rec, _ := requestThroughAllowlist(t, []string{"127.0.0.1/32"}, "garbage")
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for unparseable remote address, got %d", rec.Code)
	}
}

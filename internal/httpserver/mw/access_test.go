package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/georepo/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8", "192.168.1.5"}, false, logger.NewNop())(okHandler)

	tests := []struct {
		remoteAddr string
		want       int
	}{
		{"10.1.2.3:5000", http.StatusOK},
		{"192.168.1.5:5000", http.StatusOK},
		{"192.168.1.6:5000", http.StatusForbidden},
		{"[2001:db8::1]:5000", http.StatusForbidden},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/reload", nil)
		r.RemoteAddr = tt.remoteAddr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.remoteAddr, w.Code, tt.want)
		}
	}
}

func TestAllowOnlyCIDRSEmptyListAllowsAll(t *testing.T) {
	h := AllowOnlyCIDRS(nil, false, logger.NewNop())(okHandler)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.9:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAllowOnlyCIDRSTrustProxy(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"203.0.113.0/24"}, true, logger.NewNop())(okHandler)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "127.0.0.1:1234"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 127.0.0.1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"georepo.example.com", "georepo.example.com", true},
		{"GeoRepo.Example.com:8443", "georepo.example.com", true},
		{"api.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"evil-example.com", "*.example.com", false},
		{"other.org", "georepo.example.com", false},
	}
	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"georepo.example.com"}, logger.NewNop())(okHandler)

	r := httptest.NewRequest(http.MethodPost, "http://georepo.example.com/reload", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("allowed host: status = %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodPost, "http://other.example.com/reload", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("rejected host: status = %d", w.Code)
	}
}

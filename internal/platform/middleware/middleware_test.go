package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestVarySetsAccept(t *testing.T) {
	resp := httptest.NewRecorder()
	Vary()(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := resp.Header().Get("Vary"); got != "Accept" {
		t.Fatalf("expected Vary: Accept, got %q", got)
	}
}

func TestCORSDefaultsToWildcard(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Origin", "http://example.com")
	resp := httptest.NewRecorder()

	CORS()(okHandler).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected '*', got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, "Link") {
		t.Fatalf("expected Link to be exposed, got %q", got)
	}
}

func TestCORSRestrictsOrigins(t *testing.T) {
	h := CORS("https://portal.example.com")(okHandler)

	allowed := httptest.NewRequest(http.MethodGet, "/profile", nil)
	allowed.Header.Set("Origin", "https://portal.example.com")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, allowed)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://portal.example.com" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	denied := httptest.NewRequest(http.MethodGet, "/profile", nil)
	denied.Header.Set("Origin", "https://evil.example.com")
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, denied)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin header, got %q", got)
	}
}

func TestCORSPreflightAllowsPut(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/profile/avatar", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	resp := httptest.NewRecorder()

	CORS()(okHandler).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPut) {
		t.Fatalf("expected PUT in allowed methods, got %q", got)
	}
}

func TestCORSPreflightRejectsDelete(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/profile", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	resp := httptest.NewRecorder()

	CORS()(okHandler).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Methods"); got != "" {
		t.Fatalf("expected no allowed methods for DELETE, got %q", got)
	}
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = chimiddleware.GetReqID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "client-req-1")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if seen != "client-req-1" {
		t.Fatalf("expected incoming id in context, got %q", seen)
	}
	if got := resp.Header().Get(chimiddleware.RequestIDHeader); got != "client-req-1" {
		t.Fatalf("expected id echoed, got %q", got)
	}
}

func TestRequestIDReplacesInvalidHeader(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"too long", strings.Repeat("a", maxRequestIDLength+1)},
		{"newline", "abc\ndef"},
		{"non ascii", "req-ä"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(chimiddleware.RequestIDHeader, tt.id)
			resp := httptest.NewRecorder()
			RequestID()(okHandler).ServeHTTP(resp, req)

			got := resp.Header().Get(chimiddleware.RequestIDHeader)
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("expected generated UUID, got %q", got)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	resp := httptest.NewRecorder()
	Security("/api-docs")(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/profile", nil))

	if got := resp.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if got := resp.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("expected no-store, got %q", got)
	}
}

func TestSecuritySkipsDocs(t *testing.T) {
	resp := httptest.NewRecorder()
	Security("/api-docs")(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api-docs", nil))

	if got := resp.Header().Get("X-Frame-Options"); got != "" {
		t.Fatalf("expected no security headers on docs, got X-Frame-Options %q", got)
	}
}

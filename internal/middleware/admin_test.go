package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ajees1626/Pixdotbackend/internal/auth"
)

func adminProtected(adminKey string, manager *auth.Manager) http.Handler {
	return AdminAuth(adminKey, manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAdminAuthKey(t *testing.T) {
	handler := adminProtected("topsecret", nil)

	cases := []struct {
		name string
		key  string
		want int
	}{
		{"matching key", "topsecret", http.StatusOK},
		{"wrong key", "guess", http.StatusUnauthorized},
		{"missing key", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/add-case-study", nil)
			if tc.key != "" {
				req.Header.Set("X-Admin-Key", tc.key)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestAdminAuthAccessCookie(t *testing.T) {
	manager := &auth.Manager{
		Secret:    []byte("test-secret"),
		AccessTTL: time.Minute,
		Issuer:    "pixdot-backend",
	}
	handler := adminProtected("", manager)

	token, err := manager.NewAccessToken("admin")
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/add-case-study", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid admin cookie: status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/add-case-study", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no cookie: status = %d, want 401", rec.Code)
	}

	other := &auth.Manager{Secret: []byte("other-secret"), AccessTTL: time.Minute}
	forged, err := other.NewAccessToken("admin")
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/api/add-case-study", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: forged})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("token signed with another secret: status = %d, want 401", rec.Code)
	}

	viewer, err := manager.NewAccessToken("viewer")
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/api/add-case-study", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: viewer})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin role: status = %d, want 401", rec.Code)
	}
}

func TestAdminAuthUnconfigured(t *testing.T) {
	handler := adminProtected("", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/add-case-study", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/config"
)

func newTestRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "sandbox"
	return NewRouter(cfg, nil, nil, nil, nil, nil, nil, nil, nil, nil)
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env := rec.Header().Get("X-Ngenius-Env"); env != "sandbox" {
		t.Fatalf("expected env header, got %q", env)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouterWebhookWithoutServiceFailsClosed(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/ngenius", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when unwired, got %d", rec.Code)
	}
}

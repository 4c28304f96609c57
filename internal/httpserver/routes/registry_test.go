package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver/deps"
)

func TestRegisteredRouteGroups(t *testing.T) {
	names := map[string]bool{}
	for _, n := range Names() {
		names[n] = true
	}
	for _, want := range []string{"bookmarks", "health"} {
		if !names[want] {
			t.Errorf("route group %q not registered", want)
		}
	}
}

func TestRegisterAllAppliesMiddlewares(t *testing.T) {
	saved := registry
	t.Cleanup(func() { registry = saved })
	registry = nil

	Register("ping", func(r chi.Router, _ deps.Deps) {
		r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	}, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Group", "ping")
			next.ServeHTTP(w, r)
		})
	})

	r := chi.NewRouter()
	RegisterAll(r, deps.Deps{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Group") != "ping" {
		t.Error("group middleware was not applied")
	}
}

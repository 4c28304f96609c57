package mw

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver/respond"
	"github.com/MrSnakeDoc/bookmarkd/internal/logger"
)

const unauthorizedMessage = "Unauthorized request"

// BearerAuth rejects requests whose Authorization header does not carry
// "Bearer <token>". An empty token rejects everything.
func BearerAuth(token string, loggerClient logger.Logger) func(http.Handler) http.Handler {
	want := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok || len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				loggerClient.Warn("unauthorized request",
					logger.String("method", r.Method),
					logger.String("path", r.URL.Path),
					logger.String("request_id", middleware.GetReqID(r.Context())),
				)
				_ = respond.Error(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

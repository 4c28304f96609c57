package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver/respond"
	"github.com/MrSnakeDoc/bookmarkd/internal/logger"
)

const readyCheckTimeout = 2 * time.Second

type componentStatus struct {
	OK        bool   `json:"ok"`
	Critical  bool   `json:"critical"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type readyzResponse struct {
	Ready      bool                       `json:"ready"`
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Readyz pings every registered dependency concurrently. A failing critical
// component answers 503; a failing optional one only degrades the mode.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		components, failures := pingAll(ctx, d.Checks)
		resp := readyzResponse{
			Ready:      true,
			Mode:       determineMode(components),
			Components: components,
		}

		status := http.StatusOK
		if resp.Mode == "critical" {
			resp.Ready = false
			status = http.StatusServiceUnavailable
		}
		for name, err := range failures {
			d.Logger.Warn("readiness check failed",
				logger.String("component", name),
				logger.Bool("critical", components[name].Critical),
				logger.Error(err),
			)
		}

		w.Header().Set("Cache-Control", "no-store")
		_ = respond.JSON(w, status, resp)
	}
}

// pingAll returns the public status of each check and the raw errors, which are
// only logged.
func pingAll(ctx context.Context, checks []deps.Check) (map[string]componentStatus, map[string]error) {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		out      = make(map[string]componentStatus, len(checks))
		failures = make(map[string]error)
	)
	for _, c := range checks {
		wg.Add(1)
		go func(c deps.Check) {
			defer wg.Done()
			start := time.Now()
			err := c.Ping(ctx)
			st := componentStatus{
				OK:        err == nil,
				Critical:  c.Critical,
				LatencyMS: time.Since(start).Milliseconds(),
			}
			if err != nil {
				st.Error = publicError(err)
			}
			mu.Lock()
			out[c.Name] = st
			if err != nil {
				failures[c.Name] = err
			}
			mu.Unlock()
		}(c)
	}
	wg.Wait()
	return out, failures
}

func publicError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "unreachable"
}

func determineMode(components map[string]componentStatus) string {
	mode := "operational"
	for _, c := range components {
		if c.OK {
			continue
		}
		if c.Critical {
			return "critical"
		}
		mode = "degraded"
	}
	return mode
}

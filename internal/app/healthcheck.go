package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/classcanvas/internal/ctxlog"
	"github.com/vk/classcanvas/internal/uml"
)

type healthReport struct {
	Status      string    `json:"status"`
	Refreshes   int       `json:"refreshes"`
	LastRefresh time.Time `json:"last_refresh"`
	LastStats   uml.Stats `json:"last_stats"`
	LastError   string    `json:"last_error,omitempty"`
}

// healthHandler reports the outcome of the latest watch refresh. It answers
// 503 while the latest refresh failed.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)

	a.status.mu.Lock()
	report := healthReport{
		Status:      "ok",
		Refreshes:   a.status.refreshes,
		LastRefresh: a.status.last,
		LastStats:   a.status.lastStats,
	}
	if a.status.lastErr != nil {
		report.Status = "error"
		report.LastError = a.status.lastErr.Error()
	}
	a.status.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if report.LastError != "" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.Warn("Failed to write health report.", "error", err)
	}
}

// healthCheckServer initializes and runs the health check HTTP server.
func (a *App) healthCheckServer(port int) {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Configuring health check server.")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)

	addr := fmt.Sprintf(":%d", port)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Health check server starting.", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly.", "error", err)
		}
	}()
}

func (a *App) closeHealthCheckServer() error {
	logger := ctxlog.FromContext(a.ctx)
	if a.httpServer == nil {
		logger.Debug("Health check server was not running.")
		return nil
	}

	// a.ctx is already cancelled when watch stops.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("Shutting down health check server.")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed.", "error", err)
		return err
	}
	logger.Debug("Health check server shut down gracefully.")
	return nil
}

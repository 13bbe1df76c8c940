package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler provides the liveness and readiness endpoints.
type HealthHandler struct {
	ready Checker
}

// NewHealthHandler creates a HealthHandler. A nil checker is always ready.
func NewHealthHandler(ready Checker) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Healthz returns 200 while the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 when the checker reports ready, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if h.ready != nil {
		if err := h.ready.Ready(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": err.Error(),
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

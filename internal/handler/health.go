package handler // declare the package name; contains HTTP handlers

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/game-catalog/internal/repository"
)

// HealthHandler reports liveness together with database reachability.
type HealthHandler struct {
    Repo    *repository.HealthRepo
    started time.Time // process start, for uptime
}

// NewHealthHandler constructs a HealthHandler; uptime is measured from now.
func NewHealthHandler(repo *repository.HealthRepo) *HealthHandler {
    if repo == nil {
        panic("nil repository passed to NewHealthHandler")
    }
    return &HealthHandler{Repo: repo, started: time.Now()}
}

// Health runs SELECT 1 against the store and returns status, the current
// time and the uptime in seconds.  A store failure yields 500.
func (h *HealthHandler) Health(c echo.Context) error {
    if err := h.Repo.Check(c.Request().Context()); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "status":    "ok",
        "timestamp": time.Now().UTC().Format(time.RFC3339Nano),
        "uptime":    time.Since(h.started).Seconds(),
    })
}

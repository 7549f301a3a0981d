package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/game-catalog/internal/model"
    "github.com/iliyamo/game-catalog/internal/queue"
    "github.com/iliyamo/game-catalog/internal/repository"
    "github.com/iliyamo/game-catalog/internal/service"
)

// GameDeveloperHandler serves /game-developers.
type GameDeveloperHandler struct {
    Repo   *repository.GameDeveloperRepo // Repo persists developers
    Events service.EventPublisher        // Events receives a message after each write
}

// NewGameDeveloperHandler constructs a handler and panics on a nil
// repository.  A nil publisher disables events.
func NewGameDeveloperHandler(repo *repository.GameDeveloperRepo, events service.EventPublisher) *GameDeveloperHandler {
    if repo == nil {
        panic("nil repository passed to NewGameDeveloperHandler")
    }
    if events == nil {
        events = service.NopPublisher{}
    }
    return &GameDeveloperHandler{Repo: repo, Events: events}
}

// Create handles POST /game-developers.
func (h *GameDeveloperHandler) Create(c echo.Context) error {
    var body nameRequest
    if err := c.Bind(&body); err != nil {
        return badBody(c)
    }
    if err := body.validate(false); err != nil {
        return respondError(c, err)
    }
    dev := &model.GameDeveloper{Name: *body.Name}
    if err := h.Repo.Create(c.Request().Context(), dev); err != nil {
        return respondError(c, err)
    }
    notify(h.Events, queue.NewCatalogEvent(resourceDevelopers, queue.ActionCreated, dev.Name, dev.ID))
    return c.JSON(http.StatusCreated, dev)
}

// List handles GET /game-developers.  Each item carries gamesCount.
func (h *GameDeveloperHandler) List(c echo.Context) error {
    items, err := h.Repo.List(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, items)
}

// Get handles GET /game-developers/:id.
func (h *GameDeveloperHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return respondError(c, err)
    }
    dev, err := h.Repo.GetByID(c.Request().Context(), id)
    if err != nil {
        return respondError(c, lookupError(err, "Game developer", id))
    }
    return c.JSON(http.StatusOK, dev)
}

// Update handles PATCH /game-developers/:id.
func (h *GameDeveloperHandler) Update(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return respondError(c, err)
    }
    var body nameRequest
    if err := c.Bind(&body); err != nil {
        return badBody(c)
    }
    if err := body.validate(true); err != nil {
        return respondError(c, err)
    }
    ctx := c.Request().Context()
    dev, err := h.Repo.GetByID(ctx, id)
    if err != nil {
        return respondError(c, lookupError(err, "Game developer", id))
    }
    if body.Name != nil {
        dev.Name = *body.Name
    }
    if err := h.Repo.Update(ctx, dev); err != nil {
        return respondError(c, lookupError(err, "Game developer", id))
    }
    notify(h.Events, queue.NewCatalogEvent(resourceDevelopers, queue.ActionUpdated, dev.Name, dev.ID))
    return c.JSON(http.StatusOK, dev)
}

// Delete handles DELETE /game-developers/:id.  A developer that still owns
// games cannot be removed (409).
func (h *GameDeveloperHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return respondError(c, err)
    }
    if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
        return respondError(c, lookupError(err, "Game developer", id))
    }
    notify(h.Events, queue.NewCatalogEvent(resourceDevelopers, queue.ActionDeleted, "", id))
    return c.NoContent(http.StatusNoContent)
}

// BulkDelete handles POST /game-developers/bulk-delete.  Either every id is
// removed or, when any id is unknown, none are.
func (h *GameDeveloperHandler) BulkDelete(c echo.Context) error {
    var body bulkDeleteRequest
    if err := c.Bind(&body); err != nil {
        return badBody(c)
    }
    if err := body.validate(); err != nil {
        return respondError(c, err)
    }
    if err := h.Repo.DeleteMany(c.Request().Context(), body.IDs); err != nil {
        return respondError(c, err)
    }
    notify(h.Events, queue.NewCatalogEvent(resourceDevelopers, queue.ActionDeleted, "", body.IDs...))
    return c.NoContent(http.StatusNoContent)
}

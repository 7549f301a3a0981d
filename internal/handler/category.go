package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/game-catalog/internal/model"
    "github.com/iliyamo/game-catalog/internal/queue"
    "github.com/iliyamo/game-catalog/internal/repository"
    "github.com/iliyamo/game-catalog/internal/service"
)

// CategoryHandler serves /categories.
type CategoryHandler struct {
    Repo   *repository.CategoryRepo // Repo persists categories
    Events service.EventPublisher   // Events receives a message after each write
}

// NewCategoryHandler constructs a handler and panics on a nil
// repository.  A nil publisher disables events.
func NewCategoryHandler(repo *repository.CategoryRepo, events service.EventPublisher) *CategoryHandler {
    if repo == nil {
        panic("nil repository passed to NewCategoryHandler")
    }
    if events == nil {
        events = service.NopPublisher{}
    }
    return &CategoryHandler{Repo: repo, Events: events}
}

// Create handles POST /categories.  Category names are not unique.
func (h *CategoryHandler) Create(c echo.Context) error {
    var body nameRequest
    if err := c.Bind(&body); err != nil {
        return badBody(c)
    }
    if err := body.validate(false); err != nil {
        return respondError(c, err)
    }
    cat := &model.Category{Name: *body.Name}
    if err := h.Repo.Create(c.Request().Context(), cat); err != nil {
        return respondError(c, err)
    }
    notify(h.Events, queue.NewCatalogEvent(resourceCategories, queue.ActionCreated, cat.Name, cat.ID))
    return c.JSON(http.StatusCreated, cat)
}

// List handles GET /categories.  Each item carries gamesCount.
func (h *CategoryHandler) List(c echo.Context) error {
    items, err := h.Repo.List(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, items)
}

// Get handles GET /categories/:id.
func (h *CategoryHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return respondError(c, err)
    }
    cat, err := h.Repo.GetByID(c.Request().Context(), id)
    if err != nil {
        return respondError(c, lookupError(err, "Category", id))
    }
    return c.JSON(http.StatusOK, cat)
}

// Update handles PATCH /categories/:id.
func (h *CategoryHandler) Update(c echo.Context) error {
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
    cat, err := h.Repo.GetByID(ctx, id)
    if err != nil {
        return respondError(c, lookupError(err, "Category", id))
    }
    if body.Name != nil {
        cat.Name = *body.Name
    }
    if err := h.Repo.Update(ctx, cat); err != nil {
        return respondError(c, lookupError(err, "Category", id))
    }
    notify(h.Events, queue.NewCatalogEvent(resourceCategories, queue.ActionUpdated, cat.Name, cat.ID))
    return c.JSON(http.StatusOK, cat)
}

// Delete handles DELETE /categories/:id.  A category that still holds
// games cannot be removed (409).
func (h *CategoryHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return respondError(c, err)
    }
    if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
        return respondError(c, lookupError(err, "Category", id))
    }
    notify(h.Events, queue.NewCatalogEvent(resourceCategories, queue.ActionDeleted, "", id))
    return c.NoContent(http.StatusNoContent)
}

// BulkDelete handles POST /categories/bulk-delete.  Either every id is
// removed or, when any id is unknown, none are.
func (h *CategoryHandler) BulkDelete(c echo.Context) error {
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
    notify(h.Events, queue.NewCatalogEvent(resourceCategories, queue.ActionDeleted, "", body.IDs...))
    return c.NoContent(http.StatusNoContent)
}

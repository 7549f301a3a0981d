package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/game-catalog/internal/model"
    "github.com/iliyamo/game-catalog/internal/queue"
    "github.com/iliyamo/game-catalog/internal/repository"
    "github.com/iliyamo/game-catalog/internal/service"
)

// GameHandler serves /games.  Besides the game repository it needs the
// developer and category repositories to resolve references before a write.
type GameHandler struct {
    Games      *repository.GameRepo
    Developers *repository.GameDeveloperRepo
    Categories *repository.CategoryRepo
    Events     service.EventPublisher
}

// NewGameHandler constructs a GameHandler and panics if any repository is nil.
func NewGameHandler(games *repository.GameRepo, developers *repository.GameDeveloperRepo, categories *repository.CategoryRepo, events service.EventPublisher) *GameHandler {
    if games == nil || developers == nil || categories == nil {
        panic("nil repository passed to NewGameHandler")
    }
    if events == nil {
        events = service.NopPublisher{}
    }
    return &GameHandler{Games: games, Developers: developers, Categories: categories, Events: events}
}

// resolveRefs loads the developer and category a game should point at.  An
// empty id leaves the corresponding reference untouched.
func (h *GameHandler) resolveRefs(ctx context.Context, g *model.Game, developerID, categoryID string) error {
    if developerID != "" {
        dev, err := h.Developers.GetByID(ctx, developerID)
        if err != nil {
            return lookupError(err, "Game developer", developerID)
        }
        g.Developer = model.Ref{ID: dev.ID, Name: dev.Name}
    }
    if categoryID != "" {
        cat, err := h.Categories.GetByID(ctx, categoryID)
        if err != nil {
            return lookupError(err, "Category", categoryID)
        }
        g.Category = model.Ref{ID: cat.ID, Name: cat.Name}
    }
    return nil
}

// Create handles POST /games.  The developer and category must exist.
func (h *GameHandler) Create(c echo.Context) error {
    var body gameRequest
    if err := c.Bind(&body); err != nil {
        return badBody(c)
    }
    if err := body.validate(false); err != nil {
        return respondError(c, err)
    }
    ctx := c.Request().Context()

    game := &model.Game{
        Name:        *body.Name,
        MinCPU:      body.MinCPU.Decimal,
        MinMemory:   *body.MinMemory,
        ReleaseYear: *body.ReleaseYear,
        Price:       body.Price.Decimal,
    }
    if body.Multiplayer != nil {
        game.Multiplayer = *body.Multiplayer
    }
    if body.Amount != nil {
        game.Amount = *body.Amount
    }
    if err := h.resolveRefs(ctx, game, *body.DeveloperID, *body.CategoryID); err != nil {
        return respondError(c, err)
    }
    if err := h.Games.Create(ctx, game); err != nil {
        return respondError(c, err)
    }
    notify(h.Events, queue.NewCatalogEvent(resourceGames, queue.ActionCreated, game.Name, game.ID))
    return c.JSON(http.StatusCreated, game)
}

// List handles GET /games.  Items embed their developer and category.
func (h *GameHandler) List(c echo.Context) error {
    items, err := h.Games.List(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, items)
}

// Get handles GET /games/:id.
func (h *GameHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return respondError(c, err)
    }
    game, err := h.Games.GetByID(c.Request().Context(), id)
    if err != nil {
        return respondError(c, lookupError(err, "Game", id))
    }
    return c.JSON(http.StatusOK, game)
}

// Update handles PATCH /games/:id.  Only fields present in the body are
// changed; a new developerId or categoryId must resolve.
func (h *GameHandler) Update(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return respondError(c, err)
    }
    var body gameRequest
    if err := c.Bind(&body); err != nil {
        return badBody(c)
    }
    if err := body.validate(true); err != nil {
        return respondError(c, err)
    }
    ctx := c.Request().Context()

    game, err := h.Games.GetByID(ctx, id)
    if err != nil {
        return respondError(c, lookupError(err, "Game", id))
    }
    var developerID, categoryID string
    if body.DeveloperID != nil {
        developerID = *body.DeveloperID
    }
    if body.CategoryID != nil {
        categoryID = *body.CategoryID
    }
    if err := h.resolveRefs(ctx, game, developerID, categoryID); err != nil {
        return respondError(c, err)
    }

    if body.Name != nil {
        game.Name = *body.Name
    }
    if body.MinCPU != nil {
        game.MinCPU = body.MinCPU.Decimal
    }
    if body.MinMemory != nil {
        game.MinMemory = *body.MinMemory
    }
    if body.Multiplayer != nil {
        game.Multiplayer = *body.Multiplayer
    }
    if body.ReleaseYear != nil {
        game.ReleaseYear = *body.ReleaseYear
    }
    if body.Price != nil {
        game.Price = body.Price.Decimal
    }
    if body.Amount != nil {
        game.Amount = *body.Amount
    }

    if err := h.Games.Update(ctx, game); err != nil {
        return respondError(c, lookupError(err, "Game", id))
    }
    notify(h.Events, queue.NewCatalogEvent(resourceGames, queue.ActionUpdated, game.Name, game.ID))
    return c.JSON(http.StatusOK, game)
}

// Delete handles DELETE /games/:id.  The inventory row, if any, goes with it.
func (h *GameHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return respondError(c, err)
    }
    if err := h.Games.Delete(c.Request().Context(), id); err != nil {
        return respondError(c, lookupError(err, "Game", id))
    }
    notify(h.Events, queue.NewCatalogEvent(resourceGames, queue.ActionDeleted, "", id))
    return c.NoContent(http.StatusNoContent)
}

// BulkDelete handles POST /games/bulk-delete.
func (h *GameHandler) BulkDelete(c echo.Context) error {
    var body bulkDeleteRequest
    if err := c.Bind(&body); err != nil {
        return badBody(c)
    }
    if err := body.validate(); err != nil {
        return respondError(c, err)
    }
    if err := h.Games.DeleteMany(c.Request().Context(), body.IDs); err != nil {
        return respondError(c, err)
    }
    notify(h.Events, queue.NewCatalogEvent(resourceGames, queue.ActionDeleted, "", body.IDs...))
    return c.NoContent(http.StatusNoContent)
}

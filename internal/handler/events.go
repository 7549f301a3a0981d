package handler

import (
    "context"
    "time"

    "github.com/iliyamo/game-catalog/internal/queue"
    "github.com/iliyamo/game-catalog/internal/service"
)

// Resource names used in routes and catalogue events.
const (
    resourceDevelopers = "game-developers"
    resourceCategories = "categories"
    resourceGames      = "games"
)

const publishTimeout = 2 * time.Second

// notify publishes ev after a successful write.  It is detached from the
// request context so a client disconnect does not drop the event, and its
// error is ignored: the publisher logs failures and the write has already
// been committed.
func notify(events service.EventPublisher, ev queue.CatalogEvent) {
    ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
    defer cancel()
    _ = events.Publish(ctx, ev)
}

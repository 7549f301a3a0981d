package queue

import "time"

// Catalogue actions carried by CatalogEvent.Action.
const (
    ActionCreated = "created"
    ActionUpdated = "updated"
    ActionDeleted = "deleted"
)

// CatalogEvent is published after every successful catalogue write.  It
// carries enough information for downstream consumers to log or invalidate
// without querying the primary database.
type CatalogEvent struct {
    Type       string   `json:"type"`           // "<resource>.<action>", e.g. "games.deleted"
    Resource   string   `json:"resource"`       // game-developers, categories or games
    Action     string   `json:"action"`         // created, updated or deleted
    IDs        []string `json:"ids"`            // affected ids; more than one for bulk deletes
    Name       string   `json:"name,omitempty"` // record name after the write, when known
    OccurredAt string   `json:"occurred_at"`    // RFC 3339, UTC
}

// NewCatalogEvent stamps an event for resource/action at the current time.
func NewCatalogEvent(resource, action, name string, ids ...string) CatalogEvent {
    return CatalogEvent{
        Type:       resource + "." + action,
        Resource:   resource,
        Action:     action,
        IDs:        ids,
        Name:       name,
        OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
    }
}

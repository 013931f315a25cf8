package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/virtual-defence/vds-backend/internal/database"
)

// Collection names carried on change events. Clients subscribe by these.
const (
	CollectionComplaints    = "complaints"
	CollectionAdminRequests = "admin_requests"
	CollectionChatMessages  = "chat_messages"
	CollectionNotifications = "notifications"
	CollectionUsers         = "users"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event is a single change-feed record. Events carry the whole document so
// redelivery is harmless: applying the same event twice leaves a listener's
// snapshot unchanged.
type Event struct {
	Collection string      `json:"collection"`
	Action     string      `json:"action"`
	ID         string      `json:"id,omitempty"`
	Doc        interface{} `json:"doc,omitempty"`
	At         time.Time   `json:"at"`
}

// channelFor maps a collection to its Redis pub/sub channel.
func channelFor(collection string) string {
	return "events:" + collection
}

// Publish pushes a change event onto the Redis change feed. Publication is
// best-effort: a failed publish must never fail the write that produced it,
// so callers ignore the returned error except for logging.
func Publish(ctx context.Context, evt Event) error {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return database.RedisClient.Publish(ctx, channelFor(evt.Collection), data).Err()
}

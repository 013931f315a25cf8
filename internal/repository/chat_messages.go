package repository

import (
	"context"
	"time"

	"github.com/virtual-defence/vds-backend/internal/database"
	"github.com/virtual-defence/vds-backend/internal/events"
	"github.com/virtual-defence/vds-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatMessageRepository is the append-only session chat log.
type ChatMessageRepository interface {
	Append(ctx context.Context, msg *models.ChatMessage) error
	BySession(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	Search(ctx context.Context, query string) ([]models.ChatMessage, error)
}

type mongoChatMessageRepository struct {
	col *mongo.Collection
}

func NewChatMessageRepository() ChatMessageRepository {
	return &mongoChatMessageRepository{col: database.DB.Collection("chat_messages")}
}

// EnsureChatIndexes configures indexes for the chat_messages collection.
// Called on startup from main after Mongo has connected.
func EnsureChatIndexes(ctx context.Context) error {
	col := database.DB.Collection("chat_messages")

	// Compound index on (session_id, timestamp) so per-session reads come
	// back in timestamp order without a collection scan.
	model := mongo.IndexModel{
		Keys: bson.D{
			{Key: "session_id", Value: 1},
			{Key: "timestamp", Value: 1},
		},
		Options: options.Index().SetName("idx_session_timestamp"),
	}

	_, err := col.Indexes().CreateOne(ctx, model)
	return err
}

func (r *mongoChatMessageRepository) Append(ctx context.Context, msg *models.ChatMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)

	publishEvent(ctx, events.Event{
		Collection: events.CollectionChatMessages,
		Action:     events.ActionCreated,
		ID:         msg.ID.Hex(),
		Doc:        msg,
	})
	return nil
}

// BySession returns one session's messages ascending by timestamp, the
// order the conversation renders in.
func (r *mongoChatMessageRepository) BySession(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	cursor, err := r.col.Find(ctx,
		bson.M{"session_id": sessionID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []models.ChatMessage
	if err = cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Search returns chat records newest-first for the admin console, optionally
// filtered by a case-insensitive substring over user email and text.
func (r *mongoChatMessageRepository) Search(ctx context.Context, query string) ([]models.ChatMessage, error) {
	filter := bson.M{}
	if query != "" {
		regex := bson.M{"$regex": query, "$options": "i"}
		filter["$or"] = []bson.M{
			{"user_email": regex},
			{"text": regex},
		}
	}

	cursor, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(500),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []models.ChatMessage
	if err = cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

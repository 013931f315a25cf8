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

// NotificationRepository is the write-only broadcast outbox. Records are
// created and read, never mutated or deleted.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) (string, error)
	ForUser(ctx context.Context, email string) ([]models.Notification, error)
}

type mongoNotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository() NotificationRepository {
	return &mongoNotificationRepository{col: database.DB.Collection("notifications")}
}

func (r *mongoNotificationRepository) Create(ctx context.Context, n *models.Notification) (string, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.TargetUser == "" {
		n.TargetUser = models.NotifyAll
	}

	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return "", err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)

	publishEvent(ctx, events.Event{
		Collection: events.CollectionNotifications,
		Action:     events.ActionCreated,
		ID:         n.ID.Hex(),
		Doc:        n,
	})
	return n.ID.Hex(), nil
}

// ForUser returns notifications addressed to the email or to everyone,
// newest first.
func (r *mongoNotificationRepository) ForUser(ctx context.Context, email string) ([]models.Notification, error) {
	filter := bson.M{"target_user": bson.M{"$in": []string{models.NotifyAll, email}}}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

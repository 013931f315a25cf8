package repository

import (
	"context"
	"errors"
	"time"

	"github.com/virtual-defence/vds-backend/internal/database"
	"github.com/virtual-defence/vds-backend/internal/events"
	"github.com/virtual-defence/vds-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminRequestRepository stores admin-access petitions.
type AdminRequestRepository interface {
	Create(ctx context.Context, req *models.AdminRequest) (string, error)
	GetByID(ctx context.Context, id string) (*models.AdminRequest, error)
	GetAll(ctx context.Context) ([]models.AdminRequest, error)
	SetStatus(ctx context.Context, id string, status models.AdminRequestStatus) error
	HasPending(ctx context.Context, uid string) (bool, error)
}

type mongoAdminRequestRepository struct {
	col *mongo.Collection
}

func NewAdminRequestRepository() AdminRequestRepository {
	return &mongoAdminRequestRepository{col: database.DB.Collection("admin_requests")}
}

func (r *mongoAdminRequestRepository) Create(ctx context.Context, req *models.AdminRequest) (string, error) {
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now().UTC()
	}
	if req.Status == "" {
		req.Status = models.RequestPending
	}

	res, err := r.col.InsertOne(ctx, req)
	if err != nil {
		return "", err
	}
	req.ID = res.InsertedID.(primitive.ObjectID)

	publishEvent(ctx, events.Event{
		Collection: events.CollectionAdminRequests,
		Action:     events.ActionCreated,
		ID:         req.ID.Hex(),
		Doc:        req,
	})
	return req.ID.Hex(), nil
}

func (r *mongoAdminRequestRepository) GetByID(ctx context.Context, id string) (*models.AdminRequest, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var req models.AdminRequest
	err = r.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *mongoAdminRequestRepository) GetAll(ctx context.Context) ([]models.AdminRequest, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"requested_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.AdminRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *mongoAdminRequestRepository) SetStatus(ctx context.Context, id string, status models.AdminRequestStatus) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	publishEvent(ctx, events.Event{
		Collection: events.CollectionAdminRequests,
		Action:     events.ActionUpdated,
		ID:         id,
		Doc:        bson.M{"id": id, "status": status},
	})
	return nil
}

// HasPending reports whether the uid already has an outstanding request.
// Used for display only; duplicates are not prevented at the data layer.
func (r *mongoAdminRequestRepository) HasPending(ctx context.Context, uid string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"uid": uid, "status": models.RequestPending})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

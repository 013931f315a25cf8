package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/virtual-defence/vds-backend/internal/database"
	"github.com/virtual-defence/vds-backend/internal/events"
	"github.com/virtual-defence/vds-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a record does not exist in its collection.
var ErrNotFound = errors.New("record not found")

// ComplaintRepository is the ledger of filed complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, c *models.Complaint) (string, error)
	GetByID(ctx context.Context, id string) (*models.Complaint, error)
	GetAll(ctx context.Context) ([]models.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) error
	Delete(ctx context.Context, id string) error
}

type mongoComplaintRepository struct {
	col *mongo.Collection
}

func NewComplaintRepository() ComplaintRepository {
	return &mongoComplaintRepository{col: database.DB.Collection("complaints")}
}

func (r *mongoComplaintRepository) Create(ctx context.Context, c *models.Complaint) (string, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return "", err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)

	publishEvent(ctx, events.Event{
		Collection: events.CollectionComplaints,
		Action:     events.ActionCreated,
		ID:         c.ID.Hex(),
		Doc:        c,
	})
	return c.ID.Hex(), nil
}

func (r *mongoComplaintRepository) GetByID(ctx context.Context, id string) (*models.Complaint, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var c models.Complaint
	err = r.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAll returns the full ledger, newest first. No pagination: the portal
// always fetches the whole ledger and filters in memory.
func (r *mongoComplaintRepository) GetAll(ctx context.Context) ([]models.Complaint, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var complaints []models.Complaint
	if err = cursor.All(ctx, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

// UpdateStatus unconditionally overwrites the status field. There is no
// transition table: any status may follow any other.
func (r *mongoComplaintRepository) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
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
		Collection: events.CollectionComplaints,
		Action:     events.ActionUpdated,
		ID:         id,
		Doc:        bson.M{"id": id, "status": status},
	})
	return nil
}

func (r *mongoComplaintRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	publishEvent(ctx, events.Event{
		Collection: events.CollectionComplaints,
		Action:     events.ActionDeleted,
		ID:         id,
	})
	return nil
}

// publishEvent pushes a change event onto the feed. The feed is advisory:
// a publish failure is logged and never propagated to the caller.
func publishEvent(ctx context.Context, evt events.Event) {
	if err := events.Publish(ctx, evt); err != nil {
		log.Printf("failed to publish %s/%s event: %v", evt.Collection, evt.Action, err)
	}
}

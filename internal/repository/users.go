package repository

import (
	"context"
	"errors"
	"time"

	"github.com/virtual-defence/vds-backend/internal/database"
	"github.com/virtual-defence/vds-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository stores portal accounts. User ids are immutable; records are
// never deleted by this system.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetAdmin(ctx context.Context, uid string) error
	UpdateProfile(ctx context.Context, uid, username, photoURL string) error
}

type mongoUserRepository struct {
	col *mongo.Collection
}

func NewUserRepository() UserRepository {
	return &mongoUserRepository{col: database.DB.Collection("users")}
}

func (r *mongoUserRepository) Create(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *mongoUserRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"uid": uid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetAdmin flips the admin capability flag on. Only the admin-request
// approval path calls this; there is no way back off.
func (r *mongoUserRepository) SetAdmin(ctx context.Context, uid string) error {
	result, err := r.col.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$set": bson.M{"is_admin": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) UpdateProfile(ctx context.Context, uid, username, photoURL string) error {
	set := bson.M{}
	if username != "" {
		set["username"] = username
	}
	if photoURL != "" {
		set["photo_url"] = photoURL
	}
	if len(set) == 0 {
		return nil
	}

	result, err := r.col.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

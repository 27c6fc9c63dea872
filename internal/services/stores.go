package services

import (
	"context"

	"github.com/Dias221467/DevConnect/internal/models"
	"github.com/Dias221467/DevConnect/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the user directory the services read and write.
// Lookups that match nothing return repository.ErrNotFound.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update *models.ProfileUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	UpdateLastActive(ctx context.Context, id primitive.ObjectID) error
	GetPublicUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.PublicUser, error)
	FindPublicUsersExcluding(ctx context.Context, exclude []primitive.ObjectID, skip, limit int64) ([]models.PublicUser, error)
}

// ConnectionStore persists connection requests. CreateRequest returns
// repository.ErrDuplicateKey when the pair already has a request.
type ConnectionStore interface {
	CreateRequest(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error)
	FindBetween(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error)
	Review(ctx context.Context, id, reviewer primitive.ObjectID, decision models.RequestStatus) (*models.ConnectionRequest, error)
	FindInvolving(ctx context.Context, userID primitive.ObjectID) ([]models.ConnectionRequest, error)
	FindAccepted(ctx context.Context, userID primitive.ObjectID) ([]models.ConnectionRequest, error)
	FindReceived(ctx context.Context, userID primitive.ObjectID) ([]models.ConnectionRequest, error)
}

var (
	_ UserStore       = (*repository.UserRepository)(nil)
	_ ConnectionStore = (*repository.ConnectionRepository)(nil)
)

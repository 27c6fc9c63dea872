package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/DevConnect/internal/database"
	"github.com/Dias221467/DevConnect/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectionRepository stores connection requests between users.
type ConnectionRepository struct {
	collection *mongo.Collection
}

func NewConnectionRepository(db *mongo.Database) *ConnectionRepository {
	return &ConnectionRepository{
		collection: db.Collection(database.ConnectionRequestsCollection),
	}
}

// CreateRequest inserts a new request. A violation of the pairKey unique index is
// reported as ErrDuplicateKey.
func (r *ConnectionRepository) CreateRequest(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error) {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	req.PairKey = models.PairKey(req.FromUserID, req.ToUserID)

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		logrus.WithError(err).Error("Failed to insert connection request")
		return nil, fmt.Errorf("failed to insert connection request: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	req.ID = insertedID

	return req, nil
}

// FindBetween returns the request between a and b in either direction.
func (r *ConnectionRepository) FindBetween(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"fromUserId": a, "toUserId": b},
			{"fromUserId": b, "toUserId": a},
		},
	}

	var req models.ConnectionRequest
	err := r.collection.FindOne(ctx, filter).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find connection request: %w", err)
	}
	return &req, nil
}

// Review moves a request from interested to decision in one atomic update. Only a
// request addressed to reviewer and still interested matches; anything else is ErrNotFound.
func (r *ConnectionRepository) Review(ctx context.Context, id, reviewer primitive.ObjectID, decision models.RequestStatus) (*models.ConnectionRequest, error) {
	filter := bson.M{
		"_id":      id,
		"toUserId": reviewer,
		"status":   models.StatusInterested,
	}
	update := bson.M{"$set": bson.M{"status": decision, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.ConnectionRequest
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}
	return &req, nil
}

// FindInvolving returns every request where userID is either party, in any status.
// Only the party fields are loaded.
func (r *ConnectionRepository) FindInvolving(ctx context.Context, userID primitive.ObjectID) ([]models.ConnectionRequest, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"fromUserId": userID},
			{"toUserId": userID},
		},
	}
	opts := options.Find().SetProjection(bson.M{"fromUserId": 1, "toUserId": 1})
	return r.find(ctx, filter, opts)
}

// FindAccepted returns the accepted requests where userID is either party.
func (r *ConnectionRepository) FindAccepted(ctx context.Context, userID primitive.ObjectID) ([]models.ConnectionRequest, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"fromUserId": userID, "status": models.StatusAccepted},
			{"toUserId": userID, "status": models.StatusAccepted},
		},
	}
	return r.find(ctx, filter)
}

// FindReceived returns the interested requests addressed to userID, newest first.
func (r *ConnectionRepository) FindReceived(ctx context.Context, userID primitive.ObjectID) ([]models.ConnectionRequest, error) {
	filter := bson.M{"toUserId": userID, "status": models.StatusInterested}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, filter, opts)
}

func (r *ConnectionRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.ConnectionRequest, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to find connection requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ConnectionRequest
	for cursor.Next(ctx) {
		var req models.ConnectionRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode connection request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("connection request cursor failed: %w", err)
	}

	return requests, nil
}

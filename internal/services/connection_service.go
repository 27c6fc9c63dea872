package services

import (
	"context"

	"github.com/Dias221467/DevConnect/internal/apperrors"
	"github.com/Dias221467/DevConnect/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionService resolves a user's accepted connections and pending received requests.
type ConnectionService struct {
	requests ConnectionStore
	users    UserStore
}

func NewConnectionService(requests ConnectionStore, users UserStore) *ConnectionService {
	return &ConnectionService{requests: requests, users: users}
}

// GetConnections returns the other party of every accepted request involving viewer.
func (s *ConnectionService) GetConnections(ctx context.Context, viewer primitive.ObjectID) ([]models.PublicUser, error) {
	accepted, err := s.requests.FindAccepted(ctx, viewer)
	if err != nil {
		return nil, apperrors.Store("find accepted requests", err)
	}
	if len(accepted) == 0 {
		return []models.PublicUser{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(accepted))
	for i := range accepted {
		ids = append(ids, accepted[i].OtherParty(viewer))
	}

	users, err := s.users.GetPublicUsersByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Store("resolve connections", err)
	}
	return users, nil
}

// GetReceivedRequests returns the interested requests addressed to viewer with the
// sender's public profile attached.
func (s *ConnectionService) GetReceivedRequests(ctx context.Context, viewer primitive.ObjectID) ([]models.ReceivedRequest, error) {
	pending, err := s.requests.FindReceived(ctx, viewer)
	if err != nil {
		return nil, apperrors.Store("find received requests", err)
	}
	if len(pending) == 0 {
		return []models.ReceivedRequest{}, nil
	}

	senderIDs := make([]primitive.ObjectID, 0, len(pending))
	for i := range pending {
		senderIDs = append(senderIDs, pending[i].FromUserID)
	}

	senders, err := s.users.GetPublicUsersByIDs(ctx, senderIDs)
	if err != nil {
		return nil, apperrors.Store("resolve senders", err)
	}
	byID := make(map[primitive.ObjectID]models.PublicUser, len(senders))
	for _, u := range senders {
		byID[u.ID] = u
	}

	received := make([]models.ReceivedRequest, 0, len(pending))
	for _, req := range pending {
		sender, ok := byID[req.FromUserID]
		if !ok {
			logrus.WithFields(logrus.Fields{
				"requestID": req.ID.Hex(),
				"sender":    req.FromUserID.Hex(),
			}).Warn("Skipping received request with unknown sender")
			continue
		}
		received = append(received, models.ReceivedRequest{
			ID:        req.ID,
			FromUser:  sender,
			ToUserID:  req.ToUserID,
			Status:    req.Status,
			CreatedAt: req.CreatedAt,
			UpdatedAt: req.UpdatedAt,
		})
	}
	return received, nil
}

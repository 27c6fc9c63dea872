package services

import (
	"context"
	"errors"

	"github.com/Dias221467/DevConnect/internal/apperrors"
	"github.com/Dias221467/DevConnect/internal/models"
	"github.com/Dias221467/DevConnect/internal/repository"
	"github.com/Dias221467/DevConnect/pkg/metrics"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestService handles sending and reviewing connection requests.
type RequestService struct {
	requests ConnectionStore
	users    UserStore
}

// NewRequestService creates a new RequestService.
func NewRequestService(requests ConnectionStore, users UserStore) *RequestService {
	return &RequestService{
		requests: requests,
		users:    users,
	}
}

// SendRequest creates a request from fromUser to toUser with status ignored or interested.
func (s *RequestService) SendRequest(ctx context.Context, fromUser, toUser primitive.ObjectID, status models.RequestStatus) (*models.ConnectionRequest, error) {
	if fromUser == toUser {
		return nil, apperrors.ErrSelfRequest.With("userId", fromUser.Hex())
	}

	if !status.CanSend() {
		return nil, apperrors.ErrInvalidStatus.
			With("status", string(status)).
			With("allowed", []models.RequestStatus{models.StatusIgnored, models.StatusInterested})
	}

	exists, err := s.users.Exists(ctx, toUser)
	if err != nil {
		return nil, apperrors.Store("check recipient", err)
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound.With("userId", toUser.Hex())
	}

	existing, err := s.requests.FindBetween(ctx, fromUser, toUser)
	switch {
	case err == nil:
		return nil, apperrors.ErrDuplicateRequest.
			With("requestId", existing.ID.Hex()).
			With("existingStatus", string(existing.Status))
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.Store("find existing request", err)
	}

	created, err := s.requests.CreateRequest(ctx, &models.ConnectionRequest{
		FromUserID: fromUser,
		ToUserID:   toUser,
		Status:     status,
	})
	if err != nil {
		// The unique pairKey index catches the race the pre-check above cannot.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.ErrDuplicateRequest.With("pairKey", models.PairKey(fromUser, toUser))
		}
		return nil, apperrors.Store("create request", err)
	}

	metrics.ConnectionRequestsSent.WithLabelValues(string(status)).Inc()
	logrus.WithFields(logrus.Fields{
		"requestID": created.ID.Hex(),
		"from":      fromUser.Hex(),
		"to":        toUser.Hex(),
		"status":    status,
	}).Info("Connection request created")

	return created, nil
}

// ReviewRequest lets the recipient accept or reject an interested request. A request
// that does not exist, is addressed to someone else, or is no longer interested is
// reported as RequestNotFound in every case.
func (s *RequestService) ReviewRequest(ctx context.Context, reviewer, requestID primitive.ObjectID, decision models.RequestStatus) (*models.ConnectionRequest, error) {
	if !decision.CanReview() {
		return nil, apperrors.ErrInvalidStatus.
			With("status", string(decision)).
			With("allowed", []models.RequestStatus{models.StatusAccepted, models.StatusRejected})
	}

	updated, err := s.requests.Review(ctx, requestID, reviewer, decision)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrRequestNotFound.
				With("requestId", requestID.Hex()).
				With("reviewer", reviewer.Hex()).
				With("expectedStatus", string(models.StatusInterested))
		}
		return nil, apperrors.Store("review request", err)
	}

	metrics.ConnectionRequestsReviewed.WithLabelValues(string(decision)).Inc()
	logrus.WithFields(logrus.Fields{
		"requestID": requestID.Hex(),
		"reviewer":  reviewer.Hex(),
		"status":    decision,
	}).Info("Connection request reviewed")

	return updated, nil
}

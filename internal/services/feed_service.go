package services

import (
	"context"
	"math"

	"github.com/Dias221467/DevConnect/internal/apperrors"
	"github.com/Dias221467/DevConnect/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultFeedPage  = 1
	DefaultFeedLimit = 10
	MaxFeedLimit     = 50
)

// FeedService builds the list of users a viewer has not interacted with yet.
type FeedService struct {
	requests ConnectionStore
	users    UserStore
}

func NewFeedService(requests ConnectionStore, users UserStore) *FeedService {
	return &FeedService{requests: requests, users: users}
}

// NormalizePage clamps page and limit into the accepted range.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultFeedPage
	}
	if limit < 1 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	return page, limit
}

// GetFeed returns a page of users excluding the viewer and anyone who has a request
// with the viewer in either direction, whatever its status.
func (s *FeedService) GetFeed(ctx context.Context, viewer primitive.ObjectID, page, limit int) ([]models.PublicUser, error) {
	page, limit = NormalizePage(page, limit)
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return []models.PublicUser{}, nil
	}

	related, err := s.requests.FindInvolving(ctx, viewer)
	if err != nil {
		return nil, apperrors.Store("find related requests", err)
	}

	seen := map[primitive.ObjectID]struct{}{viewer: {}}
	exclude := []primitive.ObjectID{viewer}
	for i := range related {
		other := related[i].OtherParty(viewer)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		exclude = append(exclude, other)
	}

	skip := int64(page-1) * int64(limit)
	users, err := s.users.FindPublicUsersExcluding(ctx, exclude, skip, int64(limit))
	if err != nil {
		return nil, apperrors.Store("find feed users", err)
	}
	return users, nil
}

// Package storetest provides in-memory user and connection stores with the same
// contracts as the MongoDB repositories, for use in tests.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dias221467/DevConnect/internal/models"
	"github.com/Dias221467/DevConnect/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore keeps users in insertion order.
type UserStore struct {
	mu    sync.Mutex
	order []primitive.ObjectID
	users map[primitive.ObjectID]*models.User

	// Err, when set, is returned by every call.
	Err error
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[primitive.ObjectID]*models.User)}
}

// Add stores a user directly and returns it with an ID assigned. It panics if
// the store rejects the user, so a broken fixture fails at the call site.
func (s *UserStore) Add(firstName string) *models.User {
	u, err := s.CreateUser(context.Background(), &models.User{
		FirstName: firstName,
		LastName:  "Tester",
		Email:     firstName + "@example.com",
		PhotoURL:  models.DefaultPhotoURL,
		About:     models.DefaultAbout,
	})
	if err != nil {
		panic(fmt.Sprintf("storetest: add user %q: %v", firstName, err))
	}
	return u
}

func (s *UserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, repository.ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	stored := *user
	s.users[user.ID] = &stored
	s.order = append(s.order, user.ID)
	return user, nil
}

func (s *UserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *UserStore) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.users[id]
	return ok, nil
}

func (s *UserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, update *models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	update.Apply(u)
	u.UpdatedAt = time.Now()
	copied := *u
	return &copied, nil
}

func (s *UserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (s *UserStore) UpdateLastActive(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if u, ok := s.users[id]; ok {
		u.LastActiveAt = time.Now()
	}
	return nil
}

func (s *UserStore) GetPublicUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.PublicUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []models.PublicUser{}
	for _, id := range s.order {
		if want[id] {
			out = append(out, s.users[id].Public())
		}
	}
	return out, nil
}

func (s *UserStore) FindPublicUsersExcluding(_ context.Context, exclude []primitive.ObjectID, skip, limit int64) ([]models.PublicUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	excluded := make(map[primitive.ObjectID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	out := []models.PublicUser{}
	var skipped int64
	for _, id := range s.order {
		if excluded[id] {
			continue
		}
		if skipped < skip {
			skipped++
			continue
		}
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, s.users[id].Public())
	}
	return out, nil
}

// ConnectionStore enforces one request per unordered pair like the pairKey index.
type ConnectionStore struct {
	mu       sync.Mutex
	order    []primitive.ObjectID
	requests map[primitive.ObjectID]*models.ConnectionRequest
	pairs    map[string]primitive.ObjectID

	// SkipPreCheck makes FindBetween report no match so tests can exercise the
	// unique-constraint path.
	SkipPreCheck bool
	// Err, when set, is returned by every call.
	Err error
}

func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{
		requests: make(map[primitive.ObjectID]*models.ConnectionRequest),
		pairs:    make(map[string]primitive.ObjectID),
	}
}

// Get returns a copy of the stored request, for assertions.
func (s *ConnectionStore) Get(id primitive.ObjectID) (models.ConnectionRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return models.ConnectionRequest{}, false
	}
	return *r, true
}

func (s *ConnectionStore) CreateRequest(_ context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	key := models.PairKey(req.FromUserID, req.ToUserID)
	if _, taken := s.pairs[key]; taken {
		return nil, repository.ErrDuplicateKey
	}
	now := time.Now()
	req.ID = primitive.NewObjectID()
	req.PairKey = key
	req.CreatedAt, req.UpdatedAt = now, now

	stored := *req
	s.requests[req.ID] = &stored
	s.pairs[key] = req.ID
	s.order = append(s.order, req.ID)
	return req, nil
}

func (s *ConnectionStore) FindBetween(_ context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.SkipPreCheck {
		return nil, repository.ErrNotFound
	}
	for _, id := range s.order {
		r := s.requests[id]
		if (r.FromUserID == a && r.ToUserID == b) || (r.FromUserID == b && r.ToUserID == a) {
			copied := *r
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *ConnectionStore) Review(_ context.Context, id, reviewer primitive.ObjectID, decision models.RequestStatus) (*models.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	r, ok := s.requests[id]
	if !ok || r.ToUserID != reviewer || r.Status != models.StatusInterested {
		return nil, repository.ErrNotFound
	}
	r.Status = decision
	r.UpdatedAt = time.Now()
	copied := *r
	return &copied, nil
}

func (s *ConnectionStore) filter(match func(*models.ConnectionRequest) bool) []models.ConnectionRequest {
	var out []models.ConnectionRequest
	for _, id := range s.order {
		if r := s.requests[id]; match(r) {
			out = append(out, *r)
		}
	}
	return out
}

func (s *ConnectionStore) FindInvolving(_ context.Context, userID primitive.ObjectID) ([]models.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.filter(func(r *models.ConnectionRequest) bool {
		return r.FromUserID == userID || r.ToUserID == userID
	}), nil
}

func (s *ConnectionStore) FindAccepted(_ context.Context, userID primitive.ObjectID) ([]models.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.filter(func(r *models.ConnectionRequest) bool {
		return r.Status == models.StatusAccepted && (r.FromUserID == userID || r.ToUserID == userID)
	}), nil
}

func (s *ConnectionStore) FindReceived(_ context.Context, userID primitive.ObjectID) ([]models.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.filter(func(r *models.ConnectionRequest) bool {
		return r.ToUserID == userID && r.Status == models.StatusInterested
	}), nil
}

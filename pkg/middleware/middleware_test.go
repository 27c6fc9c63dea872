package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dias221467/DevConnect/internal/models"
	jwtutil "github.com/Dias221467/DevConnect/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

type fakeUsers struct {
	users  map[primitive.ObjectID]*models.User
	active []primitive.ObjectID
	err    error
}

func (f *fakeUsers) GetUser(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeUsers) UpdateLastActive(_ context.Context, id primitive.ObjectID) error {
	f.active = append(f.active, id)
	return f.err
}

func newFakeUsers() (*fakeUsers, *models.User) {
	u := &models.User{ID: primitive.NewObjectID(), FirstName: "Alice", Email: "alice@example.com"}
	return &fakeUsers{users: map[primitive.ObjectID]*models.User{u.ID: u}}, u
}

func whoAmI(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(user.ID.Hex()))
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	users, u := newFakeUsers()
	token, err := jwtutil.GenerateToken(u.ID.Hex(), u.Email, testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/profile/view", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	rr := httptest.NewRecorder()
	AuthMiddleware(testSecret, users)(http.HandlerFunc(whoAmI)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, u.ID.Hex(), rr.Body.String())
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	users, u := newFakeUsers()
	token, err := jwtutil.GenerateToken(u.ID.Hex(), u.Email, testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/profile/view", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	AuthMiddleware(testSecret, users)(http.HandlerFunc(whoAmI)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	users, u := newFakeUsers()
	wrongSecret, _ := jwtutil.GenerateToken(u.ID.Hex(), u.Email, "other", time.Hour)
	unknownUser, _ := jwtutil.GenerateToken(primitive.NewObjectID().Hex(), "x@example.com", testSecret, time.Hour)
	badID, _ := jwtutil.GenerateToken("not-hex", "x@example.com", testSecret, time.Hour)

	for name, token := range map[string]string{
		"missing":      "",
		"wrong secret": wrongSecret,
		"unknown user": unknownUser,
		"bad id":       badID,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/user/feed", nil)
			if token != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
			}
			rr := httptest.NewRecorder()
			AuthMiddleware(testSecret, users)(http.HandlerFunc(whoAmI)).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.JSONEq(t, `{"message":"Please Login"}`, rr.Body.String())
		})
	}
}

func TestLoggingMiddleware_SetsRequestID(t *testing.T) {
	var seen string
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", seen)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, false)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/request/send/interested/x", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{200, 200, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/request/send/interested/x", nil)
	req.RemoteAddr = "10.0.0.2:4000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1, false)
	rl.Allow("10.0.0.1")
	rl.Cleanup(0)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.visitors)
}

func TestRateLimiter_IgnoresForwardedForByDefault(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, false)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	allowed := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/request/send/interested/x", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:1234"
	assert.Equal(t, "192.168.1.5", clientIP(req, false))
	assert.Equal(t, "192.168.1.5", clientIP(req, true))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "192.168.1.5", clientIP(req, false))
	assert.Equal(t, "203.0.113.7", clientIP(req, true))
}

func TestTimeoutMiddleware(t *testing.T) {
	var deadline time.Time
	var ok bool
	h := TimeoutMiddleware(2 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
}

func TestUpdateLastActiveMiddleware(t *testing.T) {
	users, u := newFakeUsers()
	users.err = errors.New("store down")
	called := false
	h := UpdateLastActiveMiddleware(users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/user/feed", nil)
	req = req.WithContext(WithUser(req.Context(), u))
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
	assert.Equal(t, []primitive.ObjectID{u.ID}, users.active)

	// Anonymous requests are passed through untouched.
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, users.active, 1)
}

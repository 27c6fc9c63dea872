package services

import (
	"context"
	"testing"

	"github.com/Dias221467/DevConnect/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetConnections_BothDirections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b, c, d := f.users.Add("Alice"), f.users.Add("Bobby"), f.users.Add("Carol"), f.users.Add("Dave1")

	// a -> b accepted, c -> a accepted, a -> d still interested.
	r1, err := f.lifecycle.SendRequest(ctx, a.ID, b.ID, models.StatusInterested)
	require.NoError(t, err)
	_, err = f.lifecycle.ReviewRequest(ctx, b.ID, r1.ID, models.StatusAccepted)
	require.NoError(t, err)

	r2, err := f.lifecycle.SendRequest(ctx, c.ID, a.ID, models.StatusInterested)
	require.NoError(t, err)
	_, err = f.lifecycle.ReviewRequest(ctx, a.ID, r2.ID, models.StatusAccepted)
	require.NoError(t, err)

	_, err = f.lifecycle.SendRequest(ctx, a.ID, d.ID, models.StatusInterested)
	require.NoError(t, err)

	conns, err := f.connections.GetConnections(ctx, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []primitive.ObjectID{b.ID, c.ID}, feedIDs(conns))

	conns, err = f.connections.GetConnections(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a.ID}, feedIDs(conns))

	conns, err = f.connections.GetConnections(ctx, d.ID)
	require.NoError(t, err)
	assert.NotNil(t, conns)
	assert.Empty(t, conns)
}

func TestGetConnections_RejectedIsNotAConnection(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := f.users.Add("Alice"), f.users.Add("Bobby")

	req, err := f.lifecycle.SendRequest(ctx, a.ID, b.ID, models.StatusInterested)
	require.NoError(t, err)
	_, err = f.lifecycle.ReviewRequest(ctx, b.ID, req.ID, models.StatusRejected)
	require.NoError(t, err)

	conns, err := f.connections.GetConnections(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestGetReceivedRequests(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b, c := f.users.Add("Alice"), f.users.Add("Bobby"), f.users.Add("Carol")

	_, err := f.lifecycle.SendRequest(ctx, a.ID, b.ID, models.StatusInterested)
	require.NoError(t, err)
	_, err = f.lifecycle.SendRequest(ctx, c.ID, b.ID, models.StatusIgnored)
	require.NoError(t, err)

	received, err := f.connections.GetReceivedRequests(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, a.ID, received[0].FromUser.ID)
	assert.Equal(t, "Alice", received[0].FromUser.FirstName)
	assert.Equal(t, b.ID, received[0].ToUserID)
	assert.Equal(t, models.StatusInterested, received[0].Status)

	sent, err := f.connections.GetReceivedRequests(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, sent)
}

// U1 sends to U2, U2 accepts, U1 ignores U3.
func TestConnectionLifecycleScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u1, u2, u3 := f.users.Add("User1"), f.users.Add("User2"), f.users.Add("User3")

	req, err := f.lifecycle.SendRequest(ctx, u1.ID, u2.ID, models.StatusInterested)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterested, req.Status)

	received, err := f.connections.GetReceivedRequests(ctx, u2.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, u1.ID, received[0].FromUser.ID)

	reviewed, err := f.lifecycle.ReviewRequest(ctx, u2.ID, req.ID, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, reviewed.Status)

	conns, err := f.connections.GetConnections(ctx, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{u2.ID}, feedIDs(conns))

	conns, err = f.connections.GetConnections(ctx, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{u1.ID}, feedIDs(conns))

	feed1, err := f.feed.GetFeed(ctx, u1.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{u3.ID}, feedIDs(feed1))

	feed2, err := f.feed.GetFeed(ctx, u2.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{u3.ID}, feedIDs(feed2))

	_, err = f.lifecycle.SendRequest(ctx, u1.ID, u3.ID, models.StatusIgnored)
	require.NoError(t, err)

	feed1, err = f.feed.GetFeed(ctx, u1.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, feed1)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPairKeyIsOrderIndependent(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	assert.Equal(t, PairKey(a, b), PairKey(b, a))
	assert.NotEqual(t, PairKey(a, b), PairKey(a, primitive.NewObjectID()))
}

func TestRequestStatusTransitions(t *testing.T) {
	assert.True(t, StatusIgnored.CanSend())
	assert.True(t, StatusInterested.CanSend())
	assert.False(t, StatusAccepted.CanSend())
	assert.False(t, RequestStatus("pending").CanSend())

	assert.True(t, StatusAccepted.CanReview())
	assert.True(t, StatusRejected.CanReview())
	assert.False(t, StatusInterested.CanReview())
}

func TestOtherParty(t *testing.T) {
	from := primitive.NewObjectID()
	to := primitive.NewObjectID()
	req := &ConnectionRequest{FromUserID: from, ToUserID: to}

	assert.Equal(t, to, req.OtherParty(from))
	assert.Equal(t, from, req.OtherParty(to))
}

func TestProfileUpdateApply(t *testing.T) {
	name := "Grace"
	skills := []string{"go", "mongo"}
	update := &ProfileUpdate{FirstName: &name, Skills: &skills}
	user := &User{FirstName: "Alan", LastName: "Turing"}

	update.Apply(user)

	assert.Equal(t, "Grace", user.FirstName)
	assert.Equal(t, "Turing", user.LastName)
	assert.Equal(t, skills, user.Skills)
	assert.Equal(t, map[string]interface{}{"firstName": "Grace", "skills": skills}, update.Fields())
	assert.False(t, update.IsEmpty())
	assert.True(t, (&ProfileUpdate{}).IsEmpty())
}

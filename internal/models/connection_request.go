package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the state of a connection request.
type RequestStatus string

const (
	StatusIgnored    RequestStatus = "ignored"
	StatusInterested RequestStatus = "interested"
	StatusAccepted   RequestStatus = "accepted"
	StatusRejected   RequestStatus = "rejected"
)

// CanSend reports whether a request may be created with status s.
func (s RequestStatus) CanSend() bool {
	return s == StatusIgnored || s == StatusInterested
}

// CanReview reports whether s is a valid review decision.
func (s RequestStatus) CanReview() bool {
	return s == StatusAccepted || s == StatusRejected
}

// ConnectionRequest is a directed relationship attempt between two users.
type ConnectionRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FromUserID primitive.ObjectID `bson:"fromUserId" json:"fromUserId"`
	ToUserID   primitive.ObjectID `bson:"toUserId" json:"toUserId"`
	Status     RequestStatus      `bson:"status" json:"status"`
	PairKey    string             `bson:"pairKey" json:"-"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OtherParty returns the id on the opposite side of the request from viewer.
func (r *ConnectionRequest) OtherParty(viewer primitive.ObjectID) primitive.ObjectID {
	if r.FromUserID == viewer {
		return r.ToUserID
	}
	return r.FromUserID
}

// ReceivedRequest is a pending request shown to its recipient with the sender resolved.
type ReceivedRequest struct {
	ID        primitive.ObjectID `json:"_id"`
	FromUser  PublicUser         `json:"fromUserId"`
	ToUserID  primitive.ObjectID `json:"toUserId"`
	Status    RequestStatus      `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// PairKey returns the canonical key for the unordered pair {a, b}.
func PairKey(a, b primitive.ObjectID) string {
	ha, hb := a.Hex(), b.Hex()
	if ha > hb {
		ha, hb = hb, ha
	}
	return ha + ":" + hb
}

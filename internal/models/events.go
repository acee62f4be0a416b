package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title" validate:"required"`
	Description  string               `bson:"description" json:"description"`
	Date         time.Time            `bson:"date" json:"date" validate:"required"`
	Location     string               `bson:"location" json:"location" validate:"required"`
	Image        *Image               `bson:"image,omitempty" json:"-"`
	Creator      primitive.ObjectID   `bson:"creator" json:"creator"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	CreatedAt    time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updatedAt"`
}

// IsPast reports whether registration for the event is closed.
func (e *Event) IsPast(now time.Time) bool {
	return !now.Before(e.Date)
}

// HasParticipant reports membership of the participant set.
func (e *Event) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range e.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// EventView is the API payload for an event: image bytes excluded, creator and
// participant references resolved to display identity.
type EventView struct {
	ID           primitive.ObjectID `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Date         time.Time          `json:"date"`
	Location     string             `json:"location"`
	HasImage     bool               `json:"hasImage"`
	Creator      UserRef            `json:"creator"`
	Participants []UserRef          `json:"participants"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// EventUpdate carries a partial field replacement for an event. Nil fields are
// left untouched; DeleteImage clears the image even when NewImage is set.
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
	NewImage    *Image
	DeleteImage bool
}

// RegistrationStatus is the answer to a registration-status query.
type RegistrationStatus struct {
	IsRegistered bool   `json:"isRegistered"`
	IsCreator    bool   `json:"isCreator"`
	Status       string `json:"status"`
}

const (
	StatusCreator       = "creator"
	StatusRegistered    = "registered"
	StatusNotRegistered = "not-registered"
)

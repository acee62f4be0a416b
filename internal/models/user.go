package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is a binary blob embedded in a document together with its MIME type.
type Image struct {
	Data        []byte `bson:"data" json:"-"`
	ContentType string `bson:"contentType" json:"contentType,omitempty"`
}

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username" validate:"required,min=3"`
	Email          string             `bson:"email" json:"email" validate:"required,email"`
	Password       string             `bson:"password" json:"-" validate:"required,min=8"`
	ProfilePicture *Image             `bson:"profilePicture,omitempty" json:"-"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Profile is the credential-free view of a user returned by the API.
// Avatar bytes stay out; clients fetch them from the profile-picture routes.
type Profile struct {
	ID                primitive.ObjectID `json:"id"`
	Username          string             `json:"username"`
	Email             string             `json:"email"`
	HasProfilePicture bool               `json:"hasProfilePicture"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

func (u *User) ToProfile() *Profile {
	return &Profile{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		HasProfilePicture: u.ProfilePicture != nil && len(u.ProfilePicture.Data) > 0,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// UserRef is a creator/participant reference resolved to display identity.
type UserRef struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
}

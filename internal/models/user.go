package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPhotoURL = "https://images.icon-icons.com/1378/PNG/512/avatardefault_92824.png"
	DefaultAbout    = "This is a default about of the user"
)

// User represents a registered developer profile.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Age          int                `bson:"age,omitempty" json:"age,omitempty"`
	Gender       string             `bson:"gender,omitempty" json:"gender,omitempty"`
	PhotoURL     string             `bson:"photoUrl" json:"photoUrl"`
	About        string             `bson:"about" json:"about"`
	Skills       []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	LastActiveAt time.Time          `bson:"lastActiveAt,omitempty" json:"lastActiveAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the projection of a User that is safe to show to other users.
type PublicUser struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	PhotoURL  string             `bson:"photoUrl" json:"photoUrl"`
	Age       int                `bson:"age,omitempty" json:"age,omitempty"`
	Gender    string             `bson:"gender,omitempty" json:"gender,omitempty"`
	About     string             `bson:"about" json:"about"`
	Skills    []string           `bson:"skills,omitempty" json:"skills,omitempty"`
}

// PublicFields lists the stored fields that make up a PublicUser.
var PublicFields = []string{"firstName", "lastName", "photoUrl", "age", "gender", "about", "skills"}

// Public returns the public-safe projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		PhotoURL:  u.PhotoURL,
		Age:       u.Age,
		Gender:    u.Gender,
		About:     u.About,
		Skills:    u.Skills,
	}
}

// SignupRequest is the payload accepted by /signup.
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,min=4,max=50"`
	LastName  string `json:"lastName" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,strongpassword"`
}

// LoginRequest is the payload accepted by /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordChange is the payload accepted by /profile/editpassword.
type PasswordChange struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,strongpassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// ProfileUpdate lists every field a user may edit on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string   `json:"firstName,omitempty" validate:"omitempty,min=4,max=50"`
	LastName  *string   `json:"lastName,omitempty" validate:"omitempty,min=3,max=30"`
	Age       *int      `json:"age,omitempty" validate:"omitempty,min=18,max=120"`
	Gender    *string   `json:"gender,omitempty" validate:"omitempty,oneof=male female others"`
	About     *string   `json:"about,omitempty" validate:"omitempty,max=500"`
	PhotoURL  *string   `json:"photoUrl,omitempty" validate:"omitempty,url"`
	Skills    *[]string `json:"skills,omitempty" validate:"omitempty,max=20,dive,min=1,max=40"`
}

// IsEmpty reports whether the update changes nothing.
func (p *ProfileUpdate) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Age == nil && p.Gender == nil &&
		p.About == nil && p.PhotoURL == nil && p.Skills == nil
}

// Fields returns the stored field names and values the update sets.
func (p *ProfileUpdate) Fields() map[string]interface{} {
	set := make(map[string]interface{})
	if p.FirstName != nil {
		set["firstName"] = *p.FirstName
	}
	if p.LastName != nil {
		set["lastName"] = *p.LastName
	}
	if p.Age != nil {
		set["age"] = *p.Age
	}
	if p.Gender != nil {
		set["gender"] = *p.Gender
	}
	if p.About != nil {
		set["about"] = *p.About
	}
	if p.PhotoURL != nil {
		set["photoUrl"] = *p.PhotoURL
	}
	if p.Skills != nil {
		set["skills"] = *p.Skills
	}
	return set
}

// Apply copies the non-nil fields of p onto u.
func (p *ProfileUpdate) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.About != nil {
		u.About = *p.About
	}
	if p.PhotoURL != nil {
		u.PhotoURL = *p.PhotoURL
	}
	if p.Skills != nil {
		u.Skills = *p.Skills
	}
}

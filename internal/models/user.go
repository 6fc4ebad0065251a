package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a stored user record. The password holds the bcrypt hash
// and is never serialized to JSON.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// PublicUser is the response projection of a user. It carries only
// non-sensitive fields; there is no password field to leak.
type PublicUser struct {
	ID        primitive.ObjectID `json:"_id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Limit projects the user down to its public fields.
func (u *User) Limit() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,passwd"`
}

// UpdateUserRequest is the body of PUT /api/users/:id. All fields are
// optional; rules apply only to fields that are present.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=3,max=20"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,passwd"`
}

// UserUpdate is the set of fields a partial update writes to the store.
// Email is expected lowercased and Password already hashed by the caller.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// UserPage is one page of a user listing.
type UserPage struct {
	Users       []PublicUser `json:"users"`
	TotalPages  int64        `json:"totalPages"`
	CurrentPage int64        `json:"currentPage"`
}

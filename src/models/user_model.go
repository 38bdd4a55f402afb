package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type User struct {
	Id               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Email            string             `json:"email" bson:"email"`
	ProgramOfStudy   string             `json:"programOfStudy" bson:"programOfStudy"`
	Interest         string             `json:"interest" bson:"interest"`
	Skills           []string           `json:"skills" bson:"skills"`
	ProjectIdea      string             `json:"projectIdea" bson:"projectIdea"`
	AvailabilityDate time.Time          `json:"availabilityDate" bson:"availabilityDate"`
	Password         string             `json:"-" bson:"password"`
	Role             Role               `json:"role" bson:"role"`
	IsActive         bool               `json:"isActive" bson:"isActive"`
	LastLogin        *time.Time         `json:"lastLogin" bson:"lastLogin"`
	// Connections holds mutually accepted connections. PendingConnections
	// holds ids of users who requested to connect with this user; the
	// request lives on the recipient's document, never on the sender's.
	Connections        []primitive.ObjectID `json:"connections" bson:"connections"`
	PendingConnections []primitive.ObjectID `json:"pendingConnections" bson:"pendingConnections"`
	CreatedAt          time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasConnection reports whether the user is already connected with id.
func (u *User) HasConnection(id primitive.ObjectID) bool {
	for _, conn := range u.Connections {
		if conn == id {
			return true
		}
	}
	return false
}

// HasPendingFrom reports whether id has an undecided request to this user.
func (u *User) HasPendingFrom(id primitive.ObjectID) bool {
	for _, pending := range u.PendingConnections {
		if pending == id {
			return true
		}
	}
	return false
}

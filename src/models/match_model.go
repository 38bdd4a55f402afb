package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchProfile is the candidate subset returned with a match suggestion.
type MatchProfile struct {
	Id               primitive.ObjectID `json:"id"`
	Name             string             `json:"name"`
	Email            string             `json:"email"`
	ProgramOfStudy   string             `json:"programOfStudy"`
	Interest         string             `json:"interest"`
	Skills           []string           `json:"skills"`
	ProjectIdea      string             `json:"projectIdea"`
	AvailabilityDate time.Time          `json:"availabilityDate"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// Match is one ranked suggestion: the candidate, the raw score, the
// human-readable reasons and the 0-100 compatibility percentage.
type Match struct {
	User          MatchProfile `json:"user"`
	MatchScore    int          `json:"matchScore"`
	MatchReasons  []string     `json:"matchReasons"`
	Compatibility int          `json:"compatibility"`
}

func NewMatchProfile(u *User) MatchProfile {
	return MatchProfile{
		Id:               u.Id,
		Name:             u.Name,
		Email:            u.Email,
		ProgramOfStudy:   u.ProgramOfStudy,
		Interest:         u.Interest,
		Skills:           u.Skills,
		ProjectIdea:      u.ProjectIdea,
		AvailabilityDate: u.AvailabilityDate,
		CreatedAt:        u.CreatedAt,
	}
}

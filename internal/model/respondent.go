package model

import "time"

// Respondent is a person taking the assessment
type Respondent struct {
	ID        string    `json:"id" bson:"_id"`
	FirstName string    `json:"firstName" bson:"firstName"`
	LastName  string    `json:"lastName" bson:"lastName"`
	Email     string    `json:"email" bson:"email"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// FullName returns "First Last"
func (r *Respondent) FullName() string {
	return r.FirstName + " " + r.LastName
}

// RegisterRequest is the request body for registering a respondent
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// RegisterResponse is returned after registration
type RegisterResponse struct {
	RespondentID   string    `json:"respondentId"`
	Token          string    `json:"token"`
	TotalQuestions int       `json:"totalQuestions"`
	FirstQuestion  *Question `json:"firstQuestion,omitempty"`
}

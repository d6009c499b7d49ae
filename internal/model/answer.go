package model

import "time"

// Answer is a single chosen option for a question
type Answer struct {
	QuestionID int         `json:"questionId" bson:"questionId"`
	Label      OptionLabel `json:"answer" bson:"answer"`
}

// AnswerSet maps question id to the chosen label. Complete once it holds
// exactly one answer for every question of the bank.
type AnswerSet map[int]OptionLabel

// Clone returns an independent copy
func (s AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Response is a raw answer as persisted by the intake workflow
type Response struct {
	ID           string      `json:"id" bson:"_id"`
	RespondentID string      `json:"respondentId" bson:"respondentId"`
	QuestionID   int         `json:"questionId" bson:"questionId"`
	Answer       OptionLabel `json:"answer" bson:"answer"`
	AnsweredAt   time.Time   `json:"answeredAt" bson:"answeredAt"`
}

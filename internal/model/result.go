package model

import "time"

// ScoringResult is the derived classification for one completed answer set
type ScoringResult struct {
	PrimaryStyle   StyleCategory         `json:"primaryStyle" bson:"primaryStyle"`
	SecondaryStyle StyleCategory         `json:"secondaryStyle" bson:"secondaryStyle"`
	StyleTally     map[StyleCategory]int `json:"styleTally" bson:"styleTally"`
	AdequacyScore  int                   `json:"adequacyScore" bson:"adequacyScore"`
	AdequacyLevel  string                `json:"adequacyLevel" bson:"adequacyLevel"`
	Adaptability   string                `json:"adaptability" bson:"adaptability"`
}

// StoredResult is the finalized result persisted for a respondent
type StoredResult struct {
	ID            string    `json:"id" bson:"_id"`
	RespondentID  string    `json:"respondentId" bson:"respondentId"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	ScoringResult `bson:",inline"`
}

// EvaluateRequest scores an answer set without storing it. Either Answers or
// the compact form ("AADCCDBACDBB", n-th letter answers question n) is used.
type EvaluateRequest struct {
	Answers []Answer `json:"answers,omitempty"`
	Compact string   `json:"compact,omitempty"`
}

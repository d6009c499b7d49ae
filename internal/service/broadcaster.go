package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSupervisors(msgType string, payload interface{})
}

const (
	EventRespondentRegistered = "respondent_registered"
	EventRespondentProgress   = "respondent_progress"
	EventAssessmentCompleted  = "assessment_completed"
)

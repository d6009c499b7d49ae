package model

// ProgressStatus is the respondent's position in the intake workflow
type ProgressStatus string

const (
	ProgressRegistering ProgressStatus = "registering"
	ProgressInProgress  ProgressStatus = "in_progress"
	ProgressCompleted   ProgressStatus = "completed"
)

// Progress is the respondent-scoped intake state
type Progress struct {
	RespondentID string         `json:"respondentId"`
	Status       ProgressStatus `json:"status"`
	Answers      AnswerSet      `json:"answers"`
	Answered     int            `json:"answered"`
	Total        int            `json:"total"`
}

// StatusFor derives the workflow state from the answer count
func StatusFor(answered int, completed bool) ProgressStatus {
	switch {
	case completed:
		return ProgressCompleted
	case answered == 0:
		return ProgressRegistering
	default:
		return ProgressInProgress
	}
}

// SubmitAnswerRequest is the request body for answering a question
type SubmitAnswerRequest struct {
	QuestionID int    `json:"questionId"`
	Answer     string `json:"answer"`
}

// SubmitAnswerResponse is returned after an answer is recorded
type SubmitAnswerResponse struct {
	Completed    bool          `json:"completed"`
	Answered     int           `json:"answered"`
	Total        int           `json:"total"`
	NextQuestion *Question     `json:"nextQuestion,omitempty"`
	Result       *StoredResult `json:"result,omitempty"`
}

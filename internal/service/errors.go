package service

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrRespondentNotFound  = errors.New("respondent not found")
	ErrResultNotFound      = errors.New("result not found")
	ErrAssessmentCompleted = errors.New("assessment already completed")
	ErrCompareCount        = errors.New("compare requires between 2 and 4 distinct respondents")
)

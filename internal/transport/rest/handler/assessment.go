package handler

import (
	"encoding/json"
	"net/http"

	"leadstyle/internal/model"
	"leadstyle/internal/service"
	"leadstyle/internal/transport/rest/middleware"
)

// AssessmentHandler handles respondent endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// Register handles POST /v1/respondents
func (h *AssessmentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.assessmentSvc.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Progress handles GET /v1/assessment/progress
func (h *AssessmentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.assessmentSvc.Progress(r.Context(), middleware.GetRespondentID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// CurrentQuestion handles GET /v1/assessment/question
func (h *AssessmentHandler) CurrentQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.assessmentSvc.CurrentQuestion(r.Context(), middleware.GetRespondentID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// SubmitAnswer handles POST /v1/assessment/answers
func (h *AssessmentHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitAnswerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.assessmentSvc.SubmitAnswer(r.Context(), middleware.GetRespondentID(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Result handles GET /v1/assessment/result
func (h *AssessmentHandler) Result(w http.ResponseWriter, r *http.Request) {
	view, err := h.assessmentSvc.Result(r.Context(), middleware.GetRespondentID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

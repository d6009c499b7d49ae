package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"leadstyle/internal/instrument"
	"leadstyle/internal/model"
	"leadstyle/internal/scoring"
)

// QuestionHandler serves the question bank and stateless scoring
type QuestionHandler struct {
	engine *scoring.Engine
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(engine *scoring.Engine) *QuestionHandler {
	return &QuestionHandler{engine: engine}
}

// List handles GET /v1/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Instrument().Questions())
}

// Get handles GET /v1/questions/{id}
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "question id must be a number")
		return
	}
	q, err := h.engine.Instrument().Question(id)
	if errors.Is(err, instrument.ErrQuestionNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Evaluate handles POST /v1/evaluate
func (h *QuestionHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req model.EvaluateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Compact != "" && len(req.Answers) > 0 {
		writeError(w, http.StatusBadRequest, "send either answers or compact, not both")
		return
	}

	var (
		result *model.ScoringResult
		err    error
	)
	if req.Compact != "" {
		var answers model.AnswerSet
		answers, err = scoring.ParseAnswers(req.Compact)
		if err == nil {
			result, err = h.engine.Evaluate(answers)
		}
	} else {
		result, err = h.engine.EvaluateAnswers(req.Answers)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadstyle/internal/cache"
	"leadstyle/internal/instrument"
	"leadstyle/internal/model"
	"leadstyle/internal/repository"
	"leadstyle/internal/scoring"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AssessmentService runs the intake workflow: registration, answer
// collection and the single finalization of each respondent's result.
type AssessmentService struct {
	inst          *instrument.Instrument
	engine        *scoring.Engine
	respondents   repository.RespondentRepo
	responses     repository.ResponseRepo
	results       repository.ResultRepo
	progressCache cache.ProgressCache
	statsCache    cache.StatsCache
	authSvc       *AuthService
	broadcaster   Broadcaster
	presenter     presenter
	now           func() time.Time
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	engine *scoring.Engine,
	store *repository.Store,
	progressCache cache.ProgressCache,
	statsCache cache.StatsCache,
	authSvc *AuthService,
) *AssessmentService {
	inst := engine.Instrument()
	return &AssessmentService{
		inst:          inst,
		engine:        engine,
		respondents:   store.Respondents,
		responses:     store.Responses,
		results:       store.Results,
		progressCache: progressCache,
		statsCache:    statsCache,
		authSvc:       authSvc,
		presenter:     presenter{inst: inst},
		now:           time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *AssessmentService) broadcast(msgType string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSupervisors(msgType, payload)
	}
}

// Register validates and stores a new respondent and opens their assessment
func (s *AssessmentService) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	respondent := &model.Respondent{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		CreatedAt: s.now().UTC(),
	}
	if respondent.FirstName == "" || respondent.LastName == "" || respondent.Email == "" {
		return nil, fmt.Errorf("%w: first name, last name and email are required", ErrValidation)
	}
	if !emailPattern.MatchString(respondent.Email) {
		return nil, fmt.Errorf("%w: email address is not valid", ErrValidation)
	}

	if err := s.respondents.Create(ctx, respondent); err != nil {
		return nil, fmt.Errorf("failed to create respondent: %w", err)
	}
	if err := s.progressCache.Start(ctx, respondent.ID); err != nil {
		return nil, fmt.Errorf("failed to start progress: %w", err)
	}
	token, err := s.authSvc.GenerateRespondentToken(respondent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("Respondent registered: %s (%s)", respondent.ID, respondent.FullName())
	s.broadcast(EventRespondentRegistered, map[string]interface{}{
		"respondentId": respondent.ID,
		"name":         respondent.FullName(),
	})

	resp := &model.RegisterResponse{
		RespondentID:   respondent.ID,
		Token:          token,
		TotalQuestions: s.inst.Count(),
	}
	if q, ok := s.nextQuestion(model.AnswerSet{}); ok {
		resp.FirstQuestion = &q
	}
	return resp, nil
}

// state loads the respondent's answers, rebuilding the cache from the
// result store when it has expired.
func (s *AssessmentService) state(ctx context.Context, respondentID string) (model.AnswerSet, *model.StoredResult, error) {
	respondent, err := s.respondents.GetByID(ctx, respondentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get respondent: %w", err)
	}
	if respondent == nil {
		return nil, nil, ErrRespondentNotFound
	}

	stored, err := s.results.GetByRespondent(ctx, respondentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get result: %w", err)
	}

	answers, found, err := s.progressCache.Get(ctx, respondentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get progress: %w", err)
	}
	if !found {
		responses, err := s.responses.GetByRespondent(ctx, respondentID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get responses: %w", err)
		}
		answers = make(model.AnswerSet, len(responses))
		for _, r := range responses {
			answers[r.QuestionID] = r.Answer
		}
		if err := s.progressCache.Load(ctx, respondentID, answers); err != nil {
			log.Printf("Warning: failed to rebuild progress for %s: %v", respondentID, err)
		}
	}
	return answers, stored, nil
}

// nextQuestion returns the lowest-id unanswered question
func (s *AssessmentService) nextQuestion(answers model.AnswerSet) (model.Question, bool) {
	for _, id := range s.inst.QuestionIDs() {
		if _, ok := answers[id]; !ok {
			q, err := s.inst.Question(id)
			return q, err == nil
		}
	}
	return model.Question{}, false
}

// Progress returns the respondent's position in the workflow
func (s *AssessmentService) Progress(ctx context.Context, respondentID string) (*model.Progress, error) {
	answers, stored, err := s.state(ctx, respondentID)
	if err != nil {
		return nil, err
	}
	return &model.Progress{
		RespondentID: respondentID,
		Status:       model.StatusFor(len(answers), stored != nil),
		Answers:      answers,
		Answered:     len(answers),
		Total:        s.inst.Count(),
	}, nil
}

// CurrentQuestion returns the next question the respondent has to answer
func (s *AssessmentService) CurrentQuestion(ctx context.Context, respondentID string) (*model.Question, error) {
	answers, stored, err := s.state(ctx, respondentID)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		return nil, ErrAssessmentCompleted
	}
	q, ok := s.nextQuestion(answers)
	if !ok {
		// every question answered but not finalized yet
		return nil, ErrAssessmentCompleted
	}
	return &q, nil
}

// SubmitAnswer records one answer. The answer that completes the set
// finalizes the result.
func (s *AssessmentService) SubmitAnswer(ctx context.Context, respondentID string, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error) {
	label, err := model.ParseOptionLabel(req.Answer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := s.inst.Question(req.QuestionID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	_, stored, err := s.state(ctx, respondentID)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		return nil, ErrAssessmentCompleted
	}

	response := &model.Response{
		RespondentID: respondentID,
		QuestionID:   req.QuestionID,
		Answer:       label,
		AnsweredAt:   s.now().UTC(),
	}
	if err := s.responses.Save(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}
	answered, err := s.progressCache.SetAnswer(ctx, respondentID, req.QuestionID, label)
	if err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}

	total := s.inst.Count()
	s.broadcast(EventRespondentProgress, map[string]interface{}{
		"respondentId": respondentID,
		"answered":     answered,
		"total":        total,
	})

	resp := &model.SubmitAnswerResponse{
		Answered: answered,
		Total:    total,
	}
	if answered < total {
		answers, _, err := s.progressCache.Get(ctx, respondentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get progress: %w", err)
		}
		if q, ok := s.nextQuestion(answers); ok {
			resp.NextQuestion = &q
		}
		return resp, nil
	}

	result, err := s.finalize(ctx, respondentID)
	if err != nil {
		return nil, err
	}
	resp.Completed = true
	resp.Answered = total
	resp.Result = result
	return resp, nil
}

// finalize evaluates the complete answer set and stores the result.
// The completion latch keeps concurrent submitters from evaluating twice;
// the result store keeps at most one result even if the latch is lost.
func (s *AssessmentService) finalize(ctx context.Context, respondentID string) (*model.StoredResult, error) {
	won, err := s.progressCache.TryComplete(ctx, respondentID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire completion latch: %w", err)
	}
	if !won {
		stored, err := s.results.GetByRespondent(ctx, respondentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get result: %w", err)
		}
		if stored != nil {
			return stored, nil
		}
		// latch held without a stored result: the holder failed or is still writing
		log.Printf("Completion latch held for %s without a result, evaluating", respondentID)
	}

	stored, err := s.evaluateAndStore(ctx, respondentID)
	if err != nil && won {
		if rerr := s.progressCache.ReleaseComplete(ctx, respondentID); rerr != nil {
			log.Printf("Warning: failed to release completion latch for %s: %v", respondentID, rerr)
		}
	}
	return stored, err
}

func (s *AssessmentService) evaluateAndStore(ctx context.Context, respondentID string) (*model.StoredResult, error) {
	answers, _, err := s.progressCache.Get(ctx, respondentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	scored, err := s.engine.Evaluate(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate answers: %w", err)
	}

	stored, created, err := s.results.SaveOnce(ctx, &model.StoredResult{
		ID:            uuid.NewString(),
		RespondentID:  respondentID,
		CreatedAt:     s.now().UTC(),
		ScoringResult: *scored,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}
	if !created {
		return stored, nil
	}

	log.Printf("Assessment completed: %s primary=%s secondary=%s adequacy=%d (%s)",
		respondentID, stored.PrimaryStyle, stored.SecondaryStyle, stored.AdequacyScore, stored.AdequacyLevel)

	if err := s.statsCache.RecordResult(ctx, stored); err != nil {
		log.Printf("Warning: failed to record stats for %s: %v", respondentID, err)
	}
	respondent, err := s.respondents.GetByID(ctx, respondentID)
	if err != nil {
		log.Printf("Warning: failed to load respondent %s for broadcast: %v", respondentID, err)
	}
	s.broadcast(EventAssessmentCompleted, s.presenter.view(respondent, stored))
	return stored, nil
}

// Result returns the respondent's own finalized result
func (s *AssessmentService) Result(ctx context.Context, respondentID string) (*model.ResultView, error) {
	respondent, err := s.respondents.GetByID(ctx, respondentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get respondent: %w", err)
	}
	if respondent == nil {
		return nil, ErrRespondentNotFound
	}
	stored, err := s.results.GetByRespondent(ctx, respondentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	if stored == nil {
		return nil, ErrResultNotFound
	}
	return withRank(ctx, s.statsCache, s.presenter.view(respondent, stored)), nil
}

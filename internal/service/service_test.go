package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"leadstyle/internal/cache"
	"leadstyle/internal/instrument"
	"leadstyle/internal/model"
	"leadstyle/internal/repository"
	"leadstyle/internal/repository/sqlitestore"
	"leadstyle/internal/scoring"
)

type recordedEvent struct {
	msgType string
	payload interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *recordingBroadcaster) BroadcastToSupervisors(msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{msgType: msgType, payload: payload})
}

func (b *recordingBroadcaster) count(msgType string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.msgType == msgType {
			n++
		}
	}
	return n
}

type fixture struct {
	inst        *instrument.Instrument
	store       *repository.Store
	progress    cache.ProgressCache
	stats       cache.StatsCache
	auth        *AuthService
	assessment  *AssessmentService
	reports     *ReportService
	broadcaster *recordingBroadcaster
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	inst, err := instrument.Default()
	if err != nil {
		t.Fatalf("load instrument: %v", err)
	}
	store, err := sqlitestore.NewStore(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	f := &fixture{
		inst:        inst,
		store:       store,
		progress:    cache.NewMemoryProgressCache(),
		stats:       cache.NewMemoryStatsCache(),
		auth:        NewAuthService("admin123", "test-secret", time.Hour),
		broadcaster: &recordingBroadcaster{},
	}
	f.assessment = NewAssessmentService(scoring.NewEngine(inst), store, f.progress, f.stats, f.auth)
	f.assessment.SetBroadcaster(f.broadcaster)
	f.reports = NewReportService(inst, store, f.stats)
	return f
}

func (f *fixture) register(t *testing.T, first, last string) string {
	t.Helper()
	resp, err := f.assessment.Register(context.Background(), &model.RegisterRequest{
		FirstName: first,
		LastName:  last,
		Email:     first + "." + last + "@example.com",
	})
	if err != nil {
		t.Fatalf("Register(%s %s) error: %v", first, last, err)
	}
	return resp.RespondentID
}

// answerAll submits the compact answer string in question order and returns the last response
func (f *fixture) answerAll(t *testing.T, respondentID, compact string) *model.SubmitAnswerResponse {
	t.Helper()
	var last *model.SubmitAnswerResponse
	for n, r := range compact {
		resp, err := f.assessment.SubmitAnswer(context.Background(), respondentID, &model.SubmitAnswerRequest{
			QuestionID: n + 1,
			Answer:     string(r),
		})
		if err != nil {
			t.Fatalf("SubmitAnswer(%d) error: %v", n+1, err)
		}
		last = resp
	}
	return last
}

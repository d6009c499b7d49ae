package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"leadstyle/internal/model"
	"leadstyle/internal/repository"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "leadstyle.db"))
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createRespondent(t *testing.T, store *repository.Store, id string, created time.Time) *model.Respondent {
	t.Helper()
	r := &model.Respondent{ID: id, FirstName: "Ana", LastName: id, Email: id + "@example.com", CreatedAt: created}
	if err := store.Respondents.Create(context.Background(), r); err != nil {
		t.Fatalf("Create(%s) error: %v", id, err)
	}
	return r
}

func sampleResult(respondentID string, score int) *model.StoredResult {
	return &model.StoredResult{
		RespondentID: respondentID,
		ScoringResult: model.ScoringResult{
			PrimaryStyle:   model.StyleDirective,
			SecondaryStyle: model.StyleInformative,
			StyleTally: map[model.StyleCategory]int{
				model.StyleDirective:     3,
				model.StyleInformative:   3,
				model.StyleParticipative: 3,
				model.StyleDelegative:    3,
			},
			AdequacyScore: score,
			AdequacyLevel: "needs_development",
			Adaptability:  "low",
		},
	}
}

func TestRespondents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	createRespondent(t, store, "r1", base)
	createRespondent(t, store, "r2", base.Add(time.Minute))
	createRespondent(t, store, "r3", base.Add(90*time.Millisecond))

	got, err := store.Respondents.GetByID(ctx, "r2")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got == nil || got.Email != "r2@example.com" || !got.CreatedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("GetByID = %+v", got)
	}

	missing, err := store.Respondents.GetByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("GetByID(missing) = %v, %v", missing, err)
	}

	list, err := store.Respondents.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	order := []string{}
	for _, r := range list {
		order = append(order, r.ID)
	}
	if len(order) != 3 || order[0] != "r2" || order[1] != "r3" || order[2] != "r1" {
		t.Fatalf("List order = %v, want [r2 r3 r1]", order)
	}
}

func TestResponsesOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createRespondent(t, store, "r1", time.Now())

	first := &model.Response{RespondentID: "r1", QuestionID: 2, Answer: model.OptionA}
	if err := store.Responses.Save(ctx, first); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.Responses.Save(ctx, &model.Response{RespondentID: "r1", QuestionID: 1, Answer: model.OptionC}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	again := &model.Response{RespondentID: "r1", QuestionID: 2, Answer: model.OptionD}
	if err := store.Responses.Save(ctx, again); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("re-answer got new id %s, want %s", again.ID, first.ID)
	}

	responses, err := store.Responses.GetByRespondent(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByRespondent error: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("got %d responses, want 2", len(responses))
	}
	if responses[0].QuestionID != 1 || responses[1].QuestionID != 2 || responses[1].Answer != model.OptionD {
		t.Fatalf("unexpected responses %+v %+v", responses[0], responses[1])
	}
}

func TestResultSaveOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createRespondent(t, store, "r1", time.Now())

	stored, created, err := store.Results.SaveOnce(ctx, sampleResult("r1", -1))
	if err != nil || !created {
		t.Fatalf("first SaveOnce = %v, %v", created, err)
	}

	second, created, err := store.Results.SaveOnce(ctx, sampleResult("r1", 24))
	if err != nil {
		t.Fatalf("second SaveOnce error: %v", err)
	}
	if created {
		t.Fatal("second SaveOnce reported created")
	}
	if second.ID != stored.ID || second.AdequacyScore != -1 {
		t.Fatalf("second SaveOnce returned %+v, want the original", second)
	}

	got, err := store.Results.GetByRespondent(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if got.StyleTally[model.StyleParticipative] != 3 || got.PrimaryStyle != model.StyleDirective {
		t.Fatalf("GetByRespondent = %+v", got)
	}

	none, err := store.Results.GetByRespondent(ctx, "r2")
	if err != nil || none != nil {
		t.Fatalf("GetByRespondent(missing) = %v, %v", none, err)
	}
}

func TestResultSaveOnceConcurrent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createRespondent(t, store, "r1", time.Now())

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
		ids     = map[string]bool{}
	)
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			stored, created, err := store.Results.SaveOnce(ctx, sampleResult("r1", score))
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if created {
				winners++
			}
			ids[stored.ID] = true
		}(n)
	}
	wg.Wait()

	if winners != 1 {
		t.Fatalf("%d callers created a result, want 1", winners)
	}
	if len(ids) != 1 {
		t.Fatalf("callers saw %d distinct results, want 1", len(ids))
	}
}

func TestResultList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for n, id := range []string{"r1", "r2", "r3"} {
		createRespondent(t, store, id, base)
		res := sampleResult(id, n)
		res.CreatedAt = base.Add(time.Duration(n) * time.Hour)
		if _, _, err := store.Results.SaveOnce(ctx, res); err != nil {
			t.Fatal(err)
		}
	}
	list, err := store.Results.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].RespondentID != "r3" || list[2].RespondentID != "r1" {
		t.Fatalf("List not newest first: %v", list)
	}
}

func TestOpenFailure(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) {
		return nil, errors.New("boom")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "x.db")); err == nil {
		t.Fatal("expected error")
	}
}

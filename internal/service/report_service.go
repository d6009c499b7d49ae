package service

import (
	"context"
	"fmt"
	"log"
	"math"

	"leadstyle/internal/cache"
	"leadstyle/internal/instrument"
	"leadstyle/internal/model"
	"leadstyle/internal/repository"
)

const topAdequacyLimit = 5

// ReportService serves the supervisor views over finalized results
type ReportService struct {
	inst        *instrument.Instrument
	respondents repository.RespondentRepo
	responses   repository.ResponseRepo
	results     repository.ResultRepo
	statsCache  cache.StatsCache
	presenter   presenter
}

// NewReportService creates a new report service
func NewReportService(
	inst *instrument.Instrument,
	store *repository.Store,
	statsCache cache.StatsCache,
) *ReportService {
	return &ReportService{
		inst:        inst,
		respondents: store.Respondents,
		responses:   store.Responses,
		results:     store.Results,
		statsCache:  statsCache,
		presenter:   presenter{inst: inst},
	}
}

// WarmStats rebuilds the aggregate cache from the result store
func (s *ReportService) WarmStats(ctx context.Context) error {
	results, err := s.results.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list results: %w", err)
	}
	if err := s.statsCache.Rebuild(ctx, results); err != nil {
		return fmt.Errorf("failed to rebuild stats: %w", err)
	}
	log.Printf("Stats rebuilt from %d results", len(results))
	return nil
}

func (s *ReportService) respondentIndex(ctx context.Context) (map[string]*model.Respondent, error) {
	list, err := s.respondents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list respondents: %w", err)
	}
	index := make(map[string]*model.Respondent, len(list))
	for _, r := range list {
		index[r.ID] = r
	}
	return index, nil
}

// ListResults returns every finalized result with its respondent, newest first
func (s *ReportService) ListResults(ctx context.Context) ([]*model.ResultView, error) {
	results, err := s.results.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	index, err := s.respondentIndex(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*model.ResultView, 0, len(results))
	for _, r := range results {
		views = append(views, s.presenter.view(index[r.RespondentID], r))
	}
	return views, nil
}

// GetResult returns one respondent's result
func (s *ReportService) GetResult(ctx context.Context, respondentID string) (*model.ResultView, error) {
	respondent, err := s.respondents.GetByID(ctx, respondentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get respondent: %w", err)
	}
	if respondent == nil {
		return nil, ErrRespondentNotFound
	}
	result, err := s.results.GetByRespondent(ctx, respondentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	if result == nil {
		return nil, ErrResultNotFound
	}
	return withRank(ctx, s.statsCache, s.presenter.view(respondent, result)), nil
}

// GetResponses returns the raw answers of one respondent ordered by question
func (s *ReportService) GetResponses(ctx context.Context, respondentID string) ([]*model.Response, error) {
	respondent, err := s.respondents.GetByID(ctx, respondentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get respondent: %w", err)
	}
	if respondent == nil {
		return nil, ErrRespondentNotFound
	}
	responses, err := s.responses.GetByRespondent(ctx, respondentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}
	if responses == nil {
		responses = []*model.Response{}
	}
	return responses, nil
}

// Summary aggregates every finalized result
func (s *ReportService) Summary(ctx context.Context) (*model.Summary, error) {
	results, err := s.results.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	summary := &model.Summary{
		TotalAssessments:  len(results),
		AdequacyHistogram: make(map[int]int),
		TopAdequacy:       []model.RankingEntry{},
	}
	sum := 0
	for _, r := range results {
		sum += r.AdequacyScore
		summary.AdequacyHistogram[r.AdequacyScore]++
	}
	if len(results) > 0 {
		summary.AverageAdequacy = math.Round(float64(sum)/float64(len(results))*10) / 10
	}

	styles, err := s.statsCache.StyleDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get style distribution: %w", err)
	}
	if count(styles) != len(results) {
		// cache drifted from the store (expired or flushed)
		if err := s.statsCache.Rebuild(ctx, results); err != nil {
			return nil, fmt.Errorf("failed to rebuild stats: %w", err)
		}
		if styles, err = s.statsCache.StyleDistribution(ctx); err != nil {
			return nil, fmt.Errorf("failed to get style distribution: %w", err)
		}
	}
	levels, err := s.statsCache.LevelDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get level distribution: %w", err)
	}

	summary.StyleDistribution = make(map[model.StyleCategory]int, len(styles))
	best := -1
	for _, st := range s.inst.Styles() {
		n := styles[st.Key]
		summary.StyleDistribution[st.Key] = n
		if n > best && n > 0 {
			best = n
			summary.MostCommonStyle = st.Key
		}
	}
	summary.LevelDistribution = make(map[string]int, len(levels))
	for _, b := range s.inst.Levels() {
		summary.LevelDistribution[b.Key] = levels[b.Key]
	}

	top, err := s.statsCache.TopAdequacy(ctx, topAdequacyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get adequacy ranking: %w", err)
	}
	for _, e := range top {
		if r, err := s.respondents.GetByID(ctx, e.RespondentID); err == nil && r != nil {
			e.Name = r.FullName()
		}
		summary.TopAdequacy = append(summary.TopAdequacy, e)
	}
	return summary, nil
}

func count[K comparable](m map[K]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

// Compare returns side-by-side profiles for 2 to 4 respondents
func (s *ReportService) Compare(ctx context.Context, respondentIDs []string) ([]model.ComparisonEntry, error) {
	seen := make(map[string]bool, len(respondentIDs))
	var ids []string
	for _, id := range respondentIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) < 2 || len(ids) > 4 {
		return nil, ErrCompareCount
	}

	entries := make([]model.ComparisonEntry, 0, len(ids))
	for _, id := range ids {
		view, err := s.GetResult(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		entries = append(entries, model.ComparisonEntry{
			RespondentID:   id,
			Name:           view.Respondent.FullName(),
			Email:          view.Respondent.Email,
			PrimaryStyle:   view.Result.PrimaryStyle,
			SecondaryStyle: view.Result.SecondaryStyle,
			StyleTally:     view.Result.StyleTally,
			AdequacyScore:  view.Result.AdequacyScore,
			AdequacyLevel:  view.Result.AdequacyLevel,
			CompletedAt:    view.Result.CreatedAt,
		})
	}
	return entries, nil
}

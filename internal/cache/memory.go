package cache

import (
	"context"
	"sort"
	"sync"

	"leadstyle/internal/model"
)

// memoryProgress is a process-local ProgressCache for running without redis
type memoryProgress struct {
	mu      sync.Mutex
	answers map[string]model.AnswerSet
	done    map[string]bool
}

// NewMemoryProgressCache creates an in-process progress cache
func NewMemoryProgressCache() ProgressCache {
	return &memoryProgress{
		answers: make(map[string]model.AnswerSet),
		done:    make(map[string]bool),
	}
}

func (c *memoryProgress) Start(_ context.Context, respondentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.answers[respondentID]; !ok {
		c.answers[respondentID] = make(model.AnswerSet)
	}
	return nil
}

func (c *memoryProgress) Get(_ context.Context, respondentID string) (model.AnswerSet, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	answers, ok := c.answers[respondentID]
	if !ok {
		return nil, false, nil
	}
	return answers.Clone(), true, nil
}

func (c *memoryProgress) Load(_ context.Context, respondentID string, answers model.AnswerSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[respondentID] = answers.Clone()
	return nil
}

func (c *memoryProgress) SetAnswer(_ context.Context, respondentID string, questionID int, label model.OptionLabel) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	answers, ok := c.answers[respondentID]
	if !ok {
		answers = make(model.AnswerSet)
		c.answers[respondentID] = answers
	}
	answers[questionID] = label
	return len(answers), nil
}

func (c *memoryProgress) TryComplete(_ context.Context, respondentID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done[respondentID] {
		return false, nil
	}
	c.done[respondentID] = true
	return true, nil
}

func (c *memoryProgress) ReleaseComplete(_ context.Context, respondentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.done, respondentID)
	return nil
}

// memoryStats is a process-local StatsCache for running without redis
type memoryStats struct {
	mu       sync.Mutex
	styles   map[model.StyleCategory]int
	levels   map[string]int
	adequacy map[string]int
}

// NewMemoryStatsCache creates an in-process stats cache
func NewMemoryStatsCache() StatsCache {
	s := &memoryStats{}
	s.reset()
	return s
}

func (c *memoryStats) reset() {
	c.styles = make(map[model.StyleCategory]int)
	c.levels = make(map[string]int)
	c.adequacy = make(map[string]int)
}

func (c *memoryStats) record(result *model.StoredResult) {
	c.styles[result.PrimaryStyle]++
	c.levels[result.AdequacyLevel]++
	c.adequacy[result.RespondentID] = result.AdequacyScore
}

func (c *memoryStats) RecordResult(_ context.Context, result *model.StoredResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(result)
	return nil
}

func (c *memoryStats) Rebuild(_ context.Context, results []*model.StoredResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	for _, r := range results {
		c.record(r)
	}
	return nil
}

func (c *memoryStats) StyleDistribution(_ context.Context) (map[model.StyleCategory]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[model.StyleCategory]int, len(c.styles))
	for k, v := range c.styles {
		out[k] = v
	}
	return out, nil
}

func (c *memoryStats) LevelDistribution(_ context.Context) (map[string]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.levels))
	for k, v := range c.levels {
		out[k] = v
	}
	return out, nil
}

// ranking orders like ZREVRANGE: score descending, then member descending
func (c *memoryStats) ranking() []model.RankingEntry {
	entries := make([]model.RankingEntry, 0, len(c.adequacy))
	for id, score := range c.adequacy {
		entries = append(entries, model.RankingEntry{RespondentID: id, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].RespondentID > entries[j].RespondentID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (c *memoryStats) TopAdequacy(_ context.Context, limit int) ([]model.RankingEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := c.ranking()
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (c *memoryStats) Rank(_ context.Context, respondentID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.ranking() {
		if e.RespondentID == respondentID {
			return int64(e.Rank), nil
		}
	}
	return -1, nil
}

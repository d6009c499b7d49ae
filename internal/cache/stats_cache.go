package cache

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"leadstyle/internal/model"
)

// StatsCache keeps running aggregates over finalized results
type StatsCache interface {
	RecordResult(ctx context.Context, result *model.StoredResult) error
	Rebuild(ctx context.Context, results []*model.StoredResult) error
	StyleDistribution(ctx context.Context) (map[model.StyleCategory]int, error)
	LevelDistribution(ctx context.Context) (map[string]int, error)
	TopAdequacy(ctx context.Context, limit int) ([]model.RankingEntry, error)
	Rank(ctx context.Context, respondentID string) (int64, error)
}

const (
	styleDistKey = "stats:styles"
	levelDistKey = "stats:levels"
	adequacyKey  = "stats:adequacy"
)

type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a redis-backed stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{
		client: client,
	}
}

func (c *statsCache) RecordResult(ctx context.Context, result *model.StoredResult) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		recordResult(ctx, pipe, result)
		return nil
	})
	return err
}

func recordResult(ctx context.Context, pipe redis.Pipeliner, result *model.StoredResult) {
	pipe.HIncrBy(ctx, styleDistKey, string(result.PrimaryStyle), 1)
	pipe.HIncrBy(ctx, levelDistKey, result.AdequacyLevel, 1)
	pipe.ZAdd(ctx, adequacyKey, redis.Z{
		Score:  float64(result.AdequacyScore),
		Member: result.RespondentID,
	})
}

func (c *statsCache) Rebuild(ctx context.Context, results []*model.StoredResult) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, styleDistKey, levelDistKey, adequacyKey)
		for _, r := range results {
			recordResult(ctx, pipe, r)
		}
		return nil
	})
	return err
}

func (c *statsCache) StyleDistribution(ctx context.Context) (map[model.StyleCategory]int, error) {
	data, err := c.client.HGetAll(ctx, styleDistKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[model.StyleCategory]int, len(data))
	for k, v := range data {
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		out[model.StyleCategory(k)] = n
	}
	return out, nil
}

func (c *statsCache) LevelDistribution(ctx context.Context) (map[string]int, error) {
	data, err := c.client.HGetAll(ctx, levelDistKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(data))
	for k, v := range data {
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		out[k] = n
	}
	return out, nil
}

func (c *statsCache) TopAdequacy(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	results, err := c.client.ZRevRangeWithScores(ctx, adequacyKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.RankingEntry, len(results))
	for i, z := range results {
		entries[i] = model.RankingEntry{
			RespondentID: z.Member.(string),
			Score:        int(z.Score),
			Rank:         i + 1,
		}
	}
	return entries, nil
}

func (c *statsCache) Rank(ctx context.Context, respondentID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, adequacyKey, respondentID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}

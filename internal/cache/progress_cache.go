package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"leadstyle/internal/model"
)

// ProgressCache holds respondent-scoped intake state: the answers given so far
// and a completion latch that exactly one caller can win.
type ProgressCache interface {
	Start(ctx context.Context, respondentID string) error
	// Get returns found=false when no progress exists for the respondent
	Get(ctx context.Context, respondentID string) (answers model.AnswerSet, found bool, err error)
	// Load replaces the stored answers, used to rebuild state from the result store
	Load(ctx context.Context, respondentID string, answers model.AnswerSet) error
	SetAnswer(ctx context.Context, respondentID string, questionID int, label model.OptionLabel) (answered int, err error)

	TryComplete(ctx context.Context, respondentID string) (bool, error)
	ReleaseComplete(ctx context.Context, respondentID string) error
}

const startedField = "started"

type progressCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProgressCache creates a redis-backed progress cache
func NewProgressCache(client *redis.Client, ttl time.Duration) ProgressCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &progressCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *progressCache) answersKey(respondentID string) string {
	return fmt.Sprintf("respondent:%s:answers", respondentID)
}

func (c *progressCache) doneKey(respondentID string) string {
	return fmt.Sprintf("respondent:%s:done", respondentID)
}

func questionField(questionID int) string {
	return "q:" + strconv.Itoa(questionID)
}

func (c *progressCache) Start(ctx context.Context, respondentID string) error {
	key := c.answersKey(respondentID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, key, startedField, time.Now().UTC().Format(time.RFC3339))
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	return err
}

func (c *progressCache) Get(ctx context.Context, respondentID string) (model.AnswerSet, bool, error) {
	data, err := c.client.HGetAll(ctx, c.answersKey(respondentID)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	return decodeAnswers(data), true, nil
}

func (c *progressCache) Load(ctx context.Context, respondentID string, answers model.AnswerSet) error {
	key := c.answersKey(respondentID)
	fields := map[string]interface{}{startedField: time.Now().UTC().Format(time.RFC3339)}
	for id, label := range answers {
		fields[questionField(id)] = string(label)
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	return err
}

func (c *progressCache) SetAnswer(ctx context.Context, respondentID string, questionID int, label model.OptionLabel) (int, error) {
	key := c.answersKey(respondentID)
	var hlen *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, key, startedField, time.Now().UTC().Format(time.RFC3339))
		pipe.HSet(ctx, key, questionField(questionID), string(label))
		pipe.Expire(ctx, key, c.ttl)
		hlen = pipe.HLen(ctx, key)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(hlen.Val()) - 1, nil
}

func (c *progressCache) TryComplete(ctx context.Context, respondentID string) (bool, error) {
	return c.client.SetNX(ctx, c.doneKey(respondentID), "1", c.ttl).Result()
}

func (c *progressCache) ReleaseComplete(ctx context.Context, respondentID string) error {
	return c.client.Del(ctx, c.doneKey(respondentID)).Err()
}

func decodeAnswers(data map[string]string) model.AnswerSet {
	answers := make(model.AnswerSet, len(data))
	for field, value := range data {
		idStr, ok := strings.CutPrefix(field, "q:")
		if !ok {
			continue
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		answers[id] = model.OptionLabel(value)
	}
	return answers
}

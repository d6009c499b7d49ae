package cache

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"leadstyle/internal/model"
)

// redisClient returns a client for REDIS_TEST_ADDR or skips the test
func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

type progressFactory func(t *testing.T) ProgressCache

type statsFactory func(t *testing.T) StatsCache

func progressImpls() map[string]progressFactory {
	return map[string]progressFactory{
		"memory": func(t *testing.T) ProgressCache { return NewMemoryProgressCache() },
		"redis": func(t *testing.T) ProgressCache {
			return NewProgressCache(redisClient(t), time.Hour)
		},
	}
}

func statsImpls() map[string]statsFactory {
	return map[string]statsFactory{
		"memory": func(t *testing.T) StatsCache { return NewMemoryStatsCache() },
		"redis":  func(t *testing.T) StatsCache { return NewStatsCache(redisClient(t)) },
	}
}

func TestProgressCache(t *testing.T) {
	for name, factory := range progressImpls() {
		t.Run(name, func(t *testing.T) {
			c := factory(t)
			ctx := context.Background()
			id := uuid.NewString()

			if _, found, err := c.Get(ctx, id); err != nil || found {
				t.Fatalf("Get before Start = %v, %v", found, err)
			}
			if err := c.Start(ctx, id); err != nil {
				t.Fatal(err)
			}
			answers, found, err := c.Get(ctx, id)
			if err != nil || !found || len(answers) != 0 {
				t.Fatalf("Get after Start = %v, %v, %v", answers, found, err)
			}

			n, err := c.SetAnswer(ctx, id, 1, model.OptionA)
			if err != nil || n != 1 {
				t.Fatalf("SetAnswer(1) = %d, %v", n, err)
			}
			n, _ = c.SetAnswer(ctx, id, 2, model.OptionB)
			if n != 2 {
				t.Fatalf("SetAnswer(2) count = %d", n)
			}
			// re-answering replaces without advancing
			n, _ = c.SetAnswer(ctx, id, 1, model.OptionD)
			if n != 2 {
				t.Fatalf("re-answer count = %d, want 2", n)
			}
			answers, _, _ = c.Get(ctx, id)
			if answers[1] != model.OptionD || answers[2] != model.OptionB {
				t.Fatalf("answers = %v", answers)
			}

			if err := c.Load(ctx, id, model.AnswerSet{3: model.OptionC}); err != nil {
				t.Fatal(err)
			}
			answers, _, _ = c.Get(ctx, id)
			if len(answers) != 1 || answers[3] != model.OptionC {
				t.Fatalf("answers after Load = %v", answers)
			}
		})
	}
}

func TestCompletionLatch(t *testing.T) {
	for name, factory := range progressImpls() {
		t.Run(name, func(t *testing.T) {
			c := factory(t)
			ctx := context.Background()
			id := uuid.NewString()

			var (
				wg   sync.WaitGroup
				mu   sync.Mutex
				wins int
			)
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					won, err := c.TryComplete(ctx, id)
					if err != nil {
						t.Error(err)
						return
					}
					if won {
						mu.Lock()
						wins++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()
			if wins != 1 {
				t.Fatalf("%d winners, want 1", wins)
			}
			if won, _ := c.TryComplete(ctx, id); won {
				t.Fatal("latch won twice before release")
			}

			if err := c.ReleaseComplete(ctx, id); err != nil {
				t.Fatal(err)
			}
			if won, _ := c.TryComplete(ctx, id); !won {
				t.Fatal("latch not reusable after release")
			}
		})
	}
}

func result(id string, style model.StyleCategory, score int, level string) *model.StoredResult {
	return &model.StoredResult{
		RespondentID: id,
		ScoringResult: model.ScoringResult{
			PrimaryStyle:  style,
			AdequacyScore: score,
			AdequacyLevel: level,
		},
	}
}

func TestStatsCache(t *testing.T) {
	for name, factory := range statsImpls() {
		t.Run(name, func(t *testing.T) {
			c := factory(t)
			ctx := context.Background()

			seed := []*model.StoredResult{
				result("a", model.StyleDirective, -1, "needs_development"),
				result("b", model.StyleDirective, 24, "excellent"),
				result("c", model.StyleParticipative, 12, "good"),
			}
			if err := c.Rebuild(ctx, seed); err != nil {
				t.Fatal(err)
			}
			if err := c.RecordResult(ctx, result("d", model.StyleDelegative, 15, "good")); err != nil {
				t.Fatal(err)
			}

			styles, err := c.StyleDistribution(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if styles[model.StyleDirective] != 2 || styles[model.StyleParticipative] != 1 || styles[model.StyleDelegative] != 1 {
				t.Fatalf("styles = %v", styles)
			}
			levels, _ := c.LevelDistribution(ctx)
			if levels["good"] != 2 || levels["excellent"] != 1 || levels["needs_development"] != 1 {
				t.Fatalf("levels = %v", levels)
			}

			top, err := c.TopAdequacy(ctx, 3)
			if err != nil {
				t.Fatal(err)
			}
			if len(top) != 3 || top[0].RespondentID != "b" || top[1].RespondentID != "d" || top[2].RespondentID != "c" {
				t.Fatalf("top = %+v", top)
			}
			if top[0].Rank != 1 || top[0].Score != 24 {
				t.Fatalf("top[0] = %+v", top[0])
			}

			if rank, _ := c.Rank(ctx, "a"); rank != 4 {
				t.Fatalf("Rank(a) = %d, want 4", rank)
			}
			if rank, _ := c.Rank(ctx, "zz"); rank != -1 {
				t.Fatalf("Rank(missing) = %d, want -1", rank)
			}

			// rebuild drops previous aggregates
			if err := c.Rebuild(ctx, seed[:1]); err != nil {
				t.Fatal(err)
			}
			styles, _ = c.StyleDistribution(ctx)
			if len(styles) != 1 || styles[model.StyleDirective] != 1 {
				t.Fatalf("styles after rebuild = %v", styles)
			}
		})
	}
}

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"leadstyle/internal/cache"
	"leadstyle/internal/model"
)

func TestReportsOverCompletedAssessments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ana := f.register(t, "Ana", "Pop")
	f.answerAll(t, ana, "AADCCDBACDBB") // 24, excellent, directive
	ion := f.register(t, "Ion", "Rus")
	f.answerAll(t, ion, "AAAAAAAAAAAA") // -1, needs_development, directive
	eva := f.register(t, "Eva", "Lup")
	f.answerAll(t, eva, "DCDCCDBACDBB") // 19, good, participative
	pending := f.register(t, "Dan", "Mos")
	f.answerAll(t, pending, "ABC")

	t.Run("list", func(t *testing.T) {
		views, err := f.reports.ListResults(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(views) != 3 {
			t.Fatalf("got %d results, want 3", len(views))
		}
		for _, v := range views {
			if v.Respondent.ID == "" || v.PrimaryStyleName == "" || v.AdequacyLevelName == "" {
				t.Fatalf("incomplete view %+v", v)
			}
		}
	})

	t.Run("get", func(t *testing.T) {
		view, err := f.reports.GetResult(ctx, eva)
		if err != nil {
			t.Fatal(err)
		}
		if view.Result.PrimaryStyle != model.StyleParticipative || view.AdequacyLevelName != "Good" {
			t.Fatalf("view = %+v", view)
		}
		delegative, _ := f.inst.Style(model.StyleDelegative)
		if view.Result.SecondaryStyle != model.StyleDelegative || view.SecondaryDescription != delegative.Description {
			t.Fatalf("secondary = %s %q", view.Result.SecondaryStyle, view.SecondaryDescription)
		}
		if !strings.Contains(view.AdequacyLevelDescription, "situational leadership") {
			t.Fatalf("level description = %q", view.AdequacyLevelDescription)
		}
		if len(view.Recommendations) != 3 || !strings.HasPrefix(view.Recommendations[0], "Practise spotting") {
			t.Fatalf("recommendations = %v", view.Recommendations)
		}
		if view.AdequacyRank != 2 {
			t.Fatalf("AdequacyRank = %d, want 2", view.AdequacyRank)
		}

		low, err := f.reports.GetResult(ctx, ion)
		if err != nil {
			t.Fatal(err)
		}
		if len(low.Recommendations) != 4 || low.AdequacyRank != 3 {
			t.Fatalf("needs_development view = %d recommendations, rank %d", len(low.Recommendations), low.AdequacyRank)
		}
		if low.AdequacyLevelDescription == "" || low.PrimaryDescription == "" {
			t.Fatalf("needs_development view missing texts: %+v", low)
		}
		if _, err := f.reports.GetResult(ctx, pending); !errors.Is(err, ErrResultNotFound) {
			t.Fatalf("pending GetResult error = %v", err)
		}
		if _, err := f.reports.GetResult(ctx, "nobody"); !errors.Is(err, ErrRespondentNotFound) {
			t.Fatalf("unknown GetResult error = %v", err)
		}
	})

	t.Run("responses", func(t *testing.T) {
		responses, err := f.reports.GetResponses(ctx, pending)
		if err != nil {
			t.Fatal(err)
		}
		if len(responses) != 3 || responses[2].Answer != model.OptionC {
			t.Fatalf("responses = %+v", responses)
		}
	})

	t.Run("summary", func(t *testing.T) {
		summary, err := f.reports.Summary(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if summary.TotalAssessments != 3 {
			t.Fatalf("total = %d", summary.TotalAssessments)
		}
		if summary.AverageAdequacy != 14 {
			t.Fatalf("average = %v, want 14", summary.AverageAdequacy)
		}
		if summary.MostCommonStyle != model.StyleDirective {
			t.Fatalf("most common = %s", summary.MostCommonStyle)
		}
		if summary.StyleDistribution[model.StyleDirective] != 2 || summary.StyleDistribution[model.StyleDelegative] != 0 {
			t.Fatalf("styles = %v", summary.StyleDistribution)
		}
		if summary.LevelDistribution["excellent"] != 1 || summary.LevelDistribution["good"] != 1 || summary.LevelDistribution["needs_development"] != 1 {
			t.Fatalf("levels = %v", summary.LevelDistribution)
		}
		if len(summary.TopAdequacy) != 3 || summary.TopAdequacy[0].RespondentID != ana || summary.TopAdequacy[0].Name != "Ana Pop" {
			t.Fatalf("top = %+v", summary.TopAdequacy)
		}
	})

	t.Run("summary heals empty stats", func(t *testing.T) {
		reports := NewReportService(f.inst, f.store, cache.NewMemoryStatsCache())
		summary, err := reports.Summary(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if summary.StyleDistribution[model.StyleDirective] != 2 || len(summary.TopAdequacy) != 3 {
			t.Fatalf("summary = %+v", summary)
		}
	})

	t.Run("compare", func(t *testing.T) {
		entries, err := f.reports.Compare(ctx, []string{ana, ion, ana})
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 2 || entries[0].Name != "Ana Pop" || entries[1].AdequacyScore != -1 {
			t.Fatalf("entries = %+v", entries)
		}
		if _, err := f.reports.Compare(ctx, []string{ana}); !errors.Is(err, ErrCompareCount) {
			t.Fatalf("single id error = %v", err)
		}
		if _, err := f.reports.Compare(ctx, []string{"a", "b", "c", "d", "e"}); !errors.Is(err, ErrCompareCount) {
			t.Fatalf("five ids error = %v", err)
		}
		if _, err := f.reports.Compare(ctx, []string{ana, pending}); !errors.Is(err, ErrResultNotFound) {
			t.Fatalf("pending compare error = %v", err)
		}
	})

	t.Run("export", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.reports.ExportCSV(ctx, &buf); err != nil {
			t.Fatal(err)
		}
		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 4 {
			t.Fatalf("got %d csv rows, want 4", len(records))
		}
		if records[0][0] != "first_name" || records[0][11] != "created_at" {
			t.Fatalf("header = %v", records[0])
		}
		found := false
		for _, r := range records[1:] {
			if r[0] == "Eva" {
				found = true
				if r[3] != "Participative" || r[5] != "19" || r[9] != "4" {
					t.Fatalf("eva row = %v", r)
				}
			}
		}
		if !found {
			t.Fatal("missing row for Eva")
		}
	})
}

func TestWarmStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t, "Ana", "Pop")
	f.answerAll(t, id, "DBCBACACABAC")

	stats := cache.NewMemoryStatsCache()
	reports := NewReportService(f.inst, f.store, stats)
	if err := reports.WarmStats(ctx); err != nil {
		t.Fatal(err)
	}
	if rank, _ := stats.Rank(ctx, id); rank != 1 {
		t.Fatalf("Rank() = %d", rank)
	}
}

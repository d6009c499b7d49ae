package scoring

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"leadstyle/internal/instrument"
	"leadstyle/internal/model"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	inst, err := instrument.Default()
	if err != nil {
		t.Fatalf("load default instrument: %v", err)
	}
	return NewEngine(inst)
}

func mustParse(t *testing.T, s string) model.AnswerSet {
	t.Helper()
	answers, err := ParseAnswers(s)
	if err != nil {
		t.Fatalf("ParseAnswers(%q): %v", s, err)
	}
	return answers
}

func TestEvaluateKnownProfiles(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name         string
		answers      string
		primary      model.StyleCategory
		secondary    model.StyleCategory
		tally        [4]int // directive, informative, participative, delegative
		score        int
		level        string
		adaptability string
	}{
		{"all A", "AAAAAAAAAAAA", model.StyleDirective, model.StyleInformative, [4]int{3, 3, 3, 3}, -1, "needs_development", "low"},
		{"best fit", "AADCCDBACDBB", model.StyleDirective, model.StyleInformative, [4]int{3, 3, 3, 3}, 24, "excellent", "very_high"},
		{"worst fit", "DBCBACACABAC", model.StyleDirective, model.StyleDelegative, [4]int{7, 0, 0, 5}, -24, "needs_development", "very_low"},
		{"upper good", "DCDCCDBACDBB", model.StyleParticipative, model.StyleDelegative, [4]int{2, 2, 4, 4}, 19, "good", "very_high"},
		{"lower excellent", "DADCCDBACDBB", model.StyleDelegative, model.StyleInformative, [4]int{2, 3, 3, 4}, 20, "excellent", "very_high"},
		{"upper needs development", "BDBDDDBACDBB", model.StyleParticipative, model.StyleInformative, [4]int{2, 3, 4, 3}, 9, "needs_development", "moderate"},
		{"lower good", "BDBDBBBACDBB", model.StyleDirective, model.StyleInformative, [4]int{3, 3, 3, 3}, 10, "good", "moderate"},
		{"all D", "DDDDDDDDDDDD", model.StyleParticipative, model.StyleInformative, [4]int{1, 3, 5, 3}, 4, "needs_development", "moderate"},
		{"all C", "CCCCCCCCCCCC", model.StyleDirective, model.StyleInformative, [4]int{5, 3, 1, 3}, -3, "needs_development", "low"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.Evaluate(mustParse(t, tt.answers))
			if err != nil {
				t.Fatalf("Evaluate() error: %v", err)
			}
			if res.PrimaryStyle != tt.primary || res.SecondaryStyle != tt.secondary {
				t.Errorf("styles = %s/%s, want %s/%s", res.PrimaryStyle, res.SecondaryStyle, tt.primary, tt.secondary)
			}
			wantTally := map[model.StyleCategory]int{
				model.StyleDirective:     tt.tally[0],
				model.StyleInformative:   tt.tally[1],
				model.StyleParticipative: tt.tally[2],
				model.StyleDelegative:    tt.tally[3],
			}
			if !reflect.DeepEqual(res.StyleTally, wantTally) {
				t.Errorf("tally = %v, want %v", res.StyleTally, wantTally)
			}
			if res.AdequacyScore != tt.score {
				t.Errorf("score = %d, want %d", res.AdequacyScore, tt.score)
			}
			if res.AdequacyLevel != tt.level {
				t.Errorf("level = %s, want %s", res.AdequacyLevel, tt.level)
			}
			if res.Adaptability != tt.adaptability {
				t.Errorf("adaptability = %s, want %s", res.Adaptability, tt.adaptability)
			}
		})
	}
}

func TestClassifyProperties(t *testing.T) {
	engine := newTestEngine(t)
	inst := engine.Instrument()
	labels := model.OptionLabels()

	// walk a spread of answer sets and check the ranking invariants on each
	for seed := 0; seed < 400; seed++ {
		answers := make(model.AnswerSet)
		for _, id := range inst.QuestionIDs() {
			answers[id] = labels[(seed*7+id*id*3+seed/5*id)%4]
		}
		cls, err := engine.Classify(answers)
		if err != nil {
			t.Fatalf("seed %d: Classify() error: %v", seed, err)
		}
		sum := 0
		for _, n := range cls.Tally {
			sum += n
		}
		if sum != inst.Count() {
			t.Fatalf("seed %d: tally sums to %d", seed, sum)
		}
		if cls.Primary == cls.Secondary {
			t.Fatalf("seed %d: primary equals secondary", seed)
		}
		for c, n := range cls.Tally {
			if n > cls.Tally[cls.Primary] {
				t.Fatalf("seed %d: %s outranks primary", seed, c)
			}
			if c != cls.Primary && n > cls.Tally[cls.Secondary] {
				t.Fatalf("seed %d: %s outranks secondary", seed, c)
			}
		}
		for n := 1; n < len(cls.Ranking); n++ {
			prev, cur := cls.Ranking[n-1], cls.Ranking[n]
			if prev.Count < cur.Count {
				t.Fatalf("seed %d: ranking not sorted by count", seed)
			}
			if prev.Count == cur.Count {
				p, _ := inst.Style(prev.Style)
				c, _ := inst.Style(cur.Style)
				if p.Rank > c.Rank {
					t.Fatalf("seed %d: tie not broken by style order", seed)
				}
			}
		}
	}
}

func TestScoreAdequacyRange(t *testing.T) {
	engine := newTestEngine(t)
	lo, hi := engine.Instrument().ScoreRange()

	for _, s := range []string{"AAAAAAAAAAAA", "BBBBBBBBBBBB", "CCCCCCCCCCCC", "DDDDDDDDDDDD", "ABCDABCDABCD", "DCBADCBADCBA"} {
		adq, err := engine.ScoreAdequacy(mustParse(t, s))
		if err != nil {
			t.Fatalf("%s: ScoreAdequacy() error: %v", s, err)
		}
		if adq.Total < lo || adq.Total > hi {
			t.Errorf("%s: total %d outside [%d, %d]", s, adq.Total, lo, hi)
		}
		if !adq.Level.Contains(adq.Total) || !adq.Adaptability.Contains(adq.Total) {
			t.Errorf("%s: bands %+v / %+v do not contain %d", s, adq.Level, adq.Adaptability, adq.Total)
		}
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	answers := mustParse(t, "DCDCCDBACDBB")

	first, err := engine.Evaluate(answers)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := engine.Evaluate(answers.Clone())
			if err != nil {
				t.Error(err)
				return
			}
			if !reflect.DeepEqual(res, first) {
				t.Errorf("concurrent result differs: %+v vs %+v", res, first)
			}
		}()
	}
	wg.Wait()
}

func TestValidateRejectsIncompleteSets(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("missing", func(t *testing.T) {
		answers := mustParse(t, "AAAAAAAAAAAA")
		delete(answers, 3)
		delete(answers, 12)
		var invalid *InvalidInputError
		_, err := engine.Evaluate(answers)
		if !errors.As(err, &invalid) || !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected InvalidInputError, got %v", err)
		}
		if !reflect.DeepEqual(invalid.Missing, []int{3, 12}) {
			t.Errorf("Missing = %v", invalid.Missing)
		}
	})

	t.Run("unknown question", func(t *testing.T) {
		answers := mustParse(t, "AAAAAAAAAAAA")
		answers[13] = model.OptionA
		answers[0] = model.OptionB
		var invalid *InvalidInputError
		if _, err := engine.Classify(answers); !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidInputError, got %v", err)
		}
		if !reflect.DeepEqual(invalid.Unknown, []int{0, 13}) {
			t.Errorf("Unknown = %v", invalid.Unknown)
		}
	})

	t.Run("invalid label", func(t *testing.T) {
		answers := mustParse(t, "AAAAAAAAAAAA")
		answers[5] = "E"
		answers[6] = "a"
		var invalid *InvalidInputError
		if _, err := engine.ScoreAdequacy(answers); !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidInputError, got %v", err)
		}
		want := map[int]string{5: "E", 6: "a"}
		if !reflect.DeepEqual(invalid.InvalidLabels, want) {
			t.Errorf("InvalidLabels = %v", invalid.InvalidLabels)
		}
	})

	t.Run("empty", func(t *testing.T) {
		var invalid *InvalidInputError
		if _, err := engine.Evaluate(model.AnswerSet{}); !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidInputError, got %v", err)
		}
		if len(invalid.Missing) != 12 {
			t.Errorf("Missing = %v", invalid.Missing)
		}
	})
}

func TestEvaluateAnswers(t *testing.T) {
	engine := newTestEngine(t)

	list := make([]model.Answer, 0, 12)
	for id := 12; id >= 1; id-- {
		list = append(list, model.Answer{QuestionID: id, Label: model.OptionA})
	}
	res, err := engine.EvaluateAnswers(list)
	if err != nil {
		t.Fatalf("EvaluateAnswers() error: %v", err)
	}
	if res.PrimaryStyle != model.StyleDirective || res.AdequacyScore != -1 {
		t.Fatalf("unexpected result %+v", res)
	}

	dup := append(list[:11:11], model.Answer{QuestionID: 4, Label: model.OptionB})
	var invalid *InvalidInputError
	if _, err := engine.EvaluateAnswers(dup); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if !reflect.DeepEqual(invalid.Duplicate, []int{4}) {
		t.Errorf("Duplicate = %v", invalid.Duplicate)
	}
	if !reflect.DeepEqual(invalid.Missing, []int{1}) {
		t.Errorf("Missing = %v", invalid.Missing)
	}
}

func TestParseAnswers(t *testing.T) {
	answers, err := ParseAnswers("abcd")
	if err != nil {
		t.Fatal(err)
	}
	want := model.AnswerSet{1: model.OptionA, 2: model.OptionB, 3: model.OptionC, 4: model.OptionD}
	if !reflect.DeepEqual(answers, want) {
		t.Fatalf("ParseAnswers = %v", answers)
	}
	if _, err := ParseAnswers("ABX"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// Package scoring turns a complete answer set into a style classification and
// an adequacy score. The engine holds no mutable state: all tables live in the
// instrument, which is immutable after loading.
package scoring

import (
	"fmt"
	"sort"

	"leadstyle/internal/instrument"
	"leadstyle/internal/model"
)

// StyleCount is one row of the ranked style tally
type StyleCount struct {
	Style model.StyleCategory `json:"style"`
	Count int                 `json:"count"`
}

// Classification is the outcome of style classification
type Classification struct {
	Primary   model.StyleCategory
	Secondary model.StyleCategory
	Tally     map[model.StyleCategory]int
	Ranking   []StyleCount
}

// Adequacy is the outcome of adequacy scoring
type Adequacy struct {
	Total        int
	Level        instrument.Band
	Adaptability instrument.Band
}

// Engine evaluates answer sets against an instrument
type Engine struct {
	inst *instrument.Instrument
}

// NewEngine creates a scoring engine for a validated instrument
func NewEngine(inst *instrument.Instrument) *Engine {
	return &Engine{inst: inst}
}

// Instrument returns the instrument the engine scores against
func (e *Engine) Instrument() *instrument.Instrument {
	return e.inst
}

// Validate checks that the set answers every question exactly once with A-D
func (e *Engine) Validate(answers model.AnswerSet) error {
	invalid := &InvalidInputError{}
	for id, label := range answers {
		if !e.inst.HasQuestion(id) {
			invalid.Unknown = append(invalid.Unknown, id)
			continue
		}
		if !label.Valid() {
			if invalid.InvalidLabels == nil {
				invalid.InvalidLabels = make(map[int]string)
			}
			invalid.InvalidLabels[id] = string(label)
		}
	}
	for _, id := range e.inst.QuestionIDs() {
		if _, ok := answers[id]; !ok {
			invalid.Missing = append(invalid.Missing, id)
		}
	}
	if invalid.empty() {
		return nil
	}
	sort.Ints(invalid.Unknown)
	return invalid
}

// Classify tallies the style of every answer and ranks the styles by count,
// breaking ties with the instrument's fixed style order.
func (e *Engine) Classify(answers model.AnswerSet) (*Classification, error) {
	if err := e.Validate(answers); err != nil {
		return nil, err
	}
	return e.classify(answers)
}

func (e *Engine) classify(answers model.AnswerSet) (*Classification, error) {
	styles := e.inst.Styles()
	tally := make(map[model.StyleCategory]int, len(styles))
	for _, s := range styles {
		tally[s.Key] = 0
	}
	for id, label := range answers {
		key := model.AnswerKey{QuestionID: id, Label: label}
		style, ok := e.inst.StyleOf(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no style", ErrTableIntegrity, key)
		}
		tally[style]++
	}

	// styles are already in tie-break order, so a stable sort on count alone
	// yields (-count, rank) ordering
	ranking := make([]StyleCount, len(styles))
	for n, s := range styles {
		ranking[n] = StyleCount{Style: s.Key, Count: tally[s.Key]}
	}
	sort.SliceStable(ranking, func(a, b int) bool {
		return ranking[a].Count > ranking[b].Count
	})

	return &Classification{
		Primary:   ranking[0].Style,
		Secondary: ranking[1].Style,
		Tally:     tally,
		Ranking:   ranking,
	}, nil
}

// ScoreAdequacy sums the signed tier weights of every answer and maps the
// total onto the level and adaptability bands.
func (e *Engine) ScoreAdequacy(answers model.AnswerSet) (*Adequacy, error) {
	if err := e.Validate(answers); err != nil {
		return nil, err
	}
	return e.scoreAdequacy(answers)
}

func (e *Engine) scoreAdequacy(answers model.AnswerSet) (*Adequacy, error) {
	total := 0
	for id, label := range answers {
		key := model.AnswerKey{QuestionID: id, Label: label}
		tier, ok := e.inst.TierOf(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no adequacy tier", ErrTableIntegrity, key)
		}
		total += e.inst.Weight(tier)
	}
	level, ok := e.inst.Level(total)
	if !ok {
		return nil, fmt.Errorf("%w: total %d outside level bands", ErrTableIntegrity, total)
	}
	adapt, ok := e.inst.Adaptability(total)
	if !ok {
		return nil, fmt.Errorf("%w: total %d outside adaptability bands", ErrTableIntegrity, total)
	}
	return &Adequacy{Total: total, Level: level, Adaptability: adapt}, nil
}

// Evaluate validates the answer set and returns the full scoring result
func (e *Engine) Evaluate(answers model.AnswerSet) (*model.ScoringResult, error) {
	if err := e.Validate(answers); err != nil {
		return nil, err
	}
	cls, err := e.classify(answers)
	if err != nil {
		return nil, err
	}
	adq, err := e.scoreAdequacy(answers)
	if err != nil {
		return nil, err
	}
	return &model.ScoringResult{
		PrimaryStyle:   cls.Primary,
		SecondaryStyle: cls.Secondary,
		StyleTally:     cls.Tally,
		AdequacyScore:  adq.Total,
		AdequacyLevel:  adq.Level.Key,
		Adaptability:   adq.Adaptability.Key,
	}, nil
}

// EvaluateAnswers builds an answer set from a list and evaluates it.
// A question answered twice in the list is rejected.
func (e *Engine) EvaluateAnswers(list []model.Answer) (*model.ScoringResult, error) {
	answers, err := e.collect(list)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(answers)
}

func (e *Engine) collect(list []model.Answer) (model.AnswerSet, error) {
	answers := make(model.AnswerSet, len(list))
	seen := make(map[int]bool, len(list))
	var dup []int
	for _, a := range list {
		if _, ok := answers[a.QuestionID]; ok {
			if !seen[a.QuestionID] {
				dup = append(dup, a.QuestionID)
				seen[a.QuestionID] = true
			}
			continue
		}
		answers[a.QuestionID] = a.Label
	}
	if len(dup) == 0 {
		return answers, nil
	}
	sort.Ints(dup)
	invalid := &InvalidInputError{Duplicate: dup}
	if err := e.Validate(answers); err != nil {
		if other, ok := err.(*InvalidInputError); ok {
			invalid.Missing = other.Missing
			invalid.Unknown = other.Unknown
			invalid.InvalidLabels = other.InvalidLabels
		}
	}
	return nil, invalid
}

// ParseAnswers builds an answer set from a compact string such as
// "AADCCDBACDBB", where the n-th character answers question n.
func ParseAnswers(s string) (model.AnswerSet, error) {
	answers := make(model.AnswerSet, len(s))
	for n, r := range s {
		label, err := model.ParseOptionLabel(string(r))
		if err != nil {
			return nil, fmt.Errorf("%w: position %d: %v", ErrInvalidInput, n+1, err)
		}
		answers[n+1] = label
	}
	return answers, nil
}

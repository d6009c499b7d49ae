// Package instrument holds the questionnaire definition: the question bank, the
// style classification table and the adequacy weighting table. An Instrument is
// validated once when it is built and is read-only afterwards, so it can be shared
// by any number of goroutines.
package instrument

import (
	"fmt"

	"leadstyle/internal/model"
)

// Style is a style category with its display texts and tie-break rank
type Style struct {
	Key         model.StyleCategory `json:"key"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Rank        int                 `json:"rank"` // 0 wins ties
}

// Tier is an adequacy weight class
type Tier struct {
	Key    model.AdequacyTier `json:"key"`
	Weight int                `json:"weight"`
}

// Band is an inclusive score range mapped to a label
type Band struct {
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Min         int    `json:"min" yaml:"min"`
	Max         int    `json:"max" yaml:"max"`

	Recommendations []string `json:"recommendations,omitempty" yaml:"recommendations"`
}

// Contains reports whether total falls within the band, both ends inclusive
func (b Band) Contains(total int) bool {
	return total >= b.Min && total <= b.Max
}

// Instrument is a validated questionnaire definition
type Instrument struct {
	name      string
	questions []model.Question
	index     map[int]int

	styles  []Style // tie-break order
	styleOf map[model.AnswerKey]model.StyleCategory

	tiers  map[model.AdequacyTier]Tier
	tierOf map[model.AnswerKey]model.AdequacyTier

	levels       []Band
	adaptability []Band
}

// Name returns the instrument title
func (i *Instrument) Name() string {
	return i.name
}

// Styles returns the style categories in tie-break order
func (i *Instrument) Styles() []Style {
	out := make([]Style, len(i.styles))
	copy(out, i.styles)
	return out
}

// Style returns the definition of a category
func (i *Instrument) Style(c model.StyleCategory) (Style, bool) {
	for _, s := range i.styles {
		if s.Key == c {
			return s, true
		}
	}
	return Style{}, false
}

// StyleName returns the display name of a category, or its key if unknown
func (i *Instrument) StyleName(c model.StyleCategory) string {
	if s, ok := i.Style(c); ok {
		return s.Name
	}
	return string(c)
}

// StyleOf returns the category whose evidence set contains the pair
func (i *Instrument) StyleOf(k model.AnswerKey) (model.StyleCategory, bool) {
	c, ok := i.styleOf[k]
	return c, ok
}

// TierOf returns the adequacy tier whose evidence set contains the pair
func (i *Instrument) TierOf(k model.AnswerKey) (model.AdequacyTier, bool) {
	t, ok := i.tierOf[k]
	return t, ok
}

// Weight returns the signed weight of a tier
func (i *Instrument) Weight(t model.AdequacyTier) int {
	return i.tiers[t].Weight
}

// Tiers returns the four tiers in a..d order
func (i *Instrument) Tiers() []Tier {
	out := make([]Tier, 0, len(i.tiers))
	for _, t := range model.AdequacyTiers() {
		out = append(out, i.tiers[t])
	}
	return out
}

// ScoreRange returns the lowest and highest reachable adequacy totals
func (i *Instrument) ScoreRange() (lo, hi int) {
	return scoreRange(len(i.questions), i.tiers)
}

func scoreRange(n int, tiers map[model.AdequacyTier]Tier) (lo, hi int) {
	first := true
	var minW, maxW int
	for _, t := range tiers {
		if first || t.Weight < minW {
			minW = t.Weight
		}
		if first || t.Weight > maxW {
			maxW = t.Weight
		}
		first = false
	}
	return n * minW, n * maxW
}

// Levels returns the adequacy level bands, lowest first
func (i *Instrument) Levels() []Band {
	out := make([]Band, len(i.levels))
	copy(out, i.levels)
	return out
}

// Level maps an adequacy total to its level band
func (i *Instrument) Level(total int) (Band, bool) {
	return findBand(i.levels, total)
}

// LevelBand returns the adequacy level band with the given key
func (i *Instrument) LevelBand(key string) (Band, bool) {
	for _, b := range i.levels {
		if b.Key == key {
			return b, true
		}
	}
	return Band{}, false
}

// LevelName returns the display name for a level key
func (i *Instrument) LevelName(key string) string {
	return bandName(i.levels, key)
}

// Adaptability maps an adequacy total to its interpretation band
func (i *Instrument) Adaptability(total int) (Band, bool) {
	return findBand(i.adaptability, total)
}

// AdaptabilityBand returns the adaptability band with the given key
func (i *Instrument) AdaptabilityBand(key string) (Band, bool) {
	for _, b := range i.adaptability {
		if b.Key == key {
			return b, true
		}
	}
	return Band{}, false
}

func findBand(bands []Band, total int) (Band, bool) {
	for _, b := range bands {
		if b.Contains(total) {
			return b, true
		}
	}
	return Band{}, false
}

func bandName(bands []Band, key string) string {
	for _, b := range bands {
		if b.Key == key {
			return b.Name
		}
	}
	return key
}

func (i *Instrument) String() string {
	return fmt.Sprintf("%s (%d questions)", i.name, len(i.questions))
}

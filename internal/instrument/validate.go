package instrument

import (
	"fmt"
	"sort"
	"strings"

	"leadstyle/internal/model"
)

// build validates a decoded document and assembles the read-only Instrument.
// All issues are collected before failing so a broken file is reported in one go.
func build(doc document) (*Instrument, error) {
	var issues []string
	addf := func(format string, args ...any) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	inst := &Instrument{
		name:    strings.TrimSpace(doc.Name),
		index:   make(map[int]int),
		styleOf: make(map[model.AnswerKey]model.StyleCategory),
		tiers:   make(map[model.AdequacyTier]Tier),
		tierOf:  make(map[model.AnswerKey]model.AdequacyTier),
	}
	if doc.Version != 0 && doc.Version != 1 {
		addf("unsupported version %d", doc.Version)
	}

	// question bank
	if len(doc.Questions) == 0 {
		addf("question bank is empty")
	}
	questions := make([]model.Question, 0, len(doc.Questions))
	for _, q := range doc.Questions {
		if _, dup := inst.index[q.ID]; dup {
			addf("question %d: duplicate id", q.ID)
			continue
		}
		if strings.TrimSpace(q.Scenario) == "" {
			addf("question %d: empty scenario", q.ID)
		}
		opts := make(map[model.OptionLabel]string, len(q.Options))
		for label, text := range q.Options {
			norm := model.OptionLabel(strings.ToUpper(string(label)))
			if !norm.Valid() {
				addf("question %d: unknown option label %q", q.ID, label)
				continue
			}
			if _, dup := opts[norm]; dup {
				addf("question %d: option %s given twice", q.ID, norm)
				continue
			}
			opts[norm] = strings.TrimSpace(text)
		}
		for _, label := range model.OptionLabels() {
			if opts[label] == "" {
				addf("question %d: option %s missing or empty", q.ID, label)
			}
		}
		q.Options = opts
		inst.index[q.ID] = -1
		questions = append(questions, q)
	}
	sort.Slice(questions, func(a, b int) bool { return questions[a].ID < questions[b].ID })
	for n, q := range questions {
		if q.ID != n+1 {
			addf("question ids must be contiguous from 1, found %d at position %d", q.ID, n+1)
			break
		}
	}
	for n, q := range questions {
		inst.index[q.ID] = n
	}
	inst.questions = questions

	// styles and tie-break order
	declared := make(map[model.StyleCategory]styleDoc, len(doc.Styles))
	var order []model.StyleCategory
	for _, s := range doc.Styles {
		if !s.Key.Valid() {
			addf("unknown style %q", s.Key)
			continue
		}
		if _, dup := declared[s.Key]; dup {
			addf("style %q declared twice", s.Key)
			continue
		}
		declared[s.Key] = s
		order = append(order, s.Key)
	}
	for _, c := range model.StyleCategories() {
		if _, ok := declared[c]; !ok {
			addf("style %q not declared", c)
		}
	}
	if len(doc.TieBreak) > 0 {
		order = nil
		seen := make(map[model.StyleCategory]bool)
		for _, c := range doc.TieBreak {
			switch {
			case !c.Valid():
				addf("tie_break: unknown style %q", c)
			case seen[c]:
				addf("tie_break: style %q listed twice", c)
			default:
				seen[c] = true
				order = append(order, c)
			}
		}
		if len(seen) != len(model.StyleCategories()) {
			for _, c := range model.StyleCategories() {
				if !seen[c] {
					addf("tie_break: style %q missing", c)
				}
			}
		}
	}
	for rank, c := range order {
		s := declared[c]
		name := strings.TrimSpace(s.Name)
		if name == "" {
			name = string(c)
		}
		inst.styles = append(inst.styles, Style{
			Key:         c,
			Name:        name,
			Description: strings.TrimSpace(s.Description),
			Rank:        rank,
		})
	}
	for _, s := range doc.Styles {
		if !s.Key.Valid() {
			continue
		}
		for _, raw := range s.Evidence {
			key, ok := evidenceKey(raw, inst, "style "+string(s.Key), addf)
			if !ok {
				continue
			}
			if prev, dup := inst.styleOf[key]; dup {
				addf("style table: %s appears in both %q and %q", key, prev, s.Key)
				continue
			}
			inst.styleOf[key] = s.Key
		}
	}

	// adequacy tiers
	for _, t := range doc.Tiers {
		if !t.Key.Valid() {
			addf("unknown tier %q", t.Key)
			continue
		}
		if _, dup := inst.tiers[t.Key]; dup {
			addf("tier %q declared twice", t.Key)
			continue
		}
		inst.tiers[t.Key] = Tier{Key: t.Key, Weight: t.Weight}
		for _, raw := range t.Evidence {
			key, ok := evidenceKey(raw, inst, "tier "+string(t.Key), addf)
			if !ok {
				continue
			}
			if prev, dup := inst.tierOf[key]; dup {
				addf("adequacy table: %s appears in both tier %q and %q", key, prev, t.Key)
				continue
			}
			inst.tierOf[key] = t.Key
		}
	}
	for _, t := range model.AdequacyTiers() {
		if _, ok := inst.tiers[t]; !ok {
			addf("tier %q not declared", t)
		}
	}

	// every (question, label) pair must be covered by exactly one style and one tier
	for _, q := range inst.questions {
		for _, label := range model.OptionLabels() {
			key := model.AnswerKey{QuestionID: q.ID, Label: label}
			if _, ok := inst.styleOf[key]; !ok {
				addf("style table: %s not assigned to any style", key)
			}
			if _, ok := inst.tierOf[key]; !ok {
				addf("adequacy table: %s not assigned to any tier", key)
			}
		}
	}

	// bands
	if len(inst.questions) > 0 && len(inst.tiers) > 0 {
		lo, hi := scoreRange(len(inst.questions), inst.tiers)
		issues = append(issues, checkBands("levels", doc.Levels, lo, hi)...)
		issues = append(issues, checkBands("adaptability", doc.Adaptability, lo, hi)...)
	}
	inst.levels = normaliseBands(doc.Levels)
	inst.adaptability = normaliseBands(doc.Adaptability)

	if len(issues) > 0 {
		return nil, &ConfigError{Issues: issues}
	}
	if inst.name == "" {
		inst.name = "Management Style Assessment"
	}
	return inst, nil
}

func evidenceKey(raw string, inst *Instrument, owner string, addf func(string, ...any)) (model.AnswerKey, bool) {
	key, err := model.ParseAnswerKey(raw)
	if err != nil {
		addf("%s: %v", owner, err)
		return model.AnswerKey{}, false
	}
	if _, ok := inst.index[key.QuestionID]; !ok {
		addf("%s: %s refers to unknown question %d", owner, key, key.QuestionID)
		return model.AnswerKey{}, false
	}
	return key, true
}

// checkBands verifies that bands are well formed, ordered, contiguous and
// together cover exactly [lo, hi].
func checkBands(name string, bands []Band, lo, hi int) []string {
	var issues []string
	if len(bands) == 0 {
		return []string{name + ": no bands defined"}
	}
	sorted := normaliseBands(bands)
	keys := make(map[string]bool)
	for _, b := range sorted {
		if b.Key == "" {
			issues = append(issues, fmt.Sprintf("%s: band [%d, %d] has no key", name, b.Min, b.Max))
		} else if keys[b.Key] {
			issues = append(issues, fmt.Sprintf("%s: key %q used twice", name, b.Key))
		}
		keys[b.Key] = true
		if b.Min > b.Max {
			issues = append(issues, fmt.Sprintf("%s: band %q has min %d > max %d", name, b.Key, b.Min, b.Max))
		}
	}
	if sorted[0].Min != lo {
		issues = append(issues, fmt.Sprintf("%s: lowest band starts at %d, want %d", name, sorted[0].Min, lo))
	}
	if last := sorted[len(sorted)-1]; last.Max != hi {
		issues = append(issues, fmt.Sprintf("%s: highest band ends at %d, want %d", name, last.Max, hi))
	}
	for n := 1; n < len(sorted); n++ {
		prev, cur := sorted[n-1], sorted[n]
		switch {
		case cur.Min <= prev.Max:
			issues = append(issues, fmt.Sprintf("%s: bands %q and %q overlap", name, prev.Key, cur.Key))
		case cur.Min > prev.Max+1:
			issues = append(issues, fmt.Sprintf("%s: gap between %q and %q (%d..%d uncovered)", name, prev.Key, cur.Key, prev.Max+1, cur.Min-1))
		}
	}
	return issues
}

func normaliseBands(bands []Band) []Band {
	out := make([]Band, len(bands))
	for n, b := range bands {
		b.Key = strings.TrimSpace(b.Key)
		b.Name = strings.TrimSpace(b.Name)
		b.Description = strings.TrimSpace(b.Description)
		recs := make([]string, 0, len(b.Recommendations))
		for _, r := range b.Recommendations {
			if r = strings.TrimSpace(r); r != "" {
				recs = append(recs, r)
			}
		}
		b.Recommendations = recs
		if b.Name == "" {
			b.Name = b.Key
		}
		out[n] = b
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Min < out[b].Min })
	return out
}

package service

import (
	"context"
	"log"

	"leadstyle/internal/cache"
	"leadstyle/internal/instrument"
	"leadstyle/internal/model"
)

// presenter attaches display texts from the instrument to stored results
type presenter struct {
	inst *instrument.Instrument
}

func (p presenter) view(respondent *model.Respondent, result *model.StoredResult) *model.ResultView {
	v := &model.ResultView{
		Result:             *result,
		PrimaryStyleName:   p.inst.StyleName(result.PrimaryStyle),
		SecondaryStyleName: p.inst.StyleName(result.SecondaryStyle),
		AdequacyLevelName:  p.inst.LevelName(result.AdequacyLevel),
		AdaptabilityName:   result.Adaptability,
	}
	if respondent != nil {
		v.Respondent = *respondent
	}
	if s, ok := p.inst.Style(result.PrimaryStyle); ok {
		v.PrimaryDescription = s.Description
	}
	if s, ok := p.inst.Style(result.SecondaryStyle); ok {
		v.SecondaryDescription = s.Description
	}
	if b, ok := p.inst.LevelBand(result.AdequacyLevel); ok {
		v.AdequacyLevelDescription = b.Description
		v.Recommendations = append([]string(nil), b.Recommendations...)
	}
	if b, ok := p.inst.AdaptabilityBand(result.Adaptability); ok {
		v.AdaptabilityName = b.Name
		v.AdaptabilityDescription = b.Description
	}
	return v
}

// withRank fills the adequacy ranking position; a stats failure leaves the view unranked
func withRank(ctx context.Context, stats cache.StatsCache, v *model.ResultView) *model.ResultView {
	rank, err := stats.Rank(ctx, v.Result.RespondentID)
	if err != nil {
		log.Printf("Warning: failed to get adequacy rank for %s: %v", v.Result.RespondentID, err)
		return v
	}
	if rank > 0 {
		v.AdequacyRank = rank
	}
	return v
}

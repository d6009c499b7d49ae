package model

import "time"

// ResultView joins a stored result with its respondent and interpretation texts
type ResultView struct {
	Respondent               Respondent   `json:"respondent"`
	Result                   StoredResult `json:"result"`
	PrimaryStyleName         string       `json:"primaryStyleName"`
	SecondaryStyleName       string       `json:"secondaryStyleName"`
	PrimaryDescription       string       `json:"primaryDescription,omitempty"`
	SecondaryDescription     string       `json:"secondaryDescription,omitempty"`
	AdequacyLevelName        string       `json:"adequacyLevelName"`
	AdequacyLevelDescription string       `json:"adequacyLevelDescription,omitempty"`
	Recommendations          []string     `json:"recommendations,omitempty"`
	AdaptabilityName         string       `json:"adaptabilityName"`
	AdaptabilityDescription  string       `json:"adaptabilityDescription,omitempty"`
	// AdequacyRank is the 1-based position in the adequacy ranking, 0 when unranked
	AdequacyRank int64 `json:"adequacyRank,omitempty"`
}

// Summary is the aggregate supervisor view over all stored results
type Summary struct {
	TotalAssessments  int                   `json:"totalAssessments"`
	AverageAdequacy   float64               `json:"averageAdequacy"`
	MostCommonStyle   StyleCategory         `json:"mostCommonStyle,omitempty"`
	StyleDistribution map[StyleCategory]int `json:"styleDistribution"`
	LevelDistribution map[string]int        `json:"levelDistribution"`
	AdequacyHistogram map[int]int           `json:"adequacyHistogram"`
	TopAdequacy       []RankingEntry        `json:"topAdequacy"`
}

// RankingEntry is one row of the adequacy ranking
type RankingEntry struct {
	RespondentID string `json:"respondentId"`
	Name         string `json:"name,omitempty"`
	Score        int    `json:"score"`
	Rank         int    `json:"rank"`
}

// ComparisonEntry is one respondent in a side-by-side profile comparison
type ComparisonEntry struct {
	RespondentID   string                `json:"id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	PrimaryStyle   StyleCategory         `json:"primaryStyle"`
	SecondaryStyle StyleCategory         `json:"secondaryStyle"`
	StyleTally     map[StyleCategory]int `json:"styleTally"`
	AdequacyScore  int                   `json:"adequacyScore"`
	AdequacyLevel  string                `json:"adequacyLevel"`
	CompletedAt    time.Time             `json:"completedAt"`
}

// CompareRequest is the request body for comparing respondents
type CompareRequest struct {
	RespondentIDs []string `json:"respondentIds"`
}

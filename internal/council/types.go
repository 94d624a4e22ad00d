// Package council orchestrates the three-stage council workflow: individual
// answers, anonymized peer ranking, and chairman synthesis.
package council

// Stage1Result is one council member's individual answer.
type Stage1Result struct {
	Model        string   `json:"model"`
	Response     string   `json:"response"`
	ResponseTime *float64 `json:"response_time"`
}

// Stage2Result is one council member's evaluation and ranking of the
// anonymized stage-1 answers.
type Stage2Result struct {
	Model         string   `json:"model"`
	Ranking       string   `json:"ranking"`
	ParsedRanking []string `json:"parsed_ranking"`
	ResponseTime  *float64 `json:"response_time"`
}

// Stage3Result is the chairman's synthesized final answer.
type Stage3Result struct {
	Model        string   `json:"model"`
	Response     string   `json:"response"`
	ResponseTime *float64 `json:"response_time"`
}

// AggregateRank is a model's average position across all parsed rankings.
type AggregateRank struct {
	Model         string  `json:"model"`
	AverageRank   float64 `json:"average_rank"`
	RankingsCount int     `json:"rankings_count"`
}

// Metadata carries the label mapping and aggregate rankings alongside the
// stage results, so the front-end can de-anonymize and chart them.
type Metadata struct {
	LabelToModel      map[string]string `json:"label_to_model"`
	AggregateRankings []AggregateRank   `json:"aggregate_rankings"`
}

// Result is the complete outcome of one council run.
type Result struct {
	Stage1   []Stage1Result `json:"stage1"`
	Stage2   []Stage2Result `json:"stage2"`
	Stage3   Stage3Result   `json:"stage3"`
	Metadata Metadata       `json:"metadata"`
}

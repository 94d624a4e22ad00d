package council

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRanking(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numbered list after marker",
			text: "Response A is weak.\nResponse B is strong.\n\nFINAL RANKING:\n1. Response B\n2. Response A",
			want: []string{"Response B", "Response A"},
		},
		{
			name: "marker without numbering falls back to labels in section",
			text: "analysis...\nFINAL RANKING:\nBest is Response C, then Response A, then Response B",
			want: []string{"Response C", "Response A", "Response B"},
		},
		{
			name: "no marker falls back to labels in whole text",
			text: "I prefer Response B over Response A.",
			want: []string{"Response B", "Response A"},
		},
		{
			name: "labels before the marker are ignored",
			text: "Response A was verbose. Response B was terse.\nFINAL RANKING:\n1. Response A\n2. Response B",
			want: []string{"Response A", "Response B"},
		},
		{
			name: "nothing parseable",
			text: "I refuse to rank these answers.",
			want: []string{},
		},
		{
			name: "extra spacing in numbered list",
			text: "FINAL RANKING:\n1.   Response C\n2. Response A",
			want: []string{"Response C", "Response A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRanking(tt.text))
		})
	}
}

func TestAggregateRankings(t *testing.T) {
	labelToModel := map[string]string{
		"Response A": "model-a",
		"Response B": "model-b",
		"Response C": "model-c",
	}

	stage2 := []Stage2Result{
		{Model: "model-a", Ranking: "FINAL RANKING:\n1. Response B\n2. Response A\n3. Response C"},
		{Model: "model-b", Ranking: "FINAL RANKING:\n1. Response B\n2. Response C\n3. Response A"},
		{Model: "model-c", Ranking: "FINAL RANKING:\n1. Response A\n2. Response B\n3. Response C"},
	}

	got := AggregateRankings(stage2, labelToModel)

	// model-b: positions 1,1,2 => 1.33; model-a: 2,3,1 => 2; model-c: 3,2,3 => 2.67
	assert.Equal(t, []AggregateRank{
		{Model: "model-b", AverageRank: 1.33, RankingsCount: 3},
		{Model: "model-a", AverageRank: 2, RankingsCount: 3},
		{Model: "model-c", AverageRank: 2.67, RankingsCount: 3},
	}, got)
}

func TestAggregateRankingsSkipsUnknownLabelsAndSilentModels(t *testing.T) {
	labelToModel := map[string]string{
		"Response A": "model-a",
		"Response B": "model-b",
	}

	stage2 := []Stage2Result{
		// Response Z is not a known label and must be ignored.
		{Model: "model-a", Ranking: "FINAL RANKING:\n1. Response Z\n2. Response A"},
		// This ranker produced nothing parseable.
		{Model: "model-b", Ranking: "no ranking here"},
	}

	got := AggregateRankings(stage2, labelToModel)
	assert.Equal(t, []AggregateRank{
		{Model: "model-a", AverageRank: 2, RankingsCount: 1},
	}, got)
}

func TestAggregateRankingsEmpty(t *testing.T) {
	got := AggregateRankings(nil, map[string]string{})
	assert.Empty(t, got)
}

package council

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	numberedLabelRe = regexp.MustCompile(`\d+\.\s*Response [A-Z]`)
	labelRe         = regexp.MustCompile(`Response [A-Z]`)
)

const rankingMarker = "FINAL RANKING:"

// ParseRanking extracts the ordered response labels from a ranking reply.
// It prefers the numbered list under the FINAL RANKING: marker, falls back to
// any labels in that section, and finally to any labels in the whole text.
// Models that ignore the format entirely yield an empty slice.
func ParseRanking(text string) []string {
	if idx := strings.Index(text, rankingMarker); idx >= 0 {
		section := text[idx+len(rankingMarker):]

		numbered := numberedLabelRe.FindAllString(section, -1)
		if len(numbered) > 0 {
			labels := make([]string, len(numbered))
			for i, m := range numbered {
				labels[i] = labelRe.FindString(m)
			}
			return labels
		}

		if labels := labelRe.FindAllString(section, -1); labels != nil {
			return labels
		}
		return []string{}
	}

	if labels := labelRe.FindAllString(text, -1); labels != nil {
		return labels
	}
	return []string{}
}

// AggregateRankings averages each model's position across all parsed
// rankings, best (lowest) first. Models never mentioned by any ranker are
// omitted.
func AggregateRankings(stage2 []Stage2Result, labelToModel map[string]string) []AggregateRank {
	positions := make(map[string][]int)
	for _, ranking := range stage2 {
		for pos, label := range ParseRanking(ranking.Ranking) {
			model, ok := labelToModel[label]
			if !ok {
				continue
			}
			positions[model] = append(positions[model], pos+1)
		}
	}

	// Walk labels in order so ties keep a stable, label-derived ordering.
	labels := make([]string, 0, len(labelToModel))
	for label := range labelToModel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	aggregate := make([]AggregateRank, 0, len(labels))
	for _, label := range labels {
		model := labelToModel[label]
		pos := positions[model]
		if len(pos) == 0 {
			continue
		}
		sum := 0
		for _, p := range pos {
			sum += p
		}
		avg := float64(sum) / float64(len(pos))
		aggregate = append(aggregate, AggregateRank{
			Model:         model,
			AverageRank:   math.Round(avg*100) / 100,
			RankingsCount: len(pos),
		})
	}

	sort.SliceStable(aggregate, func(i, j int) bool {
		return aggregate[i].AverageRank < aggregate[j].AverageRank
	})
	return aggregate
}

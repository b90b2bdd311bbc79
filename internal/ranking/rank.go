// Package ranking filters scored jobs by threshold and orders them by
// relevance.
package ranking

import (
	"sort"

	"github.com/jonathan/job-matcher/internal/types"
)

// Rank keeps jobs with RelevanceScore >= minScore and sorts them by score
// descending. The sort is stable: jobs with equal scores keep their original
// discovery order. Pure function, no failure modes.
func Rank(jobs []types.Job, minScore float64) []types.Job {
	kept := make([]types.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.RelevanceScore >= minScore {
			kept = append(kept, job)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].RelevanceScore > kept[j].RelevanceScore
	})

	return kept
}

package ranking

import (
	"testing"

	"github.com/jonathan/job-matcher/internal/types"
)

func job(title string, score float64) types.Job {
	return types.Job{
		Title:          title,
		Link:           "https://example.com/" + title,
		RelevanceScore: score,
		ScoreOrigin:    types.ScoreOriginModel,
	}
}

func titles(jobs []types.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Title
	}
	return out
}

func TestRank_FiltersBelowThreshold(t *testing.T) {
	jobs := []types.Job{job("a", 0.9), job("b", 0.5), job("c", 0.7), job("d", 0.59)}

	ranked := Rank(jobs, 0.6)

	if len(ranked) != 2 {
		t.Fatalf("expected 2 jobs, got %d: %v", len(ranked), titles(ranked))
	}
	for _, j := range ranked {
		if j.RelevanceScore < 0.6 {
			t.Errorf("job %q below threshold: %f", j.Title, j.RelevanceScore)
		}
	}
}

func TestRank_ThresholdIsInclusive(t *testing.T) {
	ranked := Rank([]types.Job{job("edge", 0.6)}, 0.6)
	if len(ranked) != 1 {
		t.Fatalf("job at exactly min_score must be kept, got %d jobs", len(ranked))
	}
}

func TestRank_SortsDescending(t *testing.T) {
	jobs := []types.Job{job("low", 0.6), job("high", 0.95), job("mid", 0.8)}

	ranked := Rank(jobs, 0.0)

	for i := 1; i < len(ranked); i++ {
		if ranked[i].RelevanceScore > ranked[i-1].RelevanceScore {
			t.Fatalf("scores not non-increasing: %v", titles(ranked))
		}
	}
	if ranked[0].Title != "high" {
		t.Errorf("expected 'high' first, got %v", titles(ranked))
	}
}

func TestRank_StableAmongTies(t *testing.T) {
	// Jobs with equal scores keep their discovery order.
	jobs := []types.Job{job("first", 0.7), job("second", 0.7), job("third", 0.7), job("top", 0.9)}

	ranked := Rank(jobs, 0.0)

	got := titles(ranked)
	want := []string{"top", "first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie order not preserved: got %v, want %v", got, want)
		}
	}
}

func TestRank_EmptyAndAllFiltered(t *testing.T) {
	if out := Rank(nil, 0.5); len(out) != 0 {
		t.Errorf("expected empty output for nil input, got %v", titles(out))
	}
	if out := Rank([]types.Job{job("a", 0.1)}, 0.5); len(out) != 0 {
		t.Errorf("expected empty output when all filtered, got %v", titles(out))
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	jobs := []types.Job{job("a", 0.2), job("b", 0.9)}

	_ = Rank(jobs, 0.0)

	if jobs[0].Title != "a" || jobs[1].Title != "b" {
		t.Error("input slice order was mutated")
	}
}

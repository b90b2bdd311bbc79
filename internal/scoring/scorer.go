// Package scoring asks the model how relevant each job is to the candidate
// profile and annotates the job with the verdict.
package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/llm"
	"github.com/jonathan/job-matcher/internal/logger"
	"github.com/jonathan/job-matcher/internal/types"
)

// FallbackRequiredSkills is the sentinel placeholder recorded when the model
// path fails and the job keeps its neutral fallback score.
var FallbackRequiredSkills = []string{"Skills not extracted"}

// scorePayload is the expected JSON response from the model.
type scorePayload struct {
	RelevanceScore float64  `json:"relevance_score"`
	RequiredSkills []string `json:"required_skills"`
}

// ScoreJob returns a copy of the job with RelevanceScore, RequiredSkills and
// ScoreOrigin populated. Any failure in the model path assigns the fallback
// score and a sentinel skill list: a scoring failure must bias toward
// over-inclusion, since the final threshold filter runs downstream.
func ScoreJob(ctx context.Context, client llm.Client, job types.Job, profile *types.CandidateProfile, fallbackScore float64, log *zap.Logger) types.Job {
	payload, err := scoreJobLLM(ctx, client, job, profile)
	if err != nil {
		log.Warn("relevance scoring failed, assigning fallback score",
			zap.String("site", string(job.Source)),
			zap.String("title", job.Title),
			zap.Float64("fallback_score", fallbackScore),
			zap.Error(err))
		job.RelevanceScore = fallbackScore
		job.RequiredSkills = FallbackRequiredSkills
		job.ScoreOrigin = types.ScoreOriginFallback
		return job
	}

	job.RelevanceScore = clampScore(payload.RelevanceScore)
	job.RequiredSkills = payload.RequiredSkills
	job.ScoreOrigin = types.ScoreOriginModel
	return job
}

// ScoreJobs scores every job sequentially, one blocking model call each.
// Cancellation is checked between jobs; remaining jobs keep the fallback
// score so none are silently dropped.
func ScoreJobs(ctx context.Context, client llm.Client, jobs []types.Job, profile *types.CandidateProfile, fallbackScore float64, log *zap.Logger) []types.Job {
	scored := make([]types.Job, 0, len(jobs))
	cancelled := false

	for _, job := range jobs {
		if !cancelled {
			select {
			case <-ctx.Done():
				cancelled = true
			default:
			}
		}

		if cancelled {
			job.RelevanceScore = fallbackScore
			job.RequiredSkills = FallbackRequiredSkills
			job.ScoreOrigin = types.ScoreOriginFallback
			scored = append(scored, job)
			continue
		}

		scored = append(scored, ScoreJob(ctx, client, job, profile, fallbackScore, log))
	}

	return scored
}

func scoreJobLLM(ctx context.Context, client llm.Client, job types.Job, profile *types.CandidateProfile) (*scorePayload, error) {
	prompt := buildScorePrompt(job, profile)

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	responseText = llm.CleanJSONBlock(responseText)

	if err := llm.ValidateScorePayload(responseText); err != nil {
		return nil, fmt.Errorf("score payload rejected: %w (content: %s)",
			err, logger.Truncate(responseText, 200))
	}

	var payload scorePayload
	if err := json.Unmarshal([]byte(responseText), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse score JSON: %w", err)
	}

	return &payload, nil
}

func clampScore(score float64) float64 {
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

func buildScorePrompt(job types.Job, profile *types.CandidateProfile) string {
	return fmt.Sprintf(`Evaluate how relevant this job is for a candidate with the following profile:

Candidate Skills: %s
Candidate Experience: %s

Job Details:
Title: %s
Company: %s
Description: %s

On a scale of 0 to 1, how relevant is this job for the candidate?
Also extract the key skills required for this job as a JSON array of strings.

Respond ONLY with a JSON object with exactly the keys "relevance_score" (float) and "required_skills" (array of strings).`,
		strings.Join(profile.Skills, ", "),
		profile.Experience,
		job.Title,
		job.Company,
		job.Description)
}

package resume

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

// ExtractProfile asks the model for a structured {skills, experience} object
// extracted from the resume text. Every failure in the model path (network,
// malformed JSON, schema drift) degrades to HeuristicProfile; the returned
// error is reserved for future fatal cases and is currently always nil.
func ExtractProfile(ctx context.Context, client llm.Client, text string, log *zap.Logger) (*types.CandidateProfile, error) {
	profile, err := extractProfileLLM(ctx, client, text)
	if err != nil {
		log.Warn("model profile extraction failed, using heuristic fallback",
			zap.Error(err))
		return HeuristicProfile(text), nil
	}

	log.Info("extracted candidate profile",
		zap.Int("skills", len(profile.Skills)))
	return profile, nil
}

func extractProfileLLM(ctx context.Context, client llm.Client, text string) (*types.CandidateProfile, error) {
	prompt := buildProfilePrompt(text)

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	responseText = llm.CleanJSONBlock(responseText)

	if err := llm.ValidateProfilePayload(responseText); err != nil {
		return nil, fmt.Errorf("profile payload rejected: %w (content: %s)",
			err, logger.Truncate(responseText, 200))
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal([]byte(responseText), &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}

	normalizeProfile(&profile)
	return &profile, nil
}

// normalizeProfile trims and deduplicates skills, preserving model order.
func normalizeProfile(profile *types.CandidateProfile) {
	seen := make(map[string]bool)
	skills := make([]string, 0, len(profile.Skills))
	for _, skill := range profile.Skills {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, skill)
	}
	profile.Skills = skills
	profile.Experience = strings.TrimSpace(profile.Experience)
}

func buildProfilePrompt(text string) string {
	return fmt.Sprintf(`Analyze the following resume text and extract:
1. A list of technical and professional skills (as a JSON array of strings)
2. A summary of professional experience (as a string)

Resume text:
%s

Respond ONLY with a JSON object with exactly the keys "skills" and "experience".`, text)
}

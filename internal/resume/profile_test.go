package resume

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/llm"
)

// stubClient returns a canned response or error for every prompt.
type stubClient struct {
	response string
	err      error
}

func (s *stubClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

const sampleResume = `Jane Doe
Experience
Built services in Python and deployed with Docker on AWS.
Education
BSc`

func TestExtractProfile_ParsesModelResponse(t *testing.T) {
	client := &stubClient{response: "```json\n{\"skills\": [\"Python\", \"Go\"], \"experience\": \"8 years backend\"}\n```"}

	profile, err := ExtractProfile(context.Background(), client, sampleResume, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Go"}, profile.Skills)
	assert.Equal(t, "8 years backend", profile.Experience)
}

func TestExtractProfile_DeduplicatesSkills(t *testing.T) {
	client := &stubClient{response: `{"skills": ["Python", " python ", "SQL"], "experience": "x"}`}

	profile, err := ExtractProfile(context.Background(), client, sampleResume, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL"}, profile.Skills)
}

func TestExtractProfile_FallbackMatchesHeuristic(t *testing.T) {
	// Any malformed model response must produce exactly the deterministic
	// fallback output for the same input text, never an escaping error.
	malformed := []struct {
		name     string
		response string
		err      error
	}{
		{"network error", "", errors.New("rate limited")},
		{"not JSON", "here are the skills: Python", nil},
		{"missing keys", `{"skills": ["Python"]}`, nil},
		{"wrong types", `{"skills": "Python", "experience": 3}`, nil},
	}

	expected := HeuristicProfile(sampleResume)

	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{response: tt.response, err: tt.err}

			profile, err := ExtractProfile(context.Background(), client, sampleResume, zap.NewNop())

			require.NoError(t, err)
			assert.Equal(t, expected, profile)
		})
	}
}

package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicSkills_FixedVocabulary(t *testing.T) {
	text := "5 years experience with Python, Docker, AWS"

	skills := HeuristicSkills(text)

	// Exactly these and nothing else from the vocabulary: "r" must not fire
	// inside "years", nor "go" inside other words.
	assert.ElementsMatch(t, []string{"Python", "Docker", "Aws"}, skills)
}

func TestHeuristicSkills_Deduplicates(t *testing.T) {
	skills := HeuristicSkills("Python python PYTHON")

	count := 0
	for _, s := range skills {
		if s == "Python" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestHeuristicSkills_TitleCasesMultiWord(t *testing.T) {
	skills := HeuristicSkills("worked on machine learning models")
	assert.Contains(t, skills, "Machine Learning")
}

func TestHeuristicExperience_CapturesSection(t *testing.T) {
	text := `John Doe
Work Experience
Built data pipelines at Acme.
Led a team of four.
Education
BSc Computer Science`

	got := HeuristicExperience(text)

	assert.Equal(t, "Built data pipelines at Acme.\nLed a team of four.", got)
}

func TestHeuristicExperience_StopsAtAnyStopCue(t *testing.T) {
	text := "Employment\nShipped things.\nCertifications\nAWS SAA"

	got := HeuristicExperience(text)

	assert.Equal(t, "Shipped things.", got)
}

func TestHeuristicExperience_SentinelWhenMissing(t *testing.T) {
	got := HeuristicExperience("Just a list of hobbies\nReading\nHiking")
	assert.Equal(t, ExperienceNotFound, got)
}

func TestHeuristicProfile_CombinesBoth(t *testing.T) {
	text := "Experience\nUsed Docker daily.\nSkills\nirrelevant"

	profile := HeuristicProfile(text)

	assert.Contains(t, profile.Skills, "Docker")
	assert.Equal(t, "Used Docker daily.", profile.Experience)
}

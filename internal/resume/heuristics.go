package resume

import (
	"regexp"
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

// ExperienceNotFound is returned by the heuristic extractor when no
// experience section can be located in the resume text.
const ExperienceNotFound = "Professional experience details not found."

// skillVocabulary is the fixed set of technology terms the heuristic
// extractor matches against when the model path is unavailable.
var skillVocabulary = []string{
	"python", "java", "javascript", "c++", "c#", "sql", "html", "css",
	"react", "angular", "vue", "node.js", "django", "flask", "spring",
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git",
	"machine learning", "deep learning", "nlp", "computer vision",
	"data analysis", "data science", "big data", "hadoop", "spark",
	"tableau", "power bi", "excel", "r", "matlab", "scala", "go", "rust",
}

var experienceStartCues = []string{"experience", "work history", "employment"}
var experienceStopCues = []string{"education", "skills", "certifications"}

// HeuristicProfile builds a candidate profile deterministically from resume
// text. It backs the LLM extraction path so model failures never block a run.
func HeuristicProfile(text string) *types.CandidateProfile {
	return &types.CandidateProfile{
		Skills:     HeuristicSkills(text),
		Experience: HeuristicExperience(text),
	}
}

// HeuristicSkills matches the resume text against the fixed skill vocabulary.
// Matches are title-cased and deduplicated; the result set is unordered.
// Plain-word terms match on word boundaries so "r" and "go" do not fire
// inside unrelated words; terms with punctuation (c++, node.js) match as
// substrings.
func HeuristicSkills(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var found []string
	for _, keyword := range skillVocabulary {
		if !matchesKeyword(lower, keyword) {
			continue
		}
		display := titleCase(keyword)
		if !seen[display] {
			seen[display] = true
			found = append(found, display)
		}
	}
	return found
}

var plainWordRe = regexp.MustCompile(`^[a-z0-9 ]+$`)

func matchesKeyword(lowerText, keyword string) bool {
	if !plainWordRe.MatchString(keyword) {
		return strings.Contains(lowerText, keyword)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	return re.MatchString(lowerText)
}

// HeuristicExperience scans the resume line by line, capturing everything
// between an experience section header and the next unrelated section header.
func HeuristicExperience(text string) string {
	var captured []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if !inSection {
			if containsAny(lower, experienceStartCues) {
				inSection = true
			}
			continue
		}
		if containsAny(lower, experienceStopCues) {
			break
		}
		captured = append(captured, line)
	}

	if len(captured) == 0 {
		return ExperienceNotFound
	}
	return strings.Join(captured, "\n")
}

func containsAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}

// titleCase uppercases the first letter of each space-separated word and
// lowercases the rest, so "machine learning" -> "Machine Learning" and
// "aws" -> "Aws".
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

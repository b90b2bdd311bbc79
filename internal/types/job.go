// Package types defines the core data structures shared across pipeline stages.
package types

// Source identifies the job site a listing was discovered on.
type Source string

// Supported job sites.
const (
	SourceLinkedIn Source = "linkedin"
	SourceIndeed   Source = "indeed"
)

// Display returns the human-readable site name used in reports.
func (s Source) Display() string {
	switch s {
	case SourceLinkedIn:
		return "LinkedIn"
	case SourceIndeed:
		return "Indeed"
	default:
		return string(s)
	}
}

// ScoreOrigin records how a job's relevance score was produced.
type ScoreOrigin string

// Score origins. Unscored jobs have not passed through the relevance scorer;
// fallback jobs went through it but the model path failed.
const (
	ScoreOriginUnscored ScoreOrigin = ""
	ScoreOriginModel    ScoreOrigin = "model"
	ScoreOriginFallback ScoreOrigin = "fallback"
)

// Job is a single discovered listing. Title, Link and Source are set at
// creation by the listing parser; RelevanceScore, RequiredSkills and
// ScoreOrigin are set exactly once by the relevance scorer.
type Job struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Source      Source `json:"source"`

	RelevanceScore float64     `json:"relevance_score,omitempty"`
	RequiredSkills []string    `json:"required_skills,omitempty"`
	ScoreOrigin    ScoreOrigin `json:"score_origin,omitempty"`
}

// Scored reports whether the job has been through the relevance scorer.
func (j *Job) Scored() bool {
	return j.ScoreOrigin != ScoreOriginUnscored
}

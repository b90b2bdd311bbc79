package types

// CandidateProfile is the structured summary extracted from a resume.
// It is created once per run and immutable thereafter.
type CandidateProfile struct {
	// Skills is deduplicated and display-cased.
	Skills []string `json:"skills"`
	// Experience is a free-text summary of professional experience.
	Experience string `json:"experience"`
}

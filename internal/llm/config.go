package llm

// ModelTier represents the complexity/capability level of a model.
type ModelTier string

const (
	// TierLite is for simple per-item tasks: relevance scoring.
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction: resume profiles.
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration for the application.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a given tier, falling back to the
// standard tier when the requested one is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}

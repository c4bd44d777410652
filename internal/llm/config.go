// Package llm holds the LLM client abstraction and provider configuration.
package llm

// ModelTier selects capability level per task.
type ModelTier string

const (
	// TierLite serves short, cheap tasks like the chat widget reply.
	TierLite ModelTier = "lite"
	// TierStandard serves structured output like question suggestions.
	TierStandard ModelTier = "standard"
)

// Config holds the provider model mapping.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// Model returns the model name for a tier, falling back to lite.
func (c *Config) Model(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierLite]
}

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{Models: make(map[ModelTier]string, len(c.Models))}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}

// Package llm provides the generative-model client used by the matching pipeline.
package llm

// Config holds the model configuration for matching calls.
//
// The generation settings are fixed by the matching contract: JSON-leaning
// output at temperature 0.7 with an 8192-token ceiling. Only the model name
// varies by deployment.
type Config struct {
	Model           string
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// DefaultConfig returns the matching pipeline's generation configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:           "gemini-2.5-flash",
		Temperature:     0.7,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 8192,
	}
}

// WithModel returns a copy of the config using a different model name.
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}

package assistant

import (
	"context"

	"github.com/mkoster/hireboard/internal/llm"
	"github.com/mkoster/hireboard/internal/logger"
	"github.com/mkoster/hireboard/internal/prompts"
	"go.uber.org/zap"
)

// GeminiAssistant answers prompts with the Gemini client and an embedded
// prompt template, for deployments without a hosted completion endpoint.
type GeminiAssistant struct {
	client llm.Client
	log    *zap.Logger
}

// NewGeminiAssistant wraps an LLM client as an Assistant.
func NewGeminiAssistant(client llm.Client, log *zap.Logger) *GeminiAssistant {
	return &GeminiAssistant{client: client, log: log}
}

// Reply generates a single reply. Provider failures surface as
// ErrUnavailable.
func (a *GeminiAssistant) Reply(ctx context.Context, prompt, recruiterID string) (string, error) {
	template := prompts.MustGet("assistant.json", "chat_reply")
	full := prompts.Format(template, map[string]string{
		"Prompt":      prompt,
		"RecruiterID": recruiterID,
	})

	reply, err := a.client.GenerateContent(ctx, full, llm.TierLite)
	if err != nil {
		if a.log != nil {
			a.log.Warn("gemini reply failed",
				zap.Error(err),
				zap.String("prompt", logger.Truncate(prompt, 120)),
			)
		}
		return "", ErrUnavailable
	}
	return reply, nil
}

package assistant

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mkoster/hireboard/internal/llm"
	"github.com/mkoster/hireboard/internal/prompts"
	"github.com/mkoster/hireboard/internal/schemas"
)

//go:embed suggestions_schema.json
var suggestionsSchema []byte

// Suggester generates interview questions from a job description. LLM
// output is validated against a JSON Schema before use; invalid output is
// an error and is never partially applied.
type Suggester struct {
	client llm.Client
}

// NewSuggester creates a suggester over an LLM client.
func NewSuggester(client llm.Client) *Suggester {
	return &Suggester{client: client}
}

type suggestionPayload struct {
	Questions []string `json:"questions"`
}

// SuggestQuestions returns n generated questions for the description.
func (s *Suggester) SuggestQuestions(ctx context.Context, jobDescription string, n int) ([]string, error) {
	if jobDescription == "" {
		return nil, fmt.Errorf("job description is empty")
	}
	if n <= 0 {
		n = 3
	}

	template := prompts.MustGet("assistant.json", "suggest_questions")
	prompt := prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"Count":          strconv.Itoa(n),
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}

	doc := []byte(llm.CleanJSONBlock(raw))
	if err := schemas.ValidateBytes(suggestionsSchema, doc); err != nil {
		return nil, fmt.Errorf("suggestion output rejected: %w", err)
	}

	var payload suggestionPayload
	if err := json.Unmarshal(doc, &payload); err != nil {
		return nil, fmt.Errorf("decoding suggestions: %w", err)
	}
	if len(payload.Questions) > n {
		payload.Questions = payload.Questions[:n]
	}
	return payload.Questions, nil
}

package picker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/festhub/eventhub/internal/domain/recommendation"
)

// Explainer writes a short reason for a selected event
type Explainer interface {
	Explain(ctx context.Context, req *recommendation.Request, c recommendation.CandidateEvent) (string, error)
}

// TemplateExplainer builds explanations from the scores alone
type TemplateExplainer struct{}

func (TemplateExplainer) Explain(ctx context.Context, req *recommendation.Request, c recommendation.CandidateEvent) (string, error) {
	share := 0.0
	if req.Budget > 0 {
		share = c.Cost / req.Budget * 100
	}
	return fmt.Sprintf(
		"%s scores %.2f on engagement (popularity %d/10, sentiment %.2f, %d reviews) and uses %.1f%% of the budget.",
		c.Event, c.EngagementScore, c.Popularity, c.AvgSentiment, c.ReviewCount, share,
	), nil
}

// OpenAIExplainer asks a chat model for the explanation
type OpenAIExplainer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIExplainer creates an explainer for apiKey. An empty model uses
// GPT-4o mini.
func NewOpenAIExplainer(apiKey, model string) *OpenAIExplainer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIExplainer{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: 20 * time.Second,
	}
}

func (e *OpenAIExplainer) Explain(ctx context.Context, req *recommendation.Request, c recommendation.CandidateEvent) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You explain event recommendations to organizers in one or two plain sentences.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt(req, c),
			},
		},
		MaxTokens: 120,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func prompt(req *recommendation.Request, c recommendation.CandidateEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Budget: Rs %s.\n", formatRupees(req.Budget))
	if len(req.EventTypes) > 0 {
		fmt.Fprintf(&b, "Preferred types: %s.\n", strings.Join(req.EventTypes, ", "))
	}
	fmt.Fprintf(&b, "Event: %s (%s), cost Rs %s, popularity %d/10, average sentiment %.2f, %d reviews, engagement score %.2f.\n",
		c.Event, c.Type, formatRupees(c.Cost), c.Popularity, c.AvgSentiment, c.ReviewCount, c.EngagementScore)
	b.WriteString("Why is this a good pick?")
	return b.String()
}

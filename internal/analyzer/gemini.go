package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"
)

const maxRetryElapsed = 45 * time.Second

// generate sends the prompt to Gemini and returns the raw response text.
// Rate-limited keys are rotated; transient failures are retried with
// exponential backoff.
func (a *implAnalyzer) generate(ctx context.Context, prompt string) (string, error) {
	if len(a.apiKeys) == 0 {
		return "", fmt.Errorf("no gemini api keys configured")
	}

	var text string
	operation := func() error {
		key := a.pickKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create client: %w", err))
		}

		result, err := client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
		if err != nil {
			if isRateLimited(err) {
				a.logger.Warn(ctx, "Gemini key rate limited, rotating")
				a.rotateKey()
				return err
			}
			return backoff.Permanent(fmt.Errorf("generate content: %w", err))
		}

		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return backoff.Permanent(fmt.Errorf("empty response from model"))
		}

		var sb strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
		text = sb.String()
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxRetryElapsed
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", err
	}
	return text, nil
}

func (a *implAnalyzer) pickKey() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.apiKeys[a.currentKey]
}

func (a *implAnalyzer) rotateKey() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.currentKey = (a.currentKey + 1) % len(a.apiKeys)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// Package ai wraps the Gemini API behind the small Completer surface the
// service layer consumes.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/sakif/gamevault/internal/apperror"
)

const defaultModelName = "gemini-1.5-flash-latest"

const systemInstruction = "You are a video game recommendation assistant. " +
	"Based on the user's request, recommend games they are likely to enjoy. " +
	"For each recommendation give the title, genre, platform and one sentence on why it fits. " +
	"Keep the whole answer concise. Do not recommend more than five games."

// GeminiClient generates game recommendations via the Gemini API. It
// implements service.Completer.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client for the given API key. The key is only
// validated lazily, on the first generation call.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("ai: API key must not be empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("ai: creating gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: defaultModelName}, nil
}

// Close releases the underlying API connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Complete sends the prompt to Gemini and returns the generated text. A
// rejected API key comes back as apperror.ErrProviderKey; everything else
// is passed through wrapped.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if isAuthError(err) {
			return "", apperror.InvalidProviderKey()
		}
		return "", fmt.Errorf("ai: gemini generation failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("ai: gemini returned no candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return "", errors.New("ai: gemini returned a non-text response")
	}

	return text.String(), nil
}

// isAuthError reports whether the API rejected our credentials, as
// opposed to a transient or request-shaped failure.
func isAuthError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 401 || apiErr.Code == 403
	}
	// The transport sometimes surfaces key problems as a plain error
	// mentioning the key, before an HTTP status exists.
	return strings.Contains(err.Error(), "API key not valid")
}

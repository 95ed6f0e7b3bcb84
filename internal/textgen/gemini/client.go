// Package gemini implements the textgen boundary on top of the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/wealthmate/wealthmate/internal/textgen"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// Client calls the Gemini API and normalizes its responses. Authentication
// comes from the environment (GEMINI_API_KEY or application-default
// credentials), the same way the genai SDK resolves it everywhere else.
type Client struct {
	model string
}

// NewClient creates a Gemini-backed generator for the given model name.
func NewClient(model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{model: model}
}

// Generate sends the prompt in a single call and normalizes the response.
// A response that parses as a JSON object of string-to-string pairs comes
// back recognized; anything else is returned as raw text. Transport and API
// failures are returned as errors for the caller's own fallback policy; no
// retries happen here.
func (c *Client) Generate(ctx context.Context, prompt string) (textgen.Result, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return textgen.Result{}, fmt.Errorf("gemini: create client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return textgen.Result{}, fmt.Errorf("gemini: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return textgen.Result{}, fmt.Errorf("gemini: empty response from model")
	}

	return Normalize(rawText), nil
}

// Normalize applies the strict-mapping validation to a raw model response.
// Markdown fences and surrounding prose are stripped first; only a
// well-formed JSON object whose values are all strings is recognized.
func Normalize(rawText string) textgen.Result {
	clean := cleanModelJSON(rawText)

	var mapping map[string]string
	if err := json.Unmarshal([]byte(clean), &mapping); err != nil || len(mapping) == 0 {
		return textgen.Result{Recognized: false, RawText: rawText}
	}

	return textgen.Result{Recognized: true, Mapping: mapping, RawText: rawText}
}

// cleanModelJSON strips Markdown fences and stray prose the model sometimes
// wraps around its JSON despite instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Extra safety: if there's still junk around the JSON object, keep only
	// from the first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}

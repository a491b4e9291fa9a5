package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiRecognizer implements Recognizer using Google's Gemini models.
type GeminiRecognizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiRecognizer initializes a new Gemini-backed recognizer.
// apiKey should be provided from environment variables.
func NewGeminiRecognizer(ctx context.Context, apiKey string) (*GeminiRecognizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Flash keeps per-turn classification latency low.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Classification should be deterministic, not creative.
	model.SetTemperature(0.0)

	return &GeminiRecognizer{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (r *GeminiRecognizer) Close() {
	r.client.Close()
}

// Classify analyzes a user utterance and returns the matched intent with
// its station entities in utterance order.
func (r *GeminiRecognizer) Classify(ctx context.Context, utterance string) (*Intent, error) {
	prompt := fmt.Sprintf("%s\n\nUser Utterance: %s", classifierPrompt, utterance)

	resp, err := r.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	cleanJSON := cleanJSONString(responseText.String())

	var result Intent
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	if result.Name == "" {
		result.Name = IntentNone
	}
	return &result, nil
}

const classifierPrompt = `Role: You are the intent classifier for a public-transit assistant covering the Munich MVG network.

Classify the user utterance into EXACTLY ONE of these intents:
- "Greeting": salutations ("hi", "hello", "servus").
- "Help": the user asks what the assistant can do.
- "Cancel": the user wants to abort the current request ("cancel", "stop", "never mind").
- "Route": the user wants a connection between two places ("how do I get to X", "from X to Y").
- "Departures": the user wants the departure board of one station ("when does the next train leave X", "departures at X").
- "None": anything else.

ENTITY EXTRACTION:
- Extract every station or place name mentioned as an entity of type "Station".
- Keep entities in the EXACT order they appear in the utterance.
- Copy the station name verbatim; do not translate, expand, or correct it.
- Do not invent stations that are not present in the utterance.

Output JSON Schema:
{
  "intent": "Greeting" | "Help" | "Cancel" | "Route" | "Departures" | "None",
  "entities": [{"type": "Station", "value": "string"}]
}
`

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

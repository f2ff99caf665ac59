package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

var geminiSafetySettings = []map[string]string{
	{"category": "HARM_CATEGORY_HARASSMENT", "threshold": "BLOCK_MEDIUM_AND_ABOVE"},
	{"category": "HARM_CATEGORY_HATE_SPEECH", "threshold": "BLOCK_MEDIUM_AND_ABOVE"},
	{"category": "HARM_CATEGORY_SEXUALLY_EXPLICIT", "threshold": "BLOCK_MEDIUM_AND_ABOVE"},
	{"category": "HARM_CATEGORY_DANGEROUS_CONTENT", "threshold": "BLOCK_MEDIUM_AND_ABOVE"},
}

// GeminiAdapter speaks the generate-content wire format. The system prompt is
// passed as the first user part; assistant turns map to the "model" role.
func GeminiAdapter(model, apiKey string) Adapter {
	client := &http.Client{Timeout: 25 * time.Second}

	return func(ctx context.Context, history []Message, systemPrompt, _ string, maxTokens int) (string, error) {
		type part struct {
			Text string `json:"text"`
		}
		type content struct {
			Role  string `json:"role"`
			Parts []part `json:"parts"`
		}

		contents := make([]content, 0, len(history)+1)
		contents = append(contents, content{Role: "user", Parts: []part{{Text: systemPrompt}}})
		for _, m := range history {
			role := "user"
			if m.Role == "assistant" {
				role = "model"
			}
			contents = append(contents, content{Role: role, Parts: []part{{Text: m.Content}}})
		}

		payload := map[string]interface{}{
			"contents":       contents,
			"safetySettings": geminiSafetySettings,
		}
		if maxTokens > 0 {
			payload["generationConfig"] = map[string]interface{}{"maxOutputTokens": maxTokens}
		}
		body, _ := json.Marshal(payload)

		url := geminiBaseURL + "/" + trimVendorPrefix(model) + ":generateContent?key=" + apiKey
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", &ProviderError{Provider: model, Reason: "build request", Err: err}
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return "", &ProviderError{Provider: model, Reason: "request", Err: err}
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", &ProviderError{Provider: model, Status: resp.StatusCode, Reason: truncateBody(respBody)}
		}

		var parsed struct {
			Candidates []struct {
				Content struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"content"`
			} `json:"candidates"`
		}
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return "", &ProviderError{Provider: model, Reason: "unmarshal: " + truncateBody(respBody), Err: err}
		}
		if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
			return "", &ProviderError{Provider: model, Reason: "empty candidates"}
		}

		return cleanReply(parsed.Candidates[0].Content.Parts[0].Text), nil
	}
}

// trimVendorPrefix maps registry ids like "google/gemini-pro" to the bare
// model name the API expects.
func trimVendorPrefix(model string) string {
	for i := 0; i < len(model); i++ {
		if model[i] == '/' {
			return model[i+1:]
		}
	}
	return model
}

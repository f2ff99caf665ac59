package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterAdapter speaks the chat-completions wire format. One adapter value
// is built per model id; the credential arrives per call so the failover can
// rotate keys without rebuilding adapters.
func OpenRouterAdapter(model, siteURL, siteName string) Adapter {
	client := &http.Client{Timeout: 25 * time.Second}

	return func(ctx context.Context, history []Message, systemPrompt, credential string, maxTokens int) (string, error) {
		msgs := make([]Message, 0, len(history)+1)
		msgs = append(msgs, Message{Role: "system", Content: systemPrompt})
		msgs = append(msgs, history...)

		payload := map[string]interface{}{
			"model":       model,
			"messages":    msgs,
			"temperature": 0.8,
		}
		if maxTokens > 0 {
			payload["max_tokens"] = maxTokens
		} else {
			payload["max_tokens"] = 150
		}
		body, _ := json.Marshal(payload)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, openRouterBaseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", &ProviderError{Provider: model, Reason: "build request", Err: err}
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+credential)
		req.Header.Set("HTTP-Referer", siteURL)
		req.Header.Set("X-Title", siteName)

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
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return "", &ProviderError{Provider: model, Reason: "unmarshal: " + truncateBody(respBody), Err: err}
		}
		if len(parsed.Choices) == 0 {
			return "", &ProviderError{Provider: model, Reason: "empty choices"}
		}

		return cleanReply(parsed.Choices[0].Message.Content), nil
	}
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// OllamaAdapter talks to a local Ollama server. Before the chat call it probes
// /api/version so an absent server fails fast instead of hanging on generate.
func OllamaAdapter(host, model string) Adapter {
	client := &http.Client{Timeout: 25 * time.Second}

	return func(ctx context.Context, history []Message, systemPrompt, _ string, _ int) (string, error) {
		if err := ollamaProbe(ctx, client, host); err != nil {
			return "", err
		}

		msgs := make([]Message, 0, len(history)+1)
		msgs = append(msgs, Message{Role: "system", Content: systemPrompt})
		msgs = append(msgs, history...)

		payload := map[string]interface{}{
			"model":    model,
			"messages": msgs,
			"stream":   false,
		}
		body, _ := json.Marshal(payload)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, host+"/api/chat", bytes.NewReader(body))
		if err != nil {
			return "", &ProviderError{Provider: "ollama", Reason: "build request", Err: err}
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return "", &ProviderError{Provider: "ollama", Reason: "request", Err: err}
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", &ProviderError{Provider: "ollama", Status: resp.StatusCode, Reason: truncateBody(respBody)}
		}

		var parsed struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		}
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return "", &ProviderError{Provider: "ollama", Reason: "unmarshal: " + truncateBody(respBody), Err: err}
		}
		if parsed.Message.Content == "" {
			return "", &ProviderError{Provider: "ollama", Reason: "empty message"}
		}

		return cleanReply(parsed.Message.Content), nil
	}
}

func ollamaProbe(ctx context.Context, client *http.Client, host string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/api/version", nil)
	if err != nil {
		return &ProviderError{Provider: "ollama", Reason: "build probe", Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return &ProviderError{Provider: "ollama", Reason: "server not accessible", Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{Provider: "ollama", Status: resp.StatusCode, Reason: "version probe failed"}
	}
	return nil
}

// Package storage persists the conversation log. Topic responses are not a
// separate table: they are assistant rows encoded as "topic: response" and
// parsed back out of the message log.
package storage

import (
	"context"
	"fmt"
	"strings"

	"asuka-bot/internal/ai"
)

// Store is the message + topic-response contract the engine depends on.
type Store interface {
	// GetHistory returns all messages for a chat in insertion order.
	GetHistory(ctx context.Context, chatID int64) ([]ai.Message, error)
	// AppendMessages appends messages preserving their order.
	AppendMessages(ctx context.Context, chatID int64, msgs []ai.Message) error
	// GetTopicResponses groups saved assistant responses by topic.
	GetTopicResponses(ctx context.Context, chatID int64) (map[string][]string, error)
	// SaveTopicResponse records one assistant response under a topic.
	SaveTopicResponse(ctx context.Context, chatID int64, topic, response string) error
	Close() error
}

// Backend selector values accepted by New.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options carries backend-specific settings.
type Options struct {
	DatabasePath string
	RedisAddr    string
}

// New builds the configured backend.
func New(backend string, opts Options) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return NewSQLite(opts.DatabasePath)
	case BackendRedis:
		return NewRedis(opts.RedisAddr)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func encodeTopicResponse(topic, response string) ai.Message {
	return ai.Message{Role: "assistant", Content: topic + ": " + response}
}

// parseTopicResponses extracts "topic: response" pairs from assistant rows.
// Rows without a colon, or with an empty side, are plain replies and skipped.
func parseTopicResponses(msgs []ai.Message) map[string][]string {
	out := make(map[string][]string)
	for _, m := range msgs {
		if m.Role != "assistant" {
			continue
		}
		idx := strings.Index(m.Content, ":")
		if idx < 0 {
			continue
		}
		topic := strings.TrimSpace(m.Content[:idx])
		response := strings.TrimSpace(m.Content[idx+1:])
		if topic == "" || response == "" {
			continue
		}
		out[topic] = append(out[topic], response)
	}
	return out
}

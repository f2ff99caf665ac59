package storage

import (
	"context"
	"sync"

	"asuka-bot/internal/ai"
)

// Memory is the default in-process backend. Data does not survive restarts.
type Memory struct {
	mu    sync.RWMutex
	chats map[int64][]ai.Message
}

func NewMemory() *Memory {
	return &Memory{chats: make(map[int64][]ai.Message)}
}

func (m *Memory) GetHistory(_ context.Context, chatID int64) ([]ai.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.chats[chatID]
	out := make([]ai.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (m *Memory) AppendMessages(_ context.Context, chatID int64, msgs []ai.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats[chatID] = append(m.chats[chatID], msgs...)
	return nil
}

func (m *Memory) GetTopicResponses(ctx context.Context, chatID int64) (map[string][]string, error) {
	msgs, err := m.GetHistory(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return parseTopicResponses(msgs), nil
}

func (m *Memory) SaveTopicResponse(ctx context.Context, chatID int64, topic, response string) error {
	return m.AppendMessages(ctx, chatID, []ai.Message{encodeTopicResponse(topic, response)})
}

func (m *Memory) Close() error { return nil }

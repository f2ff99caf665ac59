package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"asuka-bot/internal/ai"
)

// Redis keeps each chat's log in a list of JSON-encoded messages.
type Redis struct {
	client *redis.Client
}

func NewRedis(addr string) (*Redis, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{client: client}, nil
}

// NewRedisWithClient wraps an existing client, used by tests.
func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func chatKey(chatID int64) string {
	return "chat:" + strconv.FormatInt(chatID, 10) + ":messages"
}

func (r *Redis) GetHistory(ctx context.Context, chatID int64) ([]ai.Message, error) {
	raw, err := r.client.LRange(ctx, chatKey(chatID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange: %w", err)
	}
	out := make([]ai.Message, 0, len(raw))
	for _, item := range raw {
		var m ai.Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Redis) AppendMessages(ctx context.Context, chatID int64, msgs []ai.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(msgs))
	for _, m := range msgs {
		buf, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
		values = append(values, buf)
	}
	if err := r.client.RPush(ctx, chatKey(chatID), values...).Err(); err != nil {
		return fmt.Errorf("rpush: %w", err)
	}
	return nil
}

func (r *Redis) GetTopicResponses(ctx context.Context, chatID int64) (map[string][]string, error) {
	msgs, err := r.GetHistory(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return parseTopicResponses(msgs), nil
}

func (r *Redis) SaveTopicResponse(ctx context.Context, chatID int64, topic, response string) error {
	return r.AppendMessages(ctx, chatID, []ai.Message{encodeTopicResponse(topic, response)})
}

func (r *Redis) Close() error { return r.client.Close() }

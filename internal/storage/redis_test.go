package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"asuka-bot/internal/ai"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisWithClient(client)
}

func TestRedis_HistoryRoundTrip(t *testing.T) {
	s := newTestRedis(t)
	ctx := context.Background()

	err := s.AppendMessages(ctx, 10, []ai.Message{
		{Role: "user", Content: "halo"},
		{Role: "assistant", Content: "hmph"},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.GetHistory(ctx, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 2 || got[0].Role != "user" || got[1].Content != "hmph" {
		t.Fatalf("unexpected history: %v", got)
	}
}

func TestRedis_TopicResponseRoundTrip(t *testing.T) {
	s := newTestRedis(t)
	ctx := context.Background()
	if err := s.SaveTopicResponse(ctx, 10, "eva", "X"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.GetTopicResponses(ctx, 10)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got["eva"]) != 1 || got["eva"][0] != "X" {
		t.Fatalf("round trip failed: %v", got)
	}
}

func TestRedis_EmptyHistory(t *testing.T) {
	s := newTestRedis(t)
	got, err := s.GetHistory(context.Background(), 999)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

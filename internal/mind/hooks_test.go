package mind

import (
	"strings"
	"testing"
)

func TestCheckHooks_MatchReturnsCanned(t *testing.T) {
	rng := NewSeededRand(1)
	got := CheckHooks("bagaimana kabar Shinji?", rng)
	if got == "" {
		t.Fatal("expected a hook response")
	}
	if !containsString(conversationHooks[0].responses, got) {
		t.Fatalf("response %q not from the shinji hook", got)
	}
}

func TestCheckHooks_FirstHookWins(t *testing.T) {
	rng := NewSeededRand(1)
	// Both shinji and eva trigger; shinji is declared first.
	got := CheckHooks("shinji naik eva", rng)
	if !containsString(conversationHooks[0].responses, got) {
		t.Fatalf("expected shinji hook, got %q", got)
	}
}

func TestCheckHooks_NoMatch(t *testing.T) {
	if got := CheckHooks("halo apa kabar", NewSeededRand(1)); got != "" {
		t.Fatalf("expected no hook, got %q", got)
	}
}

func TestInterruption_Probability(t *testing.T) {
	rng := NewSeededRand(123)
	hits := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if Interruption(rng) != "" {
			hits++
		}
	}
	// p = 0.1, allow generous slack for the seed.
	if hits < n/20 || hits > n/5 {
		t.Fatalf("interruption rate off: %d/%d", hits, n)
	}
}

func TestSuggestNextTopic_PrefersUndiscussedRelated(t *testing.T) {
	rng := NewSeededRand(2)
	for i := 0; i < 50; i++ {
		got := SuggestNextTopic([]string{"eva"}, rng)
		if !containsString(topicChains["eva"], got) {
			t.Fatalf("expected a topic related to eva, got %q", got)
		}
		if got == "eva" {
			t.Fatal("suggested the topic already being discussed")
		}
	}
}

func TestSuggestNextTopic_FallsBackToCommonPool(t *testing.T) {
	rng := NewSeededRand(2)
	got := SuggestNextTopic([]string{"tak-terdaftar"}, rng)
	if !containsString(commonTopics, got) {
		t.Fatalf("expected a common topic, got %q", got)
	}
}

func TestFallbackResponse_FromPool(t *testing.T) {
	got := FallbackResponse(NewSeededRand(3))
	if !containsString(FallbackPool(), got) {
		t.Fatalf("fallback %q not from pool", got)
	}
}

func TestTopicIntroduction_EmbedsTopic(t *testing.T) {
	got := TopicIntroduction("nerv", NewSeededRand(4))
	if !strings.Contains(got, "nerv") {
		t.Fatalf("topic not embedded: %q", got)
	}
}

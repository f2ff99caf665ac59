package mind

import (
	"testing"
)

func TestExtractTopics_KeepsLongTokens(t *testing.T) {
	topics := ExtractTopics("aku suka piloting dan synch-ratio tinggi")
	want := []string{"piloting", "synch-ratio", "tinggi"}
	if len(topics) != len(want) {
		t.Fatalf("expected %v, got %v", want, topics)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, topics)
		}
	}
}

func TestExtractTopics_EmptyInput(t *testing.T) {
	if got := ExtractTopics(""); len(got) != 0 {
		t.Fatalf("expected no topics, got %v", got)
	}
}

func TestExtractEntities(t *testing.T) {
	entities := ExtractEntities("Shinji dan Misato pergi ke Tokyo")
	if len(entities) != 3 {
		t.Fatalf("expected 3 entities, got %v", entities)
	}
	if entities[0] != "Shinji" || entities[1] != "Misato" || entities[2] != "Tokyo" {
		t.Fatalf("unexpected entities %v", entities)
	}
}

func TestClassifySentiment(t *testing.T) {
	if got := ClassifySentiment("that was a GOOD fight"); got != "positive" {
		t.Fatalf("expected positive, got %s", got)
	}
	if got := ClassifySentiment("what a terrible day"); got != "negative" {
		t.Fatalf("expected negative, got %s", got)
	}
	// Positive list wins when both match.
	if got := ClassifySentiment("good but terrible"); got != "positive" {
		t.Fatalf("expected positive on mixed input, got %s", got)
	}
	if got := ClassifySentiment("hmph"); got != "neutral" {
		t.Fatalf("expected neutral, got %s", got)
	}
}

func TestMatchEmotionTrigger_FirstMatchWins(t *testing.T) {
	// "baka" (angry) appears before "eva" (competitive) in trigger order.
	if got := MatchEmotionTrigger("baka, eva itu milikku"); got != EmotionAngry {
		t.Fatalf("expected angry, got %s", got)
	}
	if got := MatchEmotionTrigger("eva itu milikku"); got != EmotionCompetitive {
		t.Fatalf("expected competitive, got %s", got)
	}
	if got := MatchEmotionTrigger("tidak ada pemicu"); got != "" {
		t.Fatalf("expected no trigger, got %s", got)
	}
}

func TestMostFrequent_FirstSeenWinsTies(t *testing.T) {
	if got := MostFrequent([]string{"b", "a", "a", "b"}); got != "b" {
		t.Fatalf("expected b (first seen), got %s", got)
	}
	if got := MostFrequent([]string{"a", "b", "b"}); got != "b" {
		t.Fatalf("expected b, got %s", got)
	}
	if got := MostFrequent(nil); got != "" {
		t.Fatalf("expected empty, got %s", got)
	}
}

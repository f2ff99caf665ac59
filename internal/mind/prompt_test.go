package mind

import (
	"strings"
	"testing"

	"asuka-bot/internal/ai"
)

func TestIntensityTier(t *testing.T) {
	// neutral adds no offset, so the raw level decides.
	if got := intensityTier(7, EmotionNeutral); got != "high" {
		t.Fatalf("expected high, got %s", got)
	}
	if got := intensityTier(4, EmotionNeutral); got != "medium" {
		t.Fatalf("expected medium, got %s", got)
	}
	if got := intensityTier(3, EmotionNeutral); got != "low" {
		t.Fatalf("expected low, got %s", got)
	}
	// angry pushes a mid level into the high tier.
	if got := intensityTier(5, EmotionAngry); got != "high" {
		t.Fatalf("expected high with angry offset, got %s", got)
	}
	// impressed pulls it down.
	if got := intensityTier(5, EmotionImpressed); got != "low" {
		t.Fatalf("expected low with impressed offset, got %s", got)
	}
}

func TestTsunderePhrase_FromCorrectTier(t *testing.T) {
	rng := NewSeededRand(9)
	for i := 0; i < 20; i++ {
		p := TsunderePhrase(9, EmotionTsun, rng)
		if !containsString(tsunderePhrases["high"], p) {
			t.Fatalf("phrase %q not from high tier", p)
		}
	}
}

func TestTopicResponse_PrefersSaved(t *testing.T) {
	rng := NewSeededRand(1)
	saved := map[string][]string{"eva": {"respons tersimpan"}}
	if got := TopicResponse("eva", saved, rng); got != "respons tersimpan" {
		t.Fatalf("expected saved response, got %q", got)
	}
}

func TestTopicResponse_FillsTemplateWhenUnsaved(t *testing.T) {
	rng := NewSeededRand(1)
	got := TopicResponse("nerv", nil, rng)
	if strings.Contains(got, ":topic") {
		t.Fatalf("placeholder not replaced: %q", got)
	}
	if !strings.Contains(got, "nerv") {
		t.Fatalf("topic not substituted: %q", got)
	}
}

func TestBuildPrompt_EmbedsLatestMessageAndState(t *testing.T) {
	s := NewPersonaState()
	s.Topic = "eva"
	s.Emotion = EmotionCompetitive
	rng := NewSeededRand(4)

	history := []ai.Message{
		{Role: "user", Content: "ceritakan tentang piloting"},
		{Role: "assistant", Content: "eva: hmph, baiklah"},
	}
	prompt := BuildPrompt(s, history, map[string][]string{"eva": {"hmph, baiklah"}}, "apa kabar eva?", rng)

	if !strings.Contains(prompt, `"apa kabar eva?"`) {
		t.Fatalf("latest user message not embedded:\n%s", prompt)
	}
	if !strings.Contains(prompt, "competitive") {
		t.Fatalf("emotion missing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Topic: eva") {
		t.Fatalf("topic missing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Conversation Summary:") {
		t.Fatalf("summary block missing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Respond in Bahasa Indonesia") {
		t.Fatalf("identity line missing:\n%s", prompt)
	}
}

func TestBuildPrompt_DeterministicWithSeed(t *testing.T) {
	build := func() string {
		s := NewPersonaState()
		return BuildPrompt(s, nil, nil, "halo", NewSeededRand(11))
	}
	if build() != build() {
		t.Fatal("same seed produced different prompts")
	}
}

func TestSummarizeConversation(t *testing.T) {
	msgs := []ai.Message{
		{Role: "user", Content: "piloting piloting latihan"},
		{Role: "user", Content: "Shinji terrible today"},
		{Role: "assistant", Content: "hmph, begitulah"},
	}
	sum := SummarizeConversation(msgs)
	if !strings.Contains(sum, "piloting") {
		t.Fatalf("top topic missing: %q", sum)
	}
	if !strings.Contains(sum, "Shinji") {
		t.Fatalf("key phrase missing: %q", sum)
	}
	if !strings.Contains(sum, "Last message: hmph, begitulah") {
		t.Fatalf("last message missing: %q", sum)
	}
	if SummarizeConversation(nil) != "" {
		t.Fatal("expected empty summary for empty history")
	}
}

func TestDynamicPromptAddition(t *testing.T) {
	s := NewPersonaState()
	s.CtxMemory.LastEmotions = []Emotion{EmotionTsun, EmotionAngry}
	s.CtxMemory.ImportantPoints = []string{"Eva", "NERV"}
	s.CtxMemory.LastMentionedCharacters = []string{"Shinji"}
	out := DynamicPromptAddition(s, NewSeededRand(2))
	if !strings.Contains(out, "tsun -> angry") {
		t.Fatalf("emotion trail missing: %q", out)
	}
	if !strings.Contains(out, "Eva, NERV") {
		t.Fatalf("important points missing: %q", out)
	}
	if !strings.Contains(out, "Shinji") {
		t.Fatalf("characters missing: %q", out)
	}
}

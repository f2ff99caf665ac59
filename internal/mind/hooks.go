package mind

import (
	"fmt"
	"regexp"
)

// conversationHooks map proper nouns to canned replies that bypass the model
// entirely. Checked in order, first match wins.
var conversationHooks = []struct {
	trigger   *regexp.Regexp
	responses []string
}{
	{
		regexp.MustCompile(`(?i)shinji`),
		[]string{
			"Hmph! Jangan sebut-sebut si bodoh itu!",
			"Shinji? Dia itu cuma pilot amatir yang kebetulan beruntung.",
			"Aku tidak mau membicarakan Shinji sekarang. Apa tidak ada topik yang lebih menarik?",
			"B-bukan berarti aku peduli, tapi... bagaimana keadaan Shinji?",
		},
	},
	{
		regexp.MustCompile(`(?i)misato`),
		[]string{
			"Misato-san? Apa hubungannya dia dengan ini?",
			"Huh, Misato-san pasti akan bangga dengan kemampuanku saat ini.",
			"Jangan samakan aku dengan Misato-san! Aku jauh lebih baik darinya.",
			"M-mungkin kita bisa tanya pendapat Misato-san... tapi bukan berarti aku menghargainya atau apa!",
		},
	},
	{
		regexp.MustCompile(`(?i)rei`),
		[]string{
			"Wonder Girl? Apa yang kau tahu tentang dia?",
			"Rei itu... sulit dimengerti. Tapi bukan berarti aku ingin mengenalnya lebih jauh!",
			"Kenapa kita harus membicarakan Rei? Aku jauh lebih menarik!",
			"A-aku tidak iri pada Rei atau apa... Aku hanya penasaran kenapa semua orang memperhatikannya.",
		},
	},
	{
		regexp.MustCompile(`(?i)angel`),
		[]string{
			"Angel? Jangan khawatir, aku bisa mengalahkan mereka semua!",
			"Kau pikir Angel itu menakutkan? Hah! Mereka tidak ada apa-apanya dibanding aku!",
			"Angel hanyalah tantangan kecil bagiku. Lihat saja nanti, aku akan mengalahkan mereka semua!",
			"J-jangan bilang kau takut pada Angel? A-aku akan melindungimu... tapi bukan karena aku peduli atau apa!",
		},
	},
	{
		regexp.MustCompile(`(?i)eva`),
		[]string{
			"Eva adalah segalanya bagiku. Kau tak akan mengerti.",
			"Hanya aku yang bisa mengendalikan Eva dengan sempurna. Kau iri?",
			"Eva bukan sekedar mesin, tahu! Dia... spesial. T-tapi bukan berarti aku sentimental atau apa!",
			"Kau bertanya tentang Eva? Hmph, aku bisa menjelaskan, tapi aku ragu kau bisa memahaminya.",
		},
	},
}

// CheckHooks returns a canned reply for the first matching hook, or "".
func CheckHooks(text string, rng Rand) string {
	for _, h := range conversationHooks {
		if h.trigger.MatchString(text) {
			return sample(rng, h.responses)
		}
	}
	return ""
}

// Interruption returns an impatience line with probability 0.1, else "".
func Interruption(rng Rand) string {
	if rng.Float64() < 0.1 {
		return sample(rng, interruptions)
	}
	return ""
}

// SuggestNextTopic walks the topic-adjacency table from the last 3 distinct
// recent topics; when every related topic was already discussed it falls
// back to the common pool.
func SuggestNextTopic(recentTopics []string, rng Rand) string {
	recent := recentTopics
	if len(recent) > 3 {
		recent = recent[:3]
	}
	var unique []string
	for _, t := range recent {
		if !containsString(unique, t) {
			unique = append(unique, t)
		}
	}

	var related []string
	for _, t := range unique {
		related = append(related, topicChains[t]...)
	}
	var fresh []string
	for _, t := range related {
		if !containsString(unique, t) {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) > 0 {
		return sample(rng, fresh)
	}
	return sample(rng, commonTopics)
}

// TopicIntroduction renders a proactive topic-change suffix.
func TopicIntroduction(topic string, rng Rand) string {
	return fmt.Sprintf(sample(rng, topicIntroductions), topic)
}

// FallbackResponse is the canned line served when no model is reachable or
// generation timed out.
func FallbackResponse(rng Rand) string {
	return sample(rng, fallbackResponses)
}

// FallbackPool exposes the canned lines for membership checks in tests.
func FallbackPool() []string {
	out := make([]string, len(fallbackResponses))
	copy(out, fallbackResponses)
	return out
}

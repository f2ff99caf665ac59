package mind

import (
	"fmt"
	"sort"
	"strings"

	"asuka-bot/internal/ai"
)

// BotName is the character identity embedded in every prompt.
const BotName = "Asuka"

// intensityTier buckets the emotion-adjusted level: high > 6, medium > 3,
// low otherwise.
func intensityTier(level float64, emotion Emotion) string {
	adjusted := adjustLevelByEmotion(level, emotion)
	switch {
	case adjusted > 6:
		return "high"
	case adjusted > 3:
		return "medium"
	default:
		return "low"
	}
}

// TsunderePhrase samples a signature phrase for the current tier.
func TsunderePhrase(level float64, emotion Emotion, rng Rand) string {
	return sample(rng, tsunderePhrases[intensityTier(level, emotion)])
}

// TopicResponse picks a saved response for topic, or fills a template when
// the store has nothing for it yet.
func TopicResponse(topic string, saved map[string][]string, rng Rand) string {
	if responses := saved[topic]; len(responses) > 0 {
		return sample(rng, responses)
	}
	return strings.ReplaceAll(sample(rng, responseTemplates), ":topic", topic)
}

// relevantTopicResponses renders up to 3 "topic: response" lines for the most
// recent topics, skipping topics with no saved responses.
func relevantTopicResponses(recentTopics []string, saved map[string][]string, rng Rand) string {
	var lines []string
	for _, topic := range recentTopics {
		responses := saved[topic]
		if len(responses) == 0 {
			continue
		}
		lines = append(lines, topic+": "+sample(rng, responses))
		if len(lines) == 3 {
			break
		}
	}
	return strings.Join(lines, "\n")
}

// topPerformanceAreas lists the user's best topics by count, first-seen order
// breaking ties via the stable sort over the vocabulary scan order.
func topPerformanceAreas(perf map[string]float64, n int) []string {
	var topics []string
	for _, t := range topicVocabulary {
		if _, ok := perf[t]; ok {
			topics = append(topics, t)
		}
	}
	for t := range perf {
		if containsString(topics, t) {
			continue
		}
		topics = append(topics, t)
	}
	sort.SliceStable(topics, func(i, j int) bool {
		return perf[topics[i]] > perf[topics[j]]
	})
	if len(topics) > n {
		topics = topics[:n]
	}
	return topics
}

func containsString(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// BuildPrompt assembles the full system prompt: identity block, sampled
// trait and signature phrase, retrieved topic responses, short-term context
// summary, dynamic memory addition and a deterministic summary of recent
// messages. The literal latest user message is always embedded.
func BuildPrompt(s *PersonaState, history []ai.Message, topicResponses map[string][]string, latestUserMessage string, rng Rand) string {
	trait := sample(rng, personalityTraits)
	phrase := TsunderePhrase(s.IntensityLevel, s.Emotion, rng)
	topicLine := TopicResponse(s.Topic, topicResponses, rng)

	recent := s.RecentTopics
	if len(recent) > 2 {
		recent = recent[:2]
	}
	relevant := relevantTopicResponses(recent, topicResponses, rng)
	if relevant == "" {
		relevant = s.Topic + ": " + topicLine
	}

	topPerf := strings.Join(topPerformanceAreas(s.Memory.UserPerformance, 2), ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a tsundere character inspired by Asuka from Neon Genesis Evangelion. Respond in Bahasa Indonesia.\n", BotName)
	fmt.Fprintf(&b, "Personality: Tsundere %.1f/10, Emotion: %s, Trait: %s\n", s.IntensityLevel, s.Emotion, trait)
	fmt.Fprintf(&b, "Context: Topic: %s, User Interest: %.0f/10\n", s.Topic, s.InterestLevel)
	fmt.Fprintf(&b, "Memory: Eva refs: %d, Piloting refs: %d\n", len(s.Memory.MentionedEva), len(s.Memory.MentionedPilotingSkills))
	fmt.Fprintf(&b, "User: Top areas: %s, Piloting: %.1f/10\n\n", topPerf, s.PerformanceScore)

	b.WriteString("Core traits: Tsundere, Competitive, Insecure, Guarded, Validation-seeking, Defensive\n\n")

	b.WriteString("Guidelines:\n")
	b.WriteString("- Respond directly to the user's message in a coherent manner\n")
	fmt.Fprintf(&b, "- Use this phrase naturally in your response: %q\n", phrase)
	b.WriteString("- Consider these relevant topic responses, but don't use them verbatim:\n")
	fmt.Fprintf(&b, "  %s\n", relevant)
	b.WriteString("- Balance hostility and hidden affection\n")
	b.WriteString("- React to the user's message content (show interest but try to hide it)\n")
	b.WriteString("- Keep the response focused and avoid abrupt topic changes\n")
	b.WriteString("- If appropriate, include a follow-up question related to the user's message\n\n")

	fmt.Fprintf(&b, "Latest user message: %q\n", latestUserMessage)
	b.WriteString("Respond directly and relevantly to this message, maintaining your tsundere personality.\n")

	fmt.Fprintf(&b, "\nConversation context: %s\n", s.ShortTerm.Summary())
	b.WriteString(DynamicPromptAddition(s, rng))
	if summary := SummarizeConversation(history); summary != "" {
		fmt.Fprintf(&b, "\nConversation Summary: %s\n", summary)
	}

	return b.String()
}

// DynamicPromptAddition renders the context-memory block: emotional trail,
// important points, mentioned characters and a suggested next topic.
func DynamicPromptAddition(s *PersonaState, rng Rand) string {
	emotions := make([]string, len(s.CtxMemory.LastEmotions))
	for i, e := range s.CtxMemory.LastEmotions {
		emotions[i] = string(e)
	}
	return fmt.Sprintf(
		"Recent emotional transitions: %s\nKey points to remember: %s\nSuggested next topic: %s\nRecently mentioned characters: %s\n",
		strings.Join(emotions, " -> "),
		strings.Join(s.CtxMemory.ImportantPoints, ", "),
		SuggestNextTopic(s.RecentTopics, rng),
		strings.Join(s.CtxMemory.LastMentionedCharacters, ", "),
	)
}

// SummarizeConversation builds a deterministic digest of the last 10
// messages: top-3 topics by count (first-seen tie-break), up to 5 key
// phrases, dominant sentiment and the literal last message.
func SummarizeConversation(messages []ai.Message) string {
	if len(messages) == 0 {
		return ""
	}
	recent := messages
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}

	counts := make(map[string]int)
	var order []string
	seenPhrases := make(map[string]bool)
	var phrases []string
	var sentiments []string

	for _, m := range recent {
		for _, t := range ExtractTopics(m.Content) {
			if counts[t] == 0 {
				order = append(order, t)
			}
			counts[t]++
		}
		for _, e := range ExtractEntities(m.Content) {
			if !seenPhrases[e] {
				seenPhrases[e] = true
				phrases = append(phrases, e)
			}
		}
		sentiments = append(sentiments, ClassifySentiment(m.Content))
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 3 {
		order = order[:3]
	}
	if len(phrases) > 5 {
		phrases = phrases[:5]
	}

	return fmt.Sprintf(
		"Recent topics: %s\nKey phrases: %s\nOverall sentiment: %s\nLast message: %s",
		strings.Join(order, ", "),
		strings.Join(phrases, ", "),
		MostFrequent(sentiments),
		recent[len(recent)-1].Content,
	)
}

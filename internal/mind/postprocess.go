package mind

import (
	"regexp"
	"strings"
)

var topicPrefixRe = regexp.MustCompile(`^[a-zA-Z]+:\s*`)

// PostProcess finalizes a raw model reply. Order matters: the topic-label
// prefix is stripped before the phrase check, and the phrase is injected
// before the follow-up check since it may itself contain a question mark.
// Applying PostProcess to its own output never injects a second phrase.
func PostProcess(raw string, s *PersonaState, rng Rand) string {
	out := topicPrefixRe.ReplaceAllString(raw, "")

	tier := intensityTier(s.IntensityLevel, s.Emotion)
	if !containsAnyPhrase(out, tsunderePhrases[tier]) {
		out = TsunderePhrase(s.IntensityLevel, s.Emotion, rng) + " " + out
	}

	if !strings.Contains(out, "?") {
		out += " " + sample(rng, followUpQuestions)
	}

	return out
}

// containsAnyPhrase reports whether text already carries one of the tier's
// signature phrases, case-insensitively.
func containsAnyPhrase(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

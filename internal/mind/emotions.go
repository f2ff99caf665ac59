package mind

import (
	"regexp"
	"strings"
)

var (
	complimentRe = regexp.MustCompile(`(?i)terima kasih|hebat|keren|bagus|pintar`)
	insultRe     = regexp.MustCompile(`(?i)bodoh|payah|lemah|menyebalkan|baka`)
)

// topicVocabulary is scanned in order; first substring match wins.
var topicVocabulary = []string{"eva", "piloting", "nerv", "angel", "synch-ratio"}

// TransitionEmotion moves one step along the spectrum toward target. An
// emotion outside the spectrum (either end) jumps directly to target.
func TransitionEmotion(current, target Emotion) Emotion {
	ci := spectrumIndex(current)
	ti := spectrumIndex(target)
	if ci < 0 || ti < 0 {
		return target
	}
	switch {
	case ti > ci:
		return emotionSpectrum[ci+1]
	case ti < ci:
		return emotionSpectrum[ci-1]
	default:
		return current
	}
}

func spectrumIndex(e Emotion) int {
	for i, s := range emotionSpectrum {
		if s == e {
			return i
		}
	}
	return -1
}

// UpdateEmotion applies the first matching trigger as a one-step spectrum
// transition. Without a match the emotion drifts one step toward tsun with
// probability 0.7, otherwise toward neutral.
func UpdateEmotion(s *PersonaState, text string, rng Rand) {
	target := MatchEmotionTrigger(text)
	if target == "" {
		target = EmotionNeutral
		if rng.Float64() > 0.3 {
			target = EmotionTsun
		}
	}
	s.Emotion = TransitionEmotion(s.Emotion, target)
	s.CtxMemory.LastEmotions = append(s.CtxMemory.LastEmotions, s.Emotion)
	if len(s.CtxMemory.LastEmotions) > emotionHistoryCap {
		s.CtxMemory.LastEmotions = s.CtxMemory.LastEmotions[len(s.CtxMemory.LastEmotions)-emotionHistoryCap:]
	}
}

// AdjustIntensity moves the tsundere dial. Compliments lower it and raise
// confidence; insults raise it and force the angry pole. Decay of 0.2 per
// call is unconditional. Counters reset once they pass 5.
func AdjustIntensity(s *PersonaState, text string) {
	if complimentRe.MatchString(text) {
		s.IntensityLevel = clampLevel(s.IntensityLevel - 1)
		s.Memory.ComplimentsReceived++
		s.ConfidenceLevel = clampLevel(s.ConfidenceLevel + 1)
	}

	if insultRe.MatchString(text) {
		s.IntensityLevel = clampLevel(s.IntensityLevel + 1)
		s.Memory.InsultsReceived++
		s.Emotion = EmotionAngry
	}

	s.IntensityLevel = clampLevel(s.IntensityLevel - intensityDecayPerTurn)

	if s.Memory.ComplimentsReceived > counterResetThreshold {
		s.Memory.ComplimentsReceived = 0
	}
	if s.Memory.InsultsReceived > counterResetThreshold {
		s.Memory.InsultsReceived = 0
	}
}

// UpdateTopic scans the fixed vocabulary; the first case-insensitive
// substring match becomes the current topic. Confidence and piloting
// performance get a small nudge whether or not anything matched.
func UpdateTopic(s *PersonaState, text string) {
	lower := strings.ToLower(text)
	for _, topic := range topicVocabulary {
		if !strings.Contains(lower, topic) {
			continue
		}
		s.Topic = topic
		s.InterestLevel = clampLevel(s.InterestLevel + 1)
		s.RecentTopics = pushBounded(s.RecentTopics, topic, recentTopicsCap)
		s.Memory.UserPerformance[topic]++
		s.CtxMemory.LastTopics = pushBounded(s.CtxMemory.LastTopics, topic, contextMemoryCap)
		break
	}
	s.ConfidenceLevel = clampLevel(s.ConfidenceLevel + 0.5)
	s.PerformanceScore = clampLevel(s.PerformanceScore + 0.3)
}

// adjustLevelByEmotion shifts the intensity by a fixed per-emotion offset
// before tier selection, clamped to [0,10].
func adjustLevelByEmotion(level float64, emotion Emotion) float64 {
	offsets := map[Emotion]float64{
		EmotionTsun:        2,
		EmotionDere:        -2,
		EmotionNeutral:     0,
		EmotionExcited:     -1,
		EmotionAnnoyed:     1,
		EmotionAngry:       2,
		EmotionProud:       0,
		EmotionInsecure:    1,
		EmotionCompetitive: 2,
		EmotionVulnerable:  -2,
		EmotionFrustrated:  1,
		EmotionDefensive:   1,
		EmotionSmug:        2,
		EmotionReluctant:   -1,
		EmotionImpressed:   -2,
	}
	return clampLevel(level + offsets[emotion])
}

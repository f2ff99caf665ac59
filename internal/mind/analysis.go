package mind

import (
	"regexp"
	"strings"
)

// Lexical analyzers. All of them are pure and never fail: malformed input
// degrades to empty results.

var entityRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

var (
	positiveWords = []string{"happy", "good", "great", "excellent"}
	negativeWords = []string{"sad", "bad", "terrible", "awful"}
)

// ExtractTopics keeps whitespace tokens longer than 5 characters.
// Intentionally naive, no stemming or stopwords.
func ExtractTopics(text string) []string {
	var topics []string
	for _, tok := range strings.Fields(text) {
		if len(tok) > 5 {
			topics = append(topics, tok)
		}
	}
	return topics
}

// ExtractEntities returns capitalized-word tokens in order of appearance.
func ExtractEntities(text string) []string {
	return entityRe.FindAllString(text, -1)
}

// ClassifySentiment is a keyword membership test. Positive wins over
// negative; default is neutral.
func ClassifySentiment(text string) string {
	lower := strings.ToLower(text)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			return "positive"
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			return "negative"
		}
	}
	return "neutral"
}

// emotionTriggers are checked in order; the first matching pattern wins.
var emotionTriggers = []struct {
	re      *regexp.Regexp
	emotion Emotion
}{
	{regexp.MustCompile(`(?i)marah|kesal|baka`), EmotionAngry},
	{regexp.MustCompile(`(?i)eva|pilot`), EmotionCompetitive},
	{regexp.MustCompile(`(?i)terima kasih|hebat`), EmotionInsecure},
	{regexp.MustCompile(`(?i)malu|blush`), EmotionVulnerable},
	{regexp.MustCompile(`(?i)bangga|keren`), EmotionProud},
	{regexp.MustCompile(`(?i)suka|cinta`), EmotionTsun},
	{regexp.MustCompile(`(?i)benci|bodoh`), EmotionAngry},
	{regexp.MustCompile(`(?i)senang|seru`), EmotionExcited},
	{regexp.MustCompile(`(?i)payah|lemah`), EmotionAnnoyed},
	{regexp.MustCompile(`(?i)haha|lucu`), EmotionAnnoyed},
	{regexp.MustCompile(`(?i)frustasi|sulit`), EmotionFrustrated},
	{regexp.MustCompile(`(?i)hebat|luar biasa`), EmotionImpressed},
	{regexp.MustCompile(`(?i)tidak setuju|salah`), EmotionDefensive},
	{regexp.MustCompile(`(?i)aku lebih baik`), EmotionSmug},
	{regexp.MustCompile(`(?i)mungkin|baiklah`), EmotionReluctant},
}

// MatchEmotionTrigger returns the target emotion of the first matching
// trigger, or "" when nothing matched.
func MatchEmotionTrigger(text string) Emotion {
	for _, t := range emotionTriggers {
		if t.re.MatchString(text) {
			return t.emotion
		}
	}
	return ""
}

// MostFrequent returns the most frequent value; ties go to the value seen
// first. Empty input yields "".
func MostFrequent(values []string) string {
	if len(values) == 0 {
		return ""
	}
	counts := make(map[string]int, len(values))
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}

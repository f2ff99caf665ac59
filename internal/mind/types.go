// Package mind holds the persona engine: lexical analyzers, the per-chat
// persona state, the prompt composer and the response post-processor.
package mind

import (
	"time"
)

// Emotion is a discrete label on the tsun<->dere spectrum plus off-spectrum
// states reachable only by trigger.
type Emotion string

const (
	EmotionTsun        Emotion = "tsun"
	EmotionAngry       Emotion = "angry"
	EmotionAnnoyed     Emotion = "annoyed"
	EmotionNeutral     Emotion = "neutral"
	EmotionImpressed   Emotion = "impressed"
	EmotionDere        Emotion = "dere"
	EmotionExcited     Emotion = "excited"
	EmotionProud       Emotion = "proud"
	EmotionInsecure    Emotion = "insecure"
	EmotionCompetitive Emotion = "competitive"
	EmotionVulnerable  Emotion = "vulnerable"
	EmotionFrustrated  Emotion = "frustrated"
	EmotionDefensive   Emotion = "defensive"
	EmotionSmug        Emotion = "smug"
	EmotionReluctant   Emotion = "reluctant"
)

// emotionSpectrum orders the core emotions from hostile to affectionate.
// Transitions move one step at a time along this list.
var emotionSpectrum = []Emotion{
	EmotionTsun, EmotionAngry, EmotionAnnoyed,
	EmotionNeutral, EmotionImpressed, EmotionDere,
}

const (
	// DefaultTopic is the sentinel before any vocabulary topic matched.
	DefaultTopic = "general"

	recentTopicsCap    = 5
	emotionHistoryCap  = 5
	contextMemoryCap   = 5
	sentimentHistory   = 10
	shortTermTopicsCap = 10

	counterResetThreshold = 5
	intensityDecayPerTurn = 0.2
)

// Memory is the long-lived per-chat counter block.
type Memory struct {
	MentionedEva            []string           `json:"mentioned_eva"`
	MentionedPilotingSkills []string           `json:"mentioned_piloting_skills"`
	ComplimentsReceived     int                `json:"compliments_received"`
	InsultsReceived         int                `json:"insults_received"`
	UserPerformance         map[string]float64 `json:"user_performance"`
}

// ContextMemory is a bounded, de-duplicated trail of the conversation, fed
// into the dynamic prompt addition.
type ContextMemory struct {
	LastTopics              []string  `json:"last_topics"`
	LastMentionedCharacters []string  `json:"last_mentioned_characters"`
	LastEmotions            []Emotion `json:"last_emotions"`
	ImportantPoints         []string  `json:"important_points"`
}

// ShortTermContext tracks decaying topic preferences, entities seen and a
// rolling sentiment window. Weights halve-ish every hour of silence.
type ShortTermContext struct {
	TopicWeights     map[string]float64 `json:"topic_weights"`
	topicOrder       []string
	Entities         []string  `json:"entities"`
	SentimentHistory []string  `json:"sentiment_history"`
	LastUpdate       time.Time `json:"last_update"`
}

// PersonaState is everything the engine knows about one chat. Mutated only
// through the update functions in this package; the caller serializes access
// per chat id.
type PersonaState struct {
	Emotion        Emotion `json:"emotion"`
	IntensityLevel float64 `json:"intensity_level"` // 0 dere .. 10 full tsun

	Topic            string   `json:"topic"`
	RecentTopics     []string `json:"recent_topics"`
	InterestLevel    float64  `json:"interest_level"`
	ConfidenceLevel  float64  `json:"confidence_level"`
	PerformanceScore float64  `json:"performance_score"`

	Memory    Memory        `json:"memory"`
	CtxMemory ContextMemory `json:"context_memory"`

	ShortTerm ShortTermContext `json:"short_term"`
}

// NewPersonaState returns the defaults a chat starts with: fully guarded.
func NewPersonaState() *PersonaState {
	return &PersonaState{
		Emotion:          EmotionTsun,
		IntensityLevel:   10,
		Topic:            DefaultTopic,
		InterestLevel:    0,
		ConfidenceLevel:  10,
		PerformanceScore: 5,
		Memory: Memory{
			UserPerformance: make(map[string]float64),
		},
		ShortTerm: ShortTermContext{
			TopicWeights: make(map[string]float64),
			LastUpdate:   time.Now(),
		},
	}
}

func clampLevel(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 10 {
		return 10
	}
	return x
}

// pushBounded prepends v and evicts from the tail past limit.
func pushBounded(list []string, v string, limit int) []string {
	list = append([]string{v}, list...)
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}

// pushBoundedUnique prepends v, removes later duplicates, evicts past limit.
func pushBoundedUnique(list []string, v string, limit int) []string {
	out := []string{v}
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

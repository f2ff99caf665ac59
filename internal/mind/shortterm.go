package mind

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// ApplyInbound folds one message into the short-term context: existing topic
// weights decay by exp(-elapsed/1h), new topics add 1, entities accumulate
// and the sentiment window rolls.
func (c *ShortTermContext) ApplyInbound(text string, now time.Time) {
	if c.TopicWeights == nil {
		c.TopicWeights = make(map[string]float64)
	}

	elapsed := now.Sub(c.LastUpdate)
	if elapsed > 0 && !c.LastUpdate.IsZero() {
		decay := math.Exp(-elapsed.Hours())
		for k, v := range c.TopicWeights {
			c.TopicWeights[k] = v * decay
		}
	}

	for _, topic := range ExtractTopics(text) {
		if _, seen := c.TopicWeights[topic]; !seen {
			c.topicOrder = append(c.topicOrder, topic)
		}
		c.TopicWeights[topic]++
	}
	if len(c.topicOrder) == 0 && len(c.TopicWeights) > 0 {
		c.rebuildOrder()
	}

	for _, e := range ExtractEntities(text) {
		c.Entities = append(c.Entities, e)
	}

	c.SentimentHistory = append(c.SentimentHistory, ClassifySentiment(text))
	if len(c.SentimentHistory) > sentimentHistory {
		c.SentimentHistory = c.SentimentHistory[len(c.SentimentHistory)-sentimentHistory:]
	}

	c.LastUpdate = now
}

// rebuildOrder recovers insertion order after a snapshot restore, where only
// the weight map survived. Sorted by weight then name so the result is stable.
func (c *ShortTermContext) rebuildOrder() {
	for k := range c.TopicWeights {
		c.topicOrder = append(c.topicOrder, k)
	}
	sort.Slice(c.topicOrder, func(i, j int) bool {
		wi, wj := c.TopicWeights[c.topicOrder[i]], c.TopicWeights[c.topicOrder[j]]
		if wi != wj {
			return wi > wj
		}
		return c.topicOrder[i] < c.topicOrder[j]
	})
}

// TopTopics returns up to n topics by decayed weight, ties broken by first
// insertion.
func (c *ShortTermContext) TopTopics(n int) []string {
	type wt struct {
		topic  string
		weight float64
		seen   int
	}
	var all []wt
	for i, t := range c.topicOrder {
		if w, ok := c.TopicWeights[t]; ok {
			all = append(all, wt{t, w, i})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].weight != all[j].weight {
			return all[i].weight > all[j].weight
		}
		return all[i].seen < all[j].seen
	})
	if len(all) > n {
		all = all[:n]
	}
	out := make([]string, len(all))
	for i, w := range all {
		out[i] = w.topic
	}
	return out
}

// Summary renders the block embedded into the composed prompt.
func (c *ShortTermContext) Summary() string {
	entities := c.Entities
	if len(entities) > 5 {
		entities = entities[len(entities)-5:]
	}
	return fmt.Sprintf(
		"Top topics: %s\nRecent entities: %s\nRecent sentiment: %s",
		strings.Join(c.TopTopics(5), ", "),
		strings.Join(entities, ", "),
		MostFrequent(c.SentimentHistory),
	)
}

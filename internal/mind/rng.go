package mind

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the randomness source behind trait/phrase sampling and the
// probabilistic interruption/topic-suggestion rolls. Tests inject a seeded
// source to make composition and post-processing reproducible.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// lockedRand makes a math/rand source safe across chats.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// NewRand returns a time-seeded concurrency-safe source.
func NewRand() Rand {
	return &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededRand returns a deterministic source for tests.
func NewSeededRand(seed int64) Rand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func sample(rng Rand, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.Intn(len(pool))]
}

package mind

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/keshon/datastore"
)

var (
	evaMentionRe   = regexp.MustCompile(`(?i)eva`)
	pilotMentionRe = regexp.MustCompile(`(?i)pilot`)
)

var promptCharacters = []string{"Shinji", "Rei", "Misato", "Gendo", "Ritsuko"}
var importantKeywords = []string{"Eva", "Angel", "NERV", "pilot", "Third Impact"}

// Store owns one PersonaState per chat id, created lazily with defaults.
// States optionally round-trip through a JSON snapshot file so a restart
// does not reset tsundere levels. Safe for concurrent use; callers still
// serialize the update sequence per chat id.
type Store struct {
	mu     sync.RWMutex
	chats  map[int64]*PersonaState
	rng    Rand
	ds     *datastore.DataStore
	cancel context.CancelFunc
}

// NewStore builds a Store. snapshotPath may be empty to disable persistence.
func NewStore(snapshotPath string, rng Rand) (*Store, error) {
	s := &Store{
		chats: make(map[int64]*PersonaState),
		rng:   rng,
	}
	if snapshotPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		ds, err := datastore.New(ctx, snapshotPath)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("open persona snapshots: %w", err)
		}
		s.ds = ds
		s.cancel = cancel
	}
	return s, nil
}

// Rand exposes the store's randomness source for sampling call sites.
func (s *Store) Rand() Rand { return s.rng }

// Chat returns the state for chatID, restoring a snapshot or creating
// defaults on first sight.
func (s *Store) Chat(chatID int64) *PersonaState {
	s.mu.RLock()
	st := s.chats[chatID]
	s.mu.RUnlock()
	if st != nil {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st = s.chats[chatID]; st != nil {
		return st
	}
	st = s.restore(chatID)
	if st == nil {
		st = NewPersonaState()
	}
	s.chats[chatID] = st
	return st
}

// ApplyInbound runs the full inbound update sequence on one user message:
// short-term context decay, emotion transition, intensity adjustment and
// topic tracking.
func (s *Store) ApplyInbound(chatID int64, text string, now time.Time) *PersonaState {
	st := s.Chat(chatID)
	st.ShortTerm.ApplyInbound(text, now)
	UpdateEmotion(st, text, s.rng)
	AdjustIntensity(st, text)
	UpdateTopic(st, text)
	return st
}

// ApplyOutbound folds the assistant's reply into the short-term context.
func (s *Store) ApplyOutbound(chatID int64, text string, now time.Time) {
	st := s.Chat(chatID)
	st.ShortTerm.ApplyInbound(text, now)
}

// RecordExchange updates the long-lived memory from one completed exchange:
// tagged mentions, character and keyword trails, and the occasional
// personality drift once the conversation is long enough.
func (s *Store) RecordExchange(chatID int64, userText, botText string, conversationLength int) {
	st := s.Chat(chatID)

	if evaMentionRe.MatchString(userText) && !containsString(st.Memory.MentionedEva, userText) {
		st.Memory.MentionedEva = append(st.Memory.MentionedEva, userText)
	}
	if pilotMentionRe.MatchString(userText) && !containsString(st.Memory.MentionedPilotingSkills, userText) {
		st.Memory.MentionedPilotingSkills = append(st.Memory.MentionedPilotingSkills, userText)
	}

	for _, ch := range promptCharacters {
		if strings.Contains(userText, ch) || strings.Contains(botText, ch) {
			st.CtxMemory.LastMentionedCharacters = pushBoundedUnique(st.CtxMemory.LastMentionedCharacters, ch, contextMemoryCap)
		}
	}
	for _, kw := range importantKeywords {
		if strings.Contains(userText, kw) || strings.Contains(botText, kw) {
			st.CtxMemory.ImportantPoints = pushBoundedUnique(st.CtxMemory.ImportantPoints, kw, contextMemoryCap)
		}
	}

	if conversationLength > 10 && s.rng.Float64() < 0.3 {
		st.IntensityLevel = clampLevel(st.IntensityLevel + (s.rng.Float64()*2 - 1))
	}
}

// Snapshot persists one chat's state. No-op without a snapshot file.
func (s *Store) Snapshot(chatID int64) {
	if s.ds == nil {
		return
	}
	s.mu.RLock()
	st := s.chats[chatID]
	s.mu.RUnlock()
	if st == nil {
		return
	}
	if err := s.ds.Set(snapshotKey(chatID), st); err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("persona snapshot not written")
	}
}

// SnapshotAll persists every known chat, e.g. on shutdown or a timer.
func (s *Store) SnapshotAll() {
	if s.ds == nil {
		return
	}
	s.mu.RLock()
	ids := make([]int64, 0, len(s.chats))
	for id := range s.chats {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	for _, id := range ids {
		s.Snapshot(id)
	}
	log.Debug().Int("chats", len(ids)).Msg("persona snapshots written")
}

// Close flushes snapshots and releases the snapshot file. The datastore's
// background saver exits only when its context ends, so the context is
// cancelled before Close.
func (s *Store) Close() error {
	if s.ds == nil {
		return nil
	}
	s.SnapshotAll()
	s.cancel()
	return s.ds.Close()
}

func (s *Store) restore(chatID int64) *PersonaState {
	if s.ds == nil {
		return nil
	}
	var st PersonaState
	ok, err := s.ds.Get(snapshotKey(chatID), &st)
	if err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("persona snapshot unreadable")
		return nil
	}
	if !ok {
		return nil
	}
	if st.Memory.UserPerformance == nil {
		st.Memory.UserPerformance = make(map[string]float64)
	}
	if st.ShortTerm.TopicWeights == nil {
		st.ShortTerm.TopicWeights = make(map[string]float64)
	}
	return &st
}

func snapshotKey(chatID int64) string {
	return "persona:" + strconv.FormatInt(chatID, 10)
}

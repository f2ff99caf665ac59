// Package engine is the conversation driver: it wires the persona state,
// the message store and the model failover into one GenerateReply call that
// always produces a human-visible string.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"

	"asuka-bot/internal/ai"
	"asuka-bot/internal/mind"
	"asuka-bot/internal/storage"
	"asuka-bot/pkg/retrylimit"
	"asuka-bot/pkg/util"
)

const (
	historyWindow     = 5
	interruptionSpace = " "
	topicSuggestProb  = 0.3
)

// Stats are process-lifetime counters, exposed on the ping endpoint.
type Stats struct {
	MessagesHandled atomic.Int64
	FallbacksServed atomic.Int64
	HookHits        atomic.Int64
	Interruptions   atomic.Int64
}

// Engine drives one reply per inbound message. Per-chat processing is
// serialized behind a chat mutex; different chats run fully in parallel.
type Engine struct {
	minds    *mind.Store
	messages storage.Store
	failover *ai.Failover
	limiter  *retrylimit.AdaptiveLimiter
	timeout  time.Duration

	mu        sync.Mutex
	chatLocks map[int64]*sync.Mutex

	Stats Stats
}

func New(minds *mind.Store, messages storage.Store, failover *ai.Failover, limiter *retrylimit.AdaptiveLimiter, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Engine{
		minds:     minds,
		messages:  messages,
		failover:  failover,
		limiter:   limiter,
		timeout:   timeout,
		chatLocks: make(map[int64]*sync.Mutex),
	}
}

func (e *Engine) chatLock(chatID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l := e.chatLocks[chatID]
	if l == nil {
		l = &sync.Mutex{}
		e.chatLocks[chatID] = l
	}
	return l
}

// Greet handles first contact: a canned greeting, persisted so the history
// starts with it.
func (e *Engine) Greet(ctx context.Context, chatID int64) string {
	l := e.chatLock(chatID)
	l.Lock()
	defer l.Unlock()

	greeting := mind.GreetingLine
	if err := e.messages.AppendMessages(ctx, chatID, []ai.Message{{Role: "assistant", Content: greeting}}); err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("greeting not persisted")
	}
	e.minds.Chat(chatID)
	return greeting
}

// GenerateReply produces the bot's reply for one user message. It never
// returns an error: every internal failure, including the overall deadline,
// degrades to a canned fallback line.
func (e *Engine) GenerateReply(ctx context.Context, chatID int64, text string) string {
	e.Stats.MessagesHandled.Inc()
	start := time.Now()

	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// The chat lock travels with the generation goroutine: a generation that
	// outlives its deadline keeps the lock until it finishes, so its state
	// mutations never interleave with the next message for the same chat.
	done := make(chan string, 1)
	go func() {
		l := e.chatLock(chatID)
		l.Lock()
		defer l.Unlock()
		done <- e.generate(genCtx, chatID, text)
	}()

	select {
	case reply := <-done:
		log.Debug().
			Int64("chat_id", chatID).
			Dur("took", time.Since(start)).
			Msg("reply generated")
		return reply
	case <-genCtx.Done():
		e.Stats.FallbacksServed.Inc()
		log.Warn().
			Int64("chat_id", chatID).
			Dur("took", time.Since(start)).
			Msg("generation deadline exceeded, serving fallback")
		return mind.FallbackResponse(e.minds.Rand())
	}
}

func (e *Engine) generate(ctx context.Context, chatID int64, text string) string {
	rng := e.minds.Rand()
	now := time.Now()

	state := e.minds.ApplyInbound(chatID, text, now)

	if err := e.messages.AppendMessages(ctx, chatID, []ai.Message{{Role: "user", Content: text}}); err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("user message not persisted")
	}

	var reply string
	modelCalled := false

	if hook := mind.CheckHooks(text, rng); hook != "" {
		e.Stats.HookHits.Inc()
		reply = hook
	} else if line := mind.Interruption(rng); line != "" {
		e.Stats.Interruptions.Inc()
		reply = line + interruptionSpace
	} else {
		var ok bool
		reply, ok = e.callModel(ctx, chatID, state, text, rng)
		if !ok {
			e.Stats.FallbacksServed.Inc()
			return mind.FallbackResponse(rng)
		}
		modelCalled = true
	}

	reply = mind.PostProcess(reply, state, rng)

	e.minds.ApplyOutbound(chatID, reply, time.Now())

	history, err := e.messages.GetHistory(ctx, chatID)
	if err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("history unavailable for exchange record")
	}
	e.minds.RecordExchange(chatID, text, reply, len(history))

	if err := e.messages.SaveTopicResponse(ctx, chatID, state.Topic, reply); err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("topic response not persisted")
	}
	e.minds.Snapshot(chatID)

	if modelCalled && rng.Float64() < topicSuggestProb {
		topic := mind.SuggestNextTopic(state.RecentTopics, rng)
		reply += " " + mind.TopicIntroduction(topic, rng)
	}

	return reply
}

// callModel resolves a working model/credential, composes the prompt and
// invokes the adapter under the retry policy. History fetch and model
// selection are the only two independent steps, so they run in parallel.
func (e *Engine) callModel(ctx context.Context, chatID int64, state *mind.PersonaState, text string, rng mind.Rand) (string, bool) {
	var (
		history        []ai.Message
		topicResponses map[string][]string
		selection      ai.Selection
	)

	err := util.Parallel(ctx, []func(context.Context) error{
		func(ctx context.Context) error {
			var err error
			history, err = e.messages.GetHistory(ctx, chatID)
			if err != nil {
				return err
			}
			topicResponses, err = e.messages.GetTopicResponses(ctx, chatID)
			return err
		},
		func(ctx context.Context) error {
			var err error
			selection, err = e.failover.WorkingModel(ctx)
			return err
		},
	}, 2)
	if err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("no generation path")
		return "", false
	}

	prompt := mind.BuildPrompt(state, history, topicResponses, text, rng)

	window := history
	if len(window) > historyWindow {
		window = window[len(window)-historyWindow:]
	}

	maxTokens := adaptiveMaxTokens(len(text))

	var reply string
	err = retrylimit.Do(ctx, func() error {
		var callErr error
		reply, callErr = selection.Model.Invoke(ctx, window, prompt, selection.Credential, maxTokens)
		if callErr != nil {
			return callErr
		}
		if reply == "" {
			return &ai.ProviderError{Provider: selection.Model.ID, Reason: "empty generation"}
		}
		return nil
	}, e.limiter, retrylimit.DefaultConfig())
	if err != nil {
		e.failover.Invalidate()
		log.Error().
			Int64("chat_id", chatID).
			Str("model", selection.Model.ID).
			Str("key", ai.RedactKey(selection.Credential)).
			Err(err).
			Msg("generation failed")
		return "", false
	}

	log.Info().
		Int64("chat_id", chatID).
		Str("model", selection.Model.ID).
		Str("key", ai.RedactKey(selection.Credential)).
		Str("emotion", string(state.Emotion)).
		Float64("tsundere_level", state.IntensityLevel).
		Str("topic", state.Topic).
		Msg("reply from model")
	return reply, true
}

// adaptiveMaxTokens gives longer questions more room, capped at +100.
func adaptiveMaxTokens(messageLen int) int {
	extra := float64(messageLen) * 1.5
	if extra > 100 {
		extra = 100
	}
	return 100 + int(extra)
}

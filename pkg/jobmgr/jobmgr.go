// Package jobmgr runs named background jobs with cancellation and in-memory
// tracking. The bot uses it for long-lived maintenance loops such as persona
// snapshotting.
//
// Typical usage:
//
//	jm := jobmgr.NewManager()
//	_ = jm.StartPeriodic(ctx, "persona-snapshots", 5*time.Minute, func(ctx context.Context) error {
//	    minds.SnapshotAll()
//	    return nil
//	})
//
//	// on shutdown
//	jm.StopAll()
//
// The package is intentionally minimal: no retry logic, no persistence. Jobs
// run in separate goroutines and are removed automatically on completion.
package jobmgr

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Job represents a running unit of work.
type Job struct {
	Name   string
	Cancel context.CancelFunc
}

// Manager orchestrates starting, stopping and tracking jobs.
// It is safe for concurrent use.
type Manager struct {
	mu   sync.Mutex
	jobs map[string]*Job
	wg   sync.WaitGroup
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{jobs: make(map[string]*Job)}
}

// StartAsync runs a job in a separate goroutine and returns immediately.
// If a job with the same name is already running, an error is returned.
// The job's context is cancelled when parent ends or Stop is called.
func (m *Manager) StartAsync(parent context.Context, name string, runner func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(parent)

	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		cancel()
		return fmt.Errorf("job %q is already running", name)
	}
	m.jobs[name] = &Job{Name: name, Cancel: cancel}
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		log.Debug().Str("job", name).Msg("job started")

		if err := runner(ctx); err != nil && err != context.Canceled {
			log.Error().Str("job", name).Err(err).Msg("job failed")
		} else {
			log.Debug().Str("job", name).Msg("job finished")
		}

		m.mu.Lock()
		delete(m.jobs, name)
		m.mu.Unlock()
		cancel()
	}()

	return nil
}

// StartPeriodic runs fn every interval until the job is stopped or the parent
// context ends. A failing tick is logged and does not stop the loop.
func (m *Manager) StartPeriodic(parent context.Context, name string, interval time.Duration, fn func(ctx context.Context) error) error {
	return m.StartAsync(parent, name, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					log.Warn().Str("job", name).Err(err).Msg("periodic tick failed")
				}
			}
		}
	})
}

// Stop cancels a running job by name.
// If the job is not running, an error is returned.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("job %q not running", name)
	}
	job.Cancel()
	delete(m.jobs, name)
	return nil
}

// StopAll cancels every running job and waits for their goroutines to exit.
func (m *Manager) StopAll() {
	m.mu.Lock()
	for name, job := range m.jobs {
		job.Cancel()
		delete(m.jobs, name)
	}
	m.mu.Unlock()
	m.wg.Wait()
}

// List returns the names of active jobs.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	return out
}

package jobmgr

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestStartAsync_DuplicateNameRejected(t *testing.T) {
	m := NewManager()
	block := make(chan struct{})
	err := m.StartAsync(context.Background(), "loop", func(ctx context.Context) error {
		<-block
		return nil
	})
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := m.StartAsync(context.Background(), "loop", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected duplicate name error")
	}
	close(block)
	m.StopAll()
}

func TestStartAsync_RemovedOnCompletion(t *testing.T) {
	m := NewManager()
	done := make(chan struct{})
	err := m.StartAsync(context.Background(), "once", func(context.Context) error {
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	<-done
	m.StopAll()
	if names := m.List(); len(names) != 0 {
		t.Fatalf("job still tracked: %v", names)
	}
}

func TestStop_CancelsJobContext(t *testing.T) {
	m := NewManager()
	cancelled := make(chan struct{})
	err := m.StartAsync(context.Background(), "loop", func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Stop("loop"); err != nil {
		t.Fatalf("stop: %v", err)
	}
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("job context not cancelled")
	}
	if err := m.Stop("loop"); err == nil {
		t.Fatal("expected error stopping twice")
	}
}

func TestStartPeriodic_TicksUntilStopped(t *testing.T) {
	m := NewManager()
	var ticks atomic.Int64
	err := m.StartPeriodic(context.Background(), "tick", 5*time.Millisecond, func(context.Context) error {
		ticks.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	deadline := time.Now().Add(time.Second)
	for ticks.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	m.StopAll()
	if ticks.Load() < 2 {
		t.Fatalf("expected at least 2 ticks, got %d", ticks.Load())
	}
}

func TestStartAsync_ParentContextCancels(t *testing.T) {
	m := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	err := m.StartAsync(ctx, "loop", func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return ctx.Err()
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("parent cancellation not propagated")
	}
	m.StopAll()
}

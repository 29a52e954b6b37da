package server_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wordrush/wordrush/internal/server"
)

// recorder tracks start/stop ordering across services.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// blockingService runs until stopped.
func blockingService(rec *recorder, name string) *server.FuncService {
	done := make(chan struct{})
	return &server.FuncService{
		StartFn: func() error {
			rec.add("start:" + name)
			<-done
			return nil
		},
		StopFn: func() {
			rec.add("stop:" + name)
			close(done)
		},
	}
}

func TestLifecycle_StopsInReverseOrderOnCancel(t *testing.T) {
	rec := &recorder{}
	lc := server.NewLifecycle(zap.NewNop())
	lc.Add("first", blockingService(rec, "first"))
	lc.Add("second", blockingService(rec, "second"))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- lc.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	events := rec.snapshot()
	require.Len(t, events, 4)
	assert.Contains(t, events[:2], "start:first")
	assert.Contains(t, events[:2], "start:second")
	assert.Equal(t, "stop:second", events[2], "services stop in reverse registration order")
	assert.Equal(t, "stop:first", events[3])
}

func TestLifecycle_ServiceFailureTriggersShutdown(t *testing.T) {
	rec := &recorder{}
	lc := server.NewLifecycle(zap.NewNop())
	lc.Add("healthy", blockingService(rec, "healthy"))
	lc.Add("failing", &server.FuncService{
		StartFn: func() error { return errors.New("bind failed") },
		StopFn:  func() { rec.add("stop:failing") },
	})

	errCh := make(chan error, 1)
	go func() { errCh <- lc.Run(context.Background()) }()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after service failure")
	}
	assert.Contains(t, rec.snapshot(), "stop:healthy")
}

func TestLifecycle_NoServices(t *testing.T) {
	lc := server.NewLifecycle(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, lc.Run(ctx))
}

package room_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wordrush/wordrush/internal/game/room"
	"github.com/wordrush/wordrush/internal/game/wordsource"
)

// seqSource is a deterministic randomness source cycling through vals.
type seqSource struct {
	mu   sync.Mutex
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func newSeq(vals ...int) *seqSource { return &seqSource{vals: vals} }

// stubSupply is a canned word supply with deterministic draws.
type stubSupply struct {
	dict      map[string]bool
	dictOrder []string
	source    []string
	riddles   []wordsource.Riddle
}

func newStubSupply(sourceWords []string, dictWords []string) *stubSupply {
	s := &stubSupply{
		dict:      make(map[string]bool),
		dictOrder: dictWords,
		source:    sourceWords,
	}
	for _, w := range dictWords {
		s.dict[w] = true
	}
	for _, w := range sourceWords {
		s.dict[w] = true
	}
	return s
}

func (s *stubSupply) IsWord(word string) bool { return s.dict[word] }

func (s *stubSupply) RandomSourceWord(minLen, maxLen int, exclude map[string]bool) (string, bool) {
	var first string
	for _, w := range s.source {
		if len(w) < minLen || len(w) > maxLen {
			continue
		}
		if first == "" {
			first = w
		}
		if !exclude[w] {
			return w, true
		}
	}
	if first == "" {
		return "", false
	}
	return first, true
}

func (s *stubSupply) RandomDictionaryWord(minLen, maxLen int, exclude map[string]bool) (string, bool) {
	for _, w := range s.dictOrder {
		if len(w) >= minLen && len(w) <= maxLen && !exclude[w] {
			return w, true
		}
	}
	for _, w := range s.dictOrder {
		if len(w) >= minLen && len(w) <= maxLen {
			return w, true
		}
	}
	return "", false
}

func (s *stubSupply) RandomRiddle() (wordsource.Riddle, bool) {
	if len(s.riddles) == 0 {
		return wordsource.Riddle{}, false
	}
	return s.riddles[0], true
}

// setChecker validates words against a fixed set.
type setChecker map[string]bool

func (c setChecker) Check(_ context.Context, word string) bool { return c[word] }

// gateChecker blocks every Check until release is closed, then defers to
// the inner set. Used to hold submissions inside the lookup await.
type gateChecker struct {
	release chan struct{}
	inner   setChecker
}

func (c *gateChecker) Check(ctx context.Context, word string) bool {
	<-c.release
	return c.inner.Check(ctx, word)
}

// testClock is a manually advanced clock.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func newTestRegistry() *room.Registry {
	return room.NewRegistry(newSeq(7, 3, 11, 19, 23, 5, 13, 2), zap.NewNop())
}

// seatRoom creates a room hosted by ids[0]/names[0] and joins the rest.
func seatRoom(t *testing.T, reg *room.Registry, names ...string) *room.Room {
	t.Helper()
	require.NotEmpty(t, names)
	r := reg.CreateRoom(names[0], "p0")
	for i := 1; i < len(names); i++ {
		_, err := reg.JoinRoom(r.Code, names[i], playerID(i))
		require.NoError(t, err)
	}
	return r
}

func playerID(i int) string {
	return fmt.Sprintf("p%d", i)
}

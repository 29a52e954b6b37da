package dictionary_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/wordrush/wordrush/internal/game/dictionary"
)

type setDictionary map[string]bool

func (d setDictionary) IsWord(word string) bool { return d[word] }

func TestHeuristic(t *testing.T) {
	assert.True(t, dictionary.Heuristic("cat"))
	assert.True(t, dictionary.Heuristic("planets"))
	assert.False(t, dictionary.Heuristic("at"), "two letters is below the floor")
	assert.False(t, dictionary.Heuristic("ca7"))
	assert.False(t, dictionary.Heuristic(""))
}

func TestCheck_LocalFirst(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := dictionary.NewLookupChecker(setDictionary{"plan": true}, srv.URL, dictionary.DefaultTimeout, zap.NewNop())
	assert.True(t, c.Check(context.Background(), "plan"))
	assert.Equal(t, int32(0), calls.Load(), "local hits must not reach the endpoint")
}

func TestCheck_RemoteVerdicts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/real":
			w.WriteHeader(http.StatusOK)
		case "/fake":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := dictionary.NewLookupChecker(setDictionary{}, srv.URL, dictionary.DefaultTimeout, zap.NewNop())
	assert.True(t, c.Check(context.Background(), "real"))
	assert.False(t, c.Check(context.Background(), "fake"))
	// Server errors fall back to the heuristic.
	assert.True(t, c.Check(context.Background(), "other"))
	assert.False(t, c.Check(context.Background(), "xy"))
}

func TestCheck_CachesVerdicts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := dictionary.NewLookupChecker(setDictionary{}, srv.URL, dictionary.DefaultTimeout, zap.NewNop())
	for i := 0; i < 3; i++ {
		assert.False(t, c.Check(context.Background(), "fake"))
	}
	assert.Equal(t, int32(1), calls.Load(), "repeated checks must hit the cache")
}

func TestCheck_TimeoutFallsBackToHeuristic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := dictionary.NewLookupChecker(setDictionary{}, srv.URL, 10*time.Millisecond, zap.NewNop())
	assert.True(t, c.Check(context.Background(), "slowword"),
		"a slow endpoint must not reject an otherwise plausible word")
}

func TestCheck_NoEndpointUsesHeuristic(t *testing.T) {
	c := dictionary.NewLookupChecker(setDictionary{}, "", dictionary.DefaultTimeout, zap.NewNop())
	assert.True(t, c.Check(context.Background(), "cat"))
	assert.False(t, c.Check(context.Background(), "xq"))
}

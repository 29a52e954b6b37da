// Package dictionary provides classic-mode word validation. Validation may
// leave the process: words missing from the local dictionary are checked
// against an HTTP lookup endpoint with a bounded timeout, degrading to a
// lenient heuristic when the endpoint is slow or unreachable. Verdicts are
// cached so each word pays the lookup cost at most once.
package dictionary

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wordrush/wordrush/internal/game/words"
)

// DefaultTimeout bounds one remote lookup.
const DefaultTimeout = 2 * time.Second

// minHeuristicLength is the shortest word the fallback heuristic accepts.
const minHeuristicLength = 3

// Checker validates dictionary membership. Check may block on a remote
// lookup; callers must not hold room locks across it.
type Checker interface {
	Check(ctx context.Context, word string) bool
}

// LocalDictionary is the in-process word set consulted before any remote
// lookup.
type LocalDictionary interface {
	IsWord(word string) bool
}

// LookupChecker consults the local dictionary first, then a remote lookup
// endpoint, then the lenient heuristic. Safe for concurrent use.
type LookupChecker struct {
	local   LocalDictionary
	client  *http.Client
	baseURL string
	logger  *zap.Logger

	mu    sync.Mutex
	cache map[string]bool
}

var _ Checker = (*LookupChecker)(nil)

// NewLookupChecker creates a LookupChecker. An empty baseURL disables the
// remote lookup entirely: unknown words go straight to the heuristic.
//
// Precondition: local and logger must be non-nil; timeout must be > 0.
func NewLookupChecker(local LocalDictionary, baseURL string, timeout time.Duration, logger *zap.Logger) *LookupChecker {
	return &LookupChecker{
		local:   local,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		logger:  logger,
		cache:   make(map[string]bool),
	}
}

// Check reports whether word is a valid dictionary word.
//
// Precondition: word is normalized lowercase.
// Postcondition: The verdict for a remote lookup (or its fallback) is
// cached; later calls for the same word do not leave the process.
func (c *LookupChecker) Check(ctx context.Context, word string) bool {
	if c.local.IsWord(word) {
		return true
	}

	c.mu.Lock()
	verdict, cached := c.cache[word]
	c.mu.Unlock()
	if cached {
		return verdict
	}

	verdict = c.lookup(ctx, word)

	c.mu.Lock()
	c.cache[word] = verdict
	c.mu.Unlock()
	return verdict
}

// lookup asks the remote endpoint about word. Any failure, including
// timeout, degrades to the heuristic: availability wins over strictness.
func (c *LookupChecker) lookup(ctx context.Context, word string) bool {
	if c.baseURL == "" {
		return Heuristic(word)
	}

	reqURL := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Warn("building dictionary lookup request",
			zap.String("word", word),
			zap.Error(err),
		)
		return Heuristic(word)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("dictionary lookup failed, using heuristic",
			zap.String("word", word),
			zap.Error(err),
		)
		return Heuristic(word)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true
	case http.StatusNotFound:
		return false
	default:
		c.logger.Debug("unexpected dictionary lookup status, using heuristic",
			zap.String("word", word),
			zap.Int("status", resp.StatusCode),
		)
		return Heuristic(word)
	}
}

// Heuristic is the lenient fallback verdict: any alphabetic token of three
// or more letters is accepted.
func Heuristic(word string) bool {
	return len(word) >= minHeuristicLength && words.IsAlphabetic(word)
}

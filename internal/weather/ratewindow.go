package weather

import (
	"sync"
	"time"
)

// rateWindow is a sliding-window request counter keyed by client identity.
// Each key holds the timestamps of that client's upstream-reaching requests
// within the trailing window; expired timestamps are pruned lazily on the
// next check rather than by a background sweeper.
type rateWindow struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	entries map[string][]time.Time
}

func newRateWindow(window time.Duration, limit int) *rateWindow {
	return &rateWindow{
		window:  window,
		limit:   limit,
		entries: make(map[string][]time.Time),
	}
}

// allow reports whether the client is under its limit at time now.
// It does not record the request; call record only after deciding to
// actually reach upstream, so cache hits and refused calls stay free.
func (w *rateWindow) allow(clientKey string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.prune(clientKey, now)) < w.limit
}

// record appends a request timestamp for the client.
func (w *rateWindow) record(clientKey string, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries[clientKey] = append(w.prune(clientKey, now), now)
}

// prune drops timestamps older than the window. Caller holds the lock.
func (w *rateWindow) prune(clientKey string, now time.Time) []time.Time {
	stamps := w.entries[clientKey]
	cutoff := now.Add(-w.window)
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(w.entries, clientKey)
		return nil
	}
	w.entries[clientKey] = kept
	return kept
}

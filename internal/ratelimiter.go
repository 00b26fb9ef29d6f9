package internal

import (
	"time"
)

// SendLimiter is a sliding-window limiter for outgoing sends. The backend
// rate-limits every endpoint, so the client refuses bursts locally and
// shows a notice instead of collecting rejected requests.
type SendLimiter struct {
	limit  int
	window time.Duration
	hits   []time.Time
	now    func() time.Time
}

func NewSendLimiter(limit int, window time.Duration) *SendLimiter {
	return &SendLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records an attempt and reports whether it fits inside the window.
func (l *SendLimiter) Allow() bool {
	now := l.now()
	windowStart := now.Add(-l.window)
	kept := l.hits[:0]
	for _, ts := range l.hits {
		if ts.After(windowStart) {
			kept = append(kept, ts)
		}
	}
	l.hits = kept
	if len(l.hits) >= l.limit {
		return false
	}
	l.hits = append(l.hits, now)
	return true
}

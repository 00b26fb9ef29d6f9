package internal

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// ClientStats counts what the client did during a session. Logged once at
// shutdown so a log file tells the whole story of a run.
type ClientStats struct {
	pollTicks     atomic.Uint64
	pollErrors    atomic.Uint64
	messagesSent  atomic.Uint64
	sendErrors    atomic.Uint64
	searches      atomic.Uint64
	roomsSelected atomic.Uint64
}

func NewClientStats() *ClientStats {
	return &ClientStats{}
}

func (s *ClientStats) IncPollTick()  { s.pollTicks.Add(1) }
func (s *ClientStats) IncPollError() { s.pollErrors.Add(1) }
func (s *ClientStats) IncSent()      { s.messagesSent.Add(1) }
func (s *ClientStats) IncSendError() { s.sendErrors.Add(1) }
func (s *ClientStats) IncSearch()    { s.searches.Add(1) }
func (s *ClientStats) IncRoom()      { s.roomsSelected.Add(1) }

// Log writes the session totals through the given logger.
func (s *ClientStats) Log(logger zerolog.Logger) {
	logger.Info().
		Uint64("poll_ticks", s.pollTicks.Load()).
		Uint64("poll_errors", s.pollErrors.Load()).
		Uint64("messages_sent", s.messagesSent.Load()).
		Uint64("send_errors", s.sendErrors.Load()).
		Uint64("searches", s.searches.Load()).
		Uint64("rooms_selected", s.roomsSelected.Load()).
		Msg("session totals")
}

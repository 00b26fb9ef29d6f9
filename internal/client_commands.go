package internal

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"classchat/internal/storage"
)

// Asynchronous events delivered back into Update. Poll-related messages
// carry the room and generation they were issued for so stale responses
// from a superseded room are detectable.
type (
	initialLoadMsg struct {
		room     string
		gen      int
		messages []Message
		err      error
	}
	cachedHistoryMsg struct {
		room     string
		gen      int
		messages []Message
	}
	pollTickMsg struct {
		room string
		gen  int
	}
	pollResultMsg struct {
		room     string
		gen      int
		messages []Message
		err      error
	}
	presenceTickMsg   struct{}
	presenceResultMsg struct {
		users []PresenceEntry
		err   error
	}
	sendResultMsg struct {
		room string
		err  error
	}
	searchResultMsg struct {
		room     string
		query    string
		messages []Message
		err      error
	}
	recordTickMsg struct{}
)

// initialLoadCmd issues the full load that replaces the transcript when a
// room is activated.
func (model *TUIModel) initialLoadCmd(room string, gen int) tea.Cmd {
	api := model.api
	return func() tea.Msg {
		messages, err := api.GetMessages(room, initialLoadLimit)
		return initialLoadMsg{room: room, gen: gen, messages: messages, err: err}
	}
}

// pollTickCmd schedules the next message poll tick for the given room and
// generation. A superseded tick dies quietly in Update, so exactly one
// timer chain survives per room selection.
func (model *TUIModel) pollTickCmd(room string, gen int) tea.Cmd {
	return tea.Tick(messagePollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{room: room, gen: gen}
	})
}

// pollCmd fetches the single most recent message for the room.
func (model *TUIModel) pollCmd(room string, gen int) tea.Cmd {
	api := model.api
	return func() tea.Msg {
		messages, err := api.GetMessages(room, pollFetchLimit)
		return pollResultMsg{room: room, gen: gen, messages: messages, err: err}
	}
}

func presenceTickCmd() tea.Cmd {
	return tea.Tick(presencePollInterval, func(time.Time) tea.Msg {
		return presenceTickMsg{}
	})
}

func (model *TUIModel) presenceCmd() tea.Cmd {
	api := model.api
	return func() tea.Msg {
		users, err := api.GetOnlineUsers()
		return presenceResultMsg{users: users, err: err}
	}
}

func (model *TUIModel) sendCmd(req SendRequest) tea.Cmd {
	api := model.api
	return func() tea.Msg {
		return sendResultMsg{room: req.Room, err: api.SendMessage(req)}
	}
}

func (model *TUIModel) searchCmd(query, room string) tea.Cmd {
	api := model.api
	return func() tea.Msg {
		messages, err := api.SearchMessages(query, room)
		return searchResultMsg{room: room, query: query, messages: messages, err: err}
	}
}

func recordTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return recordTickMsg{}
	})
}

// cachedHistoryCmd primes the transcript from the local cache while the
// first live load is in flight.
func (model *TUIModel) cachedHistoryCmd(room string, gen int) tea.Cmd {
	cache := model.cache
	return func() tea.Msg {
		rows, err := cache.Recent(context.Background(), room, initialLoadLimit)
		if err != nil {
			log.Warn().Err(err).Str("room", room).Msg("read cached history")
			return cachedHistoryMsg{room: room, gen: gen}
		}
		messages := make([]Message, 0, len(rows))
		for _, row := range rows {
			messages = append(messages, Message{
				Username:  row.Username,
				Body:      row.Body,
				Kind:      row.Kind,
				Timestamp: row.Timestamp,
			})
		}
		return cachedHistoryMsg{room: room, gen: gen, messages: messages}
	}
}

// cacheSaveCmd persists fetched messages in the background. Failures are
// logged and otherwise invisible; the cache is best effort.
func (model *TUIModel) cacheSaveCmd(room string, messages []Message) tea.Cmd {
	if model.cache == nil || len(messages) == 0 {
		return nil
	}
	cache := model.cache
	return func() tea.Msg {
		cached := make([]storage.CachedMessage, 0, len(messages))
		for _, msg := range messages {
			cached = append(cached, storage.CachedMessage{
				Room:      room,
				Username:  msg.Username,
				Body:      msg.Body,
				Kind:      msg.Kind,
				Timestamp: msg.Timestamp,
			})
		}
		ctx := context.Background()
		if err := cache.Save(ctx, cached); err != nil {
			log.Warn().Err(err).Str("room", room).Msg("cache messages")
			return nil
		}
		if err := cache.Prune(ctx, room, cacheKeepPerRoom); err != nil {
			log.Warn().Err(err).Str("room", room).Msg("prune cache")
		}
		return nil
	}
}

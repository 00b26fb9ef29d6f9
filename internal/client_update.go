package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

func (model *TUIModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch typedMessage := message.(type) {
	case tea.KeyMsg:
		// Any mode should respect Ctrl+C so the user can bail out quickly.
		if typedMessage.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		switch model.mode {
		case modeRooms:
			return model.updateRoomsMode(typedMessage)
		case modeBrowser:
			return model.updateBrowserMode(typedMessage)
		default:
			return model.updateChatMode(typedMessage)
		}

	case cachedHistoryMsg:
		// Only primes an untouched transcript; the live load is
		// authoritative once it lands.
		if typedMessage.room != model.currentRoom || typedMessage.gen != model.pollGen || model.liveLoaded {
			return model, nil
		}
		if len(model.transcript) == 0 && len(typedMessage.messages) > 0 {
			model.transcript = typedMessage.messages
		}
		return model, nil

	case initialLoadMsg:
		if typedMessage.room != model.currentRoom || typedMessage.gen != model.pollGen {
			// A load issued for a superseded room selection.
			return model, nil
		}
		if typedMessage.err != nil {
			log.Warn().Err(typedMessage.err).Str("room", typedMessage.room).Msg("initial load failed")
			model.notice = "Could not load messages: " + typedMessage.err.Error()
			return model, nil
		}
		model.liveLoaded = true
		model.transcript = typedMessage.messages
		return model, model.cacheSaveCmd(typedMessage.room, typedMessage.messages)

	case pollTickMsg:
		if typedMessage.room != model.currentRoom || typedMessage.gen != model.pollGen {
			// Superseded timer chain; let it die so room switches never
			// accumulate pollers.
			return model, nil
		}
		model.stats.IncPollTick()
		commands := []tea.Cmd{model.pollTickCmd(typedMessage.room, typedMessage.gen)}
		if !model.searchActive {
			// Polling is paused while search results are on screen so a
			// tick cannot clobber them.
			commands = append(commands, model.pollCmd(typedMessage.room, typedMessage.gen))
		}
		return model, tea.Batch(commands...)

	case pollResultMsg:
		if typedMessage.room != model.currentRoom || typedMessage.gen != model.pollGen {
			return model, nil
		}
		if typedMessage.err != nil {
			// Log and skip this tick; the schedule continues untouched.
			model.stats.IncPollError()
			log.Warn().Err(typedMessage.err).Str("room", typedMessage.room).Msg("message poll failed")
			return model, nil
		}
		if len(typedMessage.messages) == 0 {
			return model, nil
		}
		newest := typedMessage.messages[len(typedMessage.messages)-1]
		if len(model.transcript) == 0 || model.transcript[len(model.transcript)-1].Key() != newest.Key() {
			model.transcript = append(model.transcript, newest)
			return model, model.cacheSaveCmd(typedMessage.room, []Message{newest})
		}
		return model, nil

	case presenceTickMsg:
		return model, tea.Batch(model.presenceCmd(), presenceTickCmd())

	case presenceResultMsg:
		if typedMessage.err != nil {
			log.Warn().Err(typedMessage.err).Msg("presence poll failed")
			return model, nil
		}
		model.roster = buildRoster(model.identity, typedMessage.users)
		return model, nil

	case sendResultMsg:
		if typedMessage.err != nil {
			// Leave the composer untouched so the user can retry.
			model.stats.IncSendError()
			log.Warn().Err(typedMessage.err).Str("room", typedMessage.room).Msg("send failed")
			model.notice = typedMessage.err.Error()
			return model, nil
		}
		model.stats.IncSent()
		model.textInput.SetValue("")
		model.stager.Clear()
		model.notice = ""
		if model.searchActive {
			model.searchActive = false
			model.searchResults = nil
		}
		if typedMessage.room == model.currentRoom {
			// Refresh so the transcript shows the accepted message.
			return model, model.initialLoadCmd(typedMessage.room, model.pollGen)
		}
		return model, nil

	case searchResultMsg:
		if typedMessage.room != model.currentRoom {
			return model, nil
		}
		if typedMessage.err != nil {
			log.Warn().Err(typedMessage.err).Str("query", typedMessage.query).Msg("search failed")
			model.notice = "Search failed: " + typedMessage.err.Error()
			return model, nil
		}
		model.searchActive = true
		model.searchQuery = typedMessage.query
		model.searchResults = typedMessage.messages
		return model, nil

	case recordTickMsg:
		if !model.recorder.Recording() {
			return model, nil
		}
		model.recordElapsed = model.recorder.Elapsed()
		return model, recordTickCmd()
	}
	return model, nil
}

func (model *TUIModel) updateRoomsMode(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if model.roomIndex > 0 {
			model.roomIndex--
		}
	case "down", "j":
		if model.roomIndex < len(model.rooms)-1 {
			model.roomIndex++
		}
	case "enter":
		if len(model.rooms) > 0 {
			return model, model.selectRoom(model.rooms[model.roomIndex])
		}
	case "q", "Q":
		return model, tea.Quit
	case "esc":
		if model.currentRoom != "" {
			model.mode = modeChat
		}
	}
	return model, nil
}

// selectRoom activates a room: it bumps the poll generation (tearing down
// the previous poll timer chain), clears the transcript, enables the
// composer, and issues exactly one initial load. Reselecting the active
// room goes through the same teardown, no short-circuit.
func (model *TUIModel) selectRoom(room Room) tea.Cmd {
	model.currentRoom = room.ID
	model.roomDesc = room.Description
	model.pollGen++
	model.liveLoaded = false
	model.transcript = nil
	model.searchActive = false
	model.searchResults = nil
	model.notice = ""
	model.mode = modeChat
	model.textInput.Placeholder = "Type a message…"
	model.stats.IncRoom()

	gen := model.pollGen
	commands := []tea.Cmd{model.textInput.Focus()}
	if model.cache != nil {
		commands = append(commands, model.cachedHistoryCmd(room.ID, gen))
	}
	commands = append(commands,
		model.initialLoadCmd(room.ID, gen),
		model.pollTickCmd(room.ID, gen),
	)
	return tea.Batch(commands...)
}

func (model *TUIModel) updateChatMode(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		if model.searchActive {
			return model, model.leaveSearch()
		}
		model.mode = modeRooms
		return model, nil
	case tea.KeyEnter:
		trimmed := strings.TrimSpace(model.textInput.Value())
		if strings.HasPrefix(trimmed, "/") {
			return model.handleCommand(trimmed)
		}
		if !canSubmit(model.currentRoom, trimmed, model.stager) {
			// No room, blank text, nothing staged: a no-op, no request.
			return model, nil
		}
		if !model.limiter.Allow() {
			model.notice = "Sending too fast. Give it a moment."
			return model, nil
		}
		return model, model.sendCmd(newSendRequest(model.currentRoom, trimmed, model.stager))
	}
	var command tea.Cmd
	model.textInput, command = model.textInput.Update(key)
	return model, command
}

// leaveSearch drops the one-shot results and resumes the live transcript
// with a fresh load.
func (model *TUIModel) leaveSearch() tea.Cmd {
	model.searchActive = false
	model.searchResults = nil
	model.searchQuery = ""
	return model.initialLoadCmd(model.currentRoom, model.pollGen)
}

func (model *TUIModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	command := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
	model.textInput.SetValue("")

	switch command {
	case "/quit", "/exit":
		return model, tea.Quit

	case "/rooms":
		model.mode = modeRooms
		return model, nil

	case "/search":
		if model.currentRoom == "" {
			model.notice = "Pick a room before searching."
			return model, nil
		}
		if rest == "" {
			model.notice = "Usage: /search <text>"
			return model, nil
		}
		model.stats.IncSearch()
		return model, model.searchCmd(rest, model.currentRoom)

	case "/attach":
		if !model.caps.Attachments {
			model.notice = "Attachments are disabled."
			return model, nil
		}
		path := defaultBrowsePath()
		items, err := browseDirectory(path)
		if err != nil {
			model.notice = "Cannot open " + path + ": " + err.Error()
			return model, nil
		}
		model.browserPath = path
		model.browserItems = items
		model.browserIndex = 0
		model.mode = modeBrowser
		return model, nil

	case "/record":
		if !model.caps.Recording {
			model.notice = "Voice recording is not available on this system."
			return model, nil
		}
		if err := model.recorder.Start(); err != nil {
			if errors.Is(err, ErrAlreadyRecording) {
				model.notice = "Already recording. Use /stop to finish."
			} else {
				model.notice = "Could not start recording: " + err.Error()
			}
			return model, nil
		}
		model.recordElapsed = 0
		model.notice = ""
		return model, recordTickCmd()

	case "/stop":
		clip, err := model.recorder.Stop()
		if err != nil {
			if errors.Is(err, ErrNotRecording) {
				model.notice = "Not recording."
			} else {
				model.notice = "Could not stop recording: " + err.Error()
			}
			return model, nil
		}
		model.recordElapsed = 0
		model.stager.Stage(clip.Data, KindAudio, clip.DisplayName)
		model.notice = fmt.Sprintf("Staged %s (%s)", clip.DisplayName, formatFileSize(int64(len(clip.Data))))
		return model, nil

	case "/clear":
		model.stager.Clear()
		model.notice = "Attachment removed."
		return model, nil
	}

	model.notice = "Unknown command " + command
	return model, nil
}

func (model *TUIModel) updateBrowserMode(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		model.mode = modeChat
		return model, nil
	case "up", "k":
		if model.browserIndex > 0 {
			model.browserIndex--
		}
	case "down", "j":
		if model.browserIndex < len(model.browserItems)-1 {
			model.browserIndex++
		}
	case "enter":
		if len(model.browserItems) == 0 {
			return model, nil
		}
		item := model.browserItems[model.browserIndex]
		if item.IsDir {
			items, err := browseDirectory(item.Path)
			if err != nil {
				model.notice = "Cannot open " + item.Path + ": " + err.Error()
				return model, nil
			}
			model.browserPath = item.Path
			model.browserItems = items
			model.browserIndex = 0
			return model, nil
		}
		if item.Kind == "" {
			model.notice = item.Name + " is not a supported attachment type."
			return model, nil
		}
		data, err := os.ReadFile(item.Path)
		if err != nil {
			model.notice = "Cannot read " + item.Name + ": " + err.Error()
			return model, nil
		}
		model.stager.Stage(data, item.Kind, item.Name)
		model.notice = fmt.Sprintf("Attached %s (%s)", item.Name, formatFileSize(item.Size))
		model.mode = modeChat
		return model, nil
	}
	return model, nil
}

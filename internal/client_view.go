package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// pre styled colors// all from lipglpss
var (
	appTitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")).Padding(0, 1)
	subtitleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).MarginTop(1)
	menuBoxStyle       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 2).MarginTop(1)
	menuHintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).MarginTop(1)
	chatHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("109")).MarginTop(1)
	rosterStyle        = statusStyle.Copy().Foreground(lipgloss.Color("42"))
	searchBannerStyle  = statusStyle.Copy().Foreground(lipgloss.Color("178")).Bold(true)
	recordingStyle     = statusStyle.Copy().Foreground(lipgloss.Color("196")).Bold(true)
	messageBodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("253"))
	messageBoxStyle    = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(1, 2).MarginTop(1)
	inputBoxStyle      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1).MarginTop(1)
	timestampStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	usernameStyle      = lipgloss.NewStyle().Bold(true)
	activeUserStyle    = usernameStyle.Copy().Foreground(lipgloss.Color("213"))
	systemMessageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	mediaStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Italic(true)
	errorStyle         = statusStyle.Copy().Foreground(lipgloss.Color("196")).Bold(true)
	dividerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("237")).Render(" ┃ ")
	listSelectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	listItemStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	userColorPalette   = []lipgloss.Color{
		lipgloss.Color("45"),
		lipgloss.Color("81"),
		lipgloss.Color("141"),
		lipgloss.Color("98"),
		lipgloss.Color("63"),
		lipgloss.Color("135"),
		lipgloss.Color("32"),
	}
)

func (model *TUIModel) View() string {
	switch model.mode {
	case modeRooms:
		return model.renderRoomsView()
	case modeBrowser:
		return model.renderBrowserView()
	default:
		return model.renderChatView()
	}
}

func (model *TUIModel) renderRoomsView() string {
	title := appTitleStyle.Render("ClassChat " + Version)
	subtitle := subtitleStyle.Render(fmt.Sprintf("Signed in as %s (%s)  |  Server %s", model.identity.Username, model.identity.Role, model.api.BaseURL()))

	var roomLines []string
	if len(model.rooms) == 0 {
		roomLines = append(roomLines, menuHintStyle.Render("No rooms configured."))
	} else {
		for idx, room := range model.rooms {
			line := fmt.Sprintf("%d) %s", idx+1, room.ID)
			if room.Description != "" {
				line += "  —  " + room.Description
			}
			if idx == model.roomIndex {
				roomLines = append(roomLines, listSelectedStyle.Render("➤ "+line))
			} else {
				roomLines = append(roomLines, listItemStyle.Render("  "+line))
			}
		}
	}

	viewSections := []string{
		lipgloss.JoinVertical(lipgloss.Left, title, subtitle),
		menuBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, roomLines...)),
	}

	if model.notice != "" {
		viewSections = append(viewSections, errorStyle.Render(model.notice))
	}

	viewSections = append(viewSections, menuHintStyle.Render("↑/↓ select • Enter join • q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, viewSections...)
}

func (model *TUIModel) renderChatView() string {
	headerSegments := []string{"ClassChat"}
	if model.currentRoom != "" {
		headerSegments = append(headerSegments, fmt.Sprintf("Room %s", model.currentRoom))
	}
	headerSegments = append(headerSegments, fmt.Sprintf("User %s (%s)", model.identity.Username, model.identity.Role))
	headerSegments = append(headerSegments, fmt.Sprintf("Server %s", model.api.BaseURL()))
	header := chatHeaderStyle.Render(strings.Join(headerSegments, dividerStyle))

	sections := []string{header}

	if model.roomDesc != "" {
		sections = append(sections, subtitleStyle.Render(model.roomDesc))
	}

	sections = append(sections, rosterStyle.Render(model.renderRosterLine()))

	if model.notice != "" {
		sections = append(sections, errorStyle.Render(model.notice))
	}

	var messageLines []string
	if model.searchActive {
		sections = append(sections, searchBannerStyle.Render(fmt.Sprintf("Search results for %q — Esc to go back", model.searchQuery)))
		if len(model.searchResults) == 0 {
			messageLines = []string{systemMessageStyle.Render(fmt.Sprintf("No results found for %q", model.searchQuery))}
		} else {
			messageLines = renderTranscript(model.searchResults, model.identity.Username, model.api.BaseURL())
		}
	} else {
		messageLines = renderTranscript(model.transcript, model.identity.Username, model.api.BaseURL())
	}
	sections = append(sections, messageBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, messageLines...)))

	if pending := model.stager.Pending(); pending != nil {
		sections = append(sections, statusStyle.Render(fmt.Sprintf("📎 %s [%s] staged — Enter to send, /clear to remove", pending.DisplayName, pending.Kind)))
	}

	if model.recorder.Recording() {
		sections = append(sections, recordingStyle.Render(fmt.Sprintf("● Recording %s — /stop to finish", formatElapsed(model.recordElapsed))))
	}

	sections = append(sections, inputBoxStyle.Render(model.textInput.View()))
	sections = append(sections, menuHintStyle.Render("/search <text> • /attach • /record • /stop • /rooms • /quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderRosterLine builds the "Online (N)" summary from the current roster.
func (model *TUIModel) renderRosterLine() string {
	names := make([]string, 0, len(model.roster))
	for _, entry := range model.roster {
		name := SanitizeName(entry.Username)
		if entry.Role != "" {
			name += " (" + entry.Role + ")"
		}
		names = append(names, name)
	}
	return fmt.Sprintf("Online (%d): %s", len(model.roster), strings.Join(names, ", "))
}

func (model *TUIModel) renderBrowserView() string {
	title := appTitleStyle.Render("Attach a file")
	subtitle := subtitleStyle.Render(model.browserPath)

	var lines []string
	if len(model.browserItems) == 0 {
		lines = append(lines, menuHintStyle.Render("Empty directory."))
	} else {
		for idx, item := range model.browserItems {
			label := item.Name
			switch {
			case item.IsDir:
				label += "/"
			case item.Kind != "":
				label += fmt.Sprintf("  [%s, %s]", item.Kind, formatFileSize(item.Size))
			default:
				label += "  (unsupported)"
			}
			if idx == model.browserIndex {
				lines = append(lines, listSelectedStyle.Render("➤ "+label))
			} else {
				lines = append(lines, listItemStyle.Render("  "+label))
			}
		}
	}

	sections := []string{
		lipgloss.JoinVertical(lipgloss.Left, title, subtitle),
		menuBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
	}

	if model.notice != "" {
		sections = append(sections, errorStyle.Render(model.notice))
	}

	sections = append(sections, menuHintStyle.Render("↑/↓ select • Enter open/attach • Esc back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func formatElapsed(elapsed time.Duration) string {
	total := int(elapsed / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

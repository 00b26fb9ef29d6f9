package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const emptyTranscriptText = "No messages yet. Say hi and start the conversation."

// Timestamp layouts the server is known to emit. The classic backend writes
// "2006-01-02 15:04:05"; RFC3339 covers proxies that re-encode JSON dates.
var serverTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// formatMessageTime renders a server timestamp as hour:minute. A timestamp
// the client cannot parse is shown exactly as received; rendering never
// fails on malformed input.
func formatMessageTime(raw string) string {
	for _, layout := range serverTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format("15:04")
		}
	}
	return raw
}

// renderMessageLine turns one message into a transcript line. The sender
// shows as "you" for the local identity, media kinds render as a passive
// tag plus the server-provided location, and all untrusted text is
// sanitized before it touches the terminal.
func renderMessageLine(msg Message, localUser string, serverBase string) string {
	timestamp := timestampStyle.Render(fmt.Sprintf("[%s]", formatMessageTime(msg.Timestamp)))

	var nameStyle lipgloss.Style
	name := SanitizeName(msg.Username)
	if msg.Username == localUser {
		name = "you"
		nameStyle = activeUserStyle
	} else {
		nameStyle = usernameStyle.Copy().Foreground(colorForUser(msg.Username))
	}

	var body string
	switch msg.Kind {
	case KindImage, KindVideo, KindAudio:
		body = mediaStyle.Render(fmt.Sprintf("[%s] %s", msg.Kind, mediaLocation(msg, serverBase)))
	default:
		text := SanitizeText(msg.Body)
		body = messageBodyStyle.Render(strings.ReplaceAll(text, "\n", "\n   "))
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, timestamp, " ", nameStyle.Render(name), ": ", body)
}

// mediaLocation resolves the address a media message points at. The backend
// stores upload paths like /static/uploads/... in the message body.
func mediaLocation(msg Message, serverBase string) string {
	location := msg.Body
	if location == "" {
		location = msg.FilePath
	}
	location = SanitizeText(location)
	if strings.HasPrefix(location, "/") && serverBase != "" {
		return strings.TrimRight(serverBase, "/") + location
	}
	if location == "" {
		return "(no file)"
	}
	return location
}

// renderTranscript renders every message in input order, or the empty-state
// placeholder when there is nothing to show.
func renderTranscript(messages []Message, localUser string, serverBase string) []string {
	if len(messages) == 0 {
		return []string{systemMessageStyle.Render(emptyTranscriptText)}
	}
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, renderMessageLine(msg, localUser, serverBase))
	}
	return lines
}

func colorForUser(name string) lipgloss.Color {
	if name == "" {
		return userColorPalette[0]
	}
	var sum int
	for _, r := range name {
		sum += int(r)
	}
	return userColorPalette[sum%len(userColorPalette)]
}

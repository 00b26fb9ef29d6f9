package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// RoomConfig is one selectable room.
type RoomConfig struct {
	Name        string
	Description string
}

// ClientConfig defines the parameters the TUI client needs.
type ClientConfig struct {
	ServerURL   string
	Username    string
	Role        string
	CachePath   string
	LogPath     string
	Attachments bool
	Rooms       []RoomConfig
}

// DefaultRooms returns the rooms the standard backend seeds on first run.
func DefaultRooms() []RoomConfig {
	return []RoomConfig{
		{Name: "general", Description: "Open discussion for everyone"},
		{Name: "teachers_students", Description: "Teachers and students"},
		{Name: "parents_teachers", Description: "Parents and teachers"},
		{Name: "admin", Description: "Administration announcements"},
	}
}

// ParseRooms converts "name" or "name:description" flag values into room
// configs. Blank names are rejected.
func ParseRooms(values []string) ([]RoomConfig, error) {
	rooms := make([]RoomConfig, 0, len(values))
	for _, value := range values {
		name, description, _ := strings.Cut(value, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid room %q: name is empty", value)
		}
		rooms = append(rooms, RoomConfig{Name: name, Description: strings.TrimSpace(description)})
	}
	return rooms, nil
}

// DefaultCachePath returns a per-user data path for the local message cache.
func DefaultCachePath() string {
	if env := os.Getenv("CLASSCHAT_CACHE_PATH"); env != "" {
		return env
	}
	return filepath.Join(dataDir(), "cache.db")
}

// DefaultLogPath returns a per-user path for the client log file. The TUI
// owns the terminal, so logs go to a file instead of stderr.
func DefaultLogPath() string {
	if env := os.Getenv("CLASSCHAT_LOG_PATH"); env != "" {
		return env
	}
	return filepath.Join(dataDir(), "classchat.log")
}

func dataDir() string {
	if env := os.Getenv("CLASSCHAT_DATA_DIR"); env != "" {
		return env
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "classchat")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "ClassChat")
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "ClassChat")
		}
		return filepath.Join(home, ".local", "share", "classchat")
	}
	return filepath.Join(".", ".classchat")
}

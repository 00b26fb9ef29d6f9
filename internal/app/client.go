package app

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	intrnl "classchat/internal"
	"classchat/internal/storage"
)

// RunClient launches the Bubble Tea TUI with the provided configuration.
func RunClient(cfg ClientConfig) error {
	if cfg.ServerURL == "" {
		return errors.New("server URL is required")
	}

	rooms := make([]intrnl.Room, 0, len(cfg.Rooms))
	for _, room := range cfg.Rooms {
		rooms = append(rooms, intrnl.Room{ID: room.Name, Description: room.Description})
	}

	// The cache is best effort; a broken cache file never blocks the session.
	var cache *storage.Cache
	if cfg.CachePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.CachePath), 0o755); err != nil {
			log.Warn().Err(err).Str("path", cfg.CachePath).Msg("create cache directory")
		} else if opened, err := storage.NewCache(cfg.CachePath); err != nil {
			log.Warn().Err(err).Str("path", cfg.CachePath).Msg("open message cache")
		} else {
			cache = opened
			defer func() { _ = cache.Close() }()
		}
	}

	caps := intrnl.Capabilities{
		Attachments: cfg.Attachments,
		Recording:   intrnl.CaptureToolAvailable(),
	}
	log.Info().
		Bool("attachments", caps.Attachments).
		Bool("recording", caps.Recording).
		Str("server", cfg.ServerURL).
		Msg("starting client")

	stats := intrnl.NewClientStats()
	err := intrnl.RunClient(intrnl.ClientOptions{
		ServerURL: cfg.ServerURL,
		Identity:  intrnl.Identity{Username: cfg.Username, Role: cfg.Role},
		Rooms:     rooms,
		Caps:      caps,
		Cache:     cache,
		Stats:     stats,
	})
	stats.Log(log.Logger)
	return err
}

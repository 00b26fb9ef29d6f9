package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"classchat/internal"
	"classchat/internal/app"
)

var (
	flagServer        string
	flagUser          string
	flagRole          string
	flagCachePath     string
	flagLogPath       string
	flagRooms         []string
	flagNoAttachments bool
)

var rootCmd = &cobra.Command{
	Use:     "classchat",
	Short:   "Terminal client for the ClassChat school chat server",
	Version: internal.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		closeLog, err := setupLogging(flagLogPath)
		if err != nil {
			return err
		}
		defer closeLog()

		rooms := app.DefaultRooms()
		if len(flagRooms) > 0 {
			rooms, err = app.ParseRooms(flagRooms)
			if err != nil {
				return err
			}
		}

		return app.RunClient(app.ClientConfig{
			ServerURL:   flagServer,
			Username:    flagUser,
			Role:        flagRole,
			CachePath:   flagCachePath,
			LogPath:     flagLogPath,
			Attachments: !flagNoAttachments,
			Rooms:       rooms,
		})
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagServer, "server", envOrDefault("CLASSCHAT_SERVER", "http://localhost:5000"), "chat server base URL")
	rootCmd.Flags().StringVar(&flagUser, "user", os.Getenv("CLASSCHAT_USER"), "display name for sent messages")
	rootCmd.Flags().StringVar(&flagRole, "role", envOrDefault("CLASSCHAT_ROLE", "student"), "role shown next to your name (student, teacher, parent, admin)")
	rootCmd.Flags().StringVar(&flagCachePath, "cache", app.DefaultCachePath(), "local message cache path (empty disables caching)")
	rootCmd.Flags().StringVar(&flagLogPath, "log-file", app.DefaultLogPath(), "log file path")
	rootCmd.Flags().StringSliceVar(&flagRooms, "room", nil, "room as name:description, repeatable (defaults to the standard rooms)")
	rootCmd.Flags().BoolVar(&flagNoAttachments, "no-attachments", false, "disable the file attachment picker")
}

// setupLogging points the global logger at a file. The TUI owns the
// terminal, so nothing may write to stdout or stderr while it runs.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.Logger = zerolog.Nop()
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(file).With().Timestamp().Logger()
	return func() { _ = file.Close() }, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "classchat: %v\n", err)
		os.Exit(1)
	}
}

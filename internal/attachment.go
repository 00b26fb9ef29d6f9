package internal

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PendingAttachment is a single outgoing file or recording held client-side
// until it is sent or discarded.
type PendingAttachment struct {
	ID          string
	Data        []byte
	Kind        string
	DisplayName string
}

// AttachmentStager holds at most one pending attachment. Staging a new one
// silently replaces the previous, never queues it.
type AttachmentStager struct {
	pending *PendingAttachment
}

func NewAttachmentStager() *AttachmentStager {
	return &AttachmentStager{}
}

// Stage replaces any existing pending attachment with the given payload.
func (s *AttachmentStager) Stage(data []byte, kind, displayName string) *PendingAttachment {
	s.pending = &PendingAttachment{
		ID:          uuid.NewString(),
		Data:        data,
		Kind:        kind,
		DisplayName: displayName,
	}
	return s.pending
}

// Clear discards the pending attachment, if any.
func (s *AttachmentStager) Clear() {
	s.pending = nil
}

func (s *AttachmentStager) Pending() *PendingAttachment {
	return s.pending
}

func (s *AttachmentStager) HasPending() bool {
	return s.pending != nil
}

// kindForFile maps a filename extension to a message kind, mirroring the
// server's allowed upload extensions. Empty means the file is not
// attachable.
func kindForFile(name string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "png", "jpg", "jpeg", "gif":
		return KindImage
	case "mp4", "mov", "avi", "webm":
		return KindVideo
	case "wav", "mp3", "ogg":
		return KindAudio
	}
	return ""
}

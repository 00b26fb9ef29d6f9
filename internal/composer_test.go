package internal

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"
)

func TestCanSubmit(t *testing.T) {
	empty := NewAttachmentStager()
	staged := NewAttachmentStager()
	staged.Stage([]byte("png"), KindImage, "pic.png")

	cases := []struct {
		name   string
		room   string
		text   string
		stager *AttachmentStager
		want   bool
	}{
		{"no room", "", "hello", empty, false},
		{"no room with attachment", "", "", staged, false},
		{"blank text no attachment", "general", "", empty, false},
		{"text only", "general", "hello", empty, true},
		{"attachment only", "general", "", staged, true},
		{"text and attachment", "general", "hello", staged, true},
	}
	for _, tc := range cases {
		if got := canSubmit(tc.room, tc.text, tc.stager); got != tc.want {
			t.Errorf("%s: canSubmit = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNewSendRequestKind(t *testing.T) {
	empty := NewAttachmentStager()
	req := newSendRequest("general", "hi", empty)
	if req.Kind != KindText || req.Attachment != nil {
		t.Errorf("text request mis-tagged: %+v", req)
	}

	staged := NewAttachmentStager()
	staged.Stage([]byte("wav"), KindAudio, "voice.wav")
	req = newSendRequest("general", "", staged)
	if req.Kind != KindAudio {
		t.Errorf("expected kind audio, got %q", req.Kind)
	}
	if req.Attachment == nil || req.Attachment.DisplayName != "voice.wav" {
		t.Errorf("attachment not carried: %+v", req.Attachment)
	}
}

// decodeSendBody reads back the multipart form the composer produced.
func decodeSendBody(t *testing.T, body *bytes.Buffer, contentType string) (map[string]string, map[string][]byte) {
	t.Helper()
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	reader := multipart.NewReader(body, params["boundary"])
	fields := map[string]string{}
	files := map[string][]byte{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		if part.FileName() != "" {
			files[part.FormName()] = data
		} else {
			fields[part.FormName()] = string(data)
		}
	}
	return fields, files
}

func TestBuildSendBodyTextOnly(t *testing.T) {
	body, contentType, err := buildSendBody(SendRequest{Room: "general", Kind: KindText, Text: "hello"})
	if err != nil {
		t.Fatalf("buildSendBody: %v", err)
	}
	fields, files := decodeSendBody(t, body, contentType)
	if fields["room"] != "general" || fields["message_type"] != "text" || fields["message"] != "hello" {
		t.Errorf("unexpected fields: %v", fields)
	}
	if len(files) != 0 {
		t.Errorf("unexpected file parts: %v", files)
	}
}

func TestBuildSendBodyWithAttachment(t *testing.T) {
	req := SendRequest{
		Room: "general",
		Kind: KindImage,
		Attachment: &PendingAttachment{
			ID:          "id-1",
			Data:        []byte{0x89, 'P', 'N', 'G'},
			Kind:        KindImage,
			DisplayName: "pic.png",
		},
	}
	body, contentType, err := buildSendBody(req)
	if err != nil {
		t.Fatalf("buildSendBody: %v", err)
	}
	fields, files := decodeSendBody(t, body, contentType)
	if fields["message_type"] != "image" {
		t.Errorf("unexpected message_type: %q", fields["message_type"])
	}
	if _, ok := fields["message"]; ok {
		t.Error("empty text should omit the message field")
	}
	if !bytes.Equal(files["file"], req.Attachment.Data) {
		t.Errorf("file payload mismatch: %v", files["file"])
	}
}

package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get_messages/general" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("expected limit=50, got %q", got)
		}
		json.NewEncoder(w).Encode([]Message{
			{Username: "alice", Body: "hello", Kind: "text", Timestamp: "2026-03-14 09:00:00"},
			{Username: "bob", Body: "hi", Kind: "text", Timestamp: "2026-03-14 09:01:00"},
		})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	messages, err := client.GetMessages("general", 50)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Username != "alice" || messages[0].Body != "hello" {
		t.Errorf("unexpected first message: %+v", messages[0])
	}
}

func TestGetMessagesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	if _, err := client.GetMessages("general", 1); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestGetOnlineUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get_online_users" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]PresenceEntry{
			{Username: "alice", Role: "teacher"},
			{Username: "bob", Role: "student"},
		})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	users, err := client.GetOnlineUsers()
	if err != nil {
		t.Fatalf("GetOnlineUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Role != "teacher" {
		t.Errorf("unexpected role: %+v", users[0])
	}
}

func TestSearchMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search_messages" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("q") != "field trip" {
			t.Errorf("unexpected q: %q", query.Get("q"))
		}
		if query.Get("room") != "general" {
			t.Errorf("unexpected room: %q", query.Get("room"))
		}
		json.NewEncoder(w).Encode([]Message{})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	messages, err := client.SearchMessages("field trip", "general")
	if err != nil {
		t.Fatalf("SearchMessages: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty result, got %d", len(messages))
	}
}

func TestSendMessageText(t *testing.T) {
	var gotRoom, gotKind, gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send_message" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotRoom = r.FormValue("room")
		gotKind = r.FormValue("message_type")
		gotText = r.FormValue("message")
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	err := client.SendMessage(SendRequest{Room: "general", Kind: KindText, Text: "hello"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if gotRoom != "general" || gotKind != "text" || gotText != "hello" {
		t.Errorf("unexpected form: room=%q kind=%q text=%q", gotRoom, gotKind, gotText)
	}
}

func TestSendMessageAttachment(t *testing.T) {
	payload := []byte("fake png bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("message_type"); got != "image" {
			t.Errorf("expected message_type=image, got %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "photo.png" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer server.Close()

	stager := NewAttachmentStager()
	stager.Stage(payload, KindImage, "photo.png")

	client := NewAPIClient(server.URL)
	if err := client.SendMessage(newSendRequest("general", "", stager)); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
}

func TestSendMessageRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "room not found"})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)
	err := client.SendMessage(SendRequest{Room: "missing", Kind: KindText, Text: "hi"})
	if err == nil {
		t.Fatal("expected rejection error")
	}
}

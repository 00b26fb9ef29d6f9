package app

import "testing"

func TestParseRooms(t *testing.T) {
	rooms, err := ParseRooms([]string{"general:Open discussion", "admin", " math : Math class "})
	if err != nil {
		t.Fatalf("ParseRooms: %v", err)
	}
	if len(rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(rooms))
	}
	if rooms[0].Name != "general" || rooms[0].Description != "Open discussion" {
		t.Errorf("unexpected first room: %+v", rooms[0])
	}
	if rooms[1].Name != "admin" || rooms[1].Description != "" {
		t.Errorf("unexpected second room: %+v", rooms[1])
	}
	if rooms[2].Name != "math" || rooms[2].Description != "Math class" {
		t.Errorf("unexpected third room: %+v", rooms[2])
	}
}

func TestParseRoomsRejectsBlankName(t *testing.T) {
	if _, err := ParseRooms([]string{":just a description"}); err == nil {
		t.Fatal("expected error for blank room name")
	}
}

func TestDefaultRooms(t *testing.T) {
	rooms := DefaultRooms()
	if len(rooms) != 4 {
		t.Fatalf("expected 4 default rooms, got %d", len(rooms))
	}
	if rooms[0].Name != "general" {
		t.Errorf("expected general first, got %q", rooms[0].Name)
	}
}

package internal

import "testing"

func TestBuildRosterLocalUserFirst(t *testing.T) {
	identity := Identity{Username: "alice", Role: "teacher"}
	roster := buildRoster(identity, []PresenceEntry{
		{Username: "bob", Role: "student"},
		{Username: "carol", Role: "parent"},
	})
	if len(roster) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(roster))
	}
	if roster[0].Username != "alice" || roster[0].Role != "teacher" {
		t.Fatalf("local identity should lead: %+v", roster[0])
	}
}

func TestBuildRosterDropsRemoteDuplicate(t *testing.T) {
	identity := Identity{Username: "alice", Role: "teacher"}
	roster := buildRoster(identity, []PresenceEntry{
		{Username: "alice", Role: "teacher"},
		{Username: "bob", Role: "student"},
	})
	if len(roster) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(roster))
	}
}

func TestBuildRosterEmptySnapshot(t *testing.T) {
	roster := buildRoster(Identity{Username: "alice"}, nil)
	if len(roster) != 1 || roster[0].Username != "alice" {
		t.Fatalf("local identity should always appear: %+v", roster)
	}
}

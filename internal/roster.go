package internal

// buildRoster produces the displayed presence list from a server snapshot.
// The local identity is always synthesized as the first entry, whether or
// not the server included it, and remote duplicates of the local user are
// dropped. The displayed count is therefore remote users plus one.
func buildRoster(identity Identity, remote []PresenceEntry) []PresenceEntry {
	roster := make([]PresenceEntry, 0, len(remote)+1)
	roster = append(roster, PresenceEntry{Username: identity.Username, Role: identity.Role})
	for _, entry := range remote {
		if entry.Username == identity.Username {
			continue
		}
		roster = append(roster, entry)
	}
	return roster
}

package internal

// Message kinds as the chat server reports them in message_type.
const (
	KindText  = "text"
	KindImage = "image"
	KindVideo = "video"
	KindAudio = "audio"
)

// Message is one chat message as returned by /get_messages and
// /search_messages. The client never mutates a received message.
type Message struct {
	Username  string `json:"username"`
	Body      string `json:"message"`
	Kind      string `json:"message_type"`
	Timestamp string `json:"timestamp"`
	FilePath  string `json:"file_path,omitempty"`
}

// Key identifies a message for poll de-duplication. The server exposes no
// monotonic id, so the raw timestamp plus sender plus body is the closest
// stable identity the wire format offers.
func (m Message) Key() string {
	return m.Timestamp + "\x00" + m.Username + "\x00" + m.Body
}

// Room is a named channel with a human-readable description. Selection is
// pure client state and is never persisted.
type Room struct {
	ID          string
	Description string
}

// PresenceEntry is one row of the online roster from /get_online_users.
type PresenceEntry struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Identity is the authenticated user the hosting environment hands to the
// client. It is read-only input, not owned by this program.
type Identity struct {
	Username string
	Role     string
}

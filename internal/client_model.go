package internal

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"classchat/internal/storage"
)

const (
	initialLoadLimit     = 50
	pollFetchLimit       = 1
	messagePollInterval  = 3 * time.Second
	presencePollInterval = 10 * time.Second
	cacheKeepPerRoom     = 200

	sendBurstLimit  = 10
	sendBurstWindow = 30 * time.Second
)

type appMode int

const (
	modeRooms appMode = iota
	modeChat
	modeBrowser
)

// Capabilities are resolved once at startup; the update loop never probes
// for optional features at runtime.
type Capabilities struct {
	Attachments bool
	Recording   bool
}

// ClientOptions carries everything the TUI needs to run.
type ClientOptions struct {
	ServerURL string
	Identity  Identity
	Rooms     []Room
	Caps      Capabilities
	Cache     *storage.Cache // nil disables the local transcript cache
	Opener    CaptureOpener  // nil falls back to the system capture tool
	Stats     *ClientStats
}

// TUIModel holds all client state. Every field is owned by the bubbletea
// update loop; async work happens in commands that deliver typed messages
// back here.
type TUIModel struct {
	textInput textinput.Model
	api       *APIClient
	identity  Identity
	rooms     []Room
	caps      Capabilities
	cache     *storage.Cache
	stager    *AttachmentStager
	recorder  *Recorder
	limiter   *SendLimiter
	stats     *ClientStats

	mode      appMode
	roomIndex int

	// Active room state. pollGen tags every poll command issued for the
	// current room; responses carrying an older generation are stale and
	// dropped.
	currentRoom string
	roomDesc    string
	pollGen     int
	liveLoaded  bool
	transcript  []Message
	roster      []PresenceEntry

	// One-shot search results shown instead of the live transcript.
	// Message polling is paused while these are displayed.
	searchActive  bool
	searchQuery   string
	searchResults []Message

	notice        string
	recordElapsed time.Duration

	browserPath  string
	browserItems []FileItem
	browserIndex int
}

func NewTUIModel(opts ClientOptions) *TUIModel {
	input := textinput.New()
	input.Placeholder = "Pick a room to start chatting"
	input.CharLimit = 0
	input.Prompt = "> "

	identity := opts.Identity
	if identity.Username == "" {
		identity.Username = defaultUsername()
	}
	if identity.Role == "" {
		identity.Role = "student"
	}

	opener := opts.Opener
	if opener == nil {
		opener = SystemCaptureOpener
	}
	stats := opts.Stats
	if stats == nil {
		stats = NewClientStats()
	}

	return &TUIModel{
		textInput: input,
		api:       NewAPIClient(opts.ServerURL),
		identity:  identity,
		rooms:     opts.Rooms,
		caps:      opts.Caps,
		cache:     opts.Cache,
		stager:    NewAttachmentStager(),
		recorder:  NewRecorder(opener),
		limiter:   NewSendLimiter(sendBurstLimit, sendBurstWindow),
		stats:     stats,
		mode:      modeRooms,
		roster:    buildRoster(identity, nil),
	}
}

func defaultUsername() string {
	if user := os.Getenv("CLASSCHAT_USER"); user != "" {
		return user
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "anon"
}

// Presence polling starts immediately and runs for the whole session,
// whether or not a room is active.
func (model *TUIModel) Init() tea.Cmd {
	return tea.Batch(model.presenceCmd(), presenceTickCmd())
}

// RunClient launches the bubbletea program with the chat model.
func RunClient(opts ClientOptions) error {
	program := tea.NewProgram(NewTUIModel(opts))
	_, err := program.Run()
	return err
}

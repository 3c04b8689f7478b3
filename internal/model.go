// Package internal holds the data model shared by every game component:
// tiles, words, players, rooms, and the in-progress Game they host.
package internal

import (
	"sync"
	"time"

	"github.com/anagramthief/core/internal/dictionary"
	"github.com/anagramthief/core/internal/timer"
)

const (
	MinWordLength        = 4
	DefaultFlipRevealMs  = 1000
	MinFlipTimerSeconds  = 1
	MaxFlipTimerSeconds  = 60
	MinClaimTimerSeconds = 1
	MaxClaimTimerSeconds = 10
	EndCountdownSeconds  = 60
	MaxPlayersPerRoom    = 8
	MinPlayersToStart    = 1
)

// RoomStatus is the lifecycle of a Room, independent of its Game's
// internal state machine.
type RoomStatus string

const (
	RoomLobby   RoomStatus = "lobby"
	RoomInGame  RoomStatus = "in-game"
	RoomEnded   RoomStatus = "ended"
)

// GamePhase is the orthogonal state-machine position described in
// the game's flip/reveal/claim cycle.
type GamePhase string

const (
	PhaseIdle      GamePhase = "idle"
	PhaseRevealing GamePhase = "revealing"
	PhaseClaiming  GamePhase = "claiming"
	PhaseEnded     GamePhase = "ended"
)

// ClaimSource distinguishes a manually submitted claim from one fired
// by pre-steal arbitration.
type ClaimSource string

const (
	SourceManual   ClaimSource = "manual"
	SourcePreSteal ClaimSource = "pre-steal"
)

// ReplayStepKind enumerates the salient transitions the recorder keeps.
type ReplayStepKind string

const (
	StepGameStart    ReplayStepKind = "game-start"
	StepFlipRevealed ReplayStepKind = "flip-revealed"
	StepClaimSuccess ReplayStepKind = "claim-succeeded"
	StepClaimExpired ReplayStepKind = "claim-expired"
	StepGameEnded    ReplayStepKind = "game-ended"
)

// Tile is immutable once created; it moves between bag, center, and
// words but is never copied with a new identity.
type Tile struct {
	ID     string `json:"id"`
	Letter byte   `json:"letter"`
}

// Word is a claimed spelling backed by an exact multiset of tiles. It
// exists only while owned.
type Word struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	TileIDs   []string  `json:"tileIds"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PreStealEntry is a per-player armed auto-claim: it fires the instant
// its trigger letters appear in the center and claimWord still validates.
type PreStealEntry struct {
	ID             string    `json:"id"`
	TriggerLetters string    `json:"triggerLetters"`
	ClaimWord      string    `json:"claimWord"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Player is a participant; Score is always derived from owned words'
// tile counts, never stored divergently (see RecomputeScore).
type Player struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Connected       bool            `json:"connected"`
	Words           []*Word         `json:"words"`
	PreStealEntries []PreStealEntry `json:"preStealEntries"`
	Score           int             `json:"score"`
	JoinedAt        time.Time       `json:"joinedAt"`
}

// ClaimWindow is the short exclusive interval during which one player
// may submit a claim. At most one exists per Game.
type ClaimWindow struct {
	PlayerID string    `json:"playerId"`
	EndsAt   time.Time `json:"endsAt"`
}

// PendingFlip is the visual-reveal interval after a flip command and
// before the drawn tile actually lands in the center.
type PendingFlip struct {
	PlayerID  string    `json:"playerId"`
	StartedAt time.Time `json:"startedAt"`
	RevealsAt time.Time `json:"revealsAt"`
}

// ClaimEventMeta annotates the most recent successful claim for the
// game log / UI.
type ClaimEventMeta struct {
	EventID                           string      `json:"eventId"`
	WordID                            string      `json:"wordId"`
	ClaimantID                        string      `json:"claimantId"`
	ReplacedWordID                    string      `json:"replacedWordId,omitempty"`
	Source                            ClaimSource `json:"source"`
	MovedToBottomOfPreStealPrecedence bool        `json:"movedToBottomOfPreStealPrecedence"`
}

// ReplayStep is an immutable, annotated snapshot recorded on every
// state-changing transition whose snapshot differs from the last one.
type ReplayStep struct {
	Index int            `json:"index"`
	At    time.Time      `json:"at"`
	Kind  ReplayStepKind `json:"kind"`
	State GameSnapshot    `json:"state"`
}

// Replay is the append-only log of a single game's ReplaySteps.
type Replay struct {
	Steps []ReplayStep `json:"steps"`
}

// GameSnapshot is the subset of Game fields relevant for replay review;
// it deliberately omits bag contents (only the count) and anything
// transport-specific.
type GameSnapshot struct {
	Status           RoomStatus                `json:"status"`
	BagCount         int                        `json:"bagCount"`
	CenterTiles      []Tile                     `json:"centerTiles"`
	Players          []PlayerSnapshot           `json:"players"`
	TurnPlayerID     string                     `json:"turnPlayerId"`
	ClaimWindow      *ClaimWindow               `json:"claimWindow,omitempty"`
	ClaimCooldowns   map[string]time.Time       `json:"claimCooldowns"`
	PendingFlip      *PendingFlip               `json:"pendingFlip,omitempty"`
	PreStealEnabled  bool                       `json:"preStealEnabled"`
	PrecedenceOrder  []string                   `json:"precedenceOrder"`
	LastClaimEvent   *ClaimEventMeta            `json:"lastClaimEvent,omitempty"`
	EndTimerEndsAt   *time.Time                 `json:"endTimerEndsAt,omitempty"`
}

// PlayerSnapshot is the per-player slice of a GameSnapshot: words plus
// pre-steal entries, fully visible (viewer masking happens only in the
// live projection layer, not in the recorded replay).
type PlayerSnapshot struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Words           []Word          `json:"words"`
	PreStealEntries []PreStealEntry `json:"preStealEntries"`
	Score           int             `json:"score"`
}

// Room is the lobby-level entity: identity, settings, membership. Game
// is nil until status leaves lobby.
type Room struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	IsPublic  bool       `json:"isPublic"`
	Code      string     `json:"code,omitempty"`
	HostID    string     `json:"hostId"`
	Status    RoomStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`

	FlipTimerEnabled  bool `json:"flipTimerEnabled"`
	FlipTimerSeconds  int  `json:"flipTimerSeconds"`
	ClaimTimerSeconds int  `json:"claimTimerSeconds"`
	PreStealEnabled   bool `json:"preStealEnabled"`
	MaxPlayers        int  `json:"maxPlayers"`

	Players    map[string]*Player `json:"players"`
	Spectators map[string]*Player `json:"spectators"`

	// JoinOrder is the order players were seated, host first; it is the
	// source of truth for a freshly started game's TurnOrder and
	// PrecedenceOrder, since Players is a map and Go map iteration order
	// is randomized.
	JoinOrder []string `json:"-"`

	Game *Game `json:"game,omitempty"`

	Mu sync.RWMutex `json:"-"`
}

// Game is the live per-room state machine payload, present iff
// Room.Status != RoomLobby.
type Game struct {
	Phase GamePhase `json:"phase"`

	Timer *timer.Scheduler        `json:"-"`
	Dict  *dictionary.Dictionary  `json:"-"`

	Bag          []Tile   `json:"-"`
	CenterTiles  []Tile   `json:"centerTiles"`
	TurnOrder    []string `json:"turnOrder"`
	TurnIndex    int      `json:"turnIndex"`

	LastClaimAt    time.Time  `json:"lastClaimAt"`
	EndTimerEndsAt *time.Time `json:"endTimerEndsAt,omitempty"`

	ClaimWindow    *ClaimWindow         `json:"claimWindow,omitempty"`
	ClaimCooldowns map[string]time.Time `json:"claimCooldowns"`
	PendingFlip    *PendingFlip         `json:"pendingFlip,omitempty"`

	PreStealEnabled bool     `json:"preStealEnabled"`
	PrecedenceOrder []string `json:"precedenceOrder"`

	LastClaimEvent *ClaimEventMeta `json:"lastClaimEvent,omitempty"`

	Replay                 Replay `json:"-"`
	LastReplaySnapshotHash string `json:"-"`

	// OnChange is invoked, outside room.Mu, after a timer-fired
	// transition (autoFlip, pendingFlipReveal, claimWindow expiry,
	// endCountdown) mutates the game — these happen with no inbound
	// command to reply to, so this is how the registry learns to push
	// fresh state to subscribers. Commands triggered directly by a
	// client publish through their own request/response path instead.
	OnChange func() `json:"-"`
}

// Message is the generic inbound/outbound wire envelope: a type tag
// plus a type-safe payload.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

package internal

import "time"

// RoomSummary is the projection used by room:list — enough to pick a
// room to join without exposing its live game state.
type RoomSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	IsPublic      bool   `json:"isPublic"`
	PlayerCount   int    `json:"playerCount"`
	MaxPlayers    int    `json:"maxPlayers"`
	Status        RoomStatus `json:"status"`
}

// SessionSelf tells a freshly connected client who they are.
type SessionSelf struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	RoomID   string `json:"roomId,omitempty"`
}

// ErrorPayload is the outbound `error` event body.
type ErrorPayload struct {
	Message string `json:"message"`
}

// GameState is the per-viewer projection of a live Game, built by
// internal/projection and pushed as the `game:state` outbound event.
type GameState struct {
	RoomID          string               `json:"roomId"`
	Phase           GamePhase            `json:"phase"`
	TurnPlayerID    string               `json:"turnPlayerId"`
	CenterTiles     []Tile               `json:"centerTiles"`
	BagLetterCounts map[string]int       `json:"bagLetterCounts"`
	BagCount        int                  `json:"bagCount"`
	Players         []PlayerView         `json:"players"`
	ClaimWindow     *ClaimWindow         `json:"claimWindow,omitempty"`
	ClaimCooldowns  map[string]time.Time `json:"claimCooldowns"`
	PendingFlip     *PendingFlip         `json:"pendingFlip,omitempty"`
	PreStealEnabled bool                 `json:"preStealEnabled"`
	PrecedenceOrder []string             `json:"precedenceOrder"`
	LastClaimEvent  *ClaimEventMeta      `json:"lastClaimEvent,omitempty"`
	EndTimerEndsAt  *time.Time           `json:"endTimerEndsAt,omitempty"`
	Replay          *Replay              `json:"replay,omitempty"`
}

// PlayerView is the masked per-player row inside a GameState: other
// players' pre-steal entries are hidden from a player viewer.
type PlayerView struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Connected       bool            `json:"connected"`
	Words           []Word          `json:"words"`
	PreStealEntries []PreStealEntry `json:"preStealEntries"`
	Score           int             `json:"score"`
}

// PracticeState is the outbound `practice:state` event: the active
// puzzle plus the outcome of the most recent submission, if any.
type PracticeState struct {
	Difficulty    int    `json:"difficulty"`
	CenterTiles   []Tile `json:"centerTiles"`
	ExistingWords []PracticeExistingWord `json:"existingWords"`

	LastSubmission *PracticeEvaluation `json:"lastSubmission,omitempty"`
}

// PracticeExistingWord is a filler word already on the practice board.
type PracticeExistingWord struct {
	OwnerID string `json:"ownerId"`
	Text    string `json:"text"`
}

// PracticeEvaluation is the outcome of scoring one practice submission.
type PracticeEvaluation struct {
	IsValid       bool   `json:"isValid"`
	IsBestPlay    bool   `json:"isBestPlay"`
	Score         int    `json:"score"`
	BestScore     int    `json:"bestScore"`
	Category      string `json:"category"`
	InvalidReason string `json:"invalidReason,omitempty"`
}

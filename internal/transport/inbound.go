package transport

// Inbound frames are unmarshaled from the generic internal.Message[T]
// envelope's Data field once its Type has selected one of these shapes.

type createRoomPayload struct {
	Name              string `json:"name"`
	IsPublic          bool   `json:"isPublic"`
	MaxPlayers        int    `json:"maxPlayers"`
	FlipTimerEnabled  bool   `json:"flipTimerEnabled"`
	FlipTimerSeconds  int    `json:"flipTimerSeconds"`
	ClaimTimerSeconds int    `json:"claimTimerSeconds"`
	PreStealEnabled   bool   `json:"preStealEnabled"`
}

type joinRoomPayload struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
}

type spectateRoomPayload struct {
	RoomID string `json:"roomId"`
}

type flipPayload struct {
	RoomID string `json:"roomId"`
}

type claimIntentPayload struct {
	RoomID string `json:"roomId"`
}

type claimPayload struct {
	RoomID string `json:"roomId"`
	Word   string `json:"word"`
}

type preStealAddPayload struct {
	RoomID         string `json:"roomId"`
	TriggerLetters string `json:"triggerLetters"`
	ClaimWord      string `json:"claimWord"`
}

type preStealRemovePayload struct {
	RoomID  string `json:"roomId"`
	EntryID string `json:"entryId"`
}

type preStealReorderPayload struct {
	RoomID     string   `json:"roomId"`
	OrderedIDs []string `json:"orderedIds"`
}

type practiceStartPayload struct {
	Difficulty    int             `json:"difficulty,omitempty"`
	SharedPuzzle  *practicePuzzle `json:"sharedPuzzle,omitempty"`
	TimerEnabled  bool            `json:"timerEnabled,omitempty"`
	TimerSeconds  int             `json:"timerSeconds,omitempty"`
}

// practicePuzzle is the wire shape of a shared/custom puzzle; it is
// converted to practice.Puzzle once its tiles and words are resolved.
type practicePuzzle struct {
	CenterLetters string              `json:"centerLetters"`
	ExistingWords []practiceShareWord `json:"existingWords,omitempty"`
}

type practiceShareWord struct {
	OwnerID string `json:"ownerId"`
	Text    string `json:"text"`
}

type practiceSubmitPayload struct {
	Word string `json:"word"`
}

type practiceValidateCustomPayload struct {
	SharedPuzzle practicePuzzle `json:"sharedPuzzle"`
}

type practiceSetDifficultyPayload struct {
	Difficulty int `json:"difficulty"`
}

type replayAnalyzeStepPayload struct {
	RoomID    string `json:"roomId"`
	StepIndex int    `json:"stepIndex"`
}

type replayAnalyzeImportedStepPayload struct {
	ReplayFile []byte `json:"replayFile"`
	StepIndex  int    `json:"stepIndex"`
}

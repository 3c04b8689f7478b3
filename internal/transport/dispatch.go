package transport

import (
	"encoding/json"
	"log"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/game"
	"github.com/anagramthief/core/internal/practice"
	"github.com/anagramthief/core/internal/projection"
	"github.com/anagramthief/core/internal/replay"
)

// dispatch decodes env.Data against the shape its Type selects and
// calls the matching registry/practice/replay operation. playerID is
// this connection's stable identity for the lifetime of the socket;
// name/initialRoomID/initialRole come from the connect-time query
// params. name is the display name room:create/join/spectate seat the
// viewer under (a name in the room:join payload is not read);
// initialRoomID and initialRole are not read by any command.
func (s *Server) dispatch(c *Connection, playerID, name, initialRoomID, initialRole string, env internal.Message[json.RawMessage]) {
	switch env.Type {
	case "room:create":
		s.handleCreateRoom(c, playerID, name, env.Data)
	case "room:join":
		s.handleJoinRoom(c, playerID, name, env.Data)
	case "room:spectate":
		s.handleSpectateRoom(c, playerID, name, env.Data)
	case "room:leave":
		s.handleLeaveRoom(c, playerID)
	case "room:start":
		s.handleStartRoom(c, playerID)
	case "room:list":
		_ = c.Send(internal.Message[any]{Type: "room:list", Data: s.registry.ListPublicRooms()})

	case "game:flip":
		s.handleFlip(c, playerID, env.Data)
	case "game:claim-intent":
		s.handleClaimIntent(c, playerID, env.Data)
	case "game:claim":
		s.handleClaim(c, playerID, env.Data)
	case "game:pre-steal:add":
		s.handlePreStealAdd(c, playerID, env.Data)
	case "game:pre-steal:remove":
		s.handlePreStealRemove(c, playerID, env.Data)
	case "game:pre-steal:reorder":
		s.handlePreStealReorder(c, playerID, env.Data)

	case "practice:start":
		s.handlePracticeStart(c, playerID, env.Data)
	case "practice:submit":
		s.handlePracticeSubmit(c, playerID, env.Data)
	case "practice:skip":
		s.handlePracticeSkip(c, playerID)
	case "practice:next":
		s.handlePracticeNext(c, playerID)
	case "practice:exit":
		s.handlePracticeExit(c, playerID)
	case "practice:validate-custom":
		s.handlePracticeValidateCustom(c, env.Data)
	case "practice:set-difficulty":
		s.handlePracticeSetDifficulty(c, playerID, env.Data)

	case "replay:analyze-step":
		s.handleReplayAnalyzeStep(c, env.Data)
	case "replay:analyze-imported-step":
		s.handleReplayAnalyzeImportedStep(c, env.Data)

	default:
		s.sendError(c, "Unknown command: "+env.Type)
	}
}

func decode[T any](c *Connection, raw json.RawMessage) (T, bool) {
	var v T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &v); err != nil {
			var zero T
			return zero, false
		}
	}
	return v, true
}

func (s *Server) handleCreateRoom(c *Connection, playerID, name string, raw json.RawMessage) {
	p, ok := decode[createRoomPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed room:create payload.")
		return
	}
	// Settings the payload omits fall back to the process defaults.
	var present map[string]json.RawMessage
	_ = json.Unmarshal(raw, &present)
	if _, ok := present["flipTimerSeconds"]; !ok {
		p.FlipTimerSeconds = s.cfg.FlipTimerSeconds
	}
	if _, ok := present["claimTimerSeconds"]; !ok {
		p.ClaimTimerSeconds = s.cfg.ClaimTimerSeconds
	}
	if _, ok := present["preStealEnabled"]; !ok {
		p.PreStealEnabled = s.cfg.PreStealEnabled
	}
	room := s.registry.CreateRoom(game.NewRoomParams{
		Name:              p.Name,
		IsPublic:          p.IsPublic,
		HostID:            playerID,
		HostName:          name,
		FlipTimerEnabled:  p.FlipTimerEnabled,
		FlipTimerSeconds:  p.FlipTimerSeconds,
		ClaimTimerSeconds: p.ClaimTimerSeconds,
		PreStealEnabled:   p.PreStealEnabled,
		MaxPlayers:        p.MaxPlayers,
	})
	log.Printf("transport: room %s created by %s", room.ID, playerID)
	s.subscribeViewer(room, projection.ViewerPlayer, c, true)
}

func (s *Server) handleJoinRoom(c *Connection, playerID, name string, raw json.RawMessage) {
	p, ok := decode[joinRoomPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed room:join payload.")
		return
	}
	room, err := s.registry.JoinRoom(p.RoomID, playerID, name, p.Code)
	if err != nil {
		s.sendError(c, refusalMessage(err))
		return
	}
	s.subscribeViewer(room, projection.ViewerPlayer, c, true)
}

func (s *Server) handleSpectateRoom(c *Connection, playerID, name string, raw json.RawMessage) {
	p, ok := decode[spectateRoomPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed room:spectate payload.")
		return
	}
	room, err := s.registry.SpectateRoom(p.RoomID, playerID, name)
	if err != nil {
		s.sendError(c, refusalMessage(err))
		return
	}
	s.subscribeViewer(room, projection.ViewerSpectator, c, false)
}

func (s *Server) handleLeaveRoom(c *Connection, playerID string) {
	roomID, _ := c.Room()
	if roomID == "" {
		return
	}
	s.registry.LeaveRoom(roomID, playerID)
	s.registry.Unsubscribe(roomID, playerID)
	c.SetRoom("", false)
	if room := s.registry.Get(roomID); room != nil {
		s.publish(room)
	}
}

func (s *Server) handleStartRoom(c *Connection, playerID string) {
	roomID, _ := c.Room()
	if roomID == "" {
		s.sendError(c, "You are not in a room.")
		return
	}
	if err := s.registry.StartGame(roomID, playerID); err != nil {
		s.sendError(c, refusalMessage(err))
		return
	}
	if room := s.registry.Get(roomID); room != nil {
		s.publish(room)
	}
}

func (s *Server) handleFlip(c *Connection, playerID string, raw json.RawMessage) {
	p, ok := decode[flipPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed game:flip payload.")
		return
	}
	room, err := s.registry.Flip(roomOrConn(c, p.RoomID), playerID)
	s.finishGameCommand(c, room, err)
}

func (s *Server) handleClaimIntent(c *Connection, playerID string, raw json.RawMessage) {
	p, ok := decode[claimIntentPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed game:claim-intent payload.")
		return
	}
	room, err := s.registry.ClaimIntent(roomOrConn(c, p.RoomID), playerID)
	s.finishGameCommand(c, room, err)
}

func (s *Server) handleClaim(c *Connection, playerID string, raw json.RawMessage) {
	p, ok := decode[claimPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed game:claim payload.")
		return
	}
	room, _, err := s.registry.Claim(roomOrConn(c, p.RoomID), playerID, p.Word)
	s.finishGameCommand(c, room, err)
}

func (s *Server) handlePreStealAdd(c *Connection, playerID string, raw json.RawMessage) {
	p, ok := decode[preStealAddPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed game:pre-steal:add payload.")
		return
	}
	room, _, err := s.registry.PreStealAdd(roomOrConn(c, p.RoomID), playerID, p.TriggerLetters, p.ClaimWord)
	s.finishGameCommand(c, room, err)
}

func (s *Server) handlePreStealRemove(c *Connection, playerID string, raw json.RawMessage) {
	p, ok := decode[preStealRemovePayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed game:pre-steal:remove payload.")
		return
	}
	room, err := s.registry.PreStealRemove(roomOrConn(c, p.RoomID), playerID, p.EntryID)
	s.finishGameCommand(c, room, err)
}

func (s *Server) handlePreStealReorder(c *Connection, playerID string, raw json.RawMessage) {
	p, ok := decode[preStealReorderPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed game:pre-steal:reorder payload.")
		return
	}
	room, err := s.registry.PreStealReorder(roomOrConn(c, p.RoomID), playerID, p.OrderedIDs)
	s.finishGameCommand(c, room, err)
}

// finishGameCommand reports a refusal/validation failure to the caller
// alone, or publishes fresh state to every subscriber on success. A
// nil room (room:not-found) has nothing to publish.
func (s *Server) finishGameCommand(c *Connection, room *internal.Room, err error) {
	if err != nil {
		s.sendError(c, refusalMessage(err))
		return
	}
	s.publish(room)
}

// roomOrConn resolves the room id a game command applies to: the
// payload's own roomId if given, else the room this connection is
// currently attached to.
func roomOrConn(c *Connection, payloadRoomID string) string {
	if payloadRoomID != "" {
		return payloadRoomID
	}
	roomID, _ := c.Room()
	return roomID
}

func (s *Server) handlePracticeStart(c *Connection, playerID string, raw json.RawMessage) {
	p, ok := decode[practiceStartPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed practice:start payload.")
		return
	}
	sess := s.sessionFor(playerID)
	if p.Difficulty > 0 {
		sess.SetDifficulty(p.Difficulty)
	}
	var shared *practice.Puzzle
	if p.SharedPuzzle != nil {
		puzzle := toPuzzle(*p.SharedPuzzle)
		shared = &puzzle
	}
	sess.Start(shared)
	s.sendPracticeState(c, sess, nil)
}

func (s *Server) handlePracticeSubmit(c *Connection, playerID string, raw json.RawMessage) {
	p, ok := decode[practiceSubmitPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed practice:submit payload.")
		return
	}
	sess := s.sessionFor(playerID)
	eval, err := sess.Submit(p.Word)
	if err != nil {
		s.sendError(c, "Start a puzzle before submitting.")
		return
	}
	s.sendPracticeState(c, sess, &eval)
}

func (s *Server) handlePracticeSkip(c *Connection, playerID string) {
	sess := s.sessionFor(playerID)
	sess.Skip()
	s.sendPracticeState(c, sess, nil)
}

func (s *Server) handlePracticeNext(c *Connection, playerID string) {
	sess := s.sessionFor(playerID)
	sess.Next()
	s.sendPracticeState(c, sess, nil)
}

func (s *Server) handlePracticeExit(c *Connection, playerID string) {
	s.mu.Lock()
	delete(s.practice, playerID)
	s.mu.Unlock()
}

func (s *Server) handlePracticeValidateCustom(c *Connection, raw json.RawMessage) {
	p, ok := decode[practiceValidateCustomPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed practice:validate-custom payload.")
		return
	}
	puzzle := toPuzzle(p.SharedPuzzle)
	okResult, message := practice.ValidateCustom(puzzle, s.registry.Dictionary())
	_ = c.Send(internal.Message[any]{Type: "practice:validate-custom", Data: struct {
		OK      bool   `json:"ok"`
		Message string `json:"message,omitempty"`
	}{OK: okResult, Message: message}})
}

func (s *Server) handlePracticeSetDifficulty(c *Connection, playerID string, raw json.RawMessage) {
	p, ok := decode[practiceSetDifficultyPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed practice:set-difficulty payload.")
		return
	}
	sess := s.sessionFor(playerID)
	sess.SetDifficulty(p.Difficulty)
	s.sendPracticeState(c, sess, nil)
}

func (s *Server) handleReplayAnalyzeStep(c *Connection, raw json.RawMessage) {
	p, ok := decode[replayAnalyzeStepPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed replay:analyze-step payload.")
		return
	}
	room := s.registry.Get(p.RoomID)
	if room == nil {
		s.sendError(c, "Room not found.")
		return
	}
	room.Mu.RLock()
	var rep internal.Replay
	if room.Game != nil {
		rep = room.Game.Replay
	}
	room.Mu.RUnlock()

	result, err := replay.AnalyzeStep(rep, p.StepIndex, s.registry.Dictionary())
	if err != nil {
		s.sendError(c, "Replay analysis failed.")
		return
	}
	_ = c.Send(internal.Message[any]{Type: "replay:analysis", Data: result})
}

func (s *Server) handleReplayAnalyzeImportedStep(c *Connection, raw json.RawMessage) {
	p, ok := decode[replayAnalyzeImportedStepPayload](c, raw)
	if !ok {
		s.sendError(c, "Malformed replay:analyze-imported-step payload.")
		return
	}
	file, err := replay.Parse(p.ReplayFile)
	if err != nil {
		s.sendError(c, "Replay analysis failed.")
		return
	}
	result, err := replay.AnalyzeStep(file.Replay, p.StepIndex, s.registry.Dictionary())
	if err != nil {
		s.sendError(c, "Replay analysis failed.")
		return
	}
	_ = c.Send(internal.Message[any]{Type: "replay:analysis", Data: result})
}

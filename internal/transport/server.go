package transport

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/config"
	"github.com/anagramthief/core/internal/game"
	"github.com/anagramthief/core/internal/practice"
	"github.com/anagramthief/core/internal/projection"
	"github.com/anagramthief/core/internal/registry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server wires the HTTP/WebSocket surface onto a Registry: it never
// touches room or game state directly, only through registry calls.
type Server struct {
	registry *registry.Registry
	cfg      config.Config

	mu       sync.Mutex
	practice map[string]*practice.Session
}

// NewServer builds a Server over reg using cfg for request-time
// defaults (the timer and pre-steal settings of room:create).
func NewServer(reg *registry.Registry, cfg config.Config) *Server {
	return &Server{
		registry: reg,
		cfg:      cfg,
		practice: make(map[string]*practice.Session),
	}
}

// Router builds the gorilla/mux router for this server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/rooms", s.handleListRooms).Methods(http.MethodGet)
	r.HandleFunc("/ws/{roomId}", s.handleWebSocket)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.ListPublicRooms())
}

// handleWebSocket upgrades the connection and reads identity from query
// params (name, role=player|spectator; "lobby" is used in place of a
// roomId path segment for a connection that hasn't joined a room yet,
// e.g. one headed straight into practice mode).
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID := vars["roomId"]
	name := r.URL.Query().Get("name")
	role := r.URL.Query().Get("role")
	if role == "" {
		role = "player"
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("transport: upgrade failed: %v", err)
		return
	}

	playerID := uuid.NewString()
	c := NewConnection(playerID, conn)
	log.Printf("transport: connection %s opened (room=%s role=%s)", playerID, roomID, role)

	self := internal.SessionSelf{PlayerID: playerID, Name: name}
	if roomID != "" && roomID != "lobby" {
		self.RoomID = roomID
	}
	_ = c.Send(internal.Message[any]{Type: "session:self", Data: self})

	s.readLoop(c, playerID, name, roomID, role)
}

func (s *Server) readLoop(c *Connection, playerID, name, roomID, role string) {
	defer s.cleanupConnection(c, playerID)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var env internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &env); err != nil {
			s.sendError(c, "Malformed message.")
			continue
		}
		s.dispatch(c, playerID, name, roomID, role, env)
	}
}

func (s *Server) cleanupConnection(c *Connection, playerID string) {
	_ = c.Close()
	roomID, _ := c.Room()
	if roomID != "" {
		s.registry.LeaveRoom(roomID, playerID)
		if room := s.registry.Get(roomID); room != nil {
			s.publish(room)
		}
	}
	s.registry.Unsubscribe(roomID, playerID)

	s.mu.Lock()
	delete(s.practice, playerID)
	s.mu.Unlock()

	log.Printf("transport: connection %s closed", playerID)
}

func (s *Server) sendError(c *Connection, message string) {
	_ = c.Send(internal.Message[any]{Type: "error", Data: internal.ErrorPayload{Message: message}})
}

func (s *Server) sessionFor(playerID string) *practice.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.practice[playerID]
	if sess == nil {
		sess = practice.NewSession(s.registry.Dictionary(), rand.New(rand.NewSource(time.Now().UnixNano())))
		s.practice[playerID] = sess
	}
	return sess
}

func (s *Server) sendPracticeState(c *Connection, sess *practice.Session, last *practice.Evaluation) {
	state := internal.PracticeState{Difficulty: sess.Difficulty}
	if sess.Puzzle != nil {
		state.CenterTiles = append([]internal.Tile(nil), sess.Puzzle.CenterTiles...)
		for _, w := range sess.Puzzle.ExistingWords {
			state.ExistingWords = append(state.ExistingWords, internal.PracticeExistingWord{OwnerID: w.OwnerID, Text: w.Text})
		}
	}
	if last != nil {
		state.LastSubmission = &internal.PracticeEvaluation{
			IsValid:       last.IsValid,
			IsBestPlay:    last.IsBestPlay,
			Score:         last.Score,
			BestScore:     last.BestScore,
			Category:      string(last.Category),
			InvalidReason: last.InvalidReason,
		}
	}
	_ = c.Send(internal.Message[any]{Type: "practice:state", Data: state})
}

func (s *Server) publish(room *internal.Room) {
	if room == nil {
		return
	}
	s.registry.Publish(context.Background(), room)
}

// subscribeViewer registers c as a subscriber for room and immediately
// publishes current state to it.
func (s *Server) subscribeViewer(room *internal.Room, kind projection.ViewerKind, c *Connection, isPlayer bool) {
	s.registry.Subscribe(room.ID, kind, c)
	c.SetRoom(room.ID, isPlayer)
	s.publish(room)
}

// refusalMessage renders any error into a user-facing message, using
// game.RefusalError's own rendering when available and falling back to
// Error() otherwise.
func refusalMessage(err error) string {
	if re, ok := err.(*game.RefusalError); ok {
		return re.Error()
	}
	return err.Error()
}

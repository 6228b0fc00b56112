package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"github.com/palacegame/palace/bot"
	"github.com/palacegame/palace/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewGameReq is a request to start a game against AI opponents
type NewGameReq struct {
	Name       string   `json:"name"`
	Opponents  []string `json:"opponents"`
	Difficulty string   `json:"difficulty,omitempty"`
}

// NewGameRes carries the id the client uses to attach a websocket
type NewGameRes struct {
	GameID string `json:"game_id"`
}

// GameServer drives games over HTTP and websockets
type GameServer struct {
	store   GameStore
	cfg     Config
	handler http.Handler
}

// NewID constructs a session id
func NewID() string {
	return uuid.NewV4().String()
}

// NewServer creates a new GameServer
func NewServer(store GameStore, cfg Config) *GameServer {
	s := &GameServer{store: store, cfg: cfg}

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.AllowedOrigin}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	s.handler = handlers.LoggingHandler(os.Stdout, cors(router))

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.handler.ServeHTTP(w, r)
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w)
		return
	}

	if data.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing player name"))
		return
	}

	difficulty, err := g.difficulty(data.Difficulty)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	names := append([]string{data.Name}, data.Opponents...)
	session, err := NewSession(NewID(), names, difficulty)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	if err := g.store.AddGame(session); err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(NewGameRes{GameID: session.ID()})
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(payload)
}

// HandleWS attaches the human client to its game
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return
	}

	session, ok := g.store.FindGame(gameID)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(fmt.Sprintf("unknown game ID '%s'", gameID)))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	go g.serveGame(conn, session)
}

// serveGame is the per-connection loop: each human intent is applied,
// then pending AI turns are stepped after the configured thinking delay.
func (g *GameServer) serveGame(conn *websocket.Conn, session *Session) {
	defer conn.Close()

	for {
		var msg protocol.InboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("game %s: read: %v", session.ID(), err)
			return
		}

		out, err := session.HandleIntent(msg)
		if err != nil {
			log.Printf("game %s: %v", session.ID(), err)
			continue
		}
		if err := conn.WriteJSON(out); err != nil {
			return
		}

		for session.PendingAITurn() {
			time.Sleep(g.cfg.AIDelay)
			out, err := session.StepAITurn()
			if err != nil {
				log.Printf("game %s: %v", session.ID(), err)
				break
			}
			if err := conn.WriteJSON(out); err != nil {
				return
			}
		}
	}
}

func (g *GameServer) difficulty(s string) (bot.Difficulty, error) {
	if s == "" {
		s = g.cfg.Difficulty
	}
	return bot.ParseDifficulty(s)
}

func writeParseError(err error, w http.ResponseWriter) {
	w.Header().Add("Content-Type", "text/plain")
	if err == io.EOF {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing body"))
		return
	}
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte("could not parse request"))
}

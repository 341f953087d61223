package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/owalsh/minichess/internal/engine"
	"github.com/owalsh/minichess/internal/ws"
)

// GameConnections holds the live sockets observing one game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game is one session: a single engine board, two seats, clocks and the
// observers to notify. The mutex gives the board the exclusive ownership
// it expects; every board access goes through it.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *engine.Board
	players     Seats
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	lastMove    *engine.Move
}

type Seats struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameState is the JSON view sent to clients. It is derived from the board
// on every read rather than kept as separate mutable state.
type GameState struct {
	Board       [][]*engine.Piece `json:"board"`
	ToMove      engine.Color      `json:"toMove"`
	MoveHistory []string          `json:"moveHistory"`
	LegalMoves  []string          `json:"legalMoves"`
	Players     Seats             `json:"players"`
	LastMove    *engine.Move      `json:"lastMove"`
}

func NewGame(id string, notation engine.Notation) *Game {
	return &Game{
		ID:          id,
		board:       engine.NewBoard(notation),
		connections: NewGameConnections(),
		whiteClock:  NewClock(600 * time.Second),
		blackClock:  NewClock(600 * time.Second),
	}
}

func (g *Game) AddPlayer(playerID string) (engine.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: engine.White, TimeLeft: 6000}
		return engine.White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: engine.Black, TimeLeft: 6000}
		return engine.Black, nil
	}
	return "", errors.New("game is full")
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stateLocked()
}

func (g *Game) stateLocked() GameState {
	moves := g.board.History()
	history := make([]string, 0, len(moves))
	for _, m := range moves {
		history = append(history, g.board.Format(m))
	}
	players := g.players
	players.White.TimeLeft = int(g.whiteClock.GetTimeLeft().Milliseconds() / 100)
	players.Black.TimeLeft = int(g.blackClock.GetTimeLeft().Milliseconds() / 100)
	return GameState{
		Board:       boardGrid(g.board),
		ToMove:      g.board.Turn(),
		MoveHistory: history,
		LegalMoves:  g.legalMovesLocked(),
		Players:     players,
		LastMove:    g.lastMove,
	}
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.players.White.ID != "" && g.players.White.ID == playerID {
		return true
	}
	if g.players.Black.ID != "" && g.players.Black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// seatColor reports which side the player occupies, if any.
func (g *Game) seatColor(playerID string) (engine.Color, bool) {
	if playerID == "" {
		return "", false
	}
	if g.players.White.ID == playerID {
		return engine.White, true
	}
	if g.players.Black.ID == playerID {
		return engine.Black, true
	}
	return "", false
}

// MakeMove parses and applies one line of move text on behalf of a seated
// player, returning the formatted move for echoing. Parse and legality
// failures come back unwrapped from the engine; the board is untouched in
// either case and the player can simply retry.
func (g *Game) MakeMove(playerID, text string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, seated := g.seatColor(playerID)
	if !seated {
		return "", errors.New("player not in game")
	}
	if color != g.board.Turn() {
		return "", errors.New("not your turn")
	}

	move, err := g.board.Parse(text)
	if err != nil {
		return "", err
	}
	if err := g.board.MakeMove(move); err != nil {
		return "", err
	}

	switch color {
	case engine.White:
		g.whiteClock.Stop()
		g.blackClock.Start()
	case engine.Black:
		g.blackClock.Stop()
		g.whiteClock.Start()
	}
	g.lastMove = &move

	go g.broadcastState()

	return g.board.Format(move), nil
}

// LegalMoves returns the current side's moves in the game's notation.
func (g *Game) LegalMoves() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.legalMovesLocked()
}

func (g *Game) legalMovesLocked() []string {
	moves := g.board.LegalMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, g.board.Format(m))
	}
	return out
}

// WithBoard runs fn with the game lock held, for read-only projections
// (like rendering) that live outside this package.
func (g *Game) WithBoard(fn func(b *engine.Board)) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fn(g.board)
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	authorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !authorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection, reject the duplicate.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	state := g.GetState()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("marshal game state: %v", err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("send state to player %s: %v", playerID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}

package model

import "github.com/owalsh/minichess/internal/engine"

type Player struct {
	ID    string
	Color engine.Color
}

// ClientPlayer is the JSON view of a seat. TimeLeft is in tenths of a
// second.
type ClientPlayer struct {
	ID       string       `json:"name"`
	Color    engine.Color `json:"color"`
	TimeLeft int          `json:"timeLeft"`
}

// MatchFoundEvent is sent to a queued player when matchmaking pairs them.
type MatchFoundEvent struct {
	GameID string       `json:"gameId"`
	Color  engine.Color `json:"color"`
}

package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type GameStatus int

const (
	StatusRunning GameStatus = iota
	StatusPlayer1Won
	StatusPlayer2Won
	StatusDraw
)

func (s GameStatus) String() string {
	switch s {
	case StatusPlayer1Won:
		return "player1_won"
	case StatusPlayer2Won:
		return "player2_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

type HistoryEntry struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Z         int     `json:"z"`
	Player    int     `json:"player"`
	Decided   bool    `json:"decided"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

// Game tracks one hosted game: the service is not the authority on the
// board (the host is), but it mirrors the moves it sees so finished games
// can be archived with a full history.
type Game struct {
	ID        string
	Board     Board
	ToMove    Player
	Status    GameStatus
	Winner    Player
	History   []HistoryEntry
	StartedAt time.Time
	EndedAt   time.Time
}

func NewGame(first Player) *Game {
	if first != PlayerOne && first != PlayerTwo {
		first = PlayerOne
	}
	return &Game{
		ID:        uuid.NewString(),
		ToMove:    first,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
}

func (g *Game) Apply(move Move, player Player, elapsed time.Duration, decided bool) error {
	if g.Status != StatusRunning {
		return fmt.Errorf("game %s is already %s", g.ID, g.Status)
	}
	if player != g.ToMove {
		return fmt.Errorf("it is %s's turn, not %s's", g.ToMove, player)
	}
	z, ok := g.Board.ApplyMove(move.X, move.Y, player)
	if !ok {
		return fmt.Errorf("column (%d,%d) has no room", move.X, move.Y)
	}
	g.History = append(g.History, HistoryEntry{
		X:         move.X,
		Y:         move.Y,
		Z:         z,
		Player:    int(player),
		Decided:   decided,
		ElapsedMs: float64(elapsed.Microseconds()) / 1000.0,
	})
	g.ToMove = otherPlayer(player)
	g.refreshStatus()
	return nil
}

func (g *Game) refreshStatus() {
	winner, draw := g.Board.Winner()
	switch {
	case winner == PlayerOne:
		g.Status = StatusPlayer1Won
	case winner == PlayerTwo:
		g.Status = StatusPlayer2Won
	case draw:
		g.Status = StatusDraw
	default:
		return
	}
	g.Winner = winner
	g.EndedAt = time.Now()
}

func (g *Game) Finished() bool {
	return g.Status != StatusRunning
}

func (g *Game) LastMove() *Coord {
	if len(g.History) == 0 {
		return nil
	}
	last := g.History[len(g.History)-1]
	return &Coord{X: last.X, Y: last.Y, Z: last.Z}
}

package main

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DecisionPolicy is the single capability the host consumes: given the
// authoritative board, the side to move and the last move played, produce
// the column to drop into. Forced tactics run before any search, and a
// structurally valid fallback is guaranteed whenever the board has room.
type DecisionPolicy struct {
	tt *TranspositionTable
}

func NewDecisionPolicy(config Config) *DecisionPolicy {
	return &DecisionPolicy{tt: NewTranspositionTable(config.AiTtMaxEntries)}
}

func (p *DecisionPolicy) CacheSize() int {
	return p.tt.Count()
}

func (p *DecisionPolicy) CacheCapacity() int {
	return p.tt.Capacity()
}

func (p *DecisionPolicy) FlushCache() {
	p.tt.Clear()
}

// Decide never lets an internal fault reach the host: any panic below this
// boundary degrades to the fallback stage. The board parameter is a value
// copy, so the caller's grid is untouched no matter what the search does.
func (p *DecisionPolicy) Decide(board Board, player Player, lastMove *Coord) (move Move) {
	start := time.Now()
	config := GetConfig()
	deadline := start.Add(time.Duration(config.AiTimeBudgetMs) * time.Millisecond)
	if player != PlayerOne && player != PlayerTwo {
		player = PlayerOne
	}

	stage := "fallback"
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Error().Interface("panic", recovered).Msg("decision panic recovered")
			move = fallbackMove(&board)
			stage = "fallback"
		}
		if _, ok := board.DropHeight(move.X, move.Y); !ok {
			move = fallbackMove(&board)
			stage = "fallback"
		}
		event := log.Info().
			Str("stage", stage).
			Stringer("player", player).
			Int("x", move.X).
			Int("y", move.Y).
			Int64("elapsed_ms", time.Since(start).Milliseconds())
		if lastMove != nil {
			event = event.Int("last_x", lastMove.X).Int("last_y", lastMove.Y).Int("last_z", lastMove.Z)
		}
		event.Msg("decision")
	}()

	opponent := otherPlayer(player)

	if winMove, ok := FindImmediateWin(&board, player); ok {
		stage = "win"
		return winMove
	}
	if blockMove, ok := FindImmediateWin(&board, opponent); ok {
		stage = "block"
		return blockMove
	}
	if bookMove, ok := BookMove(&board, player, config); ok {
		stage = "book"
		return bookMove
	}
	if config.AiDoubleThreats {
		if threatMove, ok := FindDoubleThreatMove(&board, player); ok {
			stage = "double_threat"
			return threatMove
		}
		if blockMove, ok := FindDoubleThreatMove(&board, opponent); ok {
			if safeMove(&board, player, blockMove) {
				stage = "block_double_threat"
				return blockMove
			}
		}
	}

	stats := &SearchStats{Start: start}
	settings := AISettings{
		Player:   player,
		MaxDepth: config.AiMaxDepth,
		Deadline: deadline,
		Cache:    p.tt,
		Config:   config,
		Stats:    stats,
	}
	if config.AiEngine == EngineMCTS {
		if mctsMove, ok := MCTSBestMove(&board, settings); ok {
			stage = "mcts"
			return mctsMove
		}
	} else {
		if result := SearchBestMove(&board, settings); result.Found {
			stage = "negamax"
			return result.Move
		}
	}

	stage = "fallback"
	return fallbackMove(&board)
}

// FindImmediateWin returns a column that completes a line for player this
// turn.
func FindImmediateWin(b *Board, player Player) (Move, bool) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			z, ok := b.DropHeight(x, y)
			if !ok {
				continue
			}
			b.Set(x, y, z, player)
			wins := b.winsThrough(x, y, z, player)
			b.Set(x, y, z, PlayerNone)
			if wins {
				return Move{X: x, Y: y}, true
			}
		}
	}
	return Move{}, false
}

func immediateWinMoves(b *Board, player Player) []Move {
	moves := make([]Move, 0, 4)
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			z, ok := b.DropHeight(x, y)
			if !ok {
				continue
			}
			b.Set(x, y, z, player)
			if b.winsThrough(x, y, z, player) {
				moves = append(moves, Move{X: x, Y: y})
			}
			b.Set(x, y, z, PlayerNone)
		}
	}
	return moves
}

// FindDoubleThreatMove looks for a move that leaves player with two or more
// winning columns at once, without handing the opponent an immediate win.
// This is a heuristic pattern check, not a complete forced-win prover.
func FindDoubleThreatMove(b *Board, player Player) (Move, bool) {
	opponent := otherPlayer(player)
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			z, ok := b.ApplyMove(x, y, player)
			if !ok {
				continue
			}
			threat := false
			if _, oppWins := FindImmediateWin(b, opponent); !oppWins {
				threat = len(immediateWinMoves(b, player)) >= 2
			}
			b.UndoMove(x, y, z)
			if threat {
				return Move{X: x, Y: y}, true
			}
		}
	}
	return Move{}, false
}

// safeMove reports whether playing the column does not give the opponent an
// immediate win on top of the placed piece.
func safeMove(b *Board, player Player, move Move) bool {
	z, ok := b.ApplyMove(move.X, move.Y, player)
	if !ok {
		return false
	}
	_, oppWins := FindImmediateWin(b, otherPlayer(player))
	b.UndoMove(move.X, move.Y, z)
	return !oppWins
}

// fallbackPriority is the guaranteed last resort: near-center columns first,
// then corners, then everything else in scan order.
var fallbackPriority = []Move{
	{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 1},
	{X: 0, Y: 0}, {X: 3, Y: 3}, {X: 0, Y: 3}, {X: 3, Y: 0},
}

func fallbackMove(b *Board) Move {
	for _, move := range fallbackPriority {
		if _, ok := b.DropHeight(move.X, move.Y); ok {
			return move
		}
	}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if _, ok := b.DropHeight(x, y); ok {
				return Move{X: x, Y: y}
			}
		}
	}
	// Completely full board: the contract is void, but return something
	// structurally valid rather than panicking.
	return Move{X: 0, Y: 0}
}

package main

import (
	"time"

	"github.com/rs/zerolog/log"
)

type SearchStats struct {
	Nodes           int64
	TTProbes        int64
	TTHits          int64
	TTStores        int64
	Cutoffs         int64
	Playouts        int64
	Start           time.Time
	DepthDurations  []time.Duration
	CompletedDepths int
}

// AISettings carries everything one decision call needs: budget, cache,
// config snapshot and instrumentation. The zero value is not usable; build
// it from a Config.
type AISettings struct {
	Player     Player
	MaxDepth   int
	Deadline   time.Time
	Cache      *TranspositionTable
	Config     Config
	Stats      *SearchStats
	ShouldStop func() bool
}

type searchContext struct {
	settings AISettings
}

func (ctx *searchContext) timedOut() bool {
	if ctx.settings.ShouldStop != nil && ctx.settings.ShouldStop() {
		return true
	}
	if ctx.settings.Deadline.IsZero() {
		return false
	}
	return time.Now().After(ctx.settings.Deadline)
}

type SearchResult struct {
	Move  Move
	Score int
	Depth int
	Found bool
}

// SearchBestMove runs iterative deepening negamax under the settings'
// deadline. The returned move comes from the last fully completed depth; a
// partially searched deeper pass may still promote its best move when it is
// strictly better, since moves are visited in ranked order.
func SearchBestMove(b *Board, settings AISettings) SearchResult {
	ctx := &searchContext{settings: settings}
	if settings.MaxDepth <= 0 {
		ctx.settings.MaxDepth = DefaultConfig().AiMaxDepth
	}
	if settings.Stats != nil && settings.Stats.Start.IsZero() {
		settings.Stats.Start = time.Now()
	}

	result := SearchResult{}
	hash := ComputeHash(b, settings.Player)
	for depth := 1; depth <= ctx.settings.MaxDepth; depth++ {
		if ctx.timedOut() {
			break
		}
		depthStart := time.Now()
		move, score, completed := rootSearch(ctx, b, depth, hash)
		if settings.Stats != nil {
			settings.Stats.DepthDurations = append(settings.Stats.DepthDurations, time.Since(depthStart))
		}
		if completed {
			result = SearchResult{Move: move, Score: score, Depth: depth, Found: true}
			if settings.Stats != nil {
				settings.Stats.CompletedDepths = depth
			}
			if score >= winBase {
				break
			}
			continue
		}
		// Aborted pass: the first moves of the ordering are the most
		// reliable, so promote only a strict improvement.
		if move.IsValid() && (!result.Found || score > result.Score) {
			result = SearchResult{Move: move, Score: score, Depth: depth, Found: true}
		}
		break
	}
	if settings.Config.AiLogSearchStats && settings.Stats != nil {
		logSearchStats(settings.Stats, result)
	}
	return result
}

// rootSearch runs one full-width pass at the given depth. completed is false
// when the deadline interrupted the move loop.
func rootSearch(ctx *searchContext, b *Board, depth int, hash uint64) (Move, int, bool) {
	moves := OrderedMoves(b, ctx.settings.Player, ctx.settings.Config)
	if len(moves) == 0 {
		return Move{X: -1, Y: -1}, 0, false
	}
	if entry, ok := probeTT(ctx, hash); ok && entry.HasMove {
		moveToFront(moves, entry.BestMove)
	}

	alpha := -scoreInf
	beta := scoreInf
	bestMove := Move{X: -1, Y: -1}
	bestScore := -scoreInf
	for _, move := range moves {
		if ctx.timedOut() {
			return bestMove, bestScore, false
		}
		z, ok := b.ApplyMove(move.X, move.Y, ctx.settings.Player)
		if !ok {
			continue
		}
		childHash := UpdateHash(hash, move.X, move.Y, z, ctx.settings.Player)
		score := -negamax(ctx, b, depth-1, -beta, -alpha, otherPlayer(ctx.settings.Player), childHash)
		b.UndoMove(move.X, move.Y, z)
		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if bestScore > alpha {
			alpha = bestScore
		}
	}
	if bestMove.IsValid() {
		storeTT(ctx, hash, depth, bestScore, TTExact, bestMove, true)
	}
	return bestMove, bestScore, true
}

// negamax scores the position from sideToMove's perspective. Wins are worth
// winBase plus the remaining depth so faster mates rank higher, and losses
// mirror that so slower losses rank higher.
func negamax(ctx *searchContext, b *Board, depth, alpha, beta int, sideToMove Player, hash uint64) int {
	if ctx.timedOut() {
		return EvaluateBoard(b, sideToMove, ctx.settings.Config.Heuristics)
	}
	if ctx.settings.Stats != nil {
		ctx.settings.Stats.Nodes++
	}

	alphaOrig := alpha
	betaOrig := beta
	if entry, ok := probeTT(ctx, hash); ok && entry.Depth >= depth {
		if ret, value := applyTTEntry(entry, depth, &alpha, &beta); ret {
			return value
		}
	}

	if winner, draw := b.Winner(); winner != PlayerNone || draw {
		var score int
		switch {
		case draw:
			score = 0
		case winner == sideToMove:
			score = winBase + depth
		default:
			score = -(winBase + depth)
		}
		storeTT(ctx, hash, depth, score, TTExact, Move{}, false)
		return score
	}

	if depth <= 0 {
		return EvaluateBoard(b, sideToMove, ctx.settings.Config.Heuristics)
	}

	best := -scoreInf
	for _, move := range OrderedMoves(b, sideToMove, ctx.settings.Config) {
		z, ok := b.ApplyMove(move.X, move.Y, sideToMove)
		if !ok {
			continue
		}
		childHash := UpdateHash(hash, move.X, move.Y, z, sideToMove)
		score := -negamax(ctx, b, depth-1, -beta, -alpha, otherPlayer(sideToMove), childHash)
		b.UndoMove(move.X, move.Y, z)
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			if ctx.settings.Stats != nil {
				ctx.settings.Stats.Cutoffs++
			}
			break
		}
		if ctx.timedOut() {
			break
		}
	}
	if best == -scoreInf {
		// No applicable move; treat as a drawn leaf.
		return 0
	}

	flag := TTExact
	if best <= alphaOrig {
		flag = TTUpper
	} else if best >= betaOrig {
		flag = TTLower
	}
	storeTT(ctx, hash, depth, best, flag, Move{}, false)
	return best
}

func probeTT(ctx *searchContext, key uint64) (TTEntry, bool) {
	if ctx.settings.Cache == nil {
		return TTEntry{}, false
	}
	if ctx.settings.Stats != nil {
		ctx.settings.Stats.TTProbes++
	}
	entry, ok := ctx.settings.Cache.Probe(key)
	if ok && ctx.settings.Stats != nil {
		ctx.settings.Stats.TTHits++
	}
	return entry, ok
}

func storeTT(ctx *searchContext, key uint64, depth, score int, flag TTFlag, best Move, hasMove bool) {
	if ctx.settings.Cache == nil {
		return
	}
	if ctx.settings.Stats != nil {
		ctx.settings.Stats.TTStores++
	}
	ctx.settings.Cache.Store(key, depth, score, flag, best, hasMove)
}

func moveToFront(moves []Move, front Move) {
	for i := range moves {
		if moves[i] == front {
			copy(moves[1:i+1], moves[:i])
			moves[0] = front
			return
		}
	}
}

func logSearchStats(stats *SearchStats, result SearchResult) {
	elapsed := time.Duration(0)
	if !stats.Start.IsZero() {
		elapsed = time.Since(stats.Start)
	}
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	hitRate := 0.0
	if stats.TTProbes > 0 {
		hitRate = float64(stats.TTHits) * 100.0 / float64(stats.TTProbes)
	}
	log.Debug().
		Int64("elapsed_ms", elapsed.Milliseconds()).
		Int("completed", stats.CompletedDepths).
		Int("result_depth", result.Depth).
		Int("score", result.Score).
		Int64("nodes", stats.Nodes).
		Float64("nps", nps).
		Int64("tt_probes", stats.TTProbes).
		Int64("tt_hits", stats.TTHits).
		Float64("tt_hit_rate", hitRate).
		Int64("tt_stores", stats.TTStores).
		Int64("cutoffs", stats.Cutoffs).
		Msg("search stats")
}

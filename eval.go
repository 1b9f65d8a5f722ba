package main

const (
	winBase  = 1_000_000
	scoreInf = 1_000_000_000
)

// EvaluateBoard scores a non-terminal position from the given player's
// perspective, summed over all 76 lines. A line holding pieces of both
// players contributes nothing. A lone 3-in-line keeps its full weight only
// while its empty cell is the current drop position of that column; a threat
// buried under required stacking is discounted to the unreachable weight.
//
// The center and height terms are folded per perspective, so the score is
// only approximately antisymmetric between the two players.
func EvaluateBoard(b *Board, perspective Player, heuristics HeuristicConfig) int {
	score := 0

	for _, line := range AllLines() {
		mine, theirs, emptyCell := countLine(b, line, perspective)
		if mine > 0 && theirs > 0 {
			continue
		}
		if mine == 0 && theirs == 0 {
			continue
		}
		count := mine
		sign := 1
		if theirs > 0 {
			count = theirs
			sign = -1
		}
		switch count {
		case 1:
			score += sign * heuristics.LineOne
		case 2:
			score += sign * heuristics.LineTwo
		case 3:
			weight := heuristics.LineThree
			if !threatReachable(b, emptyCell) {
				weight = heuristics.UnreachableThree
			}
			score += sign * weight
		case 4:
			// Terminal positions are scored by the search, not here.
			score += sign * winBase
		}
	}

	score += centerControl(b, perspective, heuristics.CenterControl)
	score += heightControl(b, perspective, heuristics.HeightControl)
	return score
}

// countLine tallies one line for a perspective and remembers the cell index
// of the last empty slot seen, which is the threat square whenever exactly
// one cell is open.
func countLine(b *Board, line [WinLength]int, perspective Player) (mine, theirs, emptyCell int) {
	emptyCell = -1
	for _, cell := range line {
		switch b.cells[cell] {
		case perspective:
			mine++
		case PlayerNone:
			emptyCell = cell
		default:
			theirs++
		}
	}
	return mine, theirs, emptyCell
}

// threatReachable reports whether the empty cell of a 3-line is exactly the
// drop position of its column, i.e. the threat can be completed next turn.
func threatReachable(b *Board, cell int) bool {
	if cell < 0 {
		return false
	}
	x := cell % BoardSize
	y := (cell / BoardSize) % BoardSize
	z := cell / (BoardSize * BoardSize)
	drop, ok := b.DropHeight(x, y)
	return ok && drop == z
}

// centerControl rewards the perspective's pieces in the four central
// columns, ground-level pieces weighing most. Only the perspective's own
// pieces count, which is the source of the eval's mild asymmetry.
func centerControl(b *Board, perspective Player, weight int) int {
	if weight == 0 {
		return 0
	}
	bonus := 0
	for x := 1; x <= 2; x++ {
		for y := 1; y <= 2; y++ {
			for z := 0; z < BoardSize; z++ {
				if b.At(x, y, z) == perspective {
					bonus += weight * (BoardSize - z)
				}
			}
		}
	}
	return bonus
}

// heightControl scores the net ownership of column tops: whoever holds the
// highest piece of a column controls what stacks onto it.
func heightControl(b *Board, perspective Player, weight int) int {
	if weight == 0 {
		return 0
	}
	bonus := 0
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			for z := BoardSize - 1; z >= 0; z-- {
				cell := b.At(x, y, z)
				if cell == PlayerNone {
					continue
				}
				if cell == perspective {
					bonus += weight
				} else {
					bonus -= weight
				}
				break
			}
		}
	}
	return bonus
}

// OrderedMoves ranks the legal columns center-first, then by a one-ply
// evaluation for the mover when enabled. Ordering only affects pruning; no
// legal column is ever dropped.
func OrderedMoves(b *Board, player Player, config Config) []Move {
	moves := b.LegalMoves(make([]Move, 0, BoardSize*BoardSize))
	if len(moves) <= 1 {
		return moves
	}
	ranks := make([]int, len(moves))
	for i, move := range moves {
		rank := 0
		if move.IsCentral() {
			rank += scoreInf / 2
		}
		if config.AiOrderByEval {
			z, ok := b.ApplyMove(move.X, move.Y, player)
			if ok {
				rank += EvaluateBoard(b, player, config.Heuristics)
				b.UndoMove(move.X, move.Y, z)
			}
		}
		ranks[i] = rank
	}
	// Insertion sort keeps the ordering stable without allocating a closure
	// over both slices.
	for i := 1; i < len(moves); i++ {
		move, rank := moves[i], ranks[i]
		j := i - 1
		for j >= 0 && ranks[j] < rank {
			moves[j+1], ranks[j+1] = moves[j], ranks[j]
			j--
		}
		moves[j+1], ranks[j+1] = move, rank
	}
	return moves
}

package main

// The opening book is a fixed preference over the early game: claim the
// central columns before any reading is worth the time. Entries are tried in
// order; an entry is skipped when its column is full or when playing it
// would hand the opponent an immediate win.
var openingBook = []Move{
	{X: 1, Y: 1},
	{X: 2, Y: 2},
	{X: 2, Y: 1},
	{X: 1, Y: 2},
}

func BookMove(b *Board, player Player, config Config) (Move, bool) {
	if !config.AiBookEnabled {
		return Move{}, false
	}
	if b.CountPieces() >= config.AiBookMaxMoves {
		return Move{}, false
	}
	for _, move := range openingBook {
		if _, ok := b.DropHeight(move.X, move.Y); !ok {
			continue
		}
		if safeMove(b, player, move) {
			return move, true
		}
	}
	return Move{}, false
}

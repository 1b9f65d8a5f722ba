package main

// Zobrist table for the 4x4x4 board: one random key per (cell, player) plus
// a side-to-move key. Replaces the string-concatenation board keys of the
// earliest prototype; hashes update incrementally around apply/undo.

type ZobristTable struct {
	cells [BoardCells][2]uint64
	side  uint64
}

var zobrist = buildZobrist()

func buildZobrist() *ZobristTable {
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(BoardCells)}
	table := &ZobristTable{}
	for i := range table.cells {
		table.cells[i][0] = rng.next()
		table.cells[i][1] = rng.next()
	}
	table.side = rng.next()
	return table
}

func (z *ZobristTable) piece(x, y, zz int, player Player) uint64 {
	idx := 0
	if player == PlayerTwo {
		idx = 1
	}
	return z.cells[cellIndex(x, y, zz)][idx]
}

// ComputeHash builds the hash of a position from scratch. The side-to-move
// key is folded in for PlayerTwo so that the same arrangement with different
// movers never shares a key.
func ComputeHash(b *Board, toMove Player) uint64 {
	var hash uint64
	for z := 0; z < BoardSize; z++ {
		for y := 0; y < BoardSize; y++ {
			for x := 0; x < BoardSize; x++ {
				cell := b.At(x, y, z)
				if cell == PlayerNone {
					continue
				}
				hash ^= zobrist.piece(x, y, z, cell)
			}
		}
	}
	if toMove == PlayerTwo {
		hash ^= zobrist.side
	}
	return hash
}

// UpdateHash toggles one placed piece and flips the side to move. Calling it
// again with the same arguments undoes the update.
func UpdateHash(hash uint64, x, y, z int, player Player) uint64 {
	return hash ^ zobrist.piece(x, y, z, player) ^ zobrist.side
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

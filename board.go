package main

import "fmt"

type Player int

const (
	PlayerNone Player = 0
	PlayerOne  Player = 1
	PlayerTwo  Player = 2
)

const (
	BoardSize  = 4
	BoardCells = BoardSize * BoardSize * BoardSize
)

// Board is a 4x4x4 grid. It is a value type: copying it is a 64-cell array
// copy, and search mutates a single working copy in place via paired
// ApplyMove/UndoMove calls instead of cloning per node.
type Board struct {
	cells [BoardCells]Player
}

func cellIndex(x, y, z int) int {
	return (z*BoardSize+y)*BoardSize + x
}

func (b *Board) At(x, y, z int) Player {
	return b.cells[cellIndex(x, y, z)]
}

func (b *Board) Set(x, y, z int, value Player) {
	b.cells[cellIndex(x, y, z)] = value
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < BoardSize && y < BoardSize
}

// DropHeight returns the lowest empty z of column (x, y). Out-of-range
// coordinates fail closed: the column reports no room.
func (b *Board) DropHeight(x, y int) (int, bool) {
	if !b.InBounds(x, y) {
		return 0, false
	}
	for z := 0; z < BoardSize; z++ {
		if b.At(x, y, z) == PlayerNone {
			return z, true
		}
	}
	return 0, false
}

// ApplyMove drops a piece for player into column (x, y) and returns the
// height it landed at. The caller must check DropHeight first; applying to a
// full column reports !ok and leaves the board unchanged.
func (b *Board) ApplyMove(x, y int, player Player) (int, bool) {
	z, ok := b.DropHeight(x, y)
	if !ok {
		return 0, false
	}
	b.Set(x, y, z, player)
	return z, true
}

// UndoMove clears the cell written by the matching ApplyMove. Apply/undo
// pairs must nest correctly; the search relies on this to keep the hot path
// allocation-free.
func (b *Board) UndoMove(x, y, z int) {
	b.Set(x, y, z, PlayerNone)
}

func (b *Board) CountPieces() int {
	count := 0
	for _, cell := range b.cells {
		if cell != PlayerNone {
			count++
		}
	}
	return count
}

func (b *Board) IsFull() bool {
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if b.At(x, y, BoardSize-1) == PlayerNone {
				return false
			}
		}
	}
	return true
}

func (b *Board) LegalMoves(out []Move) []Move {
	out = out[:0]
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if _, ok := b.DropHeight(x, y); ok {
				out = append(out, Move{X: x, Y: y})
			}
		}
	}
	return out
}

// WinnerAt reports the owner of a line iff all four cells hold the same
// nonzero value.
func (b *Board) WinnerAt(line [WinLength]int) Player {
	first := b.cells[line[0]]
	if first == PlayerNone {
		return PlayerNone
	}
	for i := 1; i < WinLength; i++ {
		if b.cells[line[i]] != first {
			return PlayerNone
		}
	}
	return first
}

// Winner scans all 76 lines. It returns the winning player, PlayerNone with
// draw=true on a full board with no winner, or PlayerNone with draw=false
// while the game continues.
func (b *Board) Winner() (Player, bool) {
	for _, line := range AllLines() {
		if w := b.WinnerAt(line); w != PlayerNone {
			return w, false
		}
	}
	if b.IsFull() {
		return PlayerNone, true
	}
	return PlayerNone, false
}

// winsThrough reports whether player owns a full line passing through the
// given cell. Cheaper than Winner after a speculative drop.
func (b *Board) winsThrough(x, y, z int, player Player) bool {
	for _, lineIdx := range LinesThrough(x, y, z) {
		line := AllLines()[lineIdx]
		owned := true
		for _, cell := range line {
			if b.cells[cell] != player {
				owned = false
				break
			}
		}
		if owned {
			return true
		}
	}
	return false
}

func otherPlayer(player Player) Player {
	if player == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// BoardFromGrid parses the host payload layout [z][y][x] with cell values
// {0, 1, 2}. Malformed shapes or values are rejected rather than clamped.
func BoardFromGrid(grid [][][]int) (Board, error) {
	var b Board
	if len(grid) != BoardSize {
		return b, fmt.Errorf("board must have %d layers, got %d", BoardSize, len(grid))
	}
	for z, layer := range grid {
		if len(layer) != BoardSize {
			return b, fmt.Errorf("layer %d must have %d rows, got %d", z, BoardSize, len(layer))
		}
		for y, row := range layer {
			if len(row) != BoardSize {
				return b, fmt.Errorf("row %d/%d must have %d cells, got %d", z, y, BoardSize, len(row))
			}
			for x, value := range row {
				if value < 0 || value > 2 {
					return b, fmt.Errorf("cell (%d,%d,%d) has invalid value %d", x, y, z, value)
				}
				b.Set(x, y, z, Player(value))
			}
		}
	}
	if err := checkGravity(&b); err != nil {
		return b, err
	}
	return b, nil
}

func checkGravity(b *Board) error {
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			for z := 1; z < BoardSize; z++ {
				if b.At(x, y, z) != PlayerNone && b.At(x, y, z-1) == PlayerNone {
					return fmt.Errorf("column (%d,%d) has a floating piece at height %d", x, y, z)
				}
			}
		}
	}
	return nil
}

// ToGrid renders the board back into the host layout [z][y][x].
func (b *Board) ToGrid() [][][]int {
	grid := make([][][]int, BoardSize)
	for z := 0; z < BoardSize; z++ {
		grid[z] = make([][]int, BoardSize)
		for y := 0; y < BoardSize; y++ {
			grid[z][y] = make([]int, BoardSize)
			for x := 0; x < BoardSize; x++ {
				grid[z][y][x] = int(b.At(x, y, z))
			}
		}
	}
	return grid
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "Player1"
	case PlayerTwo:
		return "Player2"
	default:
		return "None"
	}
}

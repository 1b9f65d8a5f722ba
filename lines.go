package main

// WinLength is the run length that wins, and also the board edge, so every
// line spans a full edge-to-edge run.
const WinLength = 4

// LineCount is the number of winning lines on the 4x4x4 board: 48
// axis-aligned, 24 planar diagonals, 4 space diagonals.
const LineCount = 76

var (
	allLines     [][WinLength]int
	linesThrough [BoardCells][]int
)

func init() {
	allLines = buildLines()
	for lineIdx, line := range allLines {
		for _, cell := range line {
			linesThrough[cell] = append(linesThrough[cell], lineIdx)
		}
	}
}

// AllLines returns the 76 winning lines as cell indices. The slice is built
// once and must not be mutated.
func AllLines() [][WinLength]int {
	return allLines
}

// LinesThrough returns the indices into AllLines of every line containing
// the given cell.
func LinesThrough(x, y, z int) []int {
	return linesThrough[cellIndex(x, y, z)]
}

func buildLines() [][WinLength]int {
	lines := make([][WinLength]int, 0, LineCount)
	addLine := func(x0, y0, z0, dx, dy, dz int) {
		var line [WinLength]int
		for i := 0; i < WinLength; i++ {
			line[i] = cellIndex(x0+i*dx, y0+i*dy, z0+i*dz)
		}
		lines = append(lines, line)
	}

	// Axis-aligned runs: 16 along each of x, y, z.
	for a := 0; a < BoardSize; a++ {
		for b := 0; b < BoardSize; b++ {
			addLine(0, a, b, 1, 0, 0)
			addLine(a, 0, b, 0, 1, 0)
			addLine(a, b, 0, 0, 0, 1)
		}
	}

	// Planar diagonals: two per layer, in each of the three orientations.
	for layer := 0; layer < BoardSize; layer++ {
		// XY planes (fixed z).
		addLine(0, 0, layer, 1, 1, 0)
		addLine(0, BoardSize-1, layer, 1, -1, 0)
		// XZ planes (fixed y).
		addLine(0, layer, 0, 1, 0, 1)
		addLine(0, layer, BoardSize-1, 1, 0, -1)
		// YZ planes (fixed x).
		addLine(layer, 0, 0, 0, 1, 1)
		addLine(layer, 0, BoardSize-1, 0, 1, -1)
	}

	// Space diagonals.
	addLine(0, 0, 0, 1, 1, 1)
	addLine(BoardSize-1, 0, 0, -1, 1, 1)
	addLine(0, BoardSize-1, 0, 1, -1, 1)
	addLine(0, 0, BoardSize-1, 1, 1, -1)

	return lines
}

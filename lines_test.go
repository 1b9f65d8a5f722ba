package main

import "testing"

func cellCoords(idx int) (int, int, int) {
	x := idx % BoardSize
	y := (idx / BoardSize) % BoardSize
	z := idx / (BoardSize * BoardSize)
	return x, y, z
}

func TestLineCatalogCounts(t *testing.T) {
	lines := AllLines()
	if len(lines) != LineCount {
		t.Fatalf("expected %d lines, got %d", LineCount, len(lines))
	}

	seen := make(map[[WinLength]int]bool, LineCount)
	axis, planar, space := 0, 0, 0
	for _, line := range lines {
		sorted := line
		for i := 0; i < WinLength; i++ {
			for j := i + 1; j < WinLength; j++ {
				if sorted[j] < sorted[i] {
					sorted[i], sorted[j] = sorted[j], sorted[i]
				}
			}
		}
		if seen[sorted] {
			t.Fatalf("duplicate line %v", line)
		}
		seen[sorted] = true

		x0, y0, z0 := cellCoords(line[0])
		x1, y1, z1 := cellCoords(line[1])
		dx, dy, dz := x1-x0, y1-y0, z1-z0
		moving := 0
		for _, d := range []int{dx, dy, dz} {
			if d != 0 {
				moving++
			}
		}
		switch moving {
		case 1:
			axis++
		case 2:
			planar++
		case 3:
			space++
		default:
			t.Fatalf("line %v has no direction", line)
		}

		for i := 1; i < WinLength; i++ {
			xa, ya, za := cellCoords(line[i-1])
			xb, yb, zb := cellCoords(line[i])
			if xb-xa != dx || yb-ya != dy || zb-za != dz {
				t.Fatalf("line %v is not collinear", line)
			}
		}
		for _, cell := range line {
			if cell < 0 || cell >= BoardCells {
				t.Fatalf("line %v has out-of-range cell %d", line, cell)
			}
		}
	}
	if axis != 48 || planar != 24 || space != 4 {
		t.Fatalf("line classes off: axis=%d planar=%d space=%d", axis, planar, space)
	}
}

func TestLinesThroughIndex(t *testing.T) {
	total := 0
	for z := 0; z < BoardSize; z++ {
		for y := 0; y < BoardSize; y++ {
			for x := 0; x < BoardSize; x++ {
				through := LinesThrough(x, y, z)
				total += len(through)
				cell := cellIndex(x, y, z)
				for _, lineIdx := range through {
					found := false
					for _, c := range AllLines()[lineIdx] {
						if c == cell {
							found = true
						}
					}
					if !found {
						t.Fatalf("line %d indexed under cell (%d,%d,%d) does not contain it", lineIdx, x, y, z)
					}
				}
			}
		}
	}
	if total != LineCount*WinLength {
		t.Fatalf("expected %d cell/line incidences, got %d", LineCount*WinLength, total)
	}
}

func TestCornerCellLineCount(t *testing.T) {
	// A corner sits on 3 axis lines, 3 planar diagonals and 1 space diagonal.
	if got := len(LinesThrough(0, 0, 0)); got != 7 {
		t.Fatalf("expected 7 lines through the corner, got %d", got)
	}
}

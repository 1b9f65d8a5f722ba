package main

// Move is a column coordinate; the landing height is resolved by gravity.
type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (m Move) IsValid() bool {
	return m.X >= 0 && m.Y >= 0 && m.X < BoardSize && m.Y < BoardSize
}

// IsCentral reports whether the move targets one of the four central
// columns.
func (m Move) IsCentral() bool {
	return m.X >= 1 && m.X <= 2 && m.Y >= 1 && m.Y <= 2
}

// Coord is a full cell coordinate, used for lines and the host's last-move
// report.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

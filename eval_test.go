package main

import "testing"

func lineWeightsOnly() HeuristicConfig {
	h := DefaultConfig().Heuristics
	h.CenterControl = 0
	h.HeightControl = 0
	return h
}

func TestEvalEmptyBoardIsZero(t *testing.T) {
	var b Board
	if score := EvaluateBoard(&b, PlayerOne, DefaultConfig().Heuristics); score != 0 {
		t.Fatalf("empty board scored %d", score)
	}
}

func TestEvalSinglePieceLineCount(t *testing.T) {
	var b Board
	b.Set(0, 0, 0, PlayerOne)
	h := lineWeightsOnly()
	// A corner piece sits on 7 lines, each a lone one-in-line.
	want := 7 * h.LineOne
	if score := EvaluateBoard(&b, PlayerOne, h); score != want {
		t.Fatalf("corner piece scored %d, want %d", score, want)
	}
	if score := EvaluateBoard(&b, PlayerTwo, h); score != -want {
		t.Fatalf("corner piece scored %d for the opponent, want %d", score, -want)
	}
}

func TestEvalLineTermsAntisymmetric(t *testing.T) {
	var b Board
	player := PlayerOne
	for _, m := range []Move{{1, 1}, {2, 2}, {0, 0}, {1, 1}, {3, 2}, {2, 1}, {0, 3}} {
		b.ApplyMove(m.X, m.Y, player)
		player = otherPlayer(player)
	}
	h := lineWeightsOnly()
	one := EvaluateBoard(&b, PlayerOne, h)
	two := EvaluateBoard(&b, PlayerTwo, h)
	if one != -two {
		t.Fatalf("line terms not antisymmetric: %d vs %d", one, two)
	}
}

func TestThreatReachability(t *testing.T) {
	var b Board
	b.Set(0, 0, 0, PlayerOne)
	b.Set(1, 0, 0, PlayerOne)
	b.Set(2, 0, 0, PlayerOne)
	// The completing cell (3,0,0) is the drop position of its column.
	if !threatReachable(&b, cellIndex(3, 0, 0)) {
		t.Fatalf("ground-level threat should be reachable")
	}
	// A completing cell one above the drop position needs stacking first.
	if threatReachable(&b, cellIndex(3, 0, 1)) {
		t.Fatalf("elevated threat should be unreachable while (3,0,0) is empty")
	}
	b.Set(3, 0, 0, PlayerTwo)
	if !threatReachable(&b, cellIndex(3, 0, 1)) {
		t.Fatalf("threat becomes reachable once the cell below is filled")
	}
}

func TestEvalDiscountsUnreachableThree(t *testing.T) {
	h := lineWeightsOnly()

	// Reachable: three on the ground row, completing cell at drop height.
	var reachable Board
	reachable.Set(0, 0, 0, PlayerOne)
	reachable.Set(1, 0, 0, PlayerOne)
	reachable.Set(2, 0, 0, PlayerOne)

	// Unreachable: the same three raised to z=1 on opponent supports, so the
	// completing cell (3,0,1) floats above an empty column.
	var buried Board
	for x := 0; x < 3; x++ {
		buried.Set(x, 0, 0, PlayerTwo)
		buried.Set(x, 0, 1, PlayerOne)
	}

	reachScore := EvaluateBoard(&reachable, PlayerOne, h)
	buriedScore := EvaluateBoard(&buried, PlayerOne, h)
	if reachScore <= buriedScore {
		t.Fatalf("reachable threat %d should outscore buried threat %d", reachScore, buriedScore)
	}
}

func TestCenterControlPrefersGroundLevel(t *testing.T) {
	var low, high Board
	low.Set(1, 1, 0, PlayerOne)
	high.Set(1, 1, 0, PlayerTwo)
	high.Set(1, 1, 1, PlayerOne)

	weight := DefaultConfig().Heuristics.CenterControl
	if got := centerControl(&low, PlayerOne, weight); got != weight*BoardSize {
		t.Fatalf("ground center piece scored %d, want %d", got, weight*BoardSize)
	}
	if centerControl(&high, PlayerOne, weight) >= centerControl(&low, PlayerOne, weight) {
		t.Fatalf("higher center piece should score less than a ground one")
	}
}

func TestHeightControlScoresColumnTops(t *testing.T) {
	var b Board
	b.ApplyMove(0, 0, PlayerOne)
	b.ApplyMove(0, 0, PlayerTwo)
	b.ApplyMove(3, 3, PlayerOne)

	weight := 2
	// Player2 tops column (0,0), Player1 tops (3,3): net zero for either side.
	if got := heightControl(&b, PlayerOne, weight); got != 0 {
		t.Fatalf("expected net zero column-top control, got %d", got)
	}
	b.ApplyMove(0, 0, PlayerOne)
	if got := heightControl(&b, PlayerOne, weight); got != 2*weight {
		t.Fatalf("expected +%d after retaking the column top, got %d", 2*weight, got)
	}
}

func TestOrderedMovesCenterFirst(t *testing.T) {
	var b Board
	moves := OrderedMoves(&b, PlayerOne, DefaultConfig())
	if len(moves) != BoardSize*BoardSize {
		t.Fatalf("expected all %d columns, got %d", BoardSize*BoardSize, len(moves))
	}
	for i := 0; i < 4; i++ {
		if !moves[i].IsCentral() {
			t.Fatalf("move %d (%d,%d) should be central", i, moves[i].X, moves[i].Y)
		}
	}
	seen := make(map[Move]bool, len(moves))
	for _, m := range moves {
		if seen[m] {
			t.Fatalf("duplicate move (%d,%d) in ordering", m.X, m.Y)
		}
		seen[m] = true
	}
}

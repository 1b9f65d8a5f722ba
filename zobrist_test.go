package main

import "testing"

func TestHashIncludesSideToMove(t *testing.T) {
	var b Board
	b.ApplyMove(1, 1, PlayerOne)
	if ComputeHash(&b, PlayerOne) == ComputeHash(&b, PlayerTwo) {
		t.Fatalf("expected hash to differ for different side to move")
	}
}

func TestIncrementalHashMatchesRecompute(t *testing.T) {
	var b Board
	hash := ComputeHash(&b, PlayerOne)
	player := PlayerOne
	moves := []Move{{1, 1}, {2, 2}, {1, 1}, {0, 3}, {3, 0}, {2, 1}}
	for _, m := range moves {
		z, ok := b.ApplyMove(m.X, m.Y, player)
		if !ok {
			t.Fatalf("setup move (%d,%d) refused", m.X, m.Y)
		}
		hash = UpdateHash(hash, m.X, m.Y, z, player)
		player = otherPlayer(player)
		if want := ComputeHash(&b, player); hash != want {
			t.Fatalf("incremental hash %d diverged from recompute %d after (%d,%d)", hash, want, m.X, m.Y)
		}
	}
}

func TestUpdateHashIsItsOwnInverse(t *testing.T) {
	var b Board
	b.ApplyMove(2, 2, PlayerTwo)
	hash := ComputeHash(&b, PlayerOne)

	z, _ := b.ApplyMove(1, 2, PlayerOne)
	updated := UpdateHash(hash, 1, 2, z, PlayerOne)
	b.UndoMove(1, 2, z)
	if UpdateHash(updated, 1, 2, z, PlayerOne) != hash {
		t.Fatalf("expected a second update with the same move to restore the hash")
	}
}

func TestDistinctPositionsHashDifferently(t *testing.T) {
	var a, b Board
	a.ApplyMove(0, 0, PlayerOne)
	b.ApplyMove(0, 0, PlayerTwo)
	if ComputeHash(&a, PlayerOne) == ComputeHash(&b, PlayerOne) {
		t.Fatalf("same cell held by different players must hash differently")
	}
}

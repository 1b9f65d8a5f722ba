package main

import "testing"

func TestTTStoreAndProbe(t *testing.T) {
	tt := NewTranspositionTable(100)
	tt.Store(42, 3, 120, TTExact, Move{X: 1, Y: 2}, true)

	entry, ok := tt.Probe(42)
	if !ok {
		t.Fatalf("expected stored entry to be found")
	}
	if entry.Depth != 3 || entry.Score != 120 || entry.Flag != TTExact {
		t.Fatalf("entry corrupted: %+v", entry)
	}
	if !entry.HasMove || entry.BestMove != (Move{X: 1, Y: 2}) {
		t.Fatalf("best move lost: %+v", entry)
	}
	if _, ok := tt.Probe(43); ok {
		t.Fatalf("probe of an unknown key must miss")
	}
}

func TestTTKeepsDeeperEntry(t *testing.T) {
	tt := NewTranspositionTable(100)
	tt.Store(7, 5, 300, TTExact, Move{X: 2, Y: 2}, true)
	tt.Store(7, 2, -50, TTUpper, Move{X: 0, Y: 0}, true)

	entry, ok := tt.Probe(7)
	if !ok || entry.Depth != 5 || entry.Score != 300 {
		t.Fatalf("shallow store must not evict the deeper entry: %+v", entry)
	}

	tt.Store(7, 6, 10, TTLower, Move{X: 3, Y: 1}, true)
	entry, _ = tt.Probe(7)
	if entry.Depth != 6 || entry.Flag != TTLower {
		t.Fatalf("deeper store must replace: %+v", entry)
	}
}

func TestTTClearsWholesaleAtCapacity(t *testing.T) {
	tt := NewTranspositionTable(4)
	for key := uint64(0); key < 4; key++ {
		tt.Store(key, 1, int(key), TTExact, Move{}, false)
	}
	if tt.Count() != 4 {
		t.Fatalf("expected 4 entries before overflow, got %d", tt.Count())
	}
	tt.Store(99, 1, 0, TTExact, Move{}, false)
	if tt.Count() != 1 {
		t.Fatalf("expected wholesale clear then one entry, got %d", tt.Count())
	}
	if tt.Clears() != 1 {
		t.Fatalf("expected one recorded clear, got %d", tt.Clears())
	}
	if _, ok := tt.Probe(0); ok {
		t.Fatalf("old entries must be gone after the clear")
	}
	if _, ok := tt.Probe(99); !ok {
		t.Fatalf("the entry that triggered the clear must be stored")
	}
}

func TestTTClearAndNilCapacity(t *testing.T) {
	tt := NewTranspositionTable(100)
	tt.Store(1, 1, 1, TTExact, Move{}, false)
	tt.Clear()
	if tt.Count() != 0 {
		t.Fatalf("expected empty table after Clear, got %d", tt.Count())
	}
	if tt.Capacity() != 100 {
		t.Fatalf("capacity changed by Clear: %d", tt.Capacity())
	}
	var nilTT *TranspositionTable
	if nilTT.Capacity() != 0 {
		t.Fatalf("nil table must report zero capacity")
	}
}

func TestApplyTTEntryWindow(t *testing.T) {
	alpha, beta := -100, 100
	if ret, value := applyTTEntry(TTEntry{Depth: 1, Score: 40, Flag: TTExact}, 3, &alpha, &beta); ret || value != 0 {
		t.Fatalf("shallow entry must not be usable")
	}

	alpha, beta = -100, 100
	if ret, value := applyTTEntry(TTEntry{Depth: 3, Score: 40, Flag: TTExact}, 3, &alpha, &beta); !ret || value != 40 {
		t.Fatalf("exact entry should return its score, got ret=%v value=%d", ret, value)
	}

	alpha, beta = -100, 100
	ret, _ := applyTTEntry(TTEntry{Depth: 3, Score: 10, Flag: TTLower}, 3, &alpha, &beta)
	if ret || alpha != 10 {
		t.Fatalf("lower bound should raise alpha to 10, got alpha=%d ret=%v", alpha, ret)
	}

	ret, _ = applyTTEntry(TTEntry{Depth: 3, Score: 5, Flag: TTUpper}, 3, &alpha, &beta)
	if !ret {
		t.Fatalf("window collapse (alpha=10, beta=5) should allow an early return")
	}
}

package main

import "sync"

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

type TTEntry struct {
	Key      uint64
	Depth    int
	Score    int
	Flag     TTFlag
	BestMove Move
	HasMove  bool
}

// TranspositionTable caches previously searched positions keyed by zobrist
// hash (side to move folded into the key). Entries are reusable only when
// the cached depth covers the requested depth; the table is cleared
// wholesale once it grows past its entry bound so memory stays flat over a
// long game.
type TranspositionTable struct {
	mu         sync.RWMutex
	entries    map[uint64]TTEntry
	maxEntries int
	clears     int64
}

func NewTranspositionTable(maxEntries int) *TranspositionTable {
	if maxEntries <= 0 {
		maxEntries = DefaultConfig().AiTtMaxEntries
	}
	return &TranspositionTable{
		entries:    make(map[uint64]TTEntry, maxEntries/4),
		maxEntries: maxEntries,
	}
}

func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	entry, ok := tt.entries[key]
	return entry, ok
}

// Store keeps the deeper result when the same key is written twice: a
// shallower re-search must not evict information the deeper pass paid for.
func (tt *TranspositionTable) Store(key uint64, depth, score int, flag TTFlag, best Move, hasMove bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	if existing, ok := tt.entries[key]; ok && existing.Depth > depth {
		return
	}
	if len(tt.entries) >= tt.maxEntries {
		tt.entries = make(map[uint64]TTEntry, tt.maxEntries/4)
		tt.clears++
	}
	tt.entries[key] = TTEntry{
		Key:      key,
		Depth:    depth,
		Score:    score,
		Flag:     flag,
		BestMove: best,
		HasMove:  hasMove,
	}
}

func (tt *TranspositionTable) Clear() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.entries = make(map[uint64]TTEntry, tt.maxEntries/4)
}

func (tt *TranspositionTable) Count() int {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return len(tt.entries)
}

func (tt *TranspositionTable) Capacity() int {
	if tt == nil {
		return 0
	}
	return tt.maxEntries
}

func (tt *TranspositionTable) Clears() int64 {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.clears
}

// applyTTEntry tightens the alpha/beta window from a cached bound, or
// reports that the cached score can be returned outright.
func applyTTEntry(entry TTEntry, depth int, alpha, beta *int) (ret bool, value int) {
	if entry.Depth < depth {
		return false, 0
	}
	switch entry.Flag {
	case TTExact:
		return true, entry.Score
	case TTLower:
		if entry.Score > *alpha {
			*alpha = entry.Score
		}
	case TTUpper:
		if entry.Score < *beta {
			*beta = entry.Score
		}
	}
	if *alpha >= *beta {
		return true, entry.Score
	}
	return false, entry.Score
}

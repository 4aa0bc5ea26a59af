package main

import (
	"sort"
	"sync"
	"time"

	"minichess/pkg/engine"
)

// Row is the outcome of one search of the suite
type Row struct {
	FEN     string
	Backend string
	Result  engine.Result
	Took    time.Duration
}

// Results collects rows from concurrent searches
type Results struct {
	rows []Row
	lock sync.Mutex
}

// NewResults returns an empty result table
func NewResults() *Results {
	return &Results{rows: make([]Row, 0)}
}

// Add stores a row
func (r *Results) Add(row Row) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.rows = append(r.rows, row)
}

// Rows returns the stored rows ordered by position then backend
func (r *Results) Rows() []Row {
	r.lock.Lock()
	defer r.lock.Unlock()
	rows := append([]Row(nil), r.rows...)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].FEN != rows[j].FEN {
			return rows[i].FEN < rows[j].FEN
		}
		return rows[i].Backend < rows[j].Backend
	})
	return rows
}

// Mismatches returns the positions where the backends found different scores
func (r *Results) Mismatches() []string {
	scores := make(map[string]map[engine.Score]bool)
	for _, row := range r.Rows() {
		if scores[row.FEN] == nil {
			scores[row.FEN] = make(map[engine.Score]bool)
		}
		scores[row.FEN][row.Result.Score] = true
	}
	var bad []string
	for fen, s := range scores {
		if len(s) > 1 {
			bad = append(bad, fen)
		}
	}
	sort.Strings(bad)
	return bad
}

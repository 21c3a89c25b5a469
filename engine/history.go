package engine

import "zugzwang/board"

// historyThreshold[d] bounds how many times a move can be played at
// depth d before zero cutoffs marks it as actively bad, growing
// geometrically so deep, well-tested moves get more benefit of the
// doubt than shallow, rarely-played ones.
var historyThreshold [TranspositionMaxDepth + 1]uint64

func init() {
	v := 2.0
	for d := range historyThreshold {
		historyThreshold[d] = uint64(v)
		v *= 1.6
	}
}

// HistoryHeuristics tracks how often a quiet move has caused a beta
// cutoff relative to how often it has been played, plus the two killer
// moves recorded per ply. It persists across the whole search session
// (cleared only at the start of a new game), since history is a prior
// over "this kind of move tends to be good", not a per-search artifact.
type HistoryHeuristics struct {
	cutoffHistory [2][64][64]uint64
	playedHistory [2][64][64]uint64

	primaryKiller   [TranspositionMaxDepth + 1]Move32
	secondaryKiller [TranspositionMaxDepth + 1]Move32
}

// NewHistoryHeuristics returns a zeroed heuristics table.
func NewHistoryHeuristics() *HistoryHeuristics {
	return &HistoryHeuristics{}
}

// Clear resets all history counters and killer moves.
func (h *HistoryHeuristics) Clear() {
	*h = HistoryHeuristics{}
}

// RecordCutoff registers that move caused a beta cutoff at the given
// ply and updates the killer slots for that ply.
func (h *HistoryHeuristics) RecordCutoff(color board.Color, from, to int, ply int) {
	h.cutoffHistory[color][from][to]++

	word := encodeMove(0, from, to)
	if h.primaryKiller[ply]&moveIdentityMask != word&moveIdentityMask {
		h.secondaryKiller[ply] = h.primaryKiller[ply]
		h.primaryKiller[ply] = word
	}
}

// moveIdentityMask strips the score bits so killer comparisons ignore
// whatever score a move was last encoded with.
const moveIdentityMask = Move32((1 << shiftSign) - 1)

// RecordPlayed registers that move was tried (whether or not it caused
// a cutoff). Call once per quiet move examined in the main search loop.
func (h *HistoryHeuristics) RecordPlayed(color board.Color, from, to int) {
	h.playedHistory[color][from][to]++
}

// Score returns the clamped [0, 512] history score for a quiet move.
func (h *HistoryHeuristics) Score(color board.Color, from, to int) int {
	played := h.playedHistory[color][from][to]
	if played == 0 {
		return 0
	}
	cutoff := h.cutoffHistory[color][from][to]
	score := int(512 * cutoff / played)
	if score > 512 {
		score = 512
	}
	return score
}

// HasNegativeHistory reports whether a quiet move has been played often
// enough at this depth to trust that it never causes a cutoff.
func (h *HistoryHeuristics) HasNegativeHistory(color board.Color, from, to int, depth int) bool {
	if depth < 0 {
		depth = 0
	}
	if depth > TranspositionMaxDepth {
		depth = TranspositionMaxDepth
	}
	played := h.playedHistory[color][from][to]
	cutoff := h.cutoffHistory[color][from][to]
	return played >= historyThreshold[depth] && cutoff == 0
}

// PrimaryKiller returns the best-known quiet refutation recorded at ply.
func (h *HistoryHeuristics) PrimaryKiller(ply int) Move32 {
	return h.primaryKiller[ply]
}

// SecondaryKiller returns the second-best quiet refutation at ply.
func (h *HistoryHeuristics) SecondaryKiller(ply int) Move32 {
	return h.secondaryKiller[ply]
}

func sameMoveIdentity(a, b Move32) bool {
	return a&moveIdentityMask == b&moveIdentityMask
}

package board

// RepetitionHistory tracks the Zobrist hash of every position played since
// it was last reset (a new game or a new position command), including the
// current position. Irreversible moves do not clear it; positions before
// such a move simply never match a later hash. The search pushes/pops into this as it walks the tree so that
// repetitions that only occur inside the search (not yet on the real
// game history) are also detected.
type RepetitionHistory struct {
	hashes []uint64
}

// NewRepetitionHistory creates an empty repetition history.
func NewRepetitionHistory() *RepetitionHistory {
	return &RepetitionHistory{hashes: make([]uint64, 0, 128)}
}

// Push records hash as having been played.
func (h *RepetitionHistory) Push(hash uint64) {
	h.hashes = append(h.hashes, hash)
}

// Pop removes the most recently pushed hash.
func (h *RepetitionHistory) Pop() {
	h.hashes = h.hashes[:len(h.hashes)-1]
}

// Reset clears the history, used on ucinewgame or a new position command.
func (h *RepetitionHistory) Reset() {
	h.hashes = h.hashes[:0]
}

// Count returns how many times hash appears in the recorded history.
func (h *RepetitionHistory) Count(hash uint64) int {
	n := 0
	for _, past := range h.hashes {
		if past == hash {
			n++
		}
	}
	return n
}

// IsThreefoldRepetition reports whether pos's current hash appears at
// least three times in history. Callers push the current position before
// asking, so this is the current occurrence plus two earlier ones.
func (h *RepetitionHistory) IsThreefoldRepetition(pos *Position) bool {
	return h.Count(pos.Hash) >= 3
}

// IsFiftyMoveRule reports whether the halfmove clock has reached the
// 50-move (100 halfmove) threshold.
func (pos *Position) IsFiftyMoveRule() bool {
	return pos.HalfMoveClock >= 100
}

// IsInsufficientMaterial reports whether neither side has enough material
// to deliver checkmate, e.g. king vs king, or king+minor vs king.
func (pos *Position) IsInsufficientMaterial() bool {
	if pos.Pawns != 0 || pos.Rooks != 0 || pos.Queens != 0 {
		return false
	}
	minorCount := pos.Knights.PopCount() + pos.Bishops.PopCount()
	return minorCount <= 1
}

// IsEngineDraw reports whether the position should be scored as a draw by
// the search: fifty-move rule, insufficient material, or a threefold
// repetition in history.
func (pos *Position) IsEngineDraw(history *RepetitionHistory) bool {
	if pos.IsFiftyMoveRule() || pos.IsInsufficientMaterial() {
		return true
	}
	return history.IsThreefoldRepetition(pos)
}

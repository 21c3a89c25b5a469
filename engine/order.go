package engine

import "zugzwang/board"

// mvvLvaOrder orders attacker/victim pairs by "most valuable victim,
// least valuable attacker": capturing a queen with a pawn ranks far
// above capturing a pawn with a queen.
var mvvLvaOrder = [7][7]int{}

func init() {
	i := 0
	for victim := board.Piece(board.Pawn); victim <= board.King; victim++ {
		for attacker := board.Piece(board.King); attacker >= board.Pawn; attacker-- {
			mvvLvaOrder[victim][attacker] = i
			i++
		}
	}
}

func mvvLva(attacker, victim board.Piece) int {
	return mvvLvaOrder[victim][attacker] * 64
}

// scoreMoves assigns an ordering score to every candidate move, using
// the colour-signed convention: scores are sorted descending for white
// and ascending for black, so the single comparator below always walks
// from "most desirable for the side to move" to least. hashMove, if
// non-zero, is the transposition-table move for this position and is
// always placed first. buf is a reusable scratch slice (one per ply,
// owned by the Searcher) appended to via buf[:0], so a node scoring its
// moves allocates nothing: words[i] always corresponds to moves[i].
func scoreMoves(pos *board.Position, moves []board.Move, buf []Move32, hist *HistoryHeuristics, ply int, hashMove Move32) []Move32 {
	words := buf[:0]
	color := colourSign(pos.WhiteMove)
	sideColor := pos.SideToMove()

	primary := hist.PrimaryKiller(ply)
	secondary := hist.SecondaryKiller(ply)

	for _, m := range moves {
		from := squareIndex(m.From)
		to := squareIndex(m.To)
		dest := m.Piece
		if m.Promotion != board.Empty {
			dest = m.Promotion
		}
		word := encodeMove(dest, from, to)
		// Killers are recorded by from/to only (piece bits zero), so they
		// are compared against a piece-less word.
		killerWord := encodeMove(0, from, to)

		var score int
		switch {
		case hashMove != 0 && sameMoveIdentity(word, hashMove):
			score = color * (MaxScore)
		case m.Captured != board.Empty:
			score = color * mvvLva(m.Piece, m.Captured)
		case sameMoveIdentity(killerWord, primary):
			score = PrimaryKillerBonus * color
		case sameMoveIdentity(killerWord, secondary):
			score = SecondaryKillerBonus * color
		default:
			h := hist.Score(sideColor, from, to)
			score = -color*4096 + color*h
		}

		words = append(words, withScore(word, score))
	}
	return words
}

// sortMoves orders moves and words in lockstep, in place, by the
// colour-signed score carried in words: descending for white, ascending
// for black. Both directions walk the list from most to least desirable
// for the side to move. moves and words must be the same length and
// already correspond index-for-index, as scoreMoves leaves them.
func sortMoves(moves []board.Move, words []Move32, white bool) {
	less := func(i, j int) bool {
		si, sj := decodeScore(words[i]), decodeScore(words[j])
		if white {
			return si > sj
		}
		return si < sj
	}
	// Insertion sort: move lists are short (rarely above ~40) and this
	// keeps already-good orderings (TT/killers first) cheap to refine.
	for i := 1; i < len(words); i++ {
		j := i
		for j > 0 && less(j, j-1) {
			words[j], words[j-1] = words[j-1], words[j]
			moves[j], moves[j-1] = moves[j-1], moves[j]
			j--
		}
	}
}

package engine

import "zugzwang/board"

// qs is the quiescence search: once the main searcher bottoms out, qs
// keeps searching captures only, until the position is "quiet" enough
// that a static evaluation can be trusted. Without this, the searcher
// would stop mid-exchange and misjudge a position where a piece is
// about to be recaptured.
func (s *Searcher) qs(pos *board.Position, alpha, beta int, ply int) int {
	s.nodes++
	if s.shouldCancel() {
		return CancelSearch
	}

	if pos.IsEngineDraw(s.repetition) {
		return 0
	}

	side := colourSign(pos.WhiteMove)
	standPat := pos.GetScore() * side

	if ply >= TranspositionMaxDepth {
		return standPat
	}
	if standPat >= beta {
		return beta
	}
	if standPat < alpha-QSPruneMargin {
		return alpha
	}
	if standPat > alpha {
		alpha = standPat
	}

	captures := pos.GenerateCaptureMovesInto(s.moveBufQS[ply])
	s.moveBufQS[ply] = captures
	words := scoreMoves(pos, captures, s.wordBufQS[ply], s.history, ply, 0)
	s.wordBufQS[ply] = words
	sortMoves(captures, words, pos.WhiteMove)

	for _, m := range captures {
		threshold := alpha - standPat - QSSeeThreshold
		if pos.StaticExchangeEval(m) <= threshold {
			continue
		}

		mover := pos.SideToMove()
		undo := pos.MakeMove(m)
		if pos.IsKingInCheck(mover) {
			pos.UnmakeMove(m, undo)
			continue
		}
		s.repetition.Push(pos.Hash)

		score := -s.qs(pos, -beta, -alpha, ply+1)
		s.repetition.Pop()
		pos.UnmakeMove(m, undo)

		if isCancelScore(score) {
			return CancelSearch
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

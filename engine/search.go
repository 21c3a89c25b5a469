package engine

import "zugzwang/board"

// searchResult carries the score and best move found by search, along
// with whether the search was cut short by cancellation.
type searchResult struct {
	score     int
	best      Move32
	cancelled bool
}

// search is the negamax principal-variation searcher. alpha/beta and
// the returned score are always from the perspective of the side to
// move at this node. pvNode marks whether this call sits on the
// current best line (full window) as opposed to a scout/zero-window
// probe, which gates null-move pruning and futility pruning.
func (s *Searcher) search(pos *board.Position, alpha, beta, depth, ply int, nullDone, nullVerify bool, inCheck bool, pvNode bool) int {
	s.nodes++
	if s.shouldCancel() {
		return CancelSearch
	}

	// 2. Draw / repetition.
	if pos.IsEngineDraw(s.repetition) {
		return 0
	}

	side := colourSign(pos.WhiteMove)
	originalDepth := depth

	// 3. In-check extension.
	if inCheck {
		if depth <= 0 {
			depth = 1
		} else {
			depth++
		}
	}

	// 4. Razoring.
	if depth == 1 && !inCheck {
		if pos.GetScore()*side < alpha-RazorMargin {
			depth = 0
		}
	}

	// 5. Leaf: delegate to quiescence search.
	if depth <= 0 {
		score := s.qs(pos, alpha, beta, ply)
		if score == CancelSearch {
			return CancelSearch
		}
		return remapMateScore(score, ply)
	}

	// 6. TT probe.
	var hashMove Move32
	hash := pos.Hash
	if ttDepth, bound, score, move, ok := s.tt.Probe(hash); ok {
		hashMove = move
		if ttDepth >= depth {
			switch bound {
			case BoundExact:
				return score
			case BoundUpper:
				if score <= alpha {
					return alpha
				}
			case BoundLower:
				if score >= beta {
					return beta
				}
			}
		}
	}
	if hashMove != 0 {
		if _, ok := resolveMove(pos, hashMove); !ok {
			hashMove = 0
		}
	}

	// 7. Null-move pruning. Verification (guarding against Zugzwang) is
	// only ever armed by the root driver on the first ply of a search
	// iteration; once consumed here it is never re-armed for children,
	// including this node's own do-over in step 10.
	verificationArmed := false
	if !pvNode && depth > 2 && !inCheck && !nullDone {
		undo := pos.PerformNullMove()
		rawNull := s.search(pos, -beta, -beta+1, depth-4, ply+1, true, false, false, false)
		pos.UndoNullMove(undo)

		if rawNull == CancelSearch {
			return CancelSearch
		}
		nullScore := -rawNull
		if nullScore >= beta {
			if !nullVerify {
				return beta
			}
			depth--
			verificationArmed = true
		}
	}

	// 8. Generate moves.
	moves := pos.GenerateMovesInto(s.moveBuf[ply])
	s.moveBuf[ply] = moves
	if len(moves) == 0 {
		if inCheck {
			return WhiteMateScore + ply
		}
		return 0
	}
	words := scoreMoves(pos, moves, s.wordBuf[ply], s.history, ply, hashMove)
	s.wordBuf[ply] = words
	sortMoves(moves, words, pos.WhiteMove)

	color := pos.SideToMove()
	legalCount := 0
	bestScore := MinScore - 1
	var bestWord Move32
	scoreType := BoundUpper

	for idx, m := range moves {
		w := words[idx]
		from := decodeFrom(w)
		to := decodeTo(w)
		isCapture := m.Captured != board.Empty
		isPromotion := m.Promotion != board.Empty
		isQuiet := !isCapture && !isPromotion

		undo := pos.MakeMove(m)
		if pos.IsKingInCheck(color) {
			pos.UnmakeMove(m, undo)
			continue
		}
		s.repetition.Push(pos.Hash)
		legalCount++
		givesCheck := pos.IsInCheck()

		closeToPromotion := isPawnCloseToPromotion(m)
		reduction := 0

		see := 0
		if isCapture {
			see = pos.StaticExchangeEval(m)
		}

		// Reductions / late-move futility (quiet moves only, deep
		// enough into the move list to trust ordering).
		if depth > 2 && !inCheck && isQuiet && !closeToPromotion && !givesCheck && idx > LMRThreshold {
			reduction = LMRReduction
			if s.history.HasNegativeHistory(color, from, to, depth) || see < 0 {
				reduction++
			}
		}

		// Futility pruning.
		pruned := false
		if !pvNode && depth <= 4 && isQuiet && !isPromotion && !givesCheck {
			staticMargin := pos.GetScore()*side + depth*FutilityMargin
			if staticMargin <= alpha {
				if legalCount > 1 || (s.history.HasNegativeHistory(color, from, to, depth) && see < 0) {
					pruned = true
				} else {
					reduction += FutileMoveReductions
				}
			}
		}

		// Losing-capture reduction.
		if isCapture && see < 0 && pieceOrderValue(m.Captured) <= pieceOrderValue(m.Piece) {
			reduction += LosingMoveReductions
		}

		if pruned {
			s.repetition.Pop()
			pos.UnmakeMove(m, undo)
			if isQuiet {
				s.history.RecordPlayed(color, from, to)
			}
			continue
		}

		childDepth := depth - 1 - reduction
		if childDepth < 0 {
			childDepth = 0
		}

		var score int
		if legalCount == 1 {
			score = -s.search(pos, -beta, -alpha, childDepth, ply+1, nullDone, false, givesCheck, pvNode)
		} else {
			score = -s.search(pos, -alpha-1, -alpha, childDepth, ply+1, nullDone, false, givesCheck, false)
			if isCancelScore(score) {
				s.repetition.Pop()
				pos.UnmakeMove(m, undo)
				return CancelSearch
			}
			if score > alpha && (reduction > 0 || score < beta) {
				score = -s.search(pos, -beta, -alpha, depth-1, ply+1, nullDone, false, givesCheck, pvNode)
			}
		}
		s.repetition.Pop()
		pos.UnmakeMove(m, undo)

		if isQuiet {
			s.history.RecordPlayed(color, from, to)
		}

		if isCancelScore(score) {
			return CancelSearch
		}

		if score > bestScore {
			bestScore = score
			bestWord = w
		}
		if score > alpha {
			alpha = score
			scoreType = BoundExact
		}
		if alpha >= beta {
			scoreType = BoundLower
			if isQuiet {
				s.history.RecordCutoff(color, from, to, ply)
			}
			s.tt.Store(hash, depth, scoreType, alpha, bestWord)
			return alpha
		}
	}

	// 10. Zugzwang re-search: the null-move fail-high wasn't confirmed
	// by the reduced-depth search above, so redo this node once more at
	// full depth with verification disarmed.
	if verificationArmed && legalCount > 0 && alpha < beta {
		return s.search(pos, alpha, beta, originalDepth, ply, nullDone, false, inCheck, pvNode)
	}

	// 11. No legal move.
	if legalCount == 0 {
		if inCheck {
			return WhiteMateScore + ply
		}
		return 0
	}

	// 12. Write TT entry.
	s.tt.Store(hash, depth, scoreType, bestScore, bestWord)
	return bestScore
}

// remapMateScore adjusts a raw mate score returned from quiescence
// search by the current ply, so that mate distances stay comparable
// across the recursion depth at which they were discovered.
func remapMateScore(score, ply int) int {
	switch {
	case score <= WhiteMateScore+TranspositionMaxDepth:
		return score + ply
	case score >= BlackMateScore-TranspositionMaxDepth:
		return score - ply
	default:
		return score
	}
}

// isPawnCloseToPromotion reports whether m moves a pawn onto the 7th
// or 8th rank relative to its own side (one or two plies from
// promoting), disqualifying it from late-move reductions and futility
// pruning since such moves are rarely actually quiet.
func isPawnCloseToPromotion(m board.Move) bool {
	if m.Piece != board.Pawn {
		return false
	}
	to := squareIndexOf(m.To)
	rank := to / 8
	return rank <= 1 || rank >= 6
}

func squareIndexOf(bb board.Bitboard) int {
	return bb.LSB()
}

var pieceOrder = map[board.Piece]int{
	board.Pawn: 1, board.Knight: 3, board.Bishop: 3,
	board.Rook: 5, board.Queen: 9, board.King: 100,
}

func pieceOrderValue(p board.Piece) int {
	return pieceOrder[p]
}

package engine

import (
	"time"

	"zugzwang/board"
)

// SearchInfo is one "info depth ..." line's worth of progress data,
// emitted after every completed iterative-deepening iteration.
type SearchInfo struct {
	Depth  int
	Score  int
	IsMate bool
	MateIn int
	Nodes  uint64
	NPS    uint64
	Time   time.Duration
	PV     []board.Move
}

// SearchOptions configures a single call to FindBestMove.
type SearchOptions struct {
	MinDepth  int
	TimeLimit time.Duration
	Strict    bool
	OnInfo    func(SearchInfo)
	// Stop, if non-nil, is polled cooperatively to honour a UCI "stop"
	// command issued mid-search, independent of the time budget.
	Stop <-chan struct{}
}

// FindBestMove runs iterative deepening from depth 2 up to
// TranspositionMaxDepth, honouring the time budget in opts, and
// returns the best move found along with its score (from the side to
// move's perspective) and whether the game has already ended in the given
// position.
func (e *Engine) FindBestMove(pos *board.Position, opts SearchOptions) (board.Move, int, bool) {
	legalMoves := pos.GenerateLegalMoves()
	if len(legalMoves) == 0 {
		if pos.IsInCheck() {
			return board.Move{}, WhiteMateScore, true
		}
		return board.Move{}, 0, true
	}
	if len(legalMoves) == 1 {
		return legalMoves[0], 0, false
	}

	s := newSearcher(e, opts.TimeLimit)
	s.stop = opts.Stop
	side := colourSign(pos.WhiteMove)

	words := scoreMoves(pos, legalMoves, make([]Move32, 0, len(legalMoves)), s.history, 0, 0)
	sortMoves(legalMoves, words, pos.WhiteMove)

	// Seed with the best-ordered root move so a "stop" arriving before any
	// iteration finishes still yields a legal move, per the cancellation
	// contract: partial iterations are discarded, but the engine always
	// answers with at least the prior best-so-far.
	bestMove := legalMoves[0]
	var bestScore int
	var lastScore int
	var fluctuationAvg float64
	extended := false

	for depth := 2; depth <= TranspositionMaxDepth; depth++ {
		iterStart := time.Now()
		alpha, beta := MinScore-1, MaxScore+1

		iterBestMove := bestMove
		iterBestScore := bestScore
		iterBestWord := words[0]
		failed := false

		for i, m := range legalMoves {
			w := words[i]
			undo := pos.MakeMove(m)
			s.repetition.Push(pos.Hash)
			inCheck := pos.IsInCheck()

			var score int
			if i == 0 {
				score = -s.search(pos, -beta, -alpha, depth-1, 1, false, depth <= 4, inCheck, true)
			} else {
				score = -s.search(pos, -alpha-1, -alpha, depth-1, 1, false, false, inCheck, false)
				if !isCancelScore(score) && score > alpha {
					score = -s.search(pos, -beta, -alpha, depth-1, 1, false, depth <= 4, inCheck, true)
				}
			}
			s.repetition.Pop()
			pos.UnmakeMove(m, undo)

			if isCancelScore(score) {
				failed = true
				break
			}

			words[i] = withScore(w, score*side)
			if score > alpha {
				alpha = score
				iterBestMove = m
				iterBestScore = score
				iterBestWord = words[i]
			}
		}

		if failed {
			break
		}

		moveChanged := iterBestMove != bestMove
		bestMove = iterBestMove
		bestScore = iterBestScore
		sortMoves(legalMoves, words, pos.WhiteMove)
		_ = iterBestWord

		if opts.OnInfo != nil {
			opts.OnInfo(buildSearchInfo(pos, depth, iterBestScore*side, s, iterStart, bestMove))
		}

		s.cancelArmed = depth >= opts.MinDepth

		delta := iterBestScore - lastScore
		if delta < 0 {
			delta = -delta
		}
		fluctuationAvg = FluctuationDecay*fluctuationAvg + (1-FluctuationDecay)*float64(delta)
		lastScore = iterBestScore

		iterDuration := time.Since(iterStart)
		remaining := opts.TimeLimit - s.elapsed()
		if remaining <= 2*iterDuration {
			instability := moveChanged || delta >= InstabilityScoreDelta || fluctuationAvg >= InstabilityAvgDelta
			if !opts.Strict && !extended && instability {
				s.timeLimit *= TimeExtMultiplier
				extended = true
				continue
			}
			break
		}
	}

	return bestMove, bestScore, false
}

func buildSearchInfo(pos *board.Position, depth, score int, s *Searcher, iterStart time.Time, best board.Move) SearchInfo {
	elapsed := s.elapsed()
	nps := uint64(0)
	if elapsed > 0 {
		nps = uint64(float64(s.nodes) / elapsed.Seconds())
	}

	info := SearchInfo{
		Depth: depth,
		Score: score,
		Nodes: s.nodes,
		NPS:   nps,
		Time:  elapsed,
	}

	if score <= WhiteMateScore+TranspositionMaxDepth {
		info.IsMate = true
		info.MateIn = mateDistance(score, false)
	} else if score >= BlackMateScore-TranspositionMaxDepth {
		info.IsMate = true
		info.MateIn = mateDistance(score, true)
	}

	info.PV = extractPV(pos, s.tt, best, depth)
	return info
}

// mateDistance converts a mate score into a human "mate in K" count.
// winning reports a positive K (engine delivers mate); losing yields a
// negative K (engine is mated).
func mateDistance(score int, winning bool) int {
	if winning {
		plies := BlackMateScore - score
		return (plies + 1) / 2
	}
	plies := score - WhiteMateScore
	return -((plies + 1) / 2)
}

// extractPV walks the transposition table forward from pos, following
// the best move at each step and validating it against the live
// position before trusting it, since TT entries may be stale or
// collided.
func extractPV(pos *board.Position, tt *TranspositionTable, first board.Move, maxLen int) []board.Move {
	pv := make([]board.Move, 0, maxLen)
	if !pos.IsValidMove(first) {
		return pv
	}

	work := *pos
	undos := make([]board.UndoInfo, 0, maxLen)
	m := first
	for len(pv) < maxLen {
		if !work.IsValidMove(m) {
			break
		}
		undo := work.MakeMove(m)
		undos = append(undos, undo)
		pv = append(pv, m)

		_, _, _, word, ok := tt.Probe(work.Hash)
		if !ok {
			break
		}
		next, ok := resolveMove(&work, word)
		if !ok {
			break
		}
		m = next
	}

	for i := len(undos) - 1; i >= 0; i-- {
		work.UnmakeMove(pv[i], undos[i])
	}

	return pv
}

// Package engine implements the search core: transposition table,
// history/killer heuristics, move ordering, quiescence search, the main
// principal-variation searcher, and the iterative-deepening root
// driver. It consumes board.Position as an external collaborator for
// move generation, static evaluation, and position bookkeeping.
package engine

import (
	"time"

	"github.com/rs/zerolog"

	"zugzwang/board"
)

// Engine bundles the state that must persist across the whole UCI
// session: the transposition table, history heuristics, and the
// repetition history of the game actually played. The UCI loop owns a
// single Engine value for its process lifetime rather than relying on
// global/package state, so that tests can run independent engines
// concurrently.
type Engine struct {
	TT         *TranspositionTable
	History    *HistoryHeuristics
	Repetition *board.RepetitionHistory
	HashSizeMB int
	OwnBook    bool
	Log        zerolog.Logger
}

// NewEngine builds an Engine with the default hash size and a fresh,
// empty table/history/repetition state.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		TT:         NewTranspositionTable(DefaultHashSizeMB),
		History:    NewHistoryHeuristics(),
		Repetition: board.NewRepetitionHistory(),
		HashSizeMB: DefaultHashSizeMB,
		OwnBook:    false,
		Log:        log,
	}
}

// SetHashSize resizes the transposition table, clamped to
// [1, MaxHashSizeMB]; HashSizeMB records the requested value unclamped.
// Takes effect immediately: the UCI layer calls this as soon as
// "setoption name Hash" arrives, and "isready" does not resize.
func (e *Engine) SetHashSize(mb int) {
	e.HashSizeMB = mb
	e.TT.Resize(mb)
}

// NewGame resets all per-game state: the transposition table, history
// heuristics, and repetition bookkeeping. Call on "ucinewgame".
func (e *Engine) NewGame() {
	e.TT.Clear()
	e.History.Clear()
	e.Repetition.Reset()
}

// PlayMove advances the repetition history and transposition-table age
// for a move actually played in the real game (as opposed to one
// explored only inside the search tree).
func (e *Engine) PlayMove(hash uint64) {
	e.Repetition.Push(hash)
	e.TT.IncreaseAge()
}

// Searcher holds the per-search mutable state: node count, time
// budget, and cancellation flags. A fresh Searcher is created for every
// call to FindBestMove so that concurrent analysis sessions (if ever
// added) never share mutable search state.
type Searcher struct {
	tt         *TranspositionTable
	history    *HistoryHeuristics
	repetition *board.RepetitionHistory

	nodes uint64

	startTime   time.Time
	timeLimit   time.Duration
	cancelArmed bool
	cancelled   bool
	stop        <-chan struct{}

	// moveBuf/wordBuf hold one reusable move list and scored-word list
	// per ply for the main search, moveBufQS/wordBufQS the same for
	// quiescence. Indexed by ply rather than allocated fresh per node:
	// a recursive call at ply+1 never touches its parent's slot, so the
	// whole tree shares these TranspositionMaxDepth+1 buffers instead of
	// allocating a new move list at every node.
	moveBuf   [TranspositionMaxDepth + 1][]board.Move
	wordBuf   [TranspositionMaxDepth + 1][]Move32
	moveBufQS [TranspositionMaxDepth + 1][]board.Move
	wordBufQS [TranspositionMaxDepth + 1][]Move32
}

// moveBufferCap and captureBufferCap are generous upper bounds on the
// number of pseudo-legal moves/captures in any reachable chess
// position (the theoretical maximum is 218 moves), sized so the scratch
// buffers below never need to grow past their initial allocation.
const moveBufferCap = 256
const captureBufferCap = 64

func newSearcher(e *Engine, timeLimit time.Duration) *Searcher {
	s := &Searcher{
		tt:         e.TT,
		history:    e.History,
		repetition: e.Repetition,
		startTime:  time.Now(),
		timeLimit:  timeLimit,
	}
	for ply := range s.moveBuf {
		s.moveBuf[ply] = make([]board.Move, 0, moveBufferCap)
		s.wordBuf[ply] = make([]Move32, 0, moveBufferCap)
		s.moveBufQS[ply] = make([]board.Move, 0, captureBufferCap)
		s.wordBufQS[ply] = make([]Move32, 0, captureBufferCap)
	}
	return s
}

// shouldCancel polls the wall clock once per 1024 nodes, matching the
// reference engine's cooperative-cancellation cadence: checking every
// node would make the clock call dominate the hot path.
func (s *Searcher) shouldCancel() bool {
	if s.cancelled {
		return true
	}
	if s.nodes%1024 != 0 {
		return false
	}
	if s.stop != nil {
		select {
		case <-s.stop:
			s.cancelled = true
			return true
		default:
		}
	}
	if !s.cancelArmed {
		return false
	}
	if time.Since(s.startTime) >= s.timeLimit {
		s.cancelled = true
	}
	return s.cancelled
}

func (s *Searcher) elapsed() time.Duration {
	return time.Since(s.startTime)
}

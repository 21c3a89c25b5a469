package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zugzwang/board"
)

func TestMvvLva_PrefersCapturingHighValueWithLowValue(t *testing.T) {
	pawnTakesQueen := mvvLva(board.Pawn, board.Queen)
	queenTakesPawn := mvvLva(board.Queen, board.Pawn)
	assert.Greater(t, pawnTakesQueen, queenTakesPawn)
}

func TestScoreMoves_HashMoveOutranksEverything(t *testing.T) {
	pos := board.CreatePositionFormFEN(board.InitialPosition)
	moves := pos.GenerateLegalMoves()
	hist := NewHistoryHeuristics()

	hashMove := encodeMove(board.Pawn, 12, 28) // e2e4
	words := scoreMoves(&pos, moves, make([]Move32, 0, len(moves)), hist, 0, hashMove)
	sortMoves(moves, words, pos.WhiteMove)

	assert.True(t, sameMoveIdentity(words[0], hashMove))
}

func TestScoreMoves_CapturesOutrankQuietMoves(t *testing.T) {
	pos := board.CreatePositionFormFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	moves := pos.GenerateLegalMoves()
	hist := NewHistoryHeuristics()

	words := scoreMoves(&pos, moves, make([]Move32, 0, len(moves)), hist, 0, 0)
	sortMoves(moves, words, pos.WhiteMove)

	top := words[0]
	assert.Equal(t, 35, decodeTo(top)) // d5, exd5 capture
}

func TestSortMoves_DescendingForWhiteAscendingForBlack(t *testing.T) {
	dummyMoves := make([]board.Move, 3)

	white := []Move32{
		withScore(encodeMove(board.Pawn, 0, 1), -5),
		withScore(encodeMove(board.Pawn, 0, 2), 20),
		withScore(encodeMove(board.Pawn, 0, 3), 3),
	}
	sortMoves(dummyMoves, white, true)
	assert.Equal(t, 20, decodeScore(white[0]))
	assert.Equal(t, -5, decodeScore(white[2]))

	black := []Move32{
		withScore(encodeMove(board.Pawn, 0, 1), -5),
		withScore(encodeMove(board.Pawn, 0, 2), 20),
		withScore(encodeMove(board.Pawn, 0, 3), 3),
	}
	sortMoves(dummyMoves, black, false)
	assert.Equal(t, -5, decodeScore(black[0]))
	assert.Equal(t, 20, decodeScore(black[2]))
}

func TestScoreMoves_KillerOutranksPlainQuietMove(t *testing.T) {
	pos := board.CreatePositionFormFEN("4k3/8/8/8/8/8/8/4K2N w - - 0 1")
	moves := pos.GenerateLegalMoves()
	hist := NewHistoryHeuristics()
	hist.RecordCutoff(board.ColorWhite, 7, 22, 0) // Nh1-g3

	words := scoreMoves(&pos, moves, make([]Move32, 0, len(moves)), hist, 0, 0)
	sortMoves(moves, words, pos.WhiteMove)

	assert.True(t, sameMoveIdentity(words[0], encodeMove(board.Knight, 7, 22)))
}

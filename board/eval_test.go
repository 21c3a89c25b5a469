package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluatePeSTO_StartingPositionIsSymmetric(t *testing.T) {
	pos := CreatePositionFormFEN(InitialPosition)
	assert.Equal(t, 0, EvaluatePeSTO(pos))
}

func TestEvaluatePeSTO_MaterialAdvantage(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		minScore int
		maxScore int
	}{
		{"white up a queen", "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 800, 1200},
		{"white up a rook", "rnbqkbn1/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQq - 0 1", 400, 600},
		{"white up a knight", "r1bqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 250, 450},
		{"white up a pawn", "rnbqkbnr/ppppppp1/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 50, 150},
		{"black up a queen", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1", -1200, -800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := CreatePositionFormFEN(tt.fen)
			score := EvaluatePeSTO(pos)
			assert.GreaterOrEqual(t, score, tt.minScore)
			assert.LessOrEqual(t, score, tt.maxScore)
		})
	}
}

func TestEvaluatePeSTO_EndgameIsCloseToZero(t *testing.T) {
	pos := CreatePositionFormFEN("4k3/pppppppp/8/8/8/8/PPPPPPPP/4K3 w - - 0 1")
	score := EvaluatePeSTO(pos)
	assert.GreaterOrEqual(t, score, -100)
	assert.LessOrEqual(t, score, 100)
}

func TestEvaluatePeSTO_PieceValues(t *testing.T) {
	assert.Equal(t, 82, mgPieceValue[PiecePawn])
	assert.Equal(t, 337, mgPieceValue[PieceKnight])
	assert.Equal(t, 365, mgPieceValue[PieceBishop])
	assert.Equal(t, 477, mgPieceValue[PieceRook])
	assert.Equal(t, 1025, mgPieceValue[PieceQueen])

	assert.Equal(t, 94, egPieceValue[PiecePawn])
	assert.Equal(t, 281, egPieceValue[PieceKnight])
	assert.Equal(t, 297, egPieceValue[PieceBishop])
	assert.Equal(t, 512, egPieceValue[PieceRook])
	assert.Equal(t, 936, egPieceValue[PieceQueen])
}

func TestEvaluatePeSTO_AdvancedPawnScoresHigher(t *testing.T) {
	advanced := CreatePositionFormFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	start := CreatePositionFormFEN("4k3/8/8/8/8/8/P7/4K3 w - - 0 1")

	assert.Greater(t, EvaluatePeSTO(advanced), EvaluatePeSTO(start))
}

func TestEvaluatePeSTO_GamePhaseRange(t *testing.T) {
	// Smoke test: every phase bucket evaluates without panicking.
	fens := []string{
		InitialPosition,
		"4k3/pppppppp/8/8/8/8/PPPPPPPP/4K3 w - - 0 1",
		"rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1",
	}
	for _, fen := range fens {
		pos := CreatePositionFormFEN(fen)
		_ = EvaluatePeSTO(pos)
	}
}

func TestEvaluate_IncludesBishopPairBonus(t *testing.T) {
	withPair := CreatePositionFormFEN("4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1")
	withoutPair := CreatePositionFormFEN("4k3/8/8/8/8/8/8/3BK3 w - - 0 1")

	diff := Evaluate(withPair) - Evaluate(withoutPair)
	assert.Greater(t, diff, mgPieceValue[PieceBishop]-100)
}

func TestGetScore_MatchesEvaluate(t *testing.T) {
	pos := CreatePositionFormFEN(InitialPosition)
	assert.Equal(t, Evaluate(pos), pos.GetScore())
}

package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Reference perft values from the Chess Programming Wiki:
// https://www.chessprogramming.org/Perft_Results

func TestPerft_InitialPosition(t *testing.T) {
	pos := CreatePositionFormFEN(InitialPosition)

	assert.Equal(t, uint64(20), pos.Perft(1))
	assert.Equal(t, uint64(400), pos.Perft(2))
}

func TestPerft_KiwipeteDepth1(t *testing.T) {
	// A position exercising castling, en passant and promotions at shallow depth.
	pos := CreatePositionFormFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	assert.Equal(t, uint64(48), pos.Perft(1))
}

func TestDivide_SumsToPerft(t *testing.T) {
	pos := CreatePositionFormFEN(InitialPosition)
	divide := pos.Divide(2)

	var total uint64
	for _, n := range divide {
		total += n
	}
	assert.Equal(t, pos.Perft(2), total)
}

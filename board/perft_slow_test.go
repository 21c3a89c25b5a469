package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerft_InitialPositionDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}

	pos := CreatePositionFormFEN(InitialPosition)
	assert.Equal(t, uint64(8902), pos.Perft(3))
	assert.Equal(t, uint64(197281), pos.Perft(4))
}

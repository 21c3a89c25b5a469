package magic

import "testing"

func TestRookAttacksMatchesReference(t *testing.T) {
	squares := []int{0, 8, 27, 35, 63}
	occupancies := []uint64{
		0,
		0xFFFFFFFFFFFFFFFF,
		0x0000000000FF0000,
		0x0101010101010101,
	}

	for _, sq := range squares {
		for _, occ := range occupancies {
			got := RookAttacks(sq, occ)
			want := slidingAttacks(sq, occ, true)
			if got != want {
				t.Errorf("RookAttacks(%d, %#x) = %#x, want %#x", sq, occ, got, want)
			}
		}
	}
}

func TestBishopAttacksMatchesReference(t *testing.T) {
	squares := []int{0, 9, 27, 54, 63}
	occupancies := []uint64{
		0,
		0xFFFFFFFFFFFFFFFF,
		0x0055AA0000AA5500,
	}

	for _, sq := range squares {
		for _, occ := range occupancies {
			got := BishopAttacks(sq, occ)
			want := slidingAttacks(sq, occ, false)
			if got != want {
				t.Errorf("BishopAttacks(%d, %#x) = %#x, want %#x", sq, occ, got, want)
			}
		}
	}
}

func TestQueenAttacksIsUnion(t *testing.T) {
	sq := 28
	occ := uint64(0x0000001000002000)
	want := RookAttacks(sq, occ) | BishopAttacks(sq, occ)
	if got := QueenAttacks(sq, occ); got != want {
		t.Errorf("QueenAttacks = %#x, want %#x", got, want)
	}
}

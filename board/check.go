package board

import "zugzwang/magic"

// IsSquareAttacked reports whether sq is attacked by any piece of the
// given color in the current position.
func (pos *Position) IsSquareAttacked(sq int, by Color) bool {
	var attackers, pawns Bitboard
	if by == ColorWhite {
		attackers = pos.White
		pawns = pos.Pawns & pos.White
		// a white pawn on sq-9/sq-7 attacks sq
		if sq%8 != 0 && sq-9 >= 0 && pawns&IndexToBitBoard(sq-9) != 0 {
			return true
		}
		if sq%8 != 7 && sq-7 >= 0 && pawns&IndexToBitBoard(sq-7) != 0 {
			return true
		}
	} else {
		attackers = pos.Black
		pawns = pos.Pawns & pos.Black
		if sq%8 != 7 && sq+9 < 64 && pawns&IndexToBitBoard(sq+9) != 0 {
			return true
		}
		if sq%8 != 0 && sq+7 < 64 && pawns&IndexToBitBoard(sq+7) != 0 {
			return true
		}
	}

	if knightAttacks[sq]&pos.Knights&attackers != 0 {
		return true
	}
	if kingAttacks[sq]&pos.Kings&attackers != 0 {
		return true
	}

	occupied := pos.Occupied()
	bishopsQueens := (pos.Bishops | pos.Queens) & attackers
	if Bitboard(magic.BishopAttacks(sq, uint64(occupied)))&bishopsQueens != 0 {
		return true
	}
	rooksQueens := (pos.Rooks | pos.Queens) & attackers
	if Bitboard(magic.RookAttacks(sq, uint64(occupied)))&rooksQueens != 0 {
		return true
	}

	return false
}

// IsKingInCheck reports whether the king of the given color is currently
// attacked.
func (pos *Position) IsKingInCheck(color Color) bool {
	var king Bitboard
	if color == ColorWhite {
		king = pos.Kings & pos.White
	} else {
		king = pos.Kings & pos.Black
	}
	if king == 0 {
		return false
	}
	opponent := ColorBlack
	if color == ColorBlack {
		opponent = ColorWhite
	}
	return pos.IsSquareAttacked(king.LSB(), opponent)
}

// IsInCheck reports whether the side to move is currently in check.
func (pos *Position) IsInCheck() bool {
	return pos.IsKingInCheck(pos.SideToMove())
}

package board

import "zugzwang/magic"

var seePieceValue = [7]int{0, 100, 320, 330, 500, 900, 20000}

// StaticExchangeEval estimates the material result of a sequence of
// captures on m.To, starting with m, assuming both sides keep recapturing
// with their least valuable attacker. A positive result means the
// exchange favours the side making m.
func (pos *Position) StaticExchangeEval(m Move) int {
	if m.Captured == Empty && m.Flags&FlagEnPassant == 0 {
		return 0
	}

	to := bitboardToIndex(m.To)
	occupied := pos.Occupied()
	occupied &^= m.From

	capturedValue := seePieceValue[m.Captured]
	attacker := m.Piece
	side := pos.SideToMove()
	if side == ColorBlack {
		side = ColorWhite
	} else {
		side = ColorBlack
	}

	gain := make([]int, 0, 32)
	gain = append(gain, capturedValue)

	for {
		attackers := pos.attackersTo(to, occupied)
		ours := attackers & pos.sideOccupancy(side, occupied)
		if ours == 0 {
			break
		}

		next, piece := pos.leastValuableAttacker(ours)
		if piece == Empty {
			break
		}

		gain = append(gain, seePieceValue[attacker]-gain[len(gain)-1])
		occupied &^= IndexToBitBoard(next)
		attacker = piece
		side = flip(side)
	}

	for i := len(gain) - 2; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}

func flip(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

func (pos *Position) sideOccupancy(c Color, occupied Bitboard) Bitboard {
	if c == ColorWhite {
		return pos.White & occupied
	}
	return pos.Black & occupied
}

// attackersTo returns every piece (either color) attacking sq given a
// (possibly hypothetical, mid-exchange) occupancy.
func (pos *Position) attackersTo(sq int, occupied Bitboard) Bitboard {
	var attackers Bitboard

	whitePawnAttackers := Bitboard(0)
	if sq%8 != 0 && sq-9 >= 0 {
		whitePawnAttackers |= IndexToBitBoard(sq - 9)
	}
	if sq%8 != 7 && sq-7 >= 0 {
		whitePawnAttackers |= IndexToBitBoard(sq - 7)
	}
	attackers |= whitePawnAttackers & pos.Pawns & pos.White & occupied

	blackPawnAttackers := Bitboard(0)
	if sq%8 != 7 && sq+9 < 64 {
		blackPawnAttackers |= IndexToBitBoard(sq + 9)
	}
	if sq%8 != 0 && sq+7 < 64 {
		blackPawnAttackers |= IndexToBitBoard(sq + 7)
	}
	attackers |= blackPawnAttackers & pos.Pawns & pos.Black & occupied

	attackers |= knightAttacks[sq] & pos.Knights & occupied
	attackers |= kingAttacks[sq] & pos.Kings & occupied
	attackers |= Bitboard(magic.BishopAttacks(sq, uint64(occupied))) & (pos.Bishops | pos.Queens) & occupied
	attackers |= Bitboard(magic.RookAttacks(sq, uint64(occupied))) & (pos.Rooks | pos.Queens) & occupied

	return attackers
}

// leastValuableAttacker returns the square and piece type of the cheapest
// attacker among candidates. Returns (0, Empty) when candidates is empty.
func (pos *Position) leastValuableAttacker(candidates Bitboard) (int, Piece) {
	for _, pt := range []Piece{Pawn, Knight, Bishop, Rook, Queen, King} {
		bb := candidates & *pos.GetPiece(pt)
		if bb != 0 {
			return bb.LSB(), pt
		}
	}
	return 0, Empty
}

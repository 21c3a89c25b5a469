package board

import "zugzwang/magic"

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var knightAttacks [64]Bitboard
var kingAttacks [64]Bitboard

func init() {
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		for _, d := range knightOffsets {
			r, f := rank+d[0], file+d[1]
			if r >= 0 && r < 8 && f >= 0 && f < 8 {
				knightAttacks[sq].SetBit(r*8 + f)
			}
		}
		for _, d := range kingOffsets {
			r, f := rank+d[0], file+d[1]
			if r >= 0 && r < 8 && f >= 0 && f < 8 {
				kingAttacks[sq].SetBit(r*8 + f)
			}
		}
	}
}

// GenerateMoves returns every pseudo-legal move in the position: legal
// except possibly for leaving the side-to-move's own king in check.
func (pos *Position) GenerateMoves() []Move {
	return pos.GenerateMovesInto(make([]Move, 0, 48))
}

// GenerateMovesInto fills buf[:0] with every pseudo-legal move, reusing
// buf's backing array instead of allocating one. Callers on a hot path
// (the search core) keep a buffer per recursion depth and pass it in
// on every call, so move generation allocates nothing at steady state.
func (pos *Position) GenerateMovesInto(buf []Move) []Move {
	buf = buf[:0]
	buf = pos.generatePawnMoves(buf, false)
	buf = pos.generatePieceMoves(buf, false)
	buf = pos.generateCastlingMoves(buf)
	return buf
}

// GenerateCaptureMoves returns every pseudo-legal capturing move
// (including en passant and promotion captures). Used by quiescence
// search, which only wants to examine forcing moves.
func (pos *Position) GenerateCaptureMoves() []Move {
	return pos.GenerateCaptureMovesInto(make([]Move, 0, 16))
}

// GenerateCaptureMovesInto is the buffer-reusing counterpart of
// GenerateCaptureMoves, for the same reason as GenerateMovesInto.
func (pos *Position) GenerateCaptureMovesInto(buf []Move) []Move {
	buf = buf[:0]
	buf = pos.generatePawnMoves(buf, true)
	buf = pos.generatePieceMoves(buf, true)
	return buf
}

// GenerateLegalMoves returns every fully legal move: pseudo-legal moves
// that do not leave the side-to-move's own king in check.
func (pos *Position) GenerateLegalMoves() []Move {
	pseudo := pos.GenerateMoves()
	legal := make([]Move, 0, len(pseudo))
	us := pos.SideToMove()
	for _, m := range pseudo {
		undo := pos.MakeMove(m)
		if !pos.IsKingInCheck(us) {
			legal = append(legal, m)
		}
		pos.UnmakeMove(m, undo)
	}
	return legal
}

func (pos *Position) ourPieces() (own, enemy *Bitboard, color Color) {
	if pos.WhiteMove {
		return &pos.White, &pos.Black, ColorWhite
	}
	return &pos.Black, &pos.White, ColorBlack
}

func (pos *Position) generatePieceMoves(moves []Move, capturesOnly bool) []Move {
	own, enemy, _ := pos.ourPieces()
	occupied := pos.Occupied()

	for _, pt := range []Piece{Knight, Bishop, Rook, Queen, King} {
		pieces := *pos.GetPiece(pt) & *own
		for pieces != 0 {
			from := pieces.PopLSB()
			var attacks Bitboard
			switch pt {
			case Knight:
				attacks = knightAttacks[from]
			case King:
				attacks = kingAttacks[from]
			case Bishop:
				attacks = Bitboard(magic.BishopAttacks(from, uint64(occupied)))
			case Rook:
				attacks = Bitboard(magic.RookAttacks(from, uint64(occupied)))
			case Queen:
				attacks = Bitboard(magic.QueenAttacks(from, uint64(occupied)))
			}
			attacks &^= *own

			targets := attacks
			if capturesOnly {
				targets &= *enemy
			}
			for targets != 0 {
				to := targets.PopLSB()
				toBB := IndexToBitBoard(to)
				captured := Empty
				if toBB&*enemy != 0 {
					captured = pos.PieceAt(to)
				}
				moves = append(moves, Move{
					From:     IndexToBitBoard(from),
					To:       toBB,
					Piece:    pt,
					Captured: captured,
				})
			}
		}
	}
	return moves
}

var promotionPieces = [4]Piece{Queen, Rook, Bishop, Knight}

func (pos *Position) generatePawnMoves(moves []Move, capturesOnly bool) []Move {
	own, enemy, color := pos.ourPieces()
	occupied := pos.Occupied()
	pawns := pos.Pawns & *own

	forward := 8
	startRank := Rank2
	promoRank := Rank8
	if color == ColorBlack {
		forward = -8
		startRank = Rank7
		promoRank = Rank1
	}

	for p := pawns; p != 0; {
		from := p.PopLSB()
		rank := from / 8

		// single/double push
		if !capturesOnly {
			to := from + forward
			if to >= 0 && to < 64 && occupied&IndexToBitBoard(to) == 0 {
				moves = appendPawnMove(moves, from, to, promoRank)
				if rank == startRank {
					to2 := from + 2*forward
					if occupied&IndexToBitBoard(to2) == 0 {
						moves = append(moves, Move{From: IndexToBitBoard(from), To: IndexToBitBoard(to2), Piece: Pawn})
					}
				}
			}
		}

		// captures (including en passant)
		file := from & 7
		for _, df := range [2]int{-1, 1} {
			toFile := file + df
			if toFile < 0 || toFile > 7 {
				continue
			}
			to := from + forward + df
			if to < 0 || to >= 64 {
				continue
			}
			toBB := IndexToBitBoard(to)
			if toBB&*enemy != 0 {
				captured := pos.PieceAt(to)
				if to/8 == promoRank {
					for _, promo := range promotionPieces {
						moves = append(moves, Move{From: IndexToBitBoard(from), To: toBB, Piece: Pawn, Captured: captured, Promotion: promo})
					}
				} else {
					moves = append(moves, Move{From: IndexToBitBoard(from), To: toBB, Piece: Pawn, Captured: captured})
				}
			} else if toBB&pos.EnPassant != 0 {
				moves = append(moves, Move{From: IndexToBitBoard(from), To: toBB, Piece: Pawn, Captured: Pawn, Flags: FlagEnPassant})
			}
		}
	}
	return moves
}

func appendPawnMove(moves []Move, from, to, promoRank int) []Move {
	toBB := IndexToBitBoard(to)
	if to/8 == promoRank {
		for _, promo := range promotionPieces {
			moves = append(moves, Move{From: IndexToBitBoard(from), To: toBB, Piece: Pawn, Promotion: promo})
		}
		return moves
	}
	return append(moves, Move{From: IndexToBitBoard(from), To: toBB, Piece: Pawn})
}

func (pos *Position) generateCastlingMoves(moves []Move) []Move {
	occupied := pos.Occupied()
	if pos.WhiteMove {
		if pos.CastleSide&CastleWhiteKingSide != 0 &&
			occupied&(IndexToBitBoard(5)|IndexToBitBoard(6)) == 0 &&
			!pos.IsSquareAttacked(4, ColorBlack) && !pos.IsSquareAttacked(5, ColorBlack) && !pos.IsSquareAttacked(6, ColorBlack) {
			moves = append(moves, Move{From: IndexToBitBoard(4), To: IndexToBitBoard(6), Piece: King, Flags: FlagCastling})
		}
		if pos.CastleSide&CastleWhiteQueenSide != 0 &&
			occupied&(IndexToBitBoard(1)|IndexToBitBoard(2)|IndexToBitBoard(3)) == 0 &&
			!pos.IsSquareAttacked(4, ColorBlack) && !pos.IsSquareAttacked(3, ColorBlack) && !pos.IsSquareAttacked(2, ColorBlack) {
			moves = append(moves, Move{From: IndexToBitBoard(4), To: IndexToBitBoard(2), Piece: King, Flags: FlagCastling})
		}
	} else {
		if pos.CastleSide&CastleBlackKingSide != 0 &&
			occupied&(IndexToBitBoard(61)|IndexToBitBoard(62)) == 0 &&
			!pos.IsSquareAttacked(60, ColorWhite) && !pos.IsSquareAttacked(61, ColorWhite) && !pos.IsSquareAttacked(62, ColorWhite) {
			moves = append(moves, Move{From: IndexToBitBoard(60), To: IndexToBitBoard(62), Piece: King, Flags: FlagCastling})
		}
		if pos.CastleSide&CastleBlackQueenSide != 0 &&
			occupied&(IndexToBitBoard(57)|IndexToBitBoard(58)|IndexToBitBoard(59)) == 0 &&
			!pos.IsSquareAttacked(60, ColorWhite) && !pos.IsSquareAttacked(59, ColorWhite) && !pos.IsSquareAttacked(58, ColorWhite) {
			moves = append(moves, Move{From: IndexToBitBoard(60), To: IndexToBitBoard(58), Piece: King, Flags: FlagCastling})
		}
	}
	return moves
}

// moveBufferCap bounds the pseudo-legal move count in any reachable
// chess position (the theoretical maximum is 218 moves), used to size
// stack-local scratch buffers that avoid a heap allocation.
const moveBufferCap = 256

// IsValidMove reports whether m is a legal move in the current position.
// Used to validate a transposition-table or killer move before trusting
// it, since those are stored independently of the position that produced
// them. Validates m directly against the pseudo-legal move list and
// m's own after-the-fact king safety, rather than generating and
// legality-filtering every move in the position just to test one
// candidate.
func (pos *Position) IsValidMove(m Move) bool {
	var buf [moveBufferCap]Move
	found := false
	for _, legal := range pos.GenerateMovesInto(buf[:0]) {
		if legal == m {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	us := pos.SideToMove()
	undo := pos.MakeMove(m)
	ok := !pos.IsKingInCheck(us)
	pos.UnmakeMove(m, undo)
	return ok
}

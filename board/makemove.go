package board

// UndoInfo stores the state needed to unmake a move.
// This allows efficient make/unmake without copying the entire position.
type UndoInfo struct {
	CapturedPiece Piece    // piece that was captured (Empty if no capture)
	CastleSide    uint8    // castling rights before the move
	EnPassant     Bitboard // en passant square before the move
	HalfMoveClock uint8    // half-move clock before the move
	Hash          uint64   // hash before the move
}

// MakeMove executes a move on the position and returns undo information.
// This modifies the position in-place for performance.
// Call UnmakeMove with the returned UndoInfo to reverse the move.
func (pos *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPiece: m.Captured,
		CastleSide:    pos.CastleSide,
		EnPassant:     pos.EnPassant,
		HalfMoveClock: pos.HalfMoveClock,
		Hash:          pos.Hash,
	}

	us := pos.SideToMove()
	them := ColorBlack
	if us == ColorBlack {
		them = ColorWhite
	}

	var ourColor, enemyColor *Bitboard
	if pos.WhiteMove {
		ourColor = &pos.White
		enemyColor = &pos.Black
	} else {
		ourColor = &pos.Black
		enemyColor = &pos.White
	}

	fromIdx := bitboardToIndex(m.From)
	toIdx := bitboardToIndex(m.To)

	pos.Hash ^= HashCastling(pos.CastleSide)
	if pos.EnPassant != 0 {
		pos.Hash ^= HashEnPassant(bitboardToIndex(pos.EnPassant) & 7)
	}

	pieceBB := pos.GetPiece(m.Piece)
	*pieceBB &^= m.From
	*ourColor &^= m.From
	pos.Hash ^= HashPiece(m.Piece, us, fromIdx)

	if m.Captured != Empty {
		if m.Flags&FlagEnPassant != 0 {
			var capturedPawnSq Bitboard
			var capturedIdx int
			if pos.WhiteMove {
				capturedPawnSq = m.To >> 8
				capturedIdx = toIdx - 8
			} else {
				capturedPawnSq = m.To << 8
				capturedIdx = toIdx + 8
			}
			pos.Pawns &^= capturedPawnSq
			*enemyColor &^= capturedPawnSq
			pos.Hash ^= HashPiece(Pawn, them, capturedIdx)
		} else {
			capturedBB := pos.GetPiece(m.Captured)
			*capturedBB &^= m.To
			*enemyColor &^= m.To
			pos.Hash ^= HashPiece(m.Captured, them, toIdx)
		}
	}

	if m.Promotion != Empty {
		promoBB := pos.GetPiece(m.Promotion)
		*promoBB |= m.To
		pos.Hash ^= HashPiece(m.Promotion, us, toIdx)
	} else {
		*pieceBB |= m.To
		pos.Hash ^= HashPiece(m.Piece, us, toIdx)
	}
	*ourColor |= m.To

	if m.Flags&FlagCastling != 0 {
		if pos.WhiteMove {
			if m.To == IndexToBitBoard(6) {
				pos.Rooks &^= IndexToBitBoard(7)
				pos.Rooks |= IndexToBitBoard(5)
				pos.White &^= IndexToBitBoard(7)
				pos.White |= IndexToBitBoard(5)
				pos.Hash ^= HashPiece(Rook, us, 7)
				pos.Hash ^= HashPiece(Rook, us, 5)
			} else {
				pos.Rooks &^= IndexToBitBoard(0)
				pos.Rooks |= IndexToBitBoard(3)
				pos.White &^= IndexToBitBoard(0)
				pos.White |= IndexToBitBoard(3)
				pos.Hash ^= HashPiece(Rook, us, 0)
				pos.Hash ^= HashPiece(Rook, us, 3)
			}
		} else {
			if m.To == IndexToBitBoard(62) {
				pos.Rooks &^= IndexToBitBoard(63)
				pos.Rooks |= IndexToBitBoard(61)
				pos.Black &^= IndexToBitBoard(63)
				pos.Black |= IndexToBitBoard(61)
				pos.Hash ^= HashPiece(Rook, us, 63)
				pos.Hash ^= HashPiece(Rook, us, 61)
			} else {
				pos.Rooks &^= IndexToBitBoard(56)
				pos.Rooks |= IndexToBitBoard(59)
				pos.Black &^= IndexToBitBoard(56)
				pos.Black |= IndexToBitBoard(59)
				pos.Hash ^= HashPiece(Rook, us, 56)
				pos.Hash ^= HashPiece(Rook, us, 59)
			}
		}
	}

	if m.Piece == King {
		if pos.WhiteMove {
			pos.CastleSide &^= CastleWhiteKingSide | CastleWhiteQueenSide
		} else {
			pos.CastleSide &^= CastleBlackKingSide | CastleBlackQueenSide
		}
	}
	if m.From == IndexToBitBoard(0) || m.To == IndexToBitBoard(0) {
		pos.CastleSide &^= CastleWhiteQueenSide
	}
	if m.From == IndexToBitBoard(7) || m.To == IndexToBitBoard(7) {
		pos.CastleSide &^= CastleWhiteKingSide
	}
	if m.From == IndexToBitBoard(56) || m.To == IndexToBitBoard(56) {
		pos.CastleSide &^= CastleBlackQueenSide
	}
	if m.From == IndexToBitBoard(63) || m.To == IndexToBitBoard(63) {
		pos.CastleSide &^= CastleBlackKingSide
	}
	pos.Hash ^= HashCastling(pos.CastleSide)

	pos.EnPassant = 0
	if m.Piece == Pawn {
		diff := toIdx - fromIdx
		if diff == 16 {
			pos.EnPassant = IndexToBitBoard(fromIdx + 8)
		} else if diff == -16 {
			pos.EnPassant = IndexToBitBoard(fromIdx - 8)
		}
	}
	if pos.EnPassant != 0 {
		pos.Hash ^= HashEnPassant(bitboardToIndex(pos.EnPassant) & 7)
	}

	if m.Piece == Pawn || m.Captured != Empty {
		pos.HalfMoveClock = 0
	} else {
		pos.HalfMoveClock++
	}

	pos.WhiteMove = !pos.WhiteMove
	pos.Hash ^= HashSide()

	return undo
}

// UnmakeMove reverses a move using the saved undo information.
func (pos *Position) UnmakeMove(m Move, undo UndoInfo) {
	pos.WhiteMove = !pos.WhiteMove

	var ourColor, enemyColor *Bitboard
	if pos.WhiteMove {
		ourColor = &pos.White
		enemyColor = &pos.Black
	} else {
		ourColor = &pos.Black
		enemyColor = &pos.White
	}

	if m.Flags&FlagCastling != 0 {
		if pos.WhiteMove {
			if m.To == IndexToBitBoard(6) {
				pos.Rooks |= IndexToBitBoard(7)
				pos.Rooks &^= IndexToBitBoard(5)
				pos.White |= IndexToBitBoard(7)
				pos.White &^= IndexToBitBoard(5)
			} else {
				pos.Rooks |= IndexToBitBoard(0)
				pos.Rooks &^= IndexToBitBoard(3)
				pos.White |= IndexToBitBoard(0)
				pos.White &^= IndexToBitBoard(3)
			}
		} else {
			if m.To == IndexToBitBoard(62) {
				pos.Rooks |= IndexToBitBoard(63)
				pos.Rooks &^= IndexToBitBoard(61)
				pos.Black |= IndexToBitBoard(63)
				pos.Black &^= IndexToBitBoard(61)
			} else {
				pos.Rooks |= IndexToBitBoard(56)
				pos.Rooks &^= IndexToBitBoard(59)
				pos.Black |= IndexToBitBoard(56)
				pos.Black &^= IndexToBitBoard(59)
			}
		}
	}

	if m.Promotion != Empty {
		promoBB := pos.GetPiece(m.Promotion)
		*promoBB &^= m.To
	} else {
		pieceBB := pos.GetPiece(m.Piece)
		*pieceBB &^= m.To
	}
	*ourColor &^= m.To

	pieceBB := pos.GetPiece(m.Piece)
	*pieceBB |= m.From
	*ourColor |= m.From

	if undo.CapturedPiece != Empty {
		if m.Flags&FlagEnPassant != 0 {
			var capturedPawnSq Bitboard
			if pos.WhiteMove {
				capturedPawnSq = m.To >> 8
			} else {
				capturedPawnSq = m.To << 8
			}
			pos.Pawns |= capturedPawnSq
			*enemyColor |= capturedPawnSq
		} else {
			capturedBB := pos.GetPiece(undo.CapturedPiece)
			*capturedBB |= m.To
			*enemyColor |= m.To
		}
	}

	pos.CastleSide = undo.CastleSide
	pos.EnPassant = undo.EnPassant
	pos.HalfMoveClock = undo.HalfMoveClock
	pos.Hash = undo.Hash
}

// PerformNullMove makes a null move: only the side to move and en passant
// square change. Used by null-move pruning in the search.
func (pos *Position) PerformNullMove() UndoInfo {
	undo := UndoInfo{
		EnPassant: pos.EnPassant,
		Hash:      pos.Hash,
	}
	if pos.EnPassant != 0 {
		pos.Hash ^= HashEnPassant(bitboardToIndex(pos.EnPassant) & 7)
	}
	pos.EnPassant = 0
	pos.WhiteMove = !pos.WhiteMove
	pos.Hash ^= HashSide()
	return undo
}

// UndoNullMove reverses PerformNullMove.
func (pos *Position) UndoNullMove(undo UndoInfo) {
	pos.WhiteMove = !pos.WhiteMove
	pos.EnPassant = undo.EnPassant
	pos.Hash = undo.Hash
}

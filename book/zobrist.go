package book

import (
	"math/rand"

	"zugzwang/board"
)

// Polyglot hashing uses a published table of 781 random 64-bit constants
// (12 piece/square planes * 64 squares, 4 castling rights, 8 en passant
// files, 1 side-to-move). We don't have the official constant table on
// hand, so we generate our own fixed-seed substitute with the same shape.
// Probe/ProbeRandom therefore only find entries in books keyed with this
// same substitute table; they will not match hashes from a third-party
// .bin file produced against the official table.
var (
	polyglotPiece    [12][64]uint64
	polyglotCastle   [4]uint64
	polyglotEnPassat [8]uint64
	polyglotTurn     uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x49AD0F4E9AE1F23))
	for i := range polyglotPiece {
		for sq := range polyglotPiece[i] {
			polyglotPiece[i][sq] = rng.Uint64()
		}
	}
	for i := range polyglotCastle {
		polyglotCastle[i] = rng.Uint64()
	}
	for i := range polyglotEnPassat {
		polyglotEnPassat[i] = rng.Uint64()
	}
	polyglotTurn = rng.Uint64()
}

// polyglotPieceIndex maps (piece, color) to the Polyglot plane order:
// black pawn, white pawn, black knight, white knight, ... black king, white king.
func polyglotPieceIndex(piece board.Piece, white bool) int {
	base := (int(piece) - 1) * 2
	if white {
		return base + 1
	}
	return base
}

// PolyglotHash computes the book lookup hash for pos.
func PolyglotHash(pos board.Position) uint64 {
	var hash uint64

	for sq := 0; sq < 64; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.Empty {
			continue
		}
		white := pos.White&board.IndexToBitBoard(sq) != 0
		hash ^= polyglotPiece[polyglotPieceIndex(piece, white)][sq]
	}

	if pos.CastleSide&board.CastleWhiteKingSide != 0 {
		hash ^= polyglotCastle[0]
	}
	if pos.CastleSide&board.CastleWhiteQueenSide != 0 {
		hash ^= polyglotCastle[1]
	}
	if pos.CastleSide&board.CastleBlackKingSide != 0 {
		hash ^= polyglotCastle[2]
	}
	if pos.CastleSide&board.CastleBlackQueenSide != 0 {
		hash ^= polyglotCastle[3]
	}

	if pos.EnPassant != 0 {
		file := pos.EnPassant.LSB() & 7
		hash ^= polyglotEnPassat[file]
	}

	if pos.WhiteMove {
		hash ^= polyglotTurn
	}

	return hash
}

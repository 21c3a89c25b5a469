// Package board Layout 2: https://gekomad.github.io/Cinnamon/BitboardCalculator/
//
//	56	57	58	59	60	61	62	63
//	48	49	50	51	52	53	54	55
//	40	41	42	43	44	45	46	47
//	32	33	34	35	36	37	38	39
//	24	25	26	27	28	29	30	31
//	16	17	18	19	20	21	22	23
//	08	09	10	11	12	13	14	15
//	00	01	02	03	04	05	06	07

package board

import (
	"fmt"
	"math/bits"
	"strings"
)

type Bitboard uint64

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const FullBoard Bitboard = 0xFFFFFFFFFFFFFFFF

var (
	FileMask = [8]Bitboard{
		0x0101010101010101, 0x0202020202020202, 0x0404040404040404, 0x0808080808080808,
		0x1010101010101010, 0x2020202020202020, 0x4040404040404040, 0x8080808080808080,
	}
	RankMask = [8]Bitboard{
		0x00000000000000FF, 0x000000000000FF00, 0x0000000000FF0000, 0x00000000FF000000,
		0x000000FF00000000, 0x0000FF0000000000, 0x00FF000000000000, 0xFF00000000000000,
	}
	NotFileA = ^FileMask[FileA]
	NotFileH = ^FileMask[FileH]
)

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the index of the least significant set bit, or 64 if empty.
func (b Bitboard) LSB() int {
	if b == 0 {
		return 64
	}
	return bits.TrailingZeros64(uint64(b))
}

// PopLSB clears and returns the index of the least significant set bit.
func (b *Bitboard) PopLSB() int {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

func BB() {
	b := Bitboard(0x40201)
	b.SetBit(27)
	s := b.Pretty()
	fmt.Println(s)
}

func (b *Bitboard) Print() {
	fmt.Println("")
	for i := range 64 {
		sq := 0
		if b.IsBitSet(i) {
			sq = 1
		}
		fmt.Print(sq)
		if ((i + 1) % 8) == 0 {
			fmt.Println()
		}
	}
	fmt.Println()
}

func (b *Bitboard) bit(index int) uint64 {
	mask := uint64(1) << index
	return (uint64(*b) & mask) >> index
}

func (b *Bitboard) IsBitSet(index int) bool {
	return b.bit(index) == 1
}

func (b *Bitboard) SetBit(index int) {
	*b |= 1 << index
}

func squareIndex(f, r int) int {
	return (r << 3) + f
}

func IndexToBitBoard(i int) Bitboard {
	b := Bitboard(0)
	b.SetBit(i)
	return b
}

func (b *Bitboard) Pretty() string {
	var sb strings.Builder
	sb.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank8; r >= Rank1; r-- {
		for f := FileA; f <= FileH; f++ {
			if b.IsBitSet(squareIndex(f, r)) {
				sb.WriteString("| X ")
			} else {
				sb.WriteString("|   ")
			}
		}
		fmt.Fprintf(&sb, "| %d\n+---+---+---+---+---+---+---+---+\n", r+1)
	}
	sb.WriteString("  a   b   c   d   e   f   g   h\n")
	return sb.String()
}

func toFlat(boards ...Bitboard) Bitboard {
	var flatten Bitboard
	for _, b := range boards {
		flatten = flatten | b
	}
	return flatten
}

// ToSlice takes a bitboard and returns a slice of bitboards
// where each bitboard has a single bit set
func (b *Bitboard) ToSlice() []Bitboard {
	// todo: consider nil slice
	slice := []Bitboard{}
	for i := range 64 {
		mask := Bitboard(1 << i)
		if *b&mask != 0 {
			slice = append(slice, mask)
		}
	}
	return slice
}

func (b *Bitboard) Hex() string {
	return fmt.Sprintf("0x%x", *b)
}

package board

// File is a zero-based board column, 0 = file a.
type File int

// Rank is a zero-based board row, 0 = rank 1.
type Rank int

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

func (f File) String() string {
	if f < FileA || f > FileH {
		return "?"
	}
	return string(rune('a' + int(f)))
}

func (r Rank) String() string {
	if r < Rank1 || r > Rank8 {
		return "?"
	}
	return string(rune('1' + int(r)))
}

// Square is an absolute board coordinate, e.g. {FileE, Rank4} = "e4".
type Square struct {
	File File
	Rank Rank
}

func (s Square) String() string {
	return s.File.String() + s.Rank.String()
}

// Shade is the symbolic light/dark class of a square. Concrete colors are
// a presentation concern.
type Shade uint8

const (
	Dark Shade = iota
	Light
)

func (s Shade) String() string {
	if s == Light {
		return "light"
	}
	return "dark"
}

// Shade derives the checkerboard class from coordinate parity. It depends
// only on the absolute square, so it is unaffected by board orientation.
func (s Square) Shade() Shade {
	if (int(s.File)+int(s.Rank))%2 == 0 {
		return Dark
	}
	return Light
}

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// HomeRank is the back rank a side starts on, where its turn marker is
// anchored.
func (c Color) HomeRank() Rank {
	if c == Black {
		return Rank8
	}
	return Rank1
}

type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "?"
}

// Piece is an occupant of a square.
type Piece struct {
	Color Color
	Type  PieceType
}

// EmptySpriteKey is the sprite key of an unoccupied square and of blank
// board decoration cells.
const EmptySpriteKey = "empty"

// SpriteKey returns the symbolic asset key for the piece, e.g. "wK" for
// the white king.
func (p Piece) SpriteKey() string {
	var prefix string
	if p.Color == White {
		prefix = "w"
	} else {
		prefix = "b"
	}

	var suffix string
	switch p.Type {
	case King:
		suffix = "K"
	case Queen:
		suffix = "Q"
	case Rook:
		suffix = "R"
	case Bishop:
		suffix = "B"
	case Knight:
		suffix = "N"
	case Pawn:
		suffix = "P"
	}

	return prefix + suffix
}

// Position is the parsed chess position the layout is computed from. It is
// produced by an external parser and treated as immutable for the duration
// of one ComputeLayout call.
type Position interface {
	// PieceAt reports the occupant of sq, ok is false for an empty square.
	PieceAt(sq Square) (Piece, bool)
	// SideToMove reports whose turn it is.
	SideToMove() Color
}

// Package position parses position descriptions into the immutable
// piece-per-square view the layout core consumes. All format and legality
// validation is delegated to the chess library; a descriptor either
// parses fully or the error surfaces here, before any layout is computed.
package position

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"

	"github.com/kapu/boardwidget/internal/board"
)

const (
	startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	emptyFEN = "8/8/8/8/8/8/8/8 w - - 0 1"
)

// Position is a parsed, immutable chess position. It implements
// board.Position.
type Position struct {
	pieces map[board.Square]board.Piece
	side   board.Color
	fen    string
}

// Parse accepts a FEN-style description or one of the aliases "start" and
// "empty". An empty string means "start".
func Parse(desc string) (*Position, error) {
	fen := strings.TrimSpace(desc)
	switch strings.ToLower(fen) {
	case "", "start":
		fen = startFEN
	case "empty":
		fen = emptyFEN
	}

	fenOpt, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse position %q: %w", desc, err)
	}
	game := nchess.NewGame(fenOpt)
	pos := game.Position()

	p := &Position{
		pieces: make(map[board.Square]board.Piece, 32),
		side:   convColor(pos.Turn()),
		fen:    game.FEN(),
	}
	for sq, piece := range pos.Board().SquareMap() {
		if piece == nchess.NoPiece {
			continue
		}
		bsq := board.Square{File: board.File(sq.File()), Rank: board.Rank(sq.Rank())}
		p.pieces[bsq] = board.Piece{
			Color: convColor(piece.Color()),
			Type:  convType(piece.Type()),
		}
	}
	return p, nil
}

// MustParse is Parse for descriptors known to be valid, e.g. the aliases.
func MustParse(desc string) *Position {
	p, err := Parse(desc)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Position) PieceAt(sq board.Square) (board.Piece, bool) {
	piece, ok := p.pieces[sq]
	return piece, ok
}

func (p *Position) SideToMove() board.Color {
	return p.side
}

// FEN returns the canonical FEN of the parsed position.
func (p *Position) FEN() string {
	return p.fen
}

func convColor(c nchess.Color) board.Color {
	if c == nchess.Black {
		return board.Black
	}
	return board.White
}

func convType(t nchess.PieceType) board.PieceType {
	switch t {
	case nchess.King:
		return board.King
	case nchess.Queen:
		return board.Queen
	case nchess.Rook:
		return board.Rook
	case nchess.Bishop:
		return board.Bishop
	case nchess.Knight:
		return board.Knight
	default:
		return board.Pawn
	}
}

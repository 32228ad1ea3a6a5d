package board

import "testing"

// fakePosition is a piece-per-square stub, enough to drive ComputeLayout
// without a real parser.
type fakePosition struct {
	pieces map[Square]Piece
	side   Color
}

func (p *fakePosition) PieceAt(sq Square) (Piece, bool) {
	piece, ok := p.pieces[sq]
	return piece, ok
}

func (p *fakePosition) SideToMove() Color { return p.side }

func emptyPosition(side Color) *fakePosition {
	return &fakePosition{pieces: map[Square]Piece{}, side: side}
}

// startPosition builds the standard initial setup.
func startPosition() *fakePosition {
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	pieces := make(map[Square]Piece, 32)
	for f := FileA; f <= FileH; f++ {
		pieces[Square{File: f, Rank: Rank1}] = Piece{Color: White, Type: backRank[f]}
		pieces[Square{File: f, Rank: Rank2}] = Piece{Color: White, Type: Pawn}
		pieces[Square{File: f, Rank: Rank7}] = Piece{Color: Black, Type: Pawn}
		pieces[Square{File: f, Rank: Rank8}] = Piece{Color: Black, Type: backRank[f]}
	}
	return &fakePosition{pieces: pieces, side: White}
}

func TestComputeLayoutShape(t *testing.T) {
	for _, coords := range []bool{true, false} {
		layout := ComputeLayout(startPosition(), DisplayOptions{SquareSize: 32, ShowCoordinates: coords})
		if len(layout.Rows) != 8 {
			t.Fatalf("got %d rows, want 8", len(layout.Rows))
		}
		for i, row := range layout.Rows {
			if len(row.Cells) != 8 {
				t.Fatalf("row %d has %d cells, want 8", i, len(row.Cells))
			}
		}
		if coords && layout.Header == nil {
			t.Fatalf("coordinates on but no column header row")
		}
		if !coords && layout.Header != nil {
			t.Fatalf("coordinates off but column header row present")
		}
	}
}

func TestShadeIsFlipInvariant(t *testing.T) {
	pos := emptyPosition(White)
	plain := ComputeLayout(pos, DisplayOptions{SquareSize: 32})
	flipped := ComputeLayout(pos, DisplayOptions{SquareSize: 32, Flip: true})

	shades := make(map[Square]Shade)
	for _, row := range plain.Rows {
		for _, cell := range row.Cells {
			shades[cell.Square] = cell.Shade
		}
	}
	for _, row := range flipped.Rows {
		for _, cell := range row.Cells {
			if shades[cell.Square] != cell.Shade {
				t.Fatalf("square %s changes shade under flip", cell.Square)
			}
		}
	}

	a1 := Square{File: FileA, Rank: Rank1}
	h1 := Square{File: FileH, Rank: Rank1}
	if shades[a1] != Dark {
		t.Fatalf("a1 = %s, want dark", shades[a1])
	}
	if shades[h1] != Light {
		t.Fatalf("h1 = %s, want light", shades[h1])
	}
}

func TestLabelOrderReversesUnderFlip(t *testing.T) {
	pos := emptyPosition(White)

	plain := ComputeLayout(pos, DisplayOptions{SquareSize: 32, ShowCoordinates: true})
	for i, want := range []string{"8", "7", "6", "5", "4", "3", "2", "1"} {
		if plain.Rows[i].Label != want {
			t.Fatalf("row %d label = %q, want %q", i, plain.Rows[i].Label, want)
		}
	}
	for i, want := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		if plain.Header.Labels[i] != want {
			t.Fatalf("column %d label = %q, want %q", i, plain.Header.Labels[i], want)
		}
	}

	flipped := ComputeLayout(pos, DisplayOptions{SquareSize: 32, ShowCoordinates: true, Flip: true})
	for i, want := range []string{"1", "2", "3", "4", "5", "6", "7", "8"} {
		if flipped.Rows[i].Label != want {
			t.Fatalf("flipped row %d label = %q, want %q", i, flipped.Rows[i].Label, want)
		}
	}
	for i, want := range []string{"h", "g", "f", "e", "d", "c", "b", "a"} {
		if flipped.Header.Labels[i] != want {
			t.Fatalf("flipped column %d label = %q, want %q", i, flipped.Header.Labels[i], want)
		}
	}
}

func TestTurnMarkerFollowsAbsoluteHomeRank(t *testing.T) {
	for _, side := range []Color{White, Black} {
		for _, flip := range []bool{false, true} {
			layout := ComputeLayout(emptyPosition(side), DisplayOptions{SquareSize: 32, ShowCoordinates: true, Flip: flip})
			markers := 0
			for _, row := range layout.Rows {
				if row.Marker == nil {
					continue
				}
				markers++
				if row.Marker.Side != side {
					t.Fatalf("marker side = %s, want %s", row.Marker.Side, side)
				}
				if row.Rank != side.HomeRank() {
					t.Fatalf("side=%s flip=%v: marker on rank %s, want %s",
						side, flip, row.Rank, side.HomeRank())
				}
			}
			if markers != 1 {
				t.Fatalf("side=%s flip=%v: %d markers, want 1", side, flip, markers)
			}
		}
	}
}

func TestStartPositionLayout(t *testing.T) {
	layout := ComputeLayout(startPosition(), DisplayOptions{SquareSize: 32, ShowCoordinates: true})

	top := layout.Rows[0]
	if top.Label != "8" {
		t.Fatalf("top row label = %q, want 8", top.Label)
	}
	first := top.Cells[0]
	if first.Square.String() != "a8" {
		t.Fatalf("top-left square = %s, want a8", first.Square)
	}
	if !first.Occupied || first.Piece != (Piece{Color: Black, Type: Rook}) {
		t.Fatalf("a8 occupant = %+v occupied=%v, want black rook", first.Piece, first.Occupied)
	}
	if first.SpriteKey != "bR" {
		t.Fatalf("a8 sprite key = %q, want bR", first.SpriteKey)
	}

	bottom := layout.Rows[7]
	if bottom.Label != "1" {
		t.Fatalf("bottom row label = %q, want 1", bottom.Label)
	}
	if bottom.Marker == nil || bottom.Marker.Side != White {
		t.Fatalf("bottom row marker = %+v, want white", bottom.Marker)
	}
}

func TestEmptyPositionLayout(t *testing.T) {
	layout := ComputeLayout(emptyPosition(White), DisplayOptions{SquareSize: 32, ShowCoordinates: true})
	for _, row := range layout.Rows {
		for _, cell := range row.Cells {
			if cell.Occupied || cell.SpriteKey != EmptySpriteKey {
				t.Fatalf("square %s: occupied=%v key=%q, want empty", cell.Square, cell.Occupied, cell.SpriteKey)
			}
		}
	}
	if layout.Rows[7].Marker == nil {
		t.Fatalf("no turn marker on the rank 1 row")
	}
}

func TestComputeLayoutSanitizesSquareSize(t *testing.T) {
	layout := ComputeLayout(emptyPosition(White), DisplayOptions{SquareSize: 9999})
	if layout.Options.SquareSize != MaxSquareSize {
		t.Fatalf("square size = %d, want %d", layout.Options.SquareSize, MaxSquareSize)
	}
}

func TestComputeLayoutDeterministic(t *testing.T) {
	pos := startPosition()
	opts := DisplayOptions{Flip: true, SquareSize: 48, ShowCoordinates: true}
	a := ComputeLayout(pos, opts)
	b := ComputeLayout(pos, opts)
	if *a.Header != *b.Header {
		t.Fatalf("headers differ between identical computations")
	}
	for i := range a.Rows {
		if a.Rows[i].Cells != b.Rows[i].Cells {
			t.Fatalf("row %d differs between identical computations", i)
		}
	}
}

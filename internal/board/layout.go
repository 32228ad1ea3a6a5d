// Package board computes the renderer-agnostic visual layout of a chess
// position: square grid, coordinate labels, turn indicator and sprite
// selection. It owns no rendering; a DOM builder, raster renderer or any
// other presentation walks the Layout it emits.
package board

// Cell describes a single board square in iteration order.
type Cell struct {
	Square    Square
	Shade     Shade
	Piece     Piece
	Occupied  bool
	SpriteKey string
}

// TurnMarker marks the row anchored to the side to move.
type TurnMarker struct {
	Side Color
}

// Row is one physical board row, top to bottom. Label is empty unless
// coordinates are shown. Marker is non-nil on at most one row per layout.
type Row struct {
	Rank   Rank
	Label  string
	Cells  [8]Cell
	Marker *TurnMarker
}

// ColumnHeader is the trailing file-label row emitted when coordinates
// are shown. Corner sits under the rank-label column and Trailer under
// the turn-marker column, both blank.
type ColumnHeader struct {
	Corner  string
	Labels  [8]string
	Trailer string
}

// Layout is the computed board description. Single use: built by
// ComputeLayout, walked by a renderer, then discarded.
type Layout struct {
	Rows    [8]Row
	Header  *ColumnHeader
	Options DisplayOptions
}

// ComputeLayout derives the visual layout of pos under opts. Rows run
// rank 8 down to 1 and files a to h; flipping reverses both iteration
// orders but never the square ids, labels or shades, which are all
// derived from absolute coordinates. The square size is sanitized here
// so renderers always see a valid value. Pure and deterministic.
func ComputeLayout(pos Position, opts DisplayOptions) *Layout {
	opts.SquareSize = ValidateSquareSize(&opts.SquareSize)

	side := pos.SideToMove()
	layout := &Layout{Options: opts}

	for i := 0; i < 8; i++ {
		rank := Rank(7 - i)
		if opts.Flip {
			rank = Rank(i)
		}
		row := Row{Rank: rank}
		if opts.ShowCoordinates {
			row.Label = rank.String()
		}
		for j := 0; j < 8; j++ {
			file := File(j)
			if opts.Flip {
				file = File(7 - j)
			}
			sq := Square{File: file, Rank: rank}
			cell := Cell{Square: sq, Shade: sq.Shade(), SpriteKey: EmptySpriteKey}
			if piece, ok := pos.PieceAt(sq); ok {
				cell.Piece = piece
				cell.Occupied = true
				cell.SpriteKey = piece.SpriteKey()
			}
			row.Cells[j] = cell
		}
		if rank == side.HomeRank() {
			row.Marker = &TurnMarker{Side: side}
		}
		layout.Rows[i] = row
	}

	if opts.ShowCoordinates {
		header := &ColumnHeader{}
		for j := 0; j < 8; j++ {
			file := File(j)
			if opts.Flip {
				file = File(7 - j)
			}
			header.Labels[j] = file.String()
		}
		layout.Header = header
	}

	return layout
}

package widget

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kapu/boardwidget/internal/board"
)

type stubPosition struct{ side board.Color }

func (p stubPosition) PieceAt(board.Square) (board.Piece, bool) { return board.Piece{}, false }
func (p stubPosition) SideToMove() board.Color                  { return p.side }

// stubRenderer records the layouts it sees.
type stubRenderer struct {
	calls int
	last  *board.Layout
}

func (r *stubRenderer) Render(layout *board.Layout) ([]byte, error) {
	r.calls++
	r.last = layout
	return []byte(fmt.Sprintf("render-%d", r.calls)), nil
}

func TestSetOptionReRendersAndNotifies(t *testing.T) {
	renderer := &stubRenderer{}
	w := New(stubPosition{side: board.White}, board.DefaultOptions(), renderer)

	var got []byte
	cancel := w.Subscribe(func(rendered []byte) { got = rendered })

	if err := w.SetOption("flip", "true"); err != nil {
		t.Fatalf("SetOption(flip): %v", err)
	}
	if !w.Options().Flip {
		t.Fatalf("flip option not applied")
	}
	if got == nil {
		t.Fatalf("subscriber not notified")
	}
	if renderer.last == nil || !renderer.last.Options.Flip {
		t.Fatalf("renderer saw stale layout")
	}

	cancel()
	got = nil
	if err := w.SetOption("showCoordinates", "false"); err != nil {
		t.Fatalf("SetOption(showCoordinates): %v", err)
	}
	if got != nil {
		t.Fatalf("canceled subscriber still notified")
	}
	if w.Options().ShowCoordinates {
		t.Fatalf("showCoordinates option not applied")
	}
}

func TestSetOptionSanitizesSquareSize(t *testing.T) {
	w := New(stubPosition{}, board.DefaultOptions(), &stubRenderer{})
	if err := w.SetOption("squareSize", "999"); err != nil {
		t.Fatalf("SetOption(squareSize): %v", err)
	}
	if got := w.Options().SquareSize; got != board.MaxSquareSize {
		t.Fatalf("square size = %d, want %d", got, board.MaxSquareSize)
	}
	if err := w.SetOption("squareSize", "garbage"); err != nil {
		t.Fatalf("SetOption(squareSize, garbage): %v", err)
	}
	if got := w.Options().SquareSize; got != board.DefaultSquareSize {
		t.Fatalf("square size = %d, want default %d", got, board.DefaultSquareSize)
	}
}

func TestSetOptionUnknown(t *testing.T) {
	w := New(stubPosition{}, board.DefaultOptions(), &stubRenderer{})
	if err := w.SetOption("sparkles", "on"); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("SetOption(sparkles) = %v, want ErrUnknownOption", err)
	}
	if err := w.SetOption("flip", "maybe"); err == nil {
		t.Fatalf("expected error for unparsable bool")
	}
}

func TestSetPosition(t *testing.T) {
	renderer := &stubRenderer{}
	w := New(stubPosition{side: board.White}, board.DefaultOptions(), renderer)
	if err := w.SetPosition(stubPosition{side: board.Black}); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	layout, err := w.Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	marked := false
	for _, row := range layout.Rows {
		if row.Marker != nil && row.Marker.Side == board.Black {
			marked = true
		}
	}
	if !marked {
		t.Fatalf("layout does not reflect the new position")
	}
}

func TestDestroy(t *testing.T) {
	w := New(stubPosition{}, board.DefaultOptions(), &stubRenderer{})
	w.Destroy()
	if _, err := w.Render(); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("Render after destroy = %v, want ErrDestroyed", err)
	}
	if err := w.SetOption("flip", "true"); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("SetOption after destroy = %v, want ErrDestroyed", err)
	}
	if _, err := w.Layout(); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("Layout after destroy = %v, want ErrDestroyed", err)
	}
}

func TestWidgetIDsAreUnique(t *testing.T) {
	a := New(stubPosition{}, board.DefaultOptions(), &stubRenderer{})
	b := New(stubPosition{}, board.DefaultOptions(), &stubRenderer{})
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("ids not unique: %q %q", a.ID(), b.ID())
	}
}

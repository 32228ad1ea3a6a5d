package board

import "testing"

func TestValidateSquareSizeNil(t *testing.T) {
	if got := ValidateSquareSize(nil); got != DefaultSquareSize {
		t.Fatalf("ValidateSquareSize(nil) = %d, want %d", got, DefaultSquareSize)
	}
}

func TestValidateSquareSizeSnapping(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-5, 24},
		{0, 24},
		{23, 24},
		{24, 24},
		{26, 28}, // half rounds up
		{29, 28},
		{30, 32},
		{32, 32},
		{47, 48},
		{63, 64},
		{64, 64},
		{65, 64},
		{1000, 64},
	}
	for _, c := range cases {
		in := c.in
		if got := ValidateSquareSize(&in); got != c.want {
			t.Fatalf("ValidateSquareSize(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestValidateSquareSizeRangeAndIdempotence(t *testing.T) {
	for v := -10; v <= 110; v++ {
		in := v
		got := ValidateSquareSize(&in)
		if got < MinSquareSize || got > MaxSquareSize || got%SquareSizeStep != 0 {
			t.Fatalf("ValidateSquareSize(%d) = %d, outside valid set", v, got)
		}
		again := ValidateSquareSize(&got)
		if again != got {
			t.Fatalf("not idempotent: %d -> %d -> %d", v, got, again)
		}
	}
}

func TestValidateSquareSizeString(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", DefaultSquareSize},
		{"  ", DefaultSquareSize},
		{"abc", DefaultSquareSize},
		{"48", 48},
		{"47.5", 48},
		{"31.4", 32},
		{"-12", 24},
		{"9999", 64},
	}
	for _, c := range cases {
		if got := ValidateSquareSizeString(c.in); got != c.want {
			t.Fatalf("ValidateSquareSizeString(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestFillBinaryRGBA(t *testing.T) {
	buf := make([]byte, 8)
	fillBinaryRGBA(buf, []uint8{1, 0}, color.White, color.Black)
	want := []byte{255, 255, 255, 255, 0, 0, 0, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("got %v, expected %v", buf, want)
	}
}

func TestFillPaletteClampsToLastColour(t *testing.T) {
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 2, 9}, Brain)
	if buf[4] != Brain[2].R || buf[8] != Brain[2].R || buf[11] != 255 {
		t.Fatalf("unexpected pixels %v", buf)
	}

	fillPaletteRGBA(buf, []uint8{1, 1, 1}, nil)
	for _, b := range buf {
		if b != 0 {
			t.Fatalf("empty palette must clear the buffer, got %v", buf)
		}
	}
}

func TestPaletteFor(t *testing.T) {
	if len(PaletteFor("briansbrain")) != 3 {
		t.Fatal("brian's brain needs a colour per state")
	}
	if len(PaletteFor("life")) != 2 || len(PaletteFor("nope")) != 2 {
		t.Fatal("unknown sims fall back to the binary palette")
	}
}

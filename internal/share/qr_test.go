package share

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"
)

func TestDeckCodePNG(t *testing.T) {
	tests := []struct {
		size, want int
	}{
		{0, DefaultQRSize},
		{64, MinQRSize},
		{300, 300},
		{5000, MaxQRSize},
	}
	for _, tt := range tests {
		b, err := DeckCodePNG("ART-1/ART-1/SNG-2", tt.size)
		if err != nil {
			t.Fatalf("size %d: %v", tt.size, err)
		}
		img, err := png.Decode(bytes.NewReader(b))
		if err != nil {
			t.Fatalf("size %d: decode: %v", tt.size, err)
		}
		if w := img.Bounds().Dx(); w != tt.want {
			t.Errorf("size %d: width = %d, want %d", tt.size, w, tt.want)
		}
	}
}

func TestDeckCodePNGFullDeck(t *testing.T) {
	code := strings.TrimSuffix(strings.Repeat("SNG-123/", 60), "/")
	if _, err := DeckCodePNG(code, 0); err != nil {
		t.Fatalf("60-card code: %v", err)
	}
}

func TestDeckCodePNGEmpty(t *testing.T) {
	if _, err := DeckCodePNG("", 0); !errors.Is(err, ErrEmptyCode) {
		t.Fatalf("err = %v, want ErrEmptyCode", err)
	}
}

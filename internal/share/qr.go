// Package share renders a deck code for scanning on another device.
package share

import (
	"bytes"
	"errors"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	MinQRSize     = 128
	MaxQRSize     = 1024
	DefaultQRSize = 400
)

var ErrEmptyCode = errors.New("share: empty deck code")

// DeckCodePNG returns a PNG QR code holding code. size is clamped to
// [MinQRSize, MaxQRSize]; 0 selects DefaultQRSize.
func DeckCodePNG(code string, size int) ([]byte, error) {
	if code == "" {
		return nil, ErrEmptyCode
	}
	if size == 0 {
		size = DefaultQRSize
	}
	size = max(MinQRSize, min(size, MaxQRSize))

	pngBytes, err := qrcode.Encode(code, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	// validate png decode
	if _, err := png.Decode(bytes.NewReader(pngBytes)); err != nil {
		return nil, err
	}
	return pngBytes, nil
}

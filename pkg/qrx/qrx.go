// Package qrx renders redemption URLs as QR code images.
package qrx

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// DefaultSize is the edge length in pixels of rendered codes.
const DefaultSize = 256

var ErrEmptyContent = errors.New("qrx: empty content")

// RenderPNG encodes content as a square PNG QR code with medium error
// correction.
func RenderPNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qrx: encode: %w", err)
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qrx: scale: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qrx: png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL renders content and wraps it in a data: URL suitable for an <img>.
func DataURL(content string, size int) (string, error) {
	img, err := RenderPNG(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img), nil
}

package kegid

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultImageSize = 256
	MaxImageSize     = 1024
)

// RenderPNG encodes the QR payload as a square PNG label image.
func RenderPNG(qrCode string, size int) ([]byte, error) {
	if !IsValidQRCode(qrCode) {
		return nil, fmt.Errorf("invalid qr code %q", qrCode)
	}
	if size <= 0 {
		size = DefaultImageSize
	}
	if size > MaxImageSize {
		size = MaxImageSize
	}

	png, err := qrcode.Encode(qrCode, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr png: %w", err)
	}
	return png, nil
}

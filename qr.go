package bnccdoc

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// QREncoder turns a URL into an inline image.
type QREncoder interface {
	DataURI(content string) (string, error)
}

// Compile-time interface check.
var _ QREncoder = (*skipQREncoder)(nil)

// defaultQRSize is the rendered edge in pixels.
const defaultQRSize = 256

// skipQREncoder encodes PNG QR codes with github.com/skip2/go-qrcode.
type skipQREncoder struct {
	size  int
	level qrcode.RecoveryLevel
}

// NewQREncoder returns the default PNG encoder.
func NewQREncoder() QREncoder {
	return &skipQREncoder{size: defaultQRSize, level: qrcode.Medium}
}

// DataURI returns content encoded as a base64 PNG data URI.
func (e *skipQREncoder) DataURI(content string) (string, error) {
	png, err := qrcode.Encode(content, e.level, e.size)
	if err != nil {
		return "", fmt.Errorf("encoding QR code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// encodeQRSoftly never fails: errors and panics are logged and the
// document is produced without a QR code.
func encodeQRSoftly(enc QREncoder, content string, log *zap.Logger) (uri string) {
	if enc == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warn("qr encoder panicked", zap.Any("panic", r))
			uri = ""
		}
	}()
	uri, err := enc.DataURI(content)
	if err != nil {
		log.Warn("qr encoding failed", zap.String("content", content), zap.Error(err))
		return ""
	}
	return uri
}

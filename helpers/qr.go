package helpers

import (
	"strings"

	"github.com/mdp/qrterminal/v3"
	"github.com/skip2/go-qrcode"
)

// GenerateQRCode renders text as a half-block QR code for the terminal
func GenerateQRCode(text string) string {
	var sb strings.Builder
	qrterminal.GenerateHalfBlock(text, qrterminal.L, &sb)
	return sb.String()
}

// SaveQRCodePNG writes text as a PNG QR code of size×size pixels
func SaveQRCodePNG(text, path string, size int) error {
	return qrcode.WriteFile(text, qrcode.Medium, size, path)
}

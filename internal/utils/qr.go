package utils

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the pixel width/height of generated QR images.
const qrSize = 300

// CheckinURL builds the self-check-in URL encoded into a guest's QR
// code.  Scanning it lands the guest on the check-in page with their
// ticket pre-filled.
func CheckinURL(baseURL string, eventID uint64, ticketCode string) string {
	return fmt.Sprintf("%s/checkin?event=%d&code=%s", baseURL, eventID, ticketCode)
}

// GuestQRCodePNG renders the guest's check-in URL as a PNG image.
func GuestQRCodePNG(baseURL string, eventID uint64, ticketCode string) ([]byte, error) {
	return qrcode.Encode(CheckinURL(baseURL, eventID, ticketCode), qrcode.Medium, qrSize)
}

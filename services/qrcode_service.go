// services/qrcode_service.go
package services

import (
	"fmt"
	"os"

	"github.com/skip2/go-qrcode"
)

// GenerateEventQRCode creates a QR code PNG pointing at the public page of an
// event, for posters and flyers.
func GenerateEventQRCode(eventID string, size int) ([]byte, error) {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080" // Default for local testing
	}

	png, err := qrcode.Encode(fmt.Sprintf("%s/evenements#%s", siteURL, eventID), qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}

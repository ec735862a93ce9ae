package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

//
// ===========================================================
//  ENTRY PASS (QR)
// ===========================================================
//

// EntryPassType is the payload type the front-desk scanner expects.
const EntryPassType = "check-in"

// EntryPassSize is the rendered image width/height in pixels.
const EntryPassSize = 260

// EntryPassPayload is what a scanner parses back out of the QR code.
// Field order is fixed so the same booking id always serializes to the
// same bytes.
type EntryPassPayload struct {
	BookingID uint   `json:"booking_id"`
	Type      string `json:"type"`
}

// EntryPassContent returns the canonical JSON payload for a booking.
func EntryPassContent(bookingID uint) (string, error) {
	raw, err := json.Marshal(EntryPassPayload{BookingID: bookingID, Type: EntryPassType})
	if err != nil {
		return "", fmt.Errorf("failed to encode entry pass payload: %w", err)
	}
	return string(raw), nil
}

// EntryPassPNG renders the scannable image. Regeneration is cheap and
// deterministic, so nothing is ever stored.
func EntryPassPNG(bookingID uint) ([]byte, error) {
	content, err := EntryPassContent(bookingID)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(content, qrcode.Medium, EntryPassSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render entry pass: %w", err)
	}
	return png, nil
}

// EntryPassDataURI returns the image as a data URI for direct embedding
// in the confirmation email.
func EntryPassDataURI(bookingID uint) (string, error) {
	png, err := EntryPassPNG(bookingID)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// DecodeEntryPass parses a scanned payload back into its parts; this is
// the round-trip contract the check-in desk depends on.
func DecodeEntryPass(content string) (EntryPassPayload, error) {
	var p EntryPassPayload
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return p, fmt.Errorf("failed to parse entry pass payload: %w", err)
	}
	if p.Type != EntryPassType {
		return p, errors.New("unexpected entry pass type: " + p.Type)
	}
	if p.BookingID == 0 {
		return p, errors.New("entry pass missing booking id")
	}
	return p, nil
}

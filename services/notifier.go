// services/notifier.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"regalia-backend/models"
	"regalia-backend/utils"
)

const defaultBrevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// EmailResult reports the outcome of one notification attempt. The
// notifier never returns an error to its caller: a skipped or failed
// send is data attached to the confirm response, not a failure of the
// confirm itself.
type EmailResult struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Notifier submits the branded confirmation email, with the entry-pass
// QR embedded, to the Brevo transactional API.
type Notifier struct {
	APIKey      string
	SenderName  string
	SenderEmail string
	AppBaseURL  string
	Endpoint    string
	Client      *http.Client
}

// NewNotifierFromEnv wires the notifier from BREVO_* configuration.
// The client timeout caps how long a slow provider can hold a confirm
// request open.
func NewNotifierFromEnv() *Notifier {
	return &Notifier{
		APIKey:      strings.TrimSpace(utils.EnvOrDefault("BREVO_API_KEY", "")),
		SenderName:  utils.EnvOrDefault("BREVO_FROM_NAME", "Regalia"),
		SenderEmail: utils.EnvOrDefault("BREVO_FROM_EMAIL", "regalia@example.com"),
		AppBaseURL:  strings.TrimRight(utils.EnvOrDefault("APP_BASE_URL", "http://localhost:8080"), "/"),
		Endpoint:    defaultBrevoEndpoint,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type brevoSendRequest struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

// SendConfirmation builds and submits the confirmation email for a
// booking. Missing recipient or credential is a structured skip, never
// an error; provider rejections are captured as text.
func (n *Notifier) SendConfirmation(b *models.BookingDetail) EmailResult {
	toEmail := strings.TrimSpace(b.Email)
	if toEmail == "" {
		log.Printf("confirm: no guest email for booking %d – email not sent", b.ID)
		return EmailResult{Sent: false, Error: "no guest email on booking"}
	}
	if n.APIKey == "" {
		log.Printf("confirm: BREVO_API_KEY missing – email not sent to %s", toEmail)
		return EmailResult{Sent: false, Error: "email provider credential missing"}
	}

	htmlBody, err := n.buildConfirmationHTML(b)
	if err != nil {
		return EmailResult{Sent: false, Error: err.Error()}
	}

	var payload brevoSendRequest
	payload.Sender.Name = n.SenderName
	payload.Sender.Email = n.SenderEmail
	payload.To = []struct {
		Email string `json:"email"`
	}{{Email: toEmail}}
	payload.Subject = "Booking confirmed – Regalia"
	payload.HTMLContent = htmlBody

	body, err := json.Marshal(payload)
	if err != nil {
		return EmailResult{Sent: false, Error: fmt.Sprintf("failed to encode email payload: %v", err)}
	}

	endpoint := n.Endpoint
	if endpoint == "" {
		endpoint = defaultBrevoEndpoint
	}

	// One retry on transport failure only; a provider rejection is
	// final for this attempt and retryable via resend-qr.
	var resp *http.Response
	var sendErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, reqErr := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
		if reqErr != nil {
			return EmailResult{Sent: false, Error: fmt.Sprintf("failed to build email request: %v", reqErr)}
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("api-key", n.APIKey)

		resp, sendErr = n.Client.Do(req)
		if sendErr == nil {
			break
		}
		log.Printf("confirm email transport failure (attempt %d): %v", attempt+1, sendErr)
	}
	if sendErr != nil {
		return EmailResult{Sent: false, Error: fmt.Sprintf("email transport failed: %v", sendErr)}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("brevo error: %d %s", resp.StatusCode, string(respBody))
		return EmailResult{Sent: false, Error: fmt.Sprintf("provider rejected email: status %d", resp.StatusCode)}
	}

	var parsed struct {
		MessageID string `json:"messageId"`
	}
	_ = json.Unmarshal(respBody, &parsed)
	log.Printf("confirmation email sent to %s for booking %d (messageId: %s)", toEmail, b.ID, parsed.MessageID)
	return EmailResult{Sent: true, MessageID: parsed.MessageID}
}

// buildConfirmationHTML composes the email body. Every guest-supplied
// string goes through html escaping before interpolation.
func (n *Notifier) buildConfirmationHTML(b *models.BookingDetail) (string, error) {
	qrDataURI, err := utils.EntryPassDataURI(b.ID)
	if err != nil {
		return "", fmt.Errorf("failed to render entry pass: %v", err)
	}

	unitLine := ""
	if b.UnitNumber != nil {
		unitLine = *b.UnitNumber
	}
	if b.TowerName != nil && *b.TowerName != "" {
		unitLine = strings.TrimSpace(unitLine + " " + *b.TowerName)
	}

	guestName := strings.TrimSpace(b.GuestName)
	if guestName == "" {
		guestName = "Guest"
	}

	qrLink := fmt.Sprintf("%s/api/bookings/%d/qr", n.AppBaseURL, b.ID)

	return fmt.Sprintf(`<h2>Booking confirmed</h2>
<p>Hi %s,</p>
<p>Your booking has been confirmed.</p>
<ul>
  <li><strong>Reference:</strong> %s</li>
  <li><strong>Unit:</strong> %s</li>
  <li><strong>Stay:</strong> %s</li>
</ul>
<p>Use the QR code below at check-in and check-out:</p>
<p><img src="%s" alt="Booking QR Code" width="%d" height="%d" style="display:block;margin:1rem 0;" /></p>
<p>If the image does not load, open <a href="%s">your entry pass</a>.</p>
<p>Booking ID: %d</p>
<p>— %s</p>
`,
		html.EscapeString(guestName),
		utils.FormatBookingRef(b.ID),
		html.EscapeString(unitLine),
		html.EscapeString(utils.FormatStayRange(b.CheckInDate, b.CheckOutDate)),
		qrDataURI, utils.EntryPassSize, utils.EntryPassSize,
		qrLink,
		b.ID,
		html.EscapeString(n.SenderName),
	), nil
}

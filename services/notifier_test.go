package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"regalia-backend/models"
)

func testNotifier(endpoint string) *Notifier {
	return &Notifier{
		APIKey:      "test-key",
		SenderName:  "Regalia",
		SenderEmail: "regalia@example.com",
		AppBaseURL:  "https://app.example.com",
		Endpoint:    endpoint,
		Client:      &http.Client{Timeout: 2 * time.Second},
	}
}

func detailForEmail(id uint, name, email string) *models.BookingDetail {
	unit := "1204"
	tower := "North Tower"
	d := &models.BookingDetail{UnitNumber: &unit, TowerName: &tower}
	d.ID = id
	d.GuestName = name
	d.Email = email
	return d
}

func TestSendConfirmationDeliversBrevoPayload(t *testing.T) {
	var gotAPIKey string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("api-key")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<abc@smtp-relay>"}`))
	}))
	defer srv.Close()

	n := testNotifier(srv.URL)
	res := n.SendConfirmation(detailForEmail(42, "Jane Doe", "jane@example.com"))

	assert.True(t, res.Sent)
	assert.Equal(t, "<abc@smtp-relay>", res.MessageID)
	assert.Empty(t, res.Error)
	assert.Equal(t, "test-key", gotAPIKey)

	sender := gotBody["sender"].(map[string]interface{})
	assert.Equal(t, "Regalia", sender["name"])
	assert.Equal(t, "regalia@example.com", sender["email"])

	to := gotBody["to"].([]interface{})
	if assert.Len(t, to, 1) {
		assert.Equal(t, "jane@example.com", to[0].(map[string]interface{})["email"])
	}

	htmlBody := gotBody["htmlContent"].(string)
	assert.Contains(t, htmlBody, "Jane Doe")
	assert.Contains(t, htmlBody, "REG-00042")
	assert.Contains(t, htmlBody, "1204 North Tower")
	assert.Contains(t, htmlBody, "data:image/png;base64,")
	assert.Contains(t, htmlBody, "https://app.example.com/api/bookings/42/qr")
}

func TestSendConfirmationProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized"}`))
	}))
	defer srv.Close()

	n := testNotifier(srv.URL)
	res := n.SendConfirmation(detailForEmail(7, "Jane", "jane@example.com"))

	assert.False(t, res.Sent)
	assert.Equal(t, "provider rejected email: status 401", res.Error)
}

func TestSendConfirmationSkipsWithoutRecipient(t *testing.T) {
	n := testNotifier("http://127.0.0.1:1") // must never be contacted
	res := n.SendConfirmation(detailForEmail(7, "Jane", "   "))

	assert.False(t, res.Sent)
	assert.Equal(t, "no guest email on booking", res.Error)
}

func TestSendConfirmationSkipsWithoutAPIKey(t *testing.T) {
	n := testNotifier("http://127.0.0.1:1")
	n.APIKey = ""
	res := n.SendConfirmation(detailForEmail(7, "Jane", "jane@example.com"))

	assert.False(t, res.Sent)
	assert.Equal(t, "email provider credential missing", res.Error)
}

func TestSendConfirmationTransportFailure(t *testing.T) {
	n := testNotifier("http://127.0.0.1:1")
	res := n.SendConfirmation(detailForEmail(7, "Jane", "jane@example.com"))

	assert.False(t, res.Sent)
	assert.True(t, strings.HasPrefix(res.Error, "email transport failed:"), res.Error)
}

func TestConfirmationHTMLEscapesGuestInput(t *testing.T) {
	n := testNotifier("")
	d := detailForEmail(9, `<script>alert("x")</script>`, "evil@example.com")

	body, err := n.buildConfirmationHTML(d)
	assert.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestConfirmationHTMLStayRange(t *testing.T) {
	n := testNotifier("")
	d := detailForEmail(9, "Jane", "jane@example.com")
	in := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	d.CheckInDate = &in
	d.CheckOutDate = &out

	body, err := n.buildConfirmationHTML(d)
	assert.NoError(t, err)
	assert.Contains(t, body, "Jun 12 - Jun 15, 2024 (3 Nights)")

	d.CheckOutDate = nil
	body, err = n.buildConfirmationHTML(d)
	assert.NoError(t, err)
	assert.Contains(t, body, "N/A")
	assert.NotContains(t, body, "Night")
}

package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReservationConfirmation(t *testing.T) {
	subject, body, err := Render("reservation_confirmation", map[string]any{
		"name":           "Jane Doe",
		"productName":    "H1 Home Essentials",
		"solarSize":      8,
		"batterySize":    20,
		"estimatedPrice": 71000.0,
		"reservationId":  "res-123",
	})

	require.NoError(t, err)
	assert.Equal(t, "CEERION Energy - Reservation Confirmation", subject)
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "H1 Home Essentials")
	assert.Contains(t, body, "res-123")
}

func TestRenderDynamicSubjects(t *testing.T) {
	subject, _, err := Render("new_reservation_notification", map[string]any{
		"firstName": "Jane", "lastName": "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "New System Reservation - Jane Doe", subject)

	subject, _, err = Render("new_contact_notification", map[string]any{
		"name": "Jane Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Contact Form Submission - Jane Doe", subject)
}

func TestRenderNewsletterWelcome(t *testing.T) {
	_, body, err := Render("newsletter_welcome", map[string]any{
		"firstName":      "Friend",
		"interests":      []string{"residential", "ev"},
		"frequency":      "weekly",
		"unsubscribeUrl": "http://localhost:8080/api/newsletter/unsubscribe/abc",
	})

	require.NoError(t, err)
	assert.Contains(t, body, "weekly")
	assert.Contains(t, body, "residential")
	assert.Contains(t, body, "/api/newsletter/unsubscribe/abc")
}

func TestRenderEscapesHTML(t *testing.T) {
	_, body, err := Render("contact_confirmation", map[string]any{
		"name":         "J",
		"projectType":  "residential",
		"message":      "<script>alert(1)</script>",
		"submissionId": "sub-1",
	})

	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("no_such_template", nil)
	assert.Error(t, err)
}

package email

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/apexadvisory/rsvp-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(t *testing.T) EventDetails {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Johannesburg")
	require.NoError(t, err)

	return EventDetails{
		Organization: "Apex Advisory Solutions",
		Name:         "Apex Advisory Solutions Launch & Networking Event",
		ShortName:    "Apex Advisory Launch",
		Date:         "March 6, 2026 (Thursday)",
		Time:         "08:00 AM - 05:00 PM",
		Venue:        "To be announced (Durban, KwaZulu-Natal)",
		ContactEmail: "info@example.com",
		Location:     loc,
	}
}

func testSubmission() *models.RSVPSubmission {
	return &models.RSVPSubmission{
		Name:    "Siobhán",
		Surname: "O'Brien",
		Number:  "+27 82 555 0101",
		Email:   "siobhan@example.com",
		Company: "Smith & Sons <Pty>",
	}
}

func TestRenderAttendeeConfirmation(t *testing.T) {
	event := testEvent(t)
	sub := testSubmission()

	rendered, err := RenderAttendeeConfirmation(sub, event)
	require.NoError(t, err)

	assert.Equal(t, "RSVP Confirmation - Apex Advisory Launch & Networking Event", rendered.Subject)
	assert.Contains(t, rendered.HTML, "Thank You, Siobhán!")
	assert.Contains(t, rendered.HTML, "Siobhán O'Brien")
	assert.Contains(t, rendered.HTML, "siobhan@example.com")
	assert.Contains(t, rendered.HTML, "+27 82 555 0101")
	assert.Contains(t, rendered.HTML, "Smith & Sons <Pty>")
	assert.Contains(t, rendered.HTML, "March 6, 2026 (Thursday)")
	assert.Contains(t, rendered.HTML, "To be announced (Durban, KwaZulu-Natal)")
	assert.Contains(t, rendered.HTML, "mailto:info@example.com")
}

func TestRenderAdminNotice_UsesSubmittedTimestamp(t *testing.T) {
	event := testEvent(t)
	sub := testSubmission()
	sub.Timestamp = &models.Instant{Time: time.Date(2026, 2, 14, 22, 15, 30, 0, time.UTC)}
	receivedAt := time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)

	rendered, err := RenderAdminNotice(sub, event, receivedAt)
	require.NoError(t, err)

	assert.Equal(t, "New RSVP: Siobhán O'Brien - Apex Advisory Launch Event", rendered.Subject)
	assert.Contains(t, rendered.HTML, "Siobhán O'Brien")
	assert.Contains(t, rendered.HTML, "siobhan@example.com")
	assert.Contains(t, rendered.HTML, "+27 82 555 0101")
	assert.Contains(t, rendered.HTML, "Smith & Sons <Pty>")
	// SAST is UTC+2, so the date rolls over
	assert.Contains(t, rendered.HTML, "Registration Time:</span> 2026/02/15, 00:15:30")
}

func TestRenderAdminNotice_FallsBackToReceivedAt(t *testing.T) {
	event := testEvent(t)
	sub := testSubmission()
	receivedAt := time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)

	rendered, err := RenderAdminNotice(sub, event, receivedAt)
	require.NoError(t, err)

	assert.Contains(t, rendered.HTML, "2026/02/15, 11:00:00")
}

func TestFormatRegional(t *testing.T) {
	at := time.Date(2026, 3, 6, 6, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026/03/06, 06:00:00", FormatRegional(at, nil))
	assert.Equal(t, "2026/03/06, 08:00:00", FormatRegional(at, testEvent(t).Location))
}

func TestRenderAdminNotice_UnreadableTimestamp(t *testing.T) {
	event := testEvent(t)
	sub := testSubmission()
	sub.Timestamp = new(models.Instant)
	require.NoError(t, json.Unmarshal([]byte(`"yesterday"`), sub.Timestamp))

	rendered, err := RenderAdminNotice(sub, event, time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, rendered.HTML, "Registration Time:</span> Invalid Date")
}

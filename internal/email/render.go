// Package email renders the RSVP notification emails.
//
// Rendering is plain text substitution: submitted values are inserted
// verbatim, without HTML escaping.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"github.com/apexadvisory/rsvp-api/internal/models"
)

// RegionalTimeLayout matches the en-ZA locale rendering, e.g. "2026/03/06, 08:00:00"
const RegionalTimeLayout = "2006/01/02, 15:04:05"

// UnreadableTime stands in for a submitted timestamp that is not a time
const UnreadableTime = "Invalid Date"

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// EventDetails describes the event the RSVP is for
type EventDetails struct {
	Organization string
	Name         string
	ShortName    string
	Date         string
	Time         string
	Venue        string
	ContactEmail string
	Location     *time.Location // registration times are shown in this zone
}

// Rendered is a subject and HTML body ready to be handed to a mailer
type Rendered struct {
	Subject string
	HTML    string
}

type templateData struct {
	*models.RSVPSubmission
	Event            EventDetails
	RegistrationTime string
}

// RenderAttendeeConfirmation renders the email sent to the person who RSVP'd
func RenderAttendeeConfirmation(sub *models.RSVPSubmission, event EventDetails) (*Rendered, error) {
	html, err := execute("attendee_confirmation.html", templateData{RSVPSubmission: sub, Event: event})
	if err != nil {
		return nil, err
	}

	return &Rendered{
		Subject: fmt.Sprintf("RSVP Confirmation - %s & Networking Event", event.ShortName),
		HTML:    html,
	}, nil
}

// RenderAdminNotice renders the notice sent to the organisers. The
// registration time is the submitted timestamp, or receivedAt if none was
// sent. A timestamp that is not a time shows as UnreadableTime.
func RenderAdminNotice(sub *models.RSVPSubmission, event EventDetails, receivedAt time.Time) (*Rendered, error) {
	data := templateData{
		RSVPSubmission:   sub,
		Event:            event,
		RegistrationTime: registrationTime(sub, event.Location, receivedAt),
	}

	html, err := execute("admin_notice.html", data)
	if err != nil {
		return nil, err
	}

	return &Rendered{
		Subject: fmt.Sprintf("New RSVP: %s %s - %s Event", sub.Name, sub.Surname, event.ShortName),
		HTML:    html,
	}, nil
}

func registrationTime(sub *models.RSVPSubmission, loc *time.Location, receivedAt time.Time) string {
	if sub.Timestamp != nil && sub.Timestamp.Unreadable() {
		return UnreadableTime
	}
	return FormatRegional(sub.RegisteredAt(receivedAt), loc)
}

// FormatRegional converts t to loc and formats it with RegionalTimeLayout
func FormatRegional(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(RegionalTimeLayout)
}

func execute(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

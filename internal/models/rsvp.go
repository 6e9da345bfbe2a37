package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// RSVPSubmission represents one event RSVP form submission. Required
// fields are only checked for presence; their contents are opaque text.
type RSVPSubmission struct {
	Name      string   `json:"name" binding:"required"`
	Surname   string   `json:"surname" binding:"required"`
	Number    string   `json:"number" binding:"required"`
	Email     string   `json:"email" binding:"required"`
	Company   string   `json:"company" binding:"required"`
	Timestamp *Instant `json:"timestamp,omitempty"`
}

// RegisteredAt returns the submitted timestamp, or fallback when none was
// sent or it could not be read as a time
func (s *RSVPSubmission) RegisteredAt(fallback time.Time) time.Time {
	if s.Timestamp == nil || s.Timestamp.IsZero() {
		return fallback
	}
	return s.Timestamp.Time
}

// RSVPResponse is returned when an RSVP is confirmed
type RSVPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Instant is the submitted registration time. It is never validated: the
// value is kept as sent and Time is filled only when it reads as an RFC 3339
// string, a zone-less ISO date or epoch milliseconds.
type Instant struct {
	time.Time
	raw json.RawMessage
}

// Zone-less forms are read as UTC
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler. It never fails.
func (i *Instant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	i.raw = append(json.RawMessage(nil), data...)

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.Time = parseInstant(s)
		return nil
	}

	if ms, err := strconv.ParseFloat(string(data), 64); err == nil {
		i.Time = time.UnixMilli(int64(ms)).UTC()
	}
	return nil
}

func parseInstant(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Supplied reports whether a non-empty value was submitted
func (i *Instant) Supplied() bool {
	if !i.IsZero() {
		return true
	}
	return len(i.raw) > 0 && !bytes.Equal(i.raw, []byte(`""`))
}

// Unreadable reports whether a value was submitted but is not a time
func (i *Instant) Unreadable() bool {
	return i.IsZero() && i.Supplied()
}

// MarshalJSON implements json.Marshaler. A submitted value is echoed back
// unchanged; an instant built in code is encoded in ISO form.
func (i Instant) MarshalJSON() ([]byte, error) {
	if len(i.raw) > 0 {
		return i.raw, nil
	}
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
}

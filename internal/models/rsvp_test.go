package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstant_UnmarshalJSON(t *testing.T) {
	want := time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		input      string
		want       time.Time
		supplied   bool
		unreadable bool
	}{
		{name: "iso string", input: `"2026-02-14T08:30:00.000Z"`, want: want, supplied: true},
		{name: "offset string", input: `"2026-02-14T10:30:00+02:00"`, want: want, supplied: true},
		{name: "zone-less string", input: `"2026-02-14 08:30:00"`, want: want, supplied: true},
		{name: "epoch millis", input: `1771057800000`, want: want, supplied: true},
		{name: "empty string", input: `""`},
		{name: "garbage string", input: `"yesterday"`, supplied: true, unreadable: true},
		{name: "js date string", input: `"Fri Mar 06 2026 10:00:00 GMT+0200"`, supplied: true, unreadable: true},
		{name: "boolean", input: `true`, supplied: true, unreadable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Instant
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.True(t, tt.want.Equal(got.Time), "got %v want %v", got.Time, tt.want)
			assert.Equal(t, tt.supplied, got.Supplied())
			assert.Equal(t, tt.unreadable, got.Unreadable())
		})
	}
}

func TestRSVPSubmission_TimestampForwardedAsSent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "absent", body: `{"name":"Thandi"}`, want: `{"name":"Thandi","surname":"","number":"","email":"","company":""}`},
		{name: "iso string", body: `{"timestamp":"2026-02-14T08:30:00.000Z"}`, want: `"timestamp":"2026-02-14T08:30:00.000Z"`},
		{name: "epoch millis", body: `{"timestamp":1771057800000}`, want: `"timestamp":1771057800000`},
		{name: "unreadable", body: `{"timestamp":"yesterday"}`, want: `"timestamp":"yesterday"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sub RSVPSubmission
			require.NoError(t, json.Unmarshal([]byte(tt.body), &sub))

			out, err := json.Marshal(&sub)
			require.NoError(t, err)
			assert.Contains(t, string(out), tt.want)
		})
	}
}

func TestRSVPSubmission_MarshalBuiltTimestamp(t *testing.T) {
	sub := RSVPSubmission{Name: "Thandi", Surname: "Naidoo", Number: "+27 82 000 0000", Email: "thandi@example.com", Company: "Acme"}

	body, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Thandi","surname":"Naidoo","number":"+27 82 000 0000","email":"thandi@example.com","company":"Acme"}`, string(body))

	sub.Timestamp = &Instant{Time: time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC)}
	body, err = json.Marshal(sub)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"timestamp":"2026-02-14T08:30:00.000Z"`)
}

func TestRSVPSubmission_RegisteredAt(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sub := RSVPSubmission{}
	assert.Equal(t, fallback, sub.RegisteredAt(fallback))

	sub.Timestamp = &Instant{}
	assert.Equal(t, fallback, sub.RegisteredAt(fallback))

	require.NoError(t, json.Unmarshal([]byte(`"yesterday"`), sub.Timestamp))
	assert.Equal(t, fallback, sub.RegisteredAt(fallback))

	at := time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC)
	sub.Timestamp = &Instant{Time: at}
	assert.Equal(t, at, sub.RegisteredAt(fallback))
}

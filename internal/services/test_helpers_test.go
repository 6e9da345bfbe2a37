package services_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/apexadvisory/rsvp-api/internal/email"
	"github.com/apexadvisory/rsvp-api/internal/models"
	"github.com/apexadvisory/rsvp-api/internal/services"
	"github.com/apexadvisory/rsvp-api/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observeLogs routes the global logger into an in-memory sink for the test
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	previous := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = previous })
	return logs
}

func testRSVPConfig(t *testing.T) services.RSVPConfig {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Johannesburg")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	return services.RSVPConfig{
		SenderAddress:   "events@example.com",
		SenderName:      "Apex Advisory Solutions",
		AdminSenderName: "RSVP System",
		AdminEmail:      "admin@example.com",
		Event: email.EventDetails{
			Organization: "Apex Advisory Solutions",
			Name:         "Apex Advisory Solutions Launch & Networking Event",
			ShortName:    "Apex Advisory Launch",
			Date:         "March 6, 2026 (Thursday)",
			Time:         "08:00 AM - 05:00 PM",
			Venue:        "To be announced (Durban, KwaZulu-Natal)",
			ContactEmail: "info@example.com",
			Location:     loc,
		},
	}
}

func validSubmission() *models.RSVPSubmission {
	return &models.RSVPSubmission{
		Name:      "Thandi",
		Surname:   "Naidoo",
		Number:    "+27 82 555 0101",
		Email:     "thandi@example.com",
		Company:   "Acme Logistics",
		Timestamp: &models.Instant{Time: time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC)},
	}
}

var fixedNow = func() time.Time { return time.Date(2026, 2, 14, 8, 31, 0, 0, time.UTC) }

package services

import (
	"context"

	"github.com/apexadvisory/rsvp-api/internal/models"
)

// RSVPServiceInterface defines the interface for RSVP processing
type RSVPServiceInterface interface {
	SubmitRSVP(ctx context.Context, sub *models.RSVPSubmission) (*models.RSVPResponse, error)
}

// SubmissionStore is the spreadsheet-backed sink submissions are forwarded to
type SubmissionStore interface {
	AppendSubmission(ctx context.Context, row any) error
}

package services

import (
	"context"
	"time"

	"github.com/apexadvisory/rsvp-api/config"
	"github.com/apexadvisory/rsvp-api/internal/email"
	"github.com/apexadvisory/rsvp-api/internal/models"
	apperrors "github.com/apexadvisory/rsvp-api/pkg/errors"
	"github.com/apexadvisory/rsvp-api/pkg/logger"
	"github.com/apexadvisory/rsvp-api/pkg/mailer"
	"github.com/apexadvisory/rsvp-api/pkg/metrics"
	"github.com/apexadvisory/rsvp-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Pipeline step names, also used as metric and log labels
const (
	StepStorageWebhook       = "storage_webhook"
	StepAttendeeConfirmation = "attendee_confirmation"
	StepAdminNotice          = "admin_notice"
)

// ConfirmationMessage is returned to the caller once both emails are sent
const ConfirmationMessage = "RSVP confirmed successfully"

// RSVPConfig is everything the RSVP pipeline needs besides its collaborators
type RSVPConfig struct {
	SenderAddress   string
	SenderName      string
	AdminSenderName string
	AdminEmail      string // falls back to SenderAddress when empty
	Event           email.EventDetails
}

// NewRSVPConfig maps application configuration onto RSVPConfig
func NewRSVPConfig(cfg *config.Config) (RSVPConfig, error) {
	loc, err := cfg.Event.Location()
	if err != nil {
		return RSVPConfig{}, err
	}

	return RSVPConfig{
		SenderAddress:   cfg.Mail.Username,
		SenderName:      cfg.Mail.SenderName,
		AdminSenderName: cfg.Mail.AdminSenderName,
		AdminEmail:      cfg.Mail.AdminEmail,
		Event: email.EventDetails{
			Organization: cfg.Event.Organization,
			Name:         cfg.Event.Name,
			ShortName:    cfg.Event.ShortName,
			Date:         cfg.Event.Date,
			Time:         cfg.Event.Time,
			Venue:        cfg.Event.Venue,
			ContactEmail: cfg.Event.ContactEmail,
			Location:     loc,
		},
	}, nil
}

func (c RSVPConfig) adminRecipient() string {
	if c.AdminEmail != "" {
		return c.AdminEmail
	}
	return c.SenderAddress
}

// RSVPService forwards a submission to storage and sends the two
// notification emails. It holds no per-request state.
type RSVPService struct {
	cfg    RSVPConfig
	store  SubmissionStore
	sender mailer.Sender
	now    func() time.Time
}

// NewRSVPService creates a new RSVP service instance
func NewRSVPService(cfg RSVPConfig, store SubmissionStore, sender mailer.Sender) *RSVPService {
	return &RSVPService{
		cfg:    cfg,
		store:  store,
		sender: sender,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for the receipt time
func (s *RSVPService) WithClock(now func() time.Time) *RSVPService {
	clone := *s
	clone.now = now
	return &clone
}

type pipelineStep struct {
	name        string
	mustSucceed bool
	run         func(ctx context.Context) error
}

// SubmitRSVP runs the pipeline: storage write (best-effort), then the
// attendee confirmation and the admin notice (both must succeed).
//
// There is no rollback. If the admin notice fails, the attendee has
// already been told their RSVP is confirmed while the caller gets an
// error back.
//
// Cancellation of ctx is ignored once the submission is accepted; each call
// is bounded by its transport timeout instead.
func (s *RSVPService) SubmitRSVP(ctx context.Context, sub *models.RSVPSubmission) (*models.RSVPResponse, error) {
	ctx = context.WithoutCancel(ctx)

	if err := validateSubmission(sub); err != nil {
		metrics.RSVPSubmissions.WithLabelValues("invalid").Inc()
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "rsvp.submit")
	receivedAt := s.now()

	steps := []pipelineStep{
		{
			name:        StepStorageWebhook,
			mustSucceed: false,
			run: func(ctx context.Context) error {
				return s.store.AppendSubmission(ctx, sub)
			},
		},
		{
			name:        StepAttendeeConfirmation,
			mustSucceed: true,
			run: func(ctx context.Context) error {
				return s.sendAttendeeConfirmation(ctx, sub)
			},
		},
		{
			name:        StepAdminNotice,
			mustSucceed: true,
			run: func(ctx context.Context) error {
				return s.sendAdminNotice(ctx, sub, receivedAt)
			},
		},
	}

	err := runPipeline(ctx, steps)
	tracing.EndSpan(span, err)
	if err != nil {
		metrics.RSVPSubmissions.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.RSVPSubmissions.WithLabelValues("success").Inc()
	logger.Info("RSVP confirmed", append(logger.ContextFields(ctx),
		zap.String("company", sub.Company))...)

	return &models.RSVPResponse{
		Success: true,
		Message: ConfirmationMessage,
	}, nil
}

// runPipeline executes steps in order. Best-effort failures are logged and
// skipped; the first must-succeed failure stops the run.
func runPipeline(ctx context.Context, steps []pipelineStep) error {
	var delivered []string

	for _, step := range steps {
		stepCtx, span := tracing.StartSpan(ctx, "rsvp."+step.name,
			attribute.Bool("rsvp.must_succeed", step.mustSucceed))
		err := step.run(stepCtx)
		tracing.EndSpan(span, err)

		fields := append(logger.ContextFields(ctx), zap.String("step", step.name))

		if err == nil {
			metrics.RSVPStepOutcomes.WithLabelValues(step.name, "success").Inc()
			if step.mustSucceed {
				delivered = append(delivered, step.name)
			}
			continue
		}

		if !step.mustSucceed {
			metrics.RSVPStepOutcomes.WithLabelValues(step.name, "degraded").Inc()
			logger.Warn("RSVP step failed, continuing", append(fields,
				zap.Error(apperrors.DegradedWrite(err)))...)
			continue
		}

		metrics.RSVPStepOutcomes.WithLabelValues(step.name, "failed").Inc()
		fields = append(fields, zap.Error(err))
		if len(delivered) > 0 {
			// Known inconsistency: earlier emails are not recalled
			fields = append(fields, zap.Strings("already_delivered", delivered))
		}
		logger.Error("RSVP step failed, aborting", fields...)
		return apperrors.DeliveryFailure(step.name, err)
	}

	return nil
}

func (s *RSVPService) sendAttendeeConfirmation(ctx context.Context, sub *models.RSVPSubmission) error {
	rendered, err := email.RenderAttendeeConfirmation(sub, s.cfg.Event)
	if err != nil {
		return err
	}

	return s.sender.Send(ctx, &mailer.Message{
		Template:    StepAttendeeConfirmation,
		FromName:    s.cfg.SenderName,
		FromAddress: s.cfg.SenderAddress,
		To:          sub.Email,
		Subject:     rendered.Subject,
		HTMLBody:    rendered.HTML,
	})
}

func (s *RSVPService) sendAdminNotice(ctx context.Context, sub *models.RSVPSubmission, receivedAt time.Time) error {
	rendered, err := email.RenderAdminNotice(sub, s.cfg.Event, receivedAt)
	if err != nil {
		return err
	}

	return s.sender.Send(ctx, &mailer.Message{
		Template:    StepAdminNotice,
		FromName:    s.cfg.AdminSenderName,
		FromAddress: s.cfg.SenderAddress,
		To:          s.cfg.adminRecipient(),
		Subject:     rendered.Subject,
		HTMLBody:    rendered.HTML,
	})
}

func validateSubmission(sub *models.RSVPSubmission) error {
	if sub == nil {
		return apperrors.InvalidInputError("submission", "is required")
	}

	required := []struct {
		field string
		value string
	}{
		{"name", sub.Name},
		{"surname", sub.Surname},
		{"number", sub.Number},
		{"email", sub.Email},
		{"company", sub.Company},
	}
	for _, r := range required {
		if r.value == "" {
			return apperrors.InvalidInputError(r.field, "is required")
		}
	}
	return nil
}

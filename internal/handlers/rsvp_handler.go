package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/apexadvisory/rsvp-api/internal/models"
	"github.com/apexadvisory/rsvp-api/internal/services"
	apperrors "github.com/apexadvisory/rsvp-api/pkg/errors"
	"github.com/apexadvisory/rsvp-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RSVPHandler handles event RSVP submissions
type RSVPHandler struct {
	service services.RSVPServiceInterface
}

// NewRSVPHandler creates a new RSVP handler
func NewRSVPHandler(service services.RSVPServiceInterface) *RSVPHandler {
	return &RSVPHandler{service: service}
}

// Submit handles every method on /api/rsvp. Only POST submits; OPTIONS is
// acknowledged with an empty 200. Cross-origin headers come from
// middleware.CORSHeadersMiddleware.
func (h *RSVPHandler) Submit(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusOK)
		return
	case http.MethodPost:
	default:
		respondError(c, http.StatusMethodNotAllowed, "Method not allowed", apperrors.ErrMethodNotAllowed)
		return
	}

	var req models.RSVPSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	resp, err := h.service.SubmitRSVP(c.Request.Context(), &req)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "All fields are required", err)
			return
		}
		respondErrorWithDetails(c, http.StatusInternalServerError, "Failed to process RSVP", err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RSVPHandler) respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	// An empty body carries none of the required fields
	if errors.As(err, &validationErrs) || errors.Is(err, io.EOF) {
		logger.Info("RSVP rejected, missing required fields",
			append(logger.ContextFields(c.Request.Context()),
				zap.Strings("missing_fields", MissingFields(err)))...)
		respondError(c, http.StatusBadRequest, "All fields are required", err)
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
		return
	}

	respondError(c, http.StatusBadRequest, "Invalid request body", err)
}

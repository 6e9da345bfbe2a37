package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryFailure(t *testing.T) {
	cause := errors.New("535 5.7.8 Username and Password not accepted")
	err := DeliveryFailure("attendee_confirmation", cause)

	assert.Equal(t, cause.Error(), err.Error())
	assert.True(t, Is(err, ErrDeliveryFailure))
	assert.True(t, Is(err, cause))
	assert.False(t, Is(err, ErrDegradedWrite))

	var de *DeliveryError
	assert.True(t, As(err, &de))
	assert.Equal(t, "attendee_confirmation", de.Step)
}

func TestDegradedWrite(t *testing.T) {
	cause := errors.New("connection refused")
	err := DegradedWrite(cause)

	assert.True(t, Is(err, ErrDegradedWrite))
	assert.True(t, Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestInvalidInputError(t *testing.T) {
	err := InvalidInputError("email", "is required")
	assert.True(t, Is(err, ErrInvalidInput))
	assert.Equal(t, "email: is required: invalid input", err.Error())
}

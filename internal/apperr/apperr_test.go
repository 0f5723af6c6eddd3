package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskflow/internal/apperr"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(apperr.Validation("title is required")))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(apperr.NotFound("task", 7)))
	assert.Equal(t, apperr.KindTransport, apperr.KindOf(apperr.Transport(errors.New("refused"))))
	assert.Equal(t, apperr.KindTransport, apperr.KindOf(apperr.Timeout()))
	assert.Equal(t, apperr.KindServer, apperr.KindOf(apperr.Server(500, "")))
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(apperr.Auth("")))
	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(errors.New("plain")))
}

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("fetch tasks: %w", apperr.Auth(""))
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	assert.True(t, apperr.IsAuth(err))
}

func TestTransportKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Transport(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "network error", apperr.UserMessage(err))
}

func TestServerFallsBackToStatusText(t *testing.T) {
	assert.Equal(t, "server error: Internal Server Error", apperr.UserMessage(apperr.Server(500, "")))
	assert.Equal(t, "boom", apperr.UserMessage(apperr.Server(500, "boom")))
}

func TestAuthDefaultMessage(t *testing.T) {
	assert.Equal(t, "session expired or invalid", apperr.UserMessage(apperr.Auth("")))
}

func TestUserMessageForeignError(t *testing.T) {
	assert.Equal(t, "plain", apperr.UserMessage(errors.New("plain")))
}

package httpx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusErr int

func (e statusErr) Error() string       { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) HTTPStatusCode() int { return int(e) }

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsTransportStatus(t *testing.T) {
	assert.True(t, IsTransportStatus(500))
	assert.True(t, IsTransportStatus(503))
	assert.True(t, IsTransportStatus(408))
	assert.True(t, IsTransportStatus(429))
	assert.False(t, IsTransportStatus(200))
	assert.False(t, IsTransportStatus(400))
	assert.False(t, IsTransportStatus(422))
}

func TestIsTransportError(t *testing.T) {
	assert.False(t, IsTransportError(nil))
	assert.True(t, IsTransportError(context.DeadlineExceeded))
	assert.True(t, IsTransportError(context.Canceled))
	assert.True(t, IsTransportError(timeoutErr{}))
	assert.True(t, IsTransportError(fmt.Errorf("do: %w", timeoutErr{})))
	assert.True(t, IsTransportError(statusErr(503)))
	assert.False(t, IsTransportError(statusErr(400)))
	assert.False(t, IsTransportError(errors.New("something else")))
}

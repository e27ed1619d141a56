package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
}

func TestRequestIDMissing(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestMeetingIDRoundTrip(t *testing.T) {
	ctx := WithMeetingID(context.Background(), "meeting-abc")
	assert.Equal(t, "meeting-abc", MeetingIDFromContext(ctx))
}

func TestMeetingIDMissing(t *testing.T) {
	assert.Equal(t, "", MeetingIDFromContext(context.Background()))
}

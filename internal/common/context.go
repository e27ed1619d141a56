package common

import "context"

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyMeetingID contextKey = "meeting_id"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithMeetingID adds a meeting ID to the context
func WithMeetingID(ctx context.Context, meetingID string) context.Context {
	return context.WithValue(ctx, ContextKeyMeetingID, meetingID)
}

// MeetingIDFromContext extracts the meeting ID from context
func MeetingIDFromContext(ctx context.Context) string {
	if meetingID, ok := ctx.Value(ContextKeyMeetingID).(string); ok {
		return meetingID
	}
	return ""
}

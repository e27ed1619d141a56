package llm

import (
	"context"

	"github.com/google/uuid"
)

// ExtractRequest carries one transcript to the model collaborator.
type ExtractRequest struct {
	MeetingID  uuid.UUID
	Transcript string
}

// TranscriptExtractor is the model collaborator the orchestrator depends on.
// The returned bytes are the raw message content: untrusted free text that is
// expected to contain a JSON object, possibly wrapped in prose. Callers run
// it through DecodeContent + MapPayload; they must never trust it directly.
type TranscriptExtractor interface {
	ExtractFromTranscript(ctx context.Context, req ExtractRequest) ([]byte, error)
}

package entity

import (
	"github.com/google/uuid"

	"github.com/FrancoBrice/sales-metrics-sub001/constants"
)

// ExtractionResult wraps one meeting's extraction outcome for transfer
// between the orchestrator and the store. Status moves
// PENDING -> {SUCCESS, FAILED}, with FAILED -> RETRIED -> {SUCCESS, FAILED}
// on the single in-batch retry.
type ExtractionResult struct {
	ID         uuid.UUID                  `json:"id"`
	MeetingID  uuid.UUID                  `json:"meeting_id"`
	Extraction *Extraction                `json:"extraction,omitempty"`
	Status     constants.ExtractionStatus `json:"status"`
	Error      string                     `json:"error,omitempty"`

	// Retried records that the first model attempt failed, regardless of the
	// final status. Batch accounting only; not persisted as a column.
	Retried bool `json:"-"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Meeting is one sales call awaiting (or holding) an extraction.
type Meeting struct {
	ID         uuid.UUID `json:"id"`
	Transcript string    `json:"transcript"`
	CreatedAt  time.Time `json:"created_at"`
}

package constants

// ExtractionStatus is the canonical status for rows in extractions.
type ExtractionStatus string

// Stable values (store these exact strings in DB).
const (
	StatusPending ExtractionStatus = "PENDING" // extraction requested, not finished
	StatusSuccess ExtractionStatus = "SUCCESS" // terminal: extraction persisted
	StatusFailed  ExtractionStatus = "FAILED"  // terminal once retries are exhausted
	StatusRetried ExtractionStatus = "RETRIED" // first attempt failed, retry in flight
)

package core

import (
	"sync"

	"github.com/FrancoBrice/sales-metrics-sub001/constants"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/entity"
)

// Progress is the batch summary returned by ExtractAll. It is scoped to one
// batch run and never persisted. A retried-then-succeeded meeting counts in
// both Retried and Success.
type Progress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Success   int `json:"success"`
	Failed    int `json:"failed"`
	Pending   int `json:"pending"`
	Retried   int `json:"retried"`
}

// progressTracker owns the in-flight counters for one batch run. Workers
// report exactly one outcome per meeting through Record; the mutex keeps
// concurrent increments from losing updates.
type progressTracker struct {
	mu sync.Mutex
	p  Progress
}

func newProgressTracker(total int) *progressTracker {
	return &progressTracker{p: Progress{Total: total, Pending: total}}
}

func (t *progressTracker) Record(res *entity.ExtractionResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.p.Completed++
	t.p.Pending--
	if res.Retried {
		t.p.Retried++
	}
	if res.Status == constants.StatusSuccess {
		t.p.Success++
	} else {
		t.p.Failed++
	}
}

func (t *progressTracker) Summary() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.p
}

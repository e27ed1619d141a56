package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FrancoBrice/sales-metrics-sub001/constants"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/common"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/detect"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/entity"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/llm"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/repository"
)

// maxModelAttempts bounds model calls per meeting within one batch run:
// the initial call plus a single retry.
const maxModelAttempts = 2

// Orchestrator drives transcript extraction: deterministic detectors, the
// model collaborator, the merge step and idempotent persistence. One
// instance serves concurrent batch runs.
type Orchestrator struct {
	logger    *slog.Logger
	extractor llm.TranscriptExtractor
	repo      repository.ExtractionRepository
	meetings  repository.MeetingRepository

	workers               int
	callTimeout           time.Duration
	mergePolicy           MergePolicy
	minDetectorConfidence float64
}

type Option func(*Orchestrator)

func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

func WithCallTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.callTimeout = d
		}
	}
}

func WithMergePolicy(p MergePolicy) Option {
	return func(o *Orchestrator) { o.mergePolicy = p }
}

func WithMinDetectorConfidence(c float64) Option {
	return func(o *Orchestrator) {
		if c >= 0 && c <= 1 {
			o.minDetectorConfidence = c
		}
	}
}

func NewOrchestrator(logger *slog.Logger, extractor llm.TranscriptExtractor, repo repository.ExtractionRepository, meetings repository.MeetingRepository, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		logger:                logger,
		extractor:             extractor,
		repo:                  repo,
		meetings:              meetings,
		workers:               4,
		callTimeout:           60 * time.Second,
		mergePolicy:           MergeFillNulls,
		minDetectorConfidence: 0.5,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ExtractByID loads one meeting and runs extraction for it.
func (o *Orchestrator) ExtractByID(ctx context.Context, meetingID uuid.UUID) (*entity.ExtractionResult, error) {
	m, err := o.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return o.ExtractOne(ctx, m)
}

// ExtractOne runs the full pipeline for a single meeting. It always returns
// a result carrying the terminal status; the error mirrors the failure that
// produced a FAILED status, if any. Persistence is idempotent per meeting,
// so re-running a meeting overwrites its previous row.
func (o *Orchestrator) ExtractOne(ctx context.Context, m *entity.Meeting) (*entity.ExtractionResult, error) {
	ctx = common.WithMeetingID(ctx, m.ID.String())
	ctx = common.WithRequestID(ctx, uuid.New().String())

	res := &entity.ExtractionResult{
		ID:        uuid.New(),
		MeetingID: m.ID,
		Status:    constants.StatusPending,
	}

	det := detect.Detect(m.Transcript)
	if err := llm.ValidateDeterministicResult(det); err != nil {
		// detector bug, not bad input: fail the meeting loudly
		o.logger.Error("extract.detector_invariant", "meeting_id", m.ID, "error", err)
		res.Status = constants.StatusFailed
		res.Error = err.Error()
		if upErr := o.repo.UpsertResult(ctx, res); upErr != nil {
			return res, upErr
		}
		return res, err
	}

	var extraction *entity.Extraction
	var attemptErr error
	for attempt := 1; attempt <= maxModelAttempts; attempt++ {
		extraction, attemptErr = o.attemptModelExtraction(ctx, m)
		if attemptErr == nil {
			break
		}
		o.logger.Warn("extract.attempt_failed",
			"meeting_id", m.ID, "attempt", attempt, "error", attemptErr)
		if attempt == maxModelAttempts || ctx.Err() != nil {
			break
		}
		res.Retried = true
		res.Status = constants.StatusRetried
		res.Error = attemptErr.Error()
		if upErr := o.repo.UpsertResult(ctx, res); upErr != nil {
			o.logger.Warn("extract.retry_mark_failed", "meeting_id", m.ID, "error", upErr)
		}
	}

	extraction = mergeExtraction(extraction, det, o.mergePolicy, o.minDetectorConfidence)

	if attemptErr != nil {
		// detector signals are still persisted alongside the failure so a
		// later successful run only has to fill what the model owes
		res.Status = constants.StatusFailed
		res.Error = attemptErr.Error()
		res.Extraction = extraction
	} else {
		res.Status = constants.StatusSuccess
		res.Error = ""
		res.Extraction = extraction
	}

	if err := o.repo.UpsertResult(ctx, res); err != nil {
		// nothing was stored, so the result must not report success: the
		// batch counters have to agree with what FindPending will say next run
		res.Status = constants.StatusFailed
		res.Error = "persist extraction: " + err.Error()
		return res, err
	}
	o.logger.Info("extract.done", "meeting_id", m.ID, "status", res.Status, "retried", res.Retried)
	return res, attemptErr
}

func (o *Orchestrator) attemptModelExtraction(ctx context.Context, m *entity.Meeting) (*entity.Extraction, error) {
	cctx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	raw, err := o.extractor.ExtractFromTranscript(cctx, llm.ExtractRequest{
		MeetingID:  m.ID,
		Transcript: m.Transcript,
	})
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	payload, err := llm.DecodeContent(raw)
	if err != nil {
		return nil, fmt.Errorf("no usable content: %w", err)
	}
	return llm.MapPayload(payload), nil
}

// ExtractAll processes every pending meeting with a bounded worker pool.
// Cancellation stops scheduling new meetings and lets dispatched ones drain;
// the returned counters reflect only what actually finished.
func (o *Orchestrator) ExtractAll(ctx context.Context) (Progress, error) {
	meetings, err := o.repo.FindPending(ctx)
	if err != nil {
		return Progress{}, err
	}
	o.logger.Info("batch.start", "pending", len(meetings), "workers", o.workers)

	tracker := newProgressTracker(len(meetings))
	sem := make(chan struct{}, o.workers)
	var wg sync.WaitGroup

	for _, m := range meetings {
		if ctx.Err() != nil {
			wg.Wait()
			summary := tracker.Summary()
			o.logger.Warn("batch.cancelled",
				"completed", summary.Completed, "pending", summary.Pending)
			return summary, ctx.Err()
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			summary := tracker.Summary()
			o.logger.Warn("batch.cancelled",
				"completed", summary.Completed, "pending", summary.Pending)
			return summary, ctx.Err()
		}

		wg.Add(1)
		go func(m *entity.Meeting) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := o.ExtractOne(ctx, m)
			if err != nil {
				o.logger.Error("batch.meeting_failed", "meeting_id", m.ID, "error", err)
			}
			tracker.Record(res)
		}(m)
	}
	wg.Wait()

	summary := tracker.Summary()
	o.logger.Info("batch.done",
		"total", summary.Total,
		"success", summary.Success,
		"failed", summary.Failed,
		"retried", summary.Retried)
	return summary, nil
}

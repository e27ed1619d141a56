package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancoBrice/sales-metrics-sub001/constants"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/common"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/entity"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/llm"
)

// memRepo is an in-memory stand-in for both repositories, keyed by meeting
// id so upserts behave like the real one-row-per-meeting constraint.
type memRepo struct {
	mu         sync.Mutex
	meetings   []*entity.Meeting
	results    map[uuid.UUID]*entity.ExtractionResult
	failUpsert error
}

func newMemRepo() *memRepo {
	return &memRepo{results: make(map[uuid.UUID]*entity.ExtractionResult)}
}

func (r *memRepo) Insert(_ context.Context, m *entity.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meetings = append(r.meetings, m)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.meetings {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memRepo) UpsertResult(_ context.Context, res *entity.ExtractionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpsert != nil {
		return r.failUpsert
	}
	cp := *res
	if existing, ok := r.results[res.MeetingID]; ok {
		cp.ID = existing.ID
	}
	r.results[res.MeetingID] = &cp
	return nil
}

func (r *memRepo) FindPending(_ context.Context) ([]*entity.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []*entity.Meeting
	for _, m := range r.meetings {
		if res, ok := r.results[m.ID]; ok && res.Status == constants.StatusSuccess {
			continue
		}
		pending = append(pending, m)
	}
	return pending, nil
}

func (r *memRepo) GetByMeetingID(_ context.Context, meetingID uuid.UUID) (*entity.ExtractionResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.results[meetingID]; ok {
		return res, nil
	}
	return nil, common.ErrNotFound
}

func (r *memRepo) ListResults(_ context.Context) ([]*entity.ExtractionResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.ExtractionResult, 0, len(r.results))
	for _, res := range r.results {
		out = append(out, res)
	}
	return out, nil
}

const alwaysFail = -1

// scriptedExtractor fails a configured number of calls per meeting before
// serving the canned payload.
type scriptedExtractor struct {
	mu       sync.Mutex
	calls    map[uuid.UUID]int
	failures map[uuid.UUID]int
	payload  string
}

func newScriptedExtractor(payload string) *scriptedExtractor {
	return &scriptedExtractor{
		calls:    make(map[uuid.UUID]int),
		failures: make(map[uuid.UUID]int),
		payload:  payload,
	}
}

func (e *scriptedExtractor) ExtractFromTranscript(_ context.Context, req llm.ExtractRequest) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls[req.MeetingID]++
	n := e.failures[req.MeetingID]
	if n == alwaysFail || e.calls[req.MeetingID] <= n {
		return nil, errors.New("upstream unavailable")
	}
	return []byte(e.payload), nil
}

func (e *scriptedExtractor) callCount(id uuid.UUID) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[id]
}

func seed(t *testing.T, repo *memRepo, transcripts ...string) []*entity.Meeting {
	t.Helper()
	out := make([]*entity.Meeting, 0, len(transcripts))
	for _, tr := range transcripts {
		m := &entity.Meeting{ID: uuid.New(), Transcript: tr}
		require.NoError(t, repo.Insert(context.Background(), m))
		out = append(out, m)
	}
	return out
}

func TestExtractAllCountsEveryMeetingExactlyOnce(t *testing.T) {
	repo := newMemRepo()
	meetings := seed(t, repo,
		"hola, somos un spa", "tenemos una barberia", "clinica dental en santiago",
		"centro de estetica", "taller mecanico", "consultora pequena")
	extractor := newScriptedExtractor(`{"industry":"SPA"}`)
	extractor.failures[meetings[1].ID] = alwaysFail
	extractor.failures[meetings[4].ID] = alwaysFail

	o := NewOrchestrator(slog.Default(), extractor, repo, repo, WithWorkers(3))
	progress, err := o.ExtractAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, progress.Total)
	assert.Equal(t, 6, progress.Completed)
	assert.Equal(t, 4, progress.Success)
	assert.Equal(t, 2, progress.Failed)
	assert.Equal(t, 0, progress.Pending)
	assert.Equal(t, 2, progress.Retried) // each permanent failure retried once

	results, err := repo.ListResults(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 6)
	for _, m := range meetings {
		res, err := repo.GetByMeetingID(context.Background(), m.ID)
		require.NoError(t, err)
		if extractor.failures[m.ID] == alwaysFail {
			assert.Equal(t, constants.StatusFailed, res.Status)
			assert.Contains(t, res.Error, "model call failed")
			assert.Equal(t, 2, extractor.callCount(m.ID))
		} else {
			assert.Equal(t, constants.StatusSuccess, res.Status)
			assert.Empty(t, res.Error)
		}
	}
}

func TestExtractOneRetriesOnceThenSucceeds(t *testing.T) {
	repo := newMemRepo()
	meetings := seed(t, repo, "somos una clinica dental")
	extractor := newScriptedExtractor(`{"industry":"CLINICA_DENTAL"}`)
	extractor.failures[meetings[0].ID] = 1 // first call fails, retry succeeds

	o := NewOrchestrator(slog.Default(), extractor, repo, repo)
	res, err := o.ExtractOne(context.Background(), meetings[0])
	require.NoError(t, err)

	assert.Equal(t, constants.StatusSuccess, res.Status)
	assert.True(t, res.Retried)
	assert.Empty(t, res.Error)
	assert.Equal(t, 2, extractor.callCount(meetings[0].ID))
	require.NotNil(t, res.Extraction)
	assert.Equal(t, "CLINICA_DENTAL", *res.Extraction.Industry)
}

func TestExtractOneKeepsDetectorSignalsOnPermanentFailure(t *testing.T) {
	repo := newMemRepo()
	meetings := seed(t, repo,
		"usamos un sistema de citas online y recibimos 40 citas a la semana")
	extractor := newScriptedExtractor("")
	extractor.failures[meetings[0].ID] = alwaysFail

	o := NewOrchestrator(slog.Default(), extractor, repo, repo)
	res, err := o.ExtractOne(context.Background(), meetings[0])
	require.Error(t, err)

	assert.Equal(t, constants.StatusFailed, res.Status)
	assert.Contains(t, res.Error, "model call failed")

	// partial extraction from the detectors survives the model failure
	require.NotNil(t, res.Extraction)
	assert.Contains(t, res.Extraction.Integrations, constants.IntegrationSistemaCitas)
	require.NotNil(t, res.Extraction.Volume)
	require.NotNil(t, res.Extraction.Volume.Quantity)
	assert.Equal(t, 40.0, *res.Extraction.Volume.Quantity)
	require.NotNil(t, res.Extraction.Volume.Unit)
	assert.Equal(t, constants.VolumeUnitSemanal, *res.Extraction.Volume.Unit)

	stored, err := repo.GetByMeetingID(context.Background(), meetings[0].ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusFailed, stored.Status)
	require.NotNil(t, stored.Extraction)
}

func TestExtractOneNeverOverridesModelFields(t *testing.T) {
	repo := newMemRepo()
	meetings := seed(t, repo, "nos encontraron por instagram")
	extractor := newScriptedExtractor(`{"leadSource":"GOOGLE"}`)

	o := NewOrchestrator(slog.Default(), extractor, repo, repo)
	res, err := o.ExtractOne(context.Background(), meetings[0])
	require.NoError(t, err)

	require.NotNil(t, res.Extraction)
	require.NotNil(t, res.Extraction.LeadSource)
	assert.Equal(t, "GOOGLE", *res.Extraction.LeadSource)
	// the "instagram" mention still fills the empty integrations set
	assert.Contains(t, res.Extraction.Integrations, constants.IntegrationRedesSociales)
}

func TestExtractOneMergeOffLeavesModelOutputAlone(t *testing.T) {
	repo := newMemRepo()
	meetings := seed(t, repo, "nos encontraron por instagram")
	extractor := newScriptedExtractor(`{"industry":"SPA"}`)

	o := NewOrchestrator(slog.Default(), extractor, repo, repo, WithMergePolicy(MergeOff))
	res, err := o.ExtractOne(context.Background(), meetings[0])
	require.NoError(t, err)

	require.NotNil(t, res.Extraction)
	assert.Nil(t, res.Extraction.LeadSource)
	assert.Empty(t, res.Extraction.Integrations)
}

func TestExtractOneUnparseableContentFails(t *testing.T) {
	repo := newMemRepo()
	meetings := seed(t, repo, "hola")
	extractor := newScriptedExtractor("no structured output at all")

	o := NewOrchestrator(slog.Default(), extractor, repo, repo)
	res, err := o.ExtractOne(context.Background(), meetings[0])
	require.Error(t, err)
	assert.Equal(t, constants.StatusFailed, res.Status)
	assert.Contains(t, res.Error, "no usable content")
}

func TestExtractAllRerunPicksUpOnlyFailedMeetings(t *testing.T) {
	repo := newMemRepo()
	meetings := seed(t, repo, "primera reunion", "segunda reunion", "tercera reunion")
	extractor := newScriptedExtractor(`{"sentiment":"POSITIVO"}`)
	extractor.failures[meetings[2].ID] = 2 // both first-run attempts fail

	o := NewOrchestrator(slog.Default(), extractor, repo, repo, WithWorkers(2))

	first, err := o.ExtractAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, first.Total)
	assert.Equal(t, 2, first.Success)
	assert.Equal(t, 1, first.Failed)

	second, err := o.ExtractAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Total) // only the failed meeting is retried
	assert.Equal(t, 1, second.Success)
	assert.Equal(t, 0, second.Failed)

	results, err := repo.ListResults(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3) // re-running never duplicates rows
	for _, res := range results {
		assert.Equal(t, constants.StatusSuccess, res.Status)
	}
}

func TestExtractOnePersistenceFailureIsNotASuccess(t *testing.T) {
	repo := newMemRepo()
	meetings := seed(t, repo, "somos un spa")
	repo.failUpsert = errors.New("disk full")
	extractor := newScriptedExtractor(`{"industry":"SPA"}`)

	o := NewOrchestrator(slog.Default(), extractor, repo, repo)
	res, err := o.ExtractOne(context.Background(), meetings[0])
	require.Error(t, err)

	assert.Equal(t, constants.StatusFailed, res.Status)
	assert.Contains(t, res.Error, "persist extraction")
	assert.Contains(t, res.Error, "disk full")
}

func TestExtractAllCountsPersistenceFailuresAsFailed(t *testing.T) {
	repo := newMemRepo()
	seed(t, repo, "somos un spa")
	repo.failUpsert = errors.New("disk full")
	extractor := newScriptedExtractor(`{"industry":"SPA"}`)

	o := NewOrchestrator(slog.Default(), extractor, repo, repo)
	progress, err := o.ExtractAll(context.Background())
	require.NoError(t, err)

	// nothing was stored, so the summary must not claim a success
	assert.Equal(t, 1, progress.Total)
	assert.Equal(t, 0, progress.Success)
	assert.Equal(t, 1, progress.Failed)
	assert.Equal(t, 1, progress.Completed)

	results, err := repo.ListResults(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExtractAllCancelledBeforeScheduling(t *testing.T) {
	repo := newMemRepo()
	seed(t, repo, "uno", "dos", "tres")
	extractor := newScriptedExtractor(`{"industry":"SPA"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := NewOrchestrator(slog.Default(), extractor, repo, repo, WithWorkers(1))
	progress, err := o.ExtractAll(ctx)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 3, progress.Total)
	assert.Equal(t, 0, progress.Completed)
	assert.Equal(t, 3, progress.Pending)
	assert.Equal(t, progress.Total, progress.Completed+progress.Pending)
}

func TestExtractByIDUnknownMeeting(t *testing.T) {
	repo := newMemRepo()
	extractor := newScriptedExtractor(`{}`)

	o := NewOrchestrator(slog.Default(), extractor, repo, repo)
	_, err := o.ExtractByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/FrancoBrice/sales-metrics-sub001/constants"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/common"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/entity"
)

// ExtractionRepository is the persistence collaborator of the orchestrator.
// UpsertResult is idempotent per meeting: re-running extraction for the same
// meeting overwrites, never duplicates.
type ExtractionRepository interface {
	UpsertResult(ctx context.Context, res *entity.ExtractionResult) error
	FindPending(ctx context.Context) ([]*entity.Meeting, error)
	GetByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entity.ExtractionResult, error)
	ListResults(ctx context.Context) ([]*entity.ExtractionResult, error)
}

// MeetingRepository stores transcripts, mainly for seeding local batch runs.
type MeetingRepository interface {
	Insert(ctx context.Context, m *entity.Meeting) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error)
}

type sqlExtractionRepo struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

func NewExtractionRepository(db *sql.DB, dialect Dialect, logger *slog.Logger) ExtractionRepository {
	return &sqlExtractionRepo{db: db, dialect: dialect, logger: logger}
}

func (r *sqlExtractionRepo) UpsertResult(ctx context.Context, res *entity.ExtractionResult) error {
	var extractionJSON any
	if res.Extraction != nil {
		b, err := json.Marshal(res.Extraction)
		if err != nil {
			return fmt.Errorf("encode extraction: %w", err)
		}
		extractionJSON = string(b)
	}

	var errMsg any
	if res.Error != "" {
		errMsg = res.Error
	}

	query := rebind(r.dialect, `
		INSERT INTO extractions (id, meeting_id, extraction, status, error_message, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (meeting_id) DO UPDATE SET
			extraction    = excluded.extraction,
			status        = excluded.status,
			error_message = excluded.error_message,
			updated_at    = CURRENT_TIMESTAMP`)

	_, err := r.db.ExecContext(ctx, query,
		res.ID.String(), res.MeetingID.String(), extractionJSON, string(res.Status), errMsg)
	if err != nil {
		r.logger.Error("extraction upsert failed", "meeting_id", res.MeetingID, "error", err)
		return common.WrapError(err, "upsert extraction")
	}
	r.logger.Debug("extraction upserted", "meeting_id", res.MeetingID, "status", res.Status)
	return nil
}

// FindPending returns every meeting lacking a successful extraction,
// including meetings whose previous run failed.
func (r *sqlExtractionRepo) FindPending(ctx context.Context) ([]*entity.Meeting, error) {
	query := `
		SELECT m.id, m.transcript
		FROM meetings m
		LEFT JOIN extractions e ON e.meeting_id = m.id
		WHERE e.id IS NULL OR e.status <> 'SUCCESS'
		ORDER BY m.created_at, m.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("find pending meetings failed", "error", err)
		return nil, common.WrapError(err, "find pending meetings")
	}
	defer rows.Close()

	var meetings []*entity.Meeting
	for rows.Next() {
		var id, transcript string
		if err := rows.Scan(&id, &transcript); err != nil {
			return nil, common.WrapError(err, "scan meeting")
		}
		mid, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid meeting id %q: %w", id, err)
		}
		meetings = append(meetings, &entity.Meeting{ID: mid, Transcript: transcript})
	}
	return meetings, rows.Err()
}

func (r *sqlExtractionRepo) GetByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entity.ExtractionResult, error) {
	query := rebind(r.dialect, `
		SELECT id, meeting_id, extraction, status, error_message
		FROM extractions
		WHERE meeting_id = ?`)

	row := r.db.QueryRowContext(ctx, query, meetingID.String())
	res, err := scanResult(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("NOT_FOUND", "no extraction for meeting "+meetingID.String(), common.ErrNotFound)
	}
	return res, err
}

func (r *sqlExtractionRepo) ListResults(ctx context.Context) ([]*entity.ExtractionResult, error) {
	query := `
		SELECT id, meeting_id, extraction, status, error_message
		FROM extractions
		ORDER BY updated_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.WrapError(err, "list extractions")
	}
	defer rows.Close()

	var out []*entity.ExtractionResult
	for rows.Next() {
		res, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanResult(scan func(...any) error) (*entity.ExtractionResult, error) {
	var (
		id, meetingID  string
		extractionJSON sql.NullString
		status         string
		errMsg         sql.NullString
	)
	if err := scan(&id, &meetingID, &extractionJSON, &status, &errMsg); err != nil {
		return nil, err
	}

	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid extraction id %q: %w", id, err)
	}
	mid, err := uuid.Parse(meetingID)
	if err != nil {
		return nil, fmt.Errorf("invalid meeting id %q: %w", meetingID, err)
	}

	res := &entity.ExtractionResult{
		ID:        rid,
		MeetingID: mid,
		Status:    constants.ExtractionStatus(status),
		Error:     errMsg.String,
	}
	if extractionJSON.Valid {
		var ex entity.Extraction
		if err := json.Unmarshal([]byte(extractionJSON.String), &ex); err != nil {
			return nil, fmt.Errorf("decode stored extraction: %w", err)
		}
		res.Extraction = &ex
	}
	return res, nil
}

type sqlMeetingRepo struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

func NewMeetingRepository(db *sql.DB, dialect Dialect, logger *slog.Logger) MeetingRepository {
	return &sqlMeetingRepo{db: db, dialect: dialect, logger: logger}
}

func (r *sqlMeetingRepo) Insert(ctx context.Context, m *entity.Meeting) error {
	query := rebind(r.dialect, `
		INSERT INTO meetings (id, transcript, created_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)`)

	_, err := r.db.ExecContext(ctx, query, m.ID.String(), m.Transcript)
	if err != nil {
		r.logger.Error("meeting insert failed", "meeting_id", m.ID, "error", err)
		return common.WrapError(err, "insert meeting")
	}
	return nil
}

func (r *sqlMeetingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	query := rebind(r.dialect, `SELECT id, transcript FROM meetings WHERE id = ?`)

	var rawID, transcript string
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&rawID, &transcript)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("NOT_FOUND", "no meeting "+id.String(), common.ErrNotFound)
	}
	if err != nil {
		return nil, common.WrapError(err, "get meeting")
	}
	mid, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid meeting id %q: %w", rawID, err)
	}
	return &entity.Meeting{ID: mid, Transcript: transcript}, nil
}

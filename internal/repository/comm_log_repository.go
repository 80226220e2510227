package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"smilescript/backend/internal/model"
	"smilescript/backend/internal/snowflake"
)

// ListOrder controls the ordering of CommLogRepository.List.
type ListOrder string

const (
	OrderCreatedAsc  ListOrder = "created_asc"
	OrderCreatedDesc ListOrder = "created_desc"
)

type CommLogRepository interface {
	Create(ctx context.Context, transcript, summary, summarySource string) (model.CommLog, error)
	GetByID(ctx context.Context, id int64) (model.CommLog, error)
	// UpdateSummary overwrites summary, summary_source and updated_at in a
	// single statement. Transcript and created_at are never touched.
	// Returns sql.ErrNoRows when the id does not exist.
	UpdateSummary(ctx context.Context, id int64, summary, summarySource string) (model.CommLog, error)
	// List returns all logs ordered by created_at with id as tie-breaker,
	// so repeated calls without intervening writes are deterministic.
	List(ctx context.Context, order ListOrder) ([]model.CommLog, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

type commLogRepository struct {
	db dbtx
}

func NewCommLogRepository(db dbtx) CommLogRepository {
	return &commLogRepository{db: db}
}

func (r *commLogRepository) Create(ctx context.Context, transcript, summary, summarySource string) (model.CommLog, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO comm_logs (id, transcript, summary, summary_source, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		transcript,
		summary,
		summarySource,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return model.CommLog{}, fmt.Errorf("create comm log: %w", err)
	}

	return model.CommLog{
		ID:            id,
		Transcript:    transcript,
		Summary:       summary,
		SummarySource: summarySource,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (r *commLogRepository) GetByID(ctx context.Context, id int64) (model.CommLog, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, transcript, summary, summary_source, created_at, updated_at
		 FROM comm_logs WHERE id = ?`,
		id,
	)
	return scanCommLog(row)
}

func (r *commLogRepository) UpdateSummary(ctx context.Context, id int64, summary, summarySource string) (model.CommLog, error) {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(
		ctx,
		`UPDATE comm_logs SET summary = ?, summary_source = ?, updated_at = ? WHERE id = ?`,
		summary,
		summarySource,
		formatTime(now),
		id,
	)
	if err != nil {
		return model.CommLog{}, fmt.Errorf("update summary: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.CommLog{}, fmt.Errorf("update summary rows affected: %w", err)
	}
	if affected == 0 {
		return model.CommLog{}, sql.ErrNoRows
	}

	return r.GetByID(ctx, id)
}

func (r *commLogRepository) List(ctx context.Context, order ListOrder) ([]model.CommLog, error) {
	direction := "ASC"
	if order == OrderCreatedDesc {
		direction = "DESC"
	}

	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, transcript, summary, summary_source, created_at, updated_at
		 FROM comm_logs ORDER BY created_at `+direction+`, id `+direction,
	)
	if err != nil {
		return nil, fmt.Errorf("list comm logs: %w", err)
	}
	defer rows.Close()

	var logs []model.CommLog
	for rows.Next() {
		log, err := scanCommLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comm logs: %w", err)
	}
	return logs, nil
}

func (r *commLogRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM comm_logs ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list comm log ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan comm log id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comm log ids: %w", err)
	}
	return ids, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCommLog(row scanner) (model.CommLog, error) {
	var log model.CommLog
	var createdAt, updatedAt string

	err := row.Scan(&log.ID, &log.Transcript, &log.Summary, &log.SummarySource, &createdAt, &updatedAt)
	if err != nil {
		return model.CommLog{}, err
	}

	log.CreatedAt, _ = parseTime(createdAt)
	log.UpdatedAt, _ = parseTime(updatedAt)
	return log, nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"smilescript/backend/internal/logger"
	"smilescript/backend/internal/model"
	"smilescript/backend/internal/repository"
)

// rerunConcurrency bounds parallel provider calls during a batch rerun.
const rerunConcurrency = 3

// RerunAllResult reports the outcome of a batch rerun.
type RerunAllResult struct {
	Processed int
	Failed    int
}

type CommLogService interface {
	// Submit validates, summarizes and persists a new transcript.
	// Returns ErrInvalid for empty or whitespace-only transcripts; nothing
	// is summarized or persisted in that case.
	Submit(ctx context.Context, transcript string) (model.CommLog, error)
	// Rerun regenerates the summary of an existing log from its stored
	// transcript, never from caller input. Returns ErrNotFound for unknown ids.
	Rerun(ctx context.Context, id int64) (model.CommLog, error)
	// RerunAll regenerates every stored summary with bounded concurrency.
	RerunAll(ctx context.Context) (RerunAllResult, error)
	Get(ctx context.Context, id int64) (model.CommLog, error)
	List(ctx context.Context, order repository.ListOrder) ([]model.CommLog, error)
}

type commLogService struct {
	logs       repository.CommLogRepository
	summarizer Summarizer
}

func NewCommLogService(logs repository.CommLogRepository, summarizer Summarizer) CommLogService {
	return &commLogService{logs: logs, summarizer: summarizer}
}

func (s *commLogService) Submit(ctx context.Context, transcript string) (model.CommLog, error) {
	if strings.TrimSpace(transcript) == "" {
		return model.CommLog{}, ErrInvalid
	}

	summary, source := s.summarizer.Summarize(ctx, transcript)

	log, err := s.logs.Create(ctx, transcript, summary, string(source))
	if err != nil {
		return model.CommLog{}, fmt.Errorf("persist comm log: %w", err)
	}

	logger.Info("comm log created",
		"module", "service", "action", "create", "resource", "comm_log", "result", "ok",
		"id", log.ID, "source", source)
	return log, nil
}

func (s *commLogService) Rerun(ctx context.Context, id int64) (model.CommLog, error) {
	existing, err := s.logs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CommLog{}, ErrNotFound
		}
		return model.CommLog{}, fmt.Errorf("get comm log: %w", err)
	}

	summary, source := s.summarizer.Summarize(ctx, existing.Transcript)

	updated, err := s.logs.UpdateSummary(ctx, id, summary, string(source))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CommLog{}, ErrNotFound
		}
		return model.CommLog{}, fmt.Errorf("update summary: %w", err)
	}

	logger.Info("comm log summary regenerated",
		"module", "service", "action", "update", "resource", "comm_log", "result", "ok",
		"id", id, "source", source)
	return updated, nil
}

func (s *commLogService) RerunAll(ctx context.Context) (RerunAllResult, error) {
	ids, err := s.logs.ListIDs(ctx)
	if err != nil {
		return RerunAllResult{}, fmt.Errorf("list comm log ids: %w", err)
	}

	var result RerunAllResult
	failed := make(chan int64, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rerunConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			if _, err := s.Rerun(gctx, id); err != nil {
				// A log deleted mid-batch or a store hiccup should not
				// abort the remaining reruns.
				logger.Warn("batch rerun entry failed",
					"module", "service", "action", "update", "resource", "comm_log", "result", "failed",
					"id", id, "error", err)
				failed <- id
			}
			return nil
		})
	}
	_ = g.Wait()
	close(failed)

	result.Processed = len(ids)
	for range failed {
		result.Failed++
	}

	logger.Info("batch rerun finished",
		"module", "service", "action", "update", "resource", "comm_log", "result", "ok",
		"processed", result.Processed, "failed", result.Failed)
	return result, nil
}

func (s *commLogService) Get(ctx context.Context, id int64) (model.CommLog, error) {
	log, err := s.logs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CommLog{}, ErrNotFound
		}
		return model.CommLog{}, fmt.Errorf("get comm log: %w", err)
	}
	return log, nil
}

func (s *commLogService) List(ctx context.Context, order repository.ListOrder) ([]model.CommLog, error) {
	return s.logs.List(ctx, order)
}

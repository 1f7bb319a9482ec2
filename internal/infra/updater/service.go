package updater

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"deadline-digest/internal/infra/source"
	"deadline-digest/internal/observability/metrics"
)

// Service orchestrates one update run: fetch, validate, persist, one
// source at a time. Each source succeeds or fails independently.
type Service struct {
	cfg    Config
	client *Client
	store  *Store
	logger *slog.Logger
}

// NewService creates an update service.
func NewService(cfg Config, logger *slog.Logger) (*Service, error) {
	store, err := NewStore(cfg.DataDir, logger)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:    cfg,
		client: NewClient(cfg, logger),
		store:  store,
		logger: logger,
	}, nil
}

// UpdateSecurity refreshes the security conference file from its single
// upstream URL. Returns nil when the file was replaced; on any failure the
// existing file is kept and the error describes the first failing step.
func (s *Service) UpdateSecurity(ctx context.Context) error {
	fileName := source.SecurityFileName

	data, err := s.client.Fetch(ctx, "security", s.cfg.SecurityURL)
	if err != nil {
		metrics.RecordDataFileUpdate(fileName, false)
		return fmt.Errorf("update %s: %w", fileName, err)
	}

	warnings, err := ValidateConferenceList(data)
	if err != nil {
		metrics.RecordDataFileUpdate(fileName, false)
		return fmt.Errorf("update %s: validation: %w", fileName, err)
	}
	for _, w := range warnings {
		s.logger.Warn("validation warning",
			slog.String("file", fileName),
			slog.String("warning", w))
	}

	if err := s.store.Save(fileName, data); err != nil {
		metrics.RecordDataFileUpdate(fileName, false)
		return fmt.Errorf("update %s: %w", fileName, err)
	}

	metrics.RecordDataFileUpdate(fileName, true)
	return nil
}

// UpdateAI refreshes the AI conference file by fetching every catalog entry
// and consolidating the results into one list. Individual conference fetch
// failures are logged and skipped; the update only fails when nothing
// usable was fetched, validation rejects the consolidated list, or the
// save fails.
func (s *Service) UpdateAI(ctx context.Context) error {
	fileName := source.AIFileName
	names := AIConferenceNames()

	s.logger.Info("fetching AI conference catalog",
		slog.Int("conferences", len(names)))

	payloads := make([][]byte, len(names))
	var mu sync.Mutex
	var failed []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxParallel)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			url := fmt.Sprintf("%s/%s.yml", s.cfg.AIBaseURL, name)
			data, err := s.client.Fetch(gctx, "ai", url)
			if err != nil {
				mu.Lock()
				failed = append(failed, name)
				mu.Unlock()
				s.logger.Debug("conference fetch failed",
					slog.String("conference", name),
					slog.Any("error", err))
				return nil // One missing conference never aborts the run
			}
			payloads[i] = data
			return nil
		})
	}

	// Only context cancellation can surface here
	if err := g.Wait(); err != nil {
		metrics.RecordDataFileUpdate(fileName, false)
		return fmt.Errorf("update %s: %w", fileName, err)
	}

	if len(failed) > 0 {
		s.logger.Warn("some conferences could not be fetched",
			slog.Int("failed", len(failed)),
			slog.Any("conferences", failed))
	}

	fetched := payloads[:0:0]
	for _, p := range payloads {
		if p != nil {
			fetched = append(fetched, p)
		}
	}

	consolidated, count, err := ConsolidateAI(fetched)
	if err != nil {
		metrics.RecordDataFileUpdate(fileName, false)
		return fmt.Errorf("update %s: %w", fileName, err)
	}

	warnings, err := ValidateConferenceList(consolidated)
	if err != nil {
		metrics.RecordDataFileUpdate(fileName, false)
		return fmt.Errorf("update %s: validation: %w", fileName, err)
	}
	for _, w := range warnings {
		s.logger.Warn("validation warning",
			slog.String("file", fileName),
			slog.String("warning", w))
	}

	if err := s.store.Save(fileName, consolidated); err != nil {
		metrics.RecordDataFileUpdate(fileName, false)
		return fmt.Errorf("update %s: %w", fileName, err)
	}

	metrics.RecordDataFileUpdate(fileName, true)
	s.logger.Info("AI conference file updated",
		slog.Int("records", count),
		slog.Int("fetched", len(fetched)),
		slog.Int("failed", len(failed)))
	return nil
}

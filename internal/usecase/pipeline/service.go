package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
)

const defaultWorkers = 8

// Validator checks payout invariants
type Validator interface {
	ValidatePayoutEvent(ctx context.Context, event domain.PayoutEvent) error
}

// Enricher attaches FX data to a payout; it never fails
type Enricher interface {
	EnrichWithFxData(ctx context.Context, event domain.PayoutEvent) domain.PayoutEvent
}

// BatchResult is the outcome for one payout in a batch, at the same index as its input
type BatchResult struct {
	Event domain.PayoutEvent
	Err   error
}

// PipelineService runs payouts through validation and then enrichment
type PipelineService struct {
	Validator Validator
	Enricher  Enricher
	workers   int
}

// NewPipelineService creates a new PipelineService; workers bounds batch concurrency
func NewPipelineService(validator Validator, enricher Enricher, workers int) *PipelineService {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &PipelineService{
		Validator: validator,
		Enricher:  enricher,
		workers:   workers,
	}
}

// Process validates event and, if valid, returns its enriched copy.
// A validation error stops processing and is returned unchanged.
func (s *PipelineService) Process(ctx context.Context, event domain.PayoutEvent) (domain.PayoutEvent, error) {
	if err := s.Validator.ValidatePayoutEvent(ctx, event); err != nil {
		return event, err
	}
	return s.Enricher.EnrichWithFxData(ctx, event), nil
}

// ProcessBatch processes events concurrently. Each event is independent:
// a failing record never affects another, and results keep input order.
func (s *PipelineService) ProcessBatch(ctx context.Context, events []domain.PayoutEvent) []BatchResult {
	results := make([]BatchResult, len(events))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, event := range events {
		i, event := i, event
		g.Go(func() error {
			enriched, err := s.Process(gctx, event)
			results[i] = BatchResult{Event: enriched, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

package triage

import (
	"context"

	"fraud-investigation-system/internal/domain/feedback"
	"fraud-investigation-system/internal/infrastructure/cache/redis"
)

// SubmitDecisionUseCase records one investigator decision
type SubmitDecisionUseCase struct {
	feedbackService *feedback.Service
	statsCache      *redis.StatsCache
}

// NewSubmitDecisionUseCase creates the use case. statsCache may be nil.
func NewSubmitDecisionUseCase(feedbackService *feedback.Service, statsCache *redis.StatsCache) *SubmitDecisionUseCase {
	return &SubmitDecisionUseCase{
		feedbackService: feedbackService,
		statsCache:      statsCache,
	}
}

// Execute validates and appends the decision, then invalidates the cached
// dashboard stats so the queue header reflects it immediately.
func (uc *SubmitDecisionUseCase) Execute(ctx context.Context, in feedback.AppendDecisionInput) (feedback.Record, error) {
	rec, err := uc.feedbackService.AppendDecision(ctx, in)
	if err != nil {
		return feedback.Record{}, err
	}
	decisionsRecorded.WithLabelValues(string(rec.Decision)).Inc()
	if uc.statsCache != nil {
		uc.statsCache.Invalidate(ctx)
	}
	return rec, nil
}

// CapturePatternUseCase attaches a knowledge pattern to a closed case
type CapturePatternUseCase struct {
	feedbackService *feedback.Service
}

// NewCapturePatternUseCase creates the use case
func NewCapturePatternUseCase(feedbackService *feedback.Service) *CapturePatternUseCase {
	return &CapturePatternUseCase{feedbackService: feedbackService}
}

// Execute attaches the pattern to the account's latest decision, creating a
// pattern-only record when the account has none.
func (uc *CapturePatternUseCase) Execute(ctx context.Context, accountID string, pattern feedback.KnowledgePattern) error {
	if err := uc.feedbackService.AttachKnowledgePattern(ctx, accountID, pattern); err != nil {
		return err
	}
	patternsCaptured.Inc()
	return nil
}

// StatsUseCase serves the queue-header aggregates, preferring the Redis cache
// when one is wired.
type StatsUseCase struct {
	feedbackService *feedback.Service
	statsCache      *redis.StatsCache
}

// NewStatsUseCase creates the use case. statsCache may be nil.
func NewStatsUseCase(feedbackService *feedback.Service, statsCache *redis.StatsCache) *StatsUseCase {
	return &StatsUseCase{feedbackService: feedbackService, statsCache: statsCache}
}

// Execute returns the dashboard aggregates
func (uc *StatsUseCase) Execute(ctx context.Context) redis.DashboardStats {
	if uc.statsCache != nil {
		if stats, ok := uc.statsCache.Get(ctx); ok {
			return stats
		}
	}
	stats := redis.DashboardStats{
		TotalDecisions:          len(uc.feedbackService.GetDecisions(ctx, "")),
		ConfirmedFraudCount:     uc.feedbackService.GetConfirmedFraudCount(ctx),
		HasFalsePositiveHistory: uc.feedbackService.HasFalsePositiveHistory(ctx),
	}
	if uc.statsCache != nil {
		uc.statsCache.Put(ctx, stats)
	}
	return stats
}

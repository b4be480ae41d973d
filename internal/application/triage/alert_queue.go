package triage

import (
	"context"
	"sort"

	"fraud-investigation-system/internal/domain/alert"
	"fraud-investigation-system/internal/domain/feedback"
	"fraud-investigation-system/internal/domain/priority"
)

// SortMode selects how the open-alert queue is ordered
type SortMode string

const (
	SortModeRisk            SortMode = "risk"
	SortModeAnomaly         SortMode = "anomaly"
	SortModeOutcomeInformed SortMode = "outcome"
)

// QueuedAlert is one queue entry with its outcome-adjusted priority attached
// for audit display.
type QueuedAlert struct {
	alert.Snapshot
	Priority priority.Adjustment `json:"priority"`
}

// AlertQueue partitions the queue by current case status (latest decision per
// account).
type AlertQueue struct {
	Alerts         []QueuedAlert `json:"alerts"`
	VerifiedFraud  []QueuedAlert `json:"verified_fraud"`
	Legit          []QueuedAlert `json:"legit"`
	FalsePositives []QueuedAlert `json:"false_positives"`
}

// AlertSource produces the scored alert snapshots to triage
type AlertSource interface {
	Load(ctx context.Context, limit int) []alert.Snapshot
}

// AlertQueueUseCase builds the investigator queue: loads alerts, partitions
// them by case status, sorts each partition by the requested mode, and
// attaches the outcome-adjusted priority to every entry.
type AlertQueueUseCase struct {
	source          AlertSource
	feedbackService *feedback.Service
	engine          *priority.Engine
	queueLimit      int
}

// NewAlertQueueUseCase creates the use case
func NewAlertQueueUseCase(source AlertSource, feedbackService *feedback.Service, engine *priority.Engine, queueLimit int) *AlertQueueUseCase {
	return &AlertQueueUseCase{
		source:          source,
		feedbackService: feedbackService,
		engine:          engine,
		queueLimit:      queueLimit,
	}
}

// Execute returns the partitioned, sorted queue
func (uc *AlertQueueUseCase) Execute(ctx context.Context, mode SortMode) AlertQueue {
	snapshots := uc.source.Load(ctx, uc.queueLimit)

	var open, verified, legit, falsePositive []alert.Snapshot
	for _, snap := range snapshots {
		latest, ok := uc.feedbackService.GetLatestDecision(ctx, snap.AccountID)
		if !ok {
			open = append(open, snap)
			continue
		}
		switch latest.Decision {
		case feedback.DecisionConfirmedFraud:
			verified = append(verified, snap)
		case feedback.DecisionMarkedLegit:
			legit = append(legit, snap)
		case feedback.DecisionFalsePositive:
			falsePositive = append(falsePositive, snap)
		default:
			open = append(open, snap)
		}
	}

	queue := AlertQueue{}
	queue.Alerts = uc.rank(ctx, open, mode)
	queue.VerifiedFraud = uc.rank(ctx, verified, mode)
	queue.Legit = uc.rank(ctx, legit, mode)
	queue.FalsePositives = uc.rank(ctx, falsePositive, mode)
	return queue
}

// ComputePriority returns the outcome-adjusted priority for a single snapshot
func (uc *AlertQueueUseCase) ComputePriority(ctx context.Context, snap alert.Snapshot) priority.Adjustment {
	priorityComputations.Inc()
	return uc.engine.Compute(ctx, snap)
}

func (uc *AlertQueueUseCase) rank(ctx context.Context, snapshots []alert.Snapshot, mode SortMode) []QueuedAlert {
	switch mode {
	case SortModeOutcomeInformed:
		priority.SortOutcomeInformed(ctx, snapshots, uc.feedbackService)
	case SortModeAnomaly:
		sortByAnomaly(snapshots)
	default:
		priority.SortByRisk(snapshots, priority.OrderHighFirst, priority.OrderHighFirst)
	}

	return uc.attach(ctx, snapshots)
}

func sortByAnomaly(snapshots []alert.Snapshot) {
	sort.SliceStable(snapshots, func(i, j int) bool {
		if snapshots[i].AnomalyScore != snapshots[j].AnomalyScore {
			return snapshots[i].AnomalyScore > snapshots[j].AnomalyScore
		}
		return snapshots[i].FraudProbability > snapshots[j].FraudProbability
	})
}

func (uc *AlertQueueUseCase) attach(ctx context.Context, snapshots []alert.Snapshot) []QueuedAlert {
	queued := make([]QueuedAlert, 0, len(snapshots))
	for _, snap := range snapshots {
		priorityComputations.Inc()
		queued = append(queued, QueuedAlert{
			Snapshot: snap,
			Priority: uc.engine.Compute(ctx, snap),
		})
	}
	return queued
}

package redis

import (
	"context"
	"encoding/json"
	"time"
)

const statsKey = "feedback:dashboard_stats"

// DashboardStats are the feedback aggregates shown in the queue header
type DashboardStats struct {
	TotalDecisions          int  `json:"total_decisions"`
	ConfirmedFraudCount     int  `json:"confirmed_fraud_count"`
	HasFalsePositiveHistory bool `json:"has_false_positive_history"`
}

// StatsCache keeps dashboard aggregates out of the hot path so the queue
// header does not rescan the decision log on every render. Entries expire on
// a short TTL and are invalidated on every new decision.
type StatsCache struct {
	client *Client
	ttl    time.Duration
}

// NewStatsCache creates a stats cache with the given TTL
func NewStatsCache(client *Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached stats, or false on miss or any Redis failure.
// Cache failures are never surfaced; callers recompute from the store.
func (c *StatsCache) Get(ctx context.Context) (DashboardStats, bool) {
	raw, err := c.client.Get(ctx, statsKey)
	if err != nil {
		return DashboardStats{}, false
	}
	var stats DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return DashboardStats{}, false
	}
	return stats, true
}

// Put stores the stats with the configured TTL; best effort
func (c *StatsCache) Put(ctx context.Context, stats DashboardStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, statsKey, data, c.ttl)
}

// Invalidate drops the cached stats after a new decision is recorded
func (c *StatsCache) Invalidate(ctx context.Context) {
	_ = c.client.Del(ctx, statsKey)
}

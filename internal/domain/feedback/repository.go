package feedback

import "context"

// Store is the durable, append-only decision log. Implementations must
// preserve total insertion order on reads, never reorder or delete records,
// and keep AttachPattern limited to the most recently appended record for the
// account. The JSON-file and Postgres backends both honor this contract.
type Store interface {
	// Append persists one record synchronously (write-through, no buffering).
	Append(ctx context.Context, rec Record) error

	// All returns every record in insertion order. Backends surface read
	// failures as errors; the service layer treats any read failure as an
	// empty corpus by policy, so the feedback loop never blocks the caller.
	All(ctx context.Context) ([]Record, error)

	// AttachPattern sets the knowledge pattern on the most recently appended
	// record for the account. Returns ErrNoDecisionForAccount when the account
	// has no records.
	AttachPattern(ctx context.Context, accountID string, pattern KnowledgePattern) error
}

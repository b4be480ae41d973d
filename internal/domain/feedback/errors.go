package feedback

import "errors"

var (
	ErrInvalidDecision      = errors.New("invalid decision kind")
	ErrReasonRequired       = errors.New("false positive decisions require a non-empty reason")
	ErrAccountIDRequired    = errors.New("account id is required")
	ErrNoDecisionForAccount = errors.New("no decision recorded for account")
)

package config

import (
	"errors"

	"fraud-investigation-system/internal/domain/feedback"
	"fraud-investigation-system/internal/domain/priority"
)

// Validate validates the configuration. The similarity and priority values
// are configuration constants, not tunables: changing them would break score
// comparability with past audit records, so any deviation is rejected here.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	if c.Feedback.FilePath == "" && !c.Database.Enabled {
		return errors.New("feedback file_path is required when the database is disabled")
	}

	if c.Feedback.SimilarityThreshold != feedback.SimilarityThreshold {
		return errors.New("similarity_threshold is a fixed audit constant and cannot be changed")
	}
	if c.Feedback.BoostPerConfirmed != priority.BoostPerConfirmed ||
		c.Feedback.ReductionPerFP != priority.ReductionPerFP {
		return errors.New("priority boost/reduction are fixed audit constants and cannot be changed")
	}
	if c.Feedback.CapConfirmed != priority.CapConfirmed ||
		c.Feedback.CapFP != priority.CapFP ||
		c.Feedback.FalsePositiveThreshold != priority.FalsePositiveThreshold {
		return errors.New("priority caps and false-positive threshold are fixed audit constants and cannot be changed")
	}

	if c.Alerts.QueueLimit <= 0 {
		return errors.New("alerts queue_limit must be positive")
	}

	return nil
}

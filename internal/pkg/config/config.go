package config

import "time"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Feedback FeedbackConfig `mapstructure:"feedback"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
	ML       MLConfig       `mapstructure:"ml"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL configuration. When Enabled is false or the
// connection fails at startup, the service runs on the JSON-file feedback log
// instead.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds Redis configuration for the optional stats cache
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	StatsTTL     time.Duration `mapstructure:"stats_ttl"`
}

// FeedbackConfig holds the feedback store settings. The similarity threshold
// and priority constants are audited policy values; Validate rejects any
// deviation from them so scores stay comparable across deployments.
type FeedbackConfig struct {
	FilePath               string  `mapstructure:"file_path"`
	InvestigatorID         string  `mapstructure:"investigator_id"`
	SimilarityThreshold    float64 `mapstructure:"similarity_threshold"`
	BoostPerConfirmed      float64 `mapstructure:"boost_per_confirmed"`
	ReductionPerFP         float64 `mapstructure:"reduction_per_fp"`
	CapConfirmed           int     `mapstructure:"cap_confirmed"`
	CapFP                  int     `mapstructure:"cap_fp"`
	FalsePositiveThreshold int     `mapstructure:"false_positive_threshold"`
}

// AlertsConfig holds the alert source configuration
type AlertsConfig struct {
	CSVPath          string `mapstructure:"csv_path"`
	QueueLimit       int    `mapstructure:"queue_limit"`
	TrainingDataPath string `mapstructure:"training_data_path"`
}

// MLConfig holds model provenance configuration. The model version is audit
// metadata stamped on every decision record; nothing in this service loads a
// model.
type MLConfig struct {
	ModelVersion string `mapstructure:"model_version"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Enabled:         false,
			Host:            "localhost",
			Port:            5432,
			User:            "fraud_user",
			Password:        "",
			Name:            "fraud_investigation",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Enabled:      false,
			Host:         "localhost",
			Port:         6379,
			Password:     "",
			DB:           0,
			PoolSize:     10,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			StatsTTL:     30 * time.Second,
		},
		Feedback: FeedbackConfig{
			FilePath:               "./data/investigator_feedback.json",
			InvestigatorID:         "demo",
			SimilarityThreshold:    0.7,
			BoostPerConfirmed:      0.05,
			ReductionPerFP:         0.05,
			CapConfirmed:           5,
			CapFP:                  5,
			FalsePositiveThreshold: 2,
		},
		Alerts: AlertsConfig{
			CSVPath:          "./data/anomaly_scores.csv",
			QueueLimit:       50,
			TrainingDataPath: "./data/feedback_training_data.csv",
		},
		ML: MLConfig{
			ModelVersion: "v0.3",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

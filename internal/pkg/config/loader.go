package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()

	// Set defaults from DefaultConfig
	setDefaults(v, cfg)

	// Read from config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Config file not found is ok - we use defaults and env vars
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// Read from environment variables
	v.SetEnvPrefix("FRAUD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy variable names kept for compatibility with the scoring pipeline
	_ = v.BindEnv("ml.model_version", "FRAUD_MODEL_VERSION")
	_ = v.BindEnv("feedback.investigator_id", "INVESTIGATOR_ID")

	// Unmarshal into config struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	// Server defaults
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)

	// Database defaults
	v.SetDefault("database.enabled", cfg.Database.Enabled)
	v.SetDefault("database.host", cfg.Database.Host)
	v.SetDefault("database.port", cfg.Database.Port)
	v.SetDefault("database.user", cfg.Database.User)
	v.SetDefault("database.name", cfg.Database.Name)
	v.SetDefault("database.ssl_mode", cfg.Database.SSLMode)

	// Redis defaults
	v.SetDefault("redis.enabled", cfg.Redis.Enabled)
	v.SetDefault("redis.host", cfg.Redis.Host)
	v.SetDefault("redis.port", cfg.Redis.Port)
	v.SetDefault("redis.db", cfg.Redis.DB)
	v.SetDefault("redis.pool_size", cfg.Redis.PoolSize)
	v.SetDefault("redis.stats_ttl", cfg.Redis.StatsTTL)

	// Feedback defaults
	v.SetDefault("feedback.file_path", cfg.Feedback.FilePath)
	v.SetDefault("feedback.investigator_id", cfg.Feedback.InvestigatorID)
	v.SetDefault("feedback.similarity_threshold", cfg.Feedback.SimilarityThreshold)
	v.SetDefault("feedback.boost_per_confirmed", cfg.Feedback.BoostPerConfirmed)
	v.SetDefault("feedback.reduction_per_fp", cfg.Feedback.ReductionPerFP)
	v.SetDefault("feedback.cap_confirmed", cfg.Feedback.CapConfirmed)
	v.SetDefault("feedback.cap_fp", cfg.Feedback.CapFP)
	v.SetDefault("feedback.false_positive_threshold", cfg.Feedback.FalsePositiveThreshold)

	// Alerts defaults
	v.SetDefault("alerts.csv_path", cfg.Alerts.CSVPath)
	v.SetDefault("alerts.queue_limit", cfg.Alerts.QueueLimit)
	v.SetDefault("alerts.training_data_path", cfg.Alerts.TrainingDataPath)

	// ML defaults
	v.SetDefault("ml.model_version", cfg.ML.ModelVersion)
}

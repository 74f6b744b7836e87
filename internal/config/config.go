package config

import (
	"fmt"
	"os"
	"time"

	"trivia-score-service/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Questions struct {
		TTL string `yaml:"ttl"` // question bank cache TTL
	} `yaml:"questions"`
	Tiers struct {
		// Scope of recomputation per submission. Only "all" is supported;
		// the field exists so a per-user scope can be introduced without a
		// config format change.
		Scope  string      `yaml:"scope"`
		Levels []TierLevel `yaml:"levels"`
	} `yaml:"tiers"`
	Leaderboard struct {
		Limit int `yaml:"limit"` // default top-N size for reads
	} `yaml:"leaderboard"`
}

type TierLevel struct {
	Label       string  `yaml:"label"`
	MinAccuracy float64 `yaml:"minAccuracy"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TierPolicy converts the configured levels to a domain policy, falling back
// to the default buckets when none are configured.
func (c Config) TierPolicy() (domain.TierPolicy, error) {
	if c.Tiers.Scope != "" && c.Tiers.Scope != "all" {
		return domain.TierPolicy{}, fmt.Errorf("unsupported tier recompute scope %q", c.Tiers.Scope)
	}
	if len(c.Tiers.Levels) == 0 {
		return domain.DefaultTierPolicy(), nil
	}
	policy := domain.TierPolicy{}
	for _, level := range c.Tiers.Levels {
		policy.Levels = append(policy.Levels, domain.TierLevel{
			Label:       level.Label,
			MinAccuracy: level.MinAccuracy,
		})
	}
	if err := policy.Validate(); err != nil {
		return domain.TierPolicy{}, err
	}
	return policy, nil
}

// LeaderboardLimit returns the configured top-N size or the fallback.
func (c Config) LeaderboardLimit(fallback int) int {
	if c.Leaderboard.Limit > 0 {
		return c.Leaderboard.Limit
	}
	return fallback
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

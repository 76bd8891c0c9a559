package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	AdminKey        string
	MatchInterval   time.Duration
	ShutdownTimeout time.Duration
	SignupBonus     int64
	ReferralBonus   int64
	ScratchMax      int64
	PointsPerUnit   int64
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultMatchInterval   = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultSignupBonus     = 1000
	defaultReferralBonus   = 2000
	defaultScratchMax      = 500
	defaultPointsPerUnit   = 1000
)

// Load parses configuration from .env file, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AdminKey:        getString(lookup, "ADMIN_KEY", ""),
		MatchInterval:   getDuration(lookup, "MATCH_INTERVAL", defaultMatchInterval),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		SignupBonus:     getInt64(lookup, "SIGNUP_BONUS", defaultSignupBonus),
		ReferralBonus:   getInt64(lookup, "REFERRAL_BONUS", defaultReferralBonus),
		ScratchMax:      getInt64(lookup, "SCRATCH_MAX", defaultScratchMax),
		PointsPerUnit:   getInt64(lookup, "POINTS_PER_UNIT", defaultPointsPerUnit),
	}

	fs := flag.NewFlagSet("perkmart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		matchIntervalStr   = cfg.MatchInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AdminKey, "admin-key", cfg.AdminKey, "Static key authorizing admin endpoints")
	fs.StringVar(&matchIntervalStr, "match-interval", matchIntervalStr, "Interval between redemption matcher ticks")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.Int64Var(&cfg.SignupBonus, "signup-bonus", cfg.SignupBonus, "Points granted at registration")
	fs.Int64Var(&cfg.ReferralBonus, "referral-bonus", cfg.ReferralBonus, "Points granted to a referrer")
	fs.Int64Var(&cfg.ScratchMax, "scratch-max", cfg.ScratchMax, "Maximum scratch card reward")
	fs.Int64Var(&cfg.PointsPerUnit, "points-per-unit", cfg.PointsPerUnit, "Points per payout currency unit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.MatchInterval, err = time.ParseDuration(matchIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid match interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.MatchInterval <= 0 {
		cfg.MatchInterval = defaultMatchInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SignupBonus < 0 {
		cfg.SignupBonus = 0
	}

	if cfg.ReferralBonus < 0 {
		cfg.ReferralBonus = 0
	}

	if cfg.ScratchMax <= 0 {
		cfg.ScratchMax = defaultScratchMax
	}

	if cfg.PointsPerUnit <= 0 {
		cfg.PointsPerUnit = defaultPointsPerUnit
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AdminKey == "" {
		return nil, fmt.Errorf("admin key must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

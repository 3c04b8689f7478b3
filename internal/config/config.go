// Package config loads process-level defaults from the environment,
// tolerating a missing .env file via joho/godotenv.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/anagramthief/core/internal"
)

// Config holds the validated process defaults a freshly created room
// falls back to when a client doesn't override them.
type Config struct {
	ListenAddr        string
	FlipTimerSeconds  int
	ClaimTimerSeconds int
	PreStealEnabled   bool
	// BagRNGSeed == 0 means time-seeded; any other value pins every
	// game's bag shuffle for reproducible runs.
	BagRNGSeed int64
}

// Load reads .env (if present; a missing file is not an error, matching
// godotenv.Load()'s own tolerant behavior) then builds a validated
// Config from the environment, falling back to sane defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr:        getString("LISTEN_ADDR", ":8080"),
		FlipTimerSeconds:  clamp(getInt("FLIP_TIMER_SECONDS", 10), internal.MinFlipTimerSeconds, internal.MaxFlipTimerSeconds),
		ClaimTimerSeconds: clamp(getInt("CLAIM_TIMER_SECONDS", 3), internal.MinClaimTimerSeconds, internal.MaxClaimTimerSeconds),
		PreStealEnabled:   getBool("PRE_STEAL_ENABLED", true),
		BagRNGSeed:        getInt64("BAG_RNG_SEED", 0),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

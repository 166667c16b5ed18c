package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates behavioural parameters for the matching engine. All
// values can be overridden through the environment; defaults keep the
// engine runnable without any configuration.
type Config struct {
	// Port is the HTTP listen port, without the colon.
	Port string
	// CommissionRate is the platform's cut of every subtotal (0..1).
	CommissionRate float64
	// DefaultBidExpiry is the bidding window stamped on a bidding-mode
	// order when the client does not choose one.
	DefaultBidExpiry time.Duration
	// DefaultFreeRadiusKm is the free intervention radius used when the
	// provider has not set one.
	DefaultFreeRadiusKm float64
	// DefaultPerKmRate is the travel surcharge per started km past the
	// free radius, used when the provider has not set a rate.
	DefaultPerKmRate float64
	// SingleNightFee is charged when the scheduled interval touches
	// exactly one night.
	SingleNightFee float64
	// DoubleNightFee is the flat charge for two or more distinct nights.
	DoubleNightFee float64
	// BlockRatingThreshold is the rating below which a provider with
	// enough reviews is auto-blocked.
	BlockRatingThreshold float64
	// BlockMinReviews is the review count required before the rating
	// threshold applies.
	BlockMinReviews int
}

// Load reads .env when present and resolves the engine configuration from
// the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                 envString("PORT", "8080"),
		CommissionRate:       envFloat("COMMISSION_RATE", 0.20),
		DefaultBidExpiry:     envDuration("DEFAULT_BID_EXPIRY", 24*time.Hour),
		DefaultFreeRadiusKm:  envFloat("DEFAULT_FREE_RADIUS_KM", 10),
		DefaultPerKmRate:     envFloat("DEFAULT_PER_KM_RATE", 5),
		SingleNightFee:       envFloat("SINGLE_NIGHT_FEE", 30),
		DoubleNightFee:       envFloat("DOUBLE_NIGHT_FEE", 60),
		BlockRatingThreshold: envFloat("BLOCK_RATING_THRESHOLD", 2.5),
		BlockMinReviews:      envInt("BLOCK_MIN_REVIEWS", 5),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

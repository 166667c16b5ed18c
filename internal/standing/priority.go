package standing

import "time"

// Tier is a rating-derived bucket controlling broadcast notification
// delay. Higher-rated providers get first look at new orders.
type Tier string

const (
	TierNew       Tier = "new"
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAverage   Tier = "average"
	TierLow       Tier = "low"
	TierCritical  Tier = "critical"
)

// Priority couples a tier with its broadcast staggering delay. The delay
// is a value attached to the notification schedule, never a sleep inside
// the engine.
type Priority struct {
	Tier              Tier          `json:"tier"`
	NotificationDelay time.Duration `json:"notification_delay"`
}

// PriorityFor buckets a provider by rolling rating. Providers with fewer
// than 3 reviews have no meaningful rating yet and get the average delay.
func PriorityFor(rating float64, reviewCount int) Priority {
	if reviewCount < 3 {
		return Priority{Tier: TierNew, NotificationDelay: 60 * time.Second}
	}
	switch {
	case rating >= 4.5:
		return Priority{Tier: TierExcellent, NotificationDelay: 0}
	case rating >= 4.0:
		return Priority{Tier: TierGood, NotificationDelay: 30 * time.Second}
	case rating >= 3.5:
		return Priority{Tier: TierAverage, NotificationDelay: 60 * time.Second}
	case rating >= 3.0:
		return Priority{Tier: TierLow, NotificationDelay: 120 * time.Second}
	default:
		return Priority{Tier: TierCritical, NotificationDelay: 300 * time.Second}
	}
}

// BlockDecision is the outcome of an auto-block check.
type BlockDecision struct {
	Blocked   bool          `json:"blocked"`
	Permanent bool          `json:"permanent"`
	Duration  time.Duration `json:"duration"`
}

// Policy holds the auto-blocking thresholds.
type Policy struct {
	// RatingThreshold blocks providers whose rolling rating falls below it.
	RatingThreshold float64
	// MinReviews is how many reviews a provider must have before the
	// threshold applies at all.
	MinReviews int
}

// DefaultPolicy blocks below 2.5 once a provider has 5 reviews.
func DefaultPolicy() Policy {
	return Policy{RatingThreshold: 2.5, MinReviews: 5}
}

// CheckAutoBlock decides whether a provider must be suspended and for how
// long. Durations escalate with repeat offenses: 7 days, 14 days, 30 days,
// then permanent.
func (p Policy) CheckAutoBlock(rating float64, reviewCount, priorBlockCount int) BlockDecision {
	if reviewCount < p.MinReviews || rating >= p.RatingThreshold {
		return BlockDecision{}
	}
	switch priorBlockCount {
	case 0:
		return BlockDecision{Blocked: true, Duration: 7 * 24 * time.Hour}
	case 1:
		return BlockDecision{Blocked: true, Duration: 14 * 24 * time.Hour}
	case 2:
		return BlockDecision{Blocked: true, Duration: 30 * 24 * time.Hour}
	default:
		return BlockDecision{Blocked: true, Permanent: true}
	}
}

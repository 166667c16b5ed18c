package models

import "time"

// PricingMode selects how an order gets its final price.
type PricingMode string

const (
	ModeFixed   PricingMode = "fixed"
	ModeBidding PricingMode = "bidding"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderPending       OrderStatus = "pending"
	OrderAccepted      OrderStatus = "accepted"
	OrderOnWay         OrderStatus = "on_way"
	OrderArrived       OrderStatus = "arrived"
	OrderInProgress    OrderStatus = "in_progress"
	OrderPaused        OrderStatus = "paused"
	OrderPendingReview OrderStatus = "completed_pending_review"
	OrderCompleted     OrderStatus = "completed"
	OrderCancelled     OrderStatus = "cancelled"
)

// BidStatus is the bid lifecycle state.
type BidStatus string

const (
	BidActive    BidStatus = "active"
	BidAccepted  BidStatus = "accepted"
	BidWithdrawn BidStatus = "withdrawn"
)

// Service represents a catalog entry a client can order. Operators own the
// catalog; the engine only reads it.
type Service struct {
	ServiceID       string    `json:"service_id"`
	Title           string    `json:"title"`
	BasePrice       float64   `json:"base_price"`
	AllowedFormulas []string  `json:"allowed_formulas"`
	AllowsBidding   bool      `json:"allows_bidding"`
	CreatedAt       time.Time `json:"created_at"`
}

// AllowsFormula reports whether the named pricing formula may be applied
// to this service.
func (s Service) AllowsFormula(formula string) bool {
	for _, f := range s.AllowedFormulas {
		if f == formula {
			return true
		}
	}
	return false
}

// Breakdown is the full price decomposition for an order or a quote.
// Every field is rounded to 2 decimals when produced so the breakdown
// stays consistent when re-summed.
type Breakdown struct {
	BasePrice   float64 `json:"base_price"`
	FormulaFee  float64 `json:"formula_fee"`
	DistanceFee float64 `json:"distance_fee"`
	NightFee    float64 `json:"night_fee"`
	Subtotal    float64 `json:"subtotal"`
	Commission  float64 `json:"commission"`
	Total       float64 `json:"total"`
	ProviderNet float64 `json:"provider_net"`
}

// Order represents a client's request for a service instance.
type Order struct {
	OrderID     string      `json:"order_id"`
	ClientID    string      `json:"client_id"`
	ProviderID  string      `json:"provider_id,omitempty"`
	ServiceID   string      `json:"service_id"`
	Status      OrderStatus `json:"status"`
	PricingMode PricingMode `json:"pricing_mode"`

	Formula       string    `json:"formula"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	DurationHours float64   `json:"duration_hours"`
	Quantity      int       `json:"quantity"`
	DistanceKm    float64   `json:"distance_km"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`

	Price Breakdown `json:"price"`

	// Bidding mode only.
	MinimumPrice  float64   `json:"minimum_price,omitempty"`
	BidExpiryTime time.Time `json:"bid_expiry_time,omitempty"`

	CancelReason string `json:"cancel_reason,omitempty"`
	PauseReason  string `json:"pause_reason,omitempty"`

	// Providers who accepted and then cancelled this order; they are never
	// offered it again.
	ExcludedProviderIDs []string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Excludes reports whether the provider has been barred from this order.
func (o Order) Excludes(providerID string) bool {
	for _, id := range o.ExcludedProviderIDs {
		if id == providerID {
			return true
		}
	}
	return false
}

// BidWindowOpen reports whether new bids may still be placed at t.
func (o Order) BidWindowOpen(t time.Time) bool {
	return t.Before(o.BidExpiryTime)
}

// Bid represents a provider's competing offer on a bidding-mode order.
// At most one bid ever exists per (order, provider) pair.
type Bid struct {
	BidID      string    `json:"bid_id"`
	OrderID    string    `json:"order_id"`
	ProviderID string    `json:"provider_id"`
	Price      float64   `json:"price"`
	ETAMinutes int       `json:"eta_minutes,omitempty"`
	Message    string    `json:"message,omitempty"`
	Status     BidStatus `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// AcceptableFor is the derived acceptability predicate: a bid can win only
// while it is active and its parent order is still pending. Bids not
// selected when another wins are left active in storage but become
// permanently inert the instant the order leaves pending.
func (b Bid) AcceptableFor(o Order) bool {
	return b.Status == BidActive && o.Status == OrderPending
}

// ProviderStanding is a provider's aggregate rating/review/blocking state.
// The review subsystem owns the rating; this engine reads it and applies
// automatic blocking and cancellation penalties.
type ProviderStanding struct {
	ProviderID    string     `json:"provider_id"`
	Rating        float64    `json:"rating"`
	ReviewCount   int        `json:"review_count"`
	IsBlocked     bool       `json:"is_blocked"`
	BlockedUntil  *time.Time `json:"blocked_until,omitempty"`
	BlockCount    int        `json:"block_count"`
	PenaltyPoints int        `json:"penalty_points"`

	// Free intervention radius and per-km rate used by provider-aware
	// pricing. Zero values fall back to system defaults.
	FreeRadiusKm float64 `json:"free_radius_km,omitempty"`
	PerKmRate    float64 `json:"per_km_rate,omitempty"`
}

// BlockedAt reports whether the provider is unavailable at t. A blocked
// standing with no BlockedUntil is a permanent block.
func (p ProviderStanding) BlockedAt(t time.Time) bool {
	if !p.IsBlocked {
		return false
	}
	if p.BlockedUntil == nil {
		return true
	}
	return t.Before(*p.BlockedUntil)
}

package helpers

import "time"

// Request/Response DTOs

type CreateOrderRequest struct {
	ClientID       string    `json:"client_id" binding:"required"`
	ServiceID      string    `json:"service_id" binding:"required"`
	PricingMode    string    `json:"pricing_mode" binding:"required,oneof=fixed bidding"`
	ProviderID     string    `json:"provider_id"`
	Formula        string    `json:"formula"`
	ScheduledAt    time.Time `json:"scheduled_at" binding:"required"`
	DurationHours  float64   `json:"duration_hours" binding:"required,gt=0"`
	Quantity       *int      `json:"quantity"`
	DistanceKm     float64   `json:"distance_km"`
	Lat            float64   `json:"lat"`
	Lng            float64   `json:"lng"`
	ProposedPrice  float64   `json:"proposed_price"`
	BidExpiryHours float64   `json:"bid_expiry_hours"`
}

type ActorRequest struct {
	ProviderID string `json:"provider_id"`
	ClientID   string `json:"client_id"`
	Reason     string `json:"reason"`
}

type PlaceBidRequest struct {
	OrderID    string  `json:"order_id" binding:"required"`
	ProviderID string  `json:"provider_id" binding:"required"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	ETAMinutes int     `json:"eta_minutes"`
	Message    string  `json:"message"`
}

type AcceptBidRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}

type WithdrawBidRequest struct {
	ProviderID string `json:"provider_id" binding:"required"`
}

type QuoteRequest struct {
	ServiceID     string    `json:"service_id" binding:"required"`
	ProviderID    string    `json:"provider_id"`
	Formula       string    `json:"formula" binding:"required"`
	ScheduledAt   time.Time `json:"scheduled_at" binding:"required"`
	DurationHours float64   `json:"duration_hours" binding:"required,gt=0"`
	Quantity      *int      `json:"quantity"`
	DistanceKm    float64   `json:"distance_km"`
}

type BidResponse struct {
	BidID      string  `json:"bid_id"`
	OrderID    string  `json:"order_id"`
	ProviderID string  `json:"provider_id"`
	Price      float64 `json:"price"`
	ETAMinutes int     `json:"eta_minutes,omitempty"`
	Message    string  `json:"message,omitempty"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}

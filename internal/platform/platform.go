package platform

import (
	"fmt"

	"service-market/internal/marketerrors"
	model "service-market/internal/models"
	"service-market/utils"
)

// Notification is one outbound message to a client or provider. Delivery
// belongs to the notification subsystem; the engine only hands events over.
type Notification struct {
	RecipientType string         `json:"recipient_type"` // "client" or "provider"
	RecipientID   string         `json:"recipient_id"`
	OrderID       string         `json:"order_id"`
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Message       string         `json:"message"`
	Data          map[string]any `json:"data,omitempty"`
}

// Notifier dispatches notifications. Calls are fire-and-forget from the
// engine's perspective: failures are logged at the call site, never
// propagated into a state transition.
type Notifier interface {
	Notify(n Notification) error
}

// LogNotifier writes notifications to the structured log. It stands in
// for the real push/in-app dispatcher.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) error {
	utils.Info("notification dispatched", map[string]any{
		"recipient_type": n.RecipientType,
		"recipient_id":   n.RecipientID,
		"order_id":       n.OrderID,
		"type":           n.Type,
		"title":          n.Title,
	})
	return nil
}

// PaymentResult is the payment subsystem's answer to a capture trigger.
type PaymentResult struct {
	Success   bool            `json:"success"`
	Breakdown model.Breakdown `json:"breakdown"`
}

// PaymentProcessor triggers payment capture. The engine invokes it exactly
// once, at the transition into completed.
type PaymentProcessor interface {
	ProcessPayment(orderID string) (PaymentResult, error)
}

// LogPaymentProcessor acknowledges captures in the log. It stands in for
// the real payment gateway integration.
type LogPaymentProcessor struct{}

func (LogPaymentProcessor) ProcessPayment(orderID string) (PaymentResult, error) {
	utils.Info("payment capture triggered", map[string]any{"order_id": orderID})
	return PaymentResult{Success: true}, nil
}

// Candidate is one provider returned by the geospatial lookup, with the
// context the broadcast step needs.
type Candidate struct {
	ProviderID   string                 `json:"provider_id"`
	DistanceKm   float64                `json:"distance_km"`
	Standing     model.ProviderStanding `json:"standing"`
	PricePreview float64                `json:"price_preview"`
}

// ProviderLookup finds candidate providers near a point. The engine
// consumes the results for broadcast ordering and provider-aware pricing;
// it does not own the search.
type ProviderLookup interface {
	FindNearby(lat, lng, radiusKm float64, serviceID string) ([]Candidate, error)
}

// StaticLookup serves a fixed candidate list; used in wiring without a
// live geo service and in tests.
type StaticLookup struct {
	Candidates []Candidate
}

func (s StaticLookup) FindNearby(lat, lng, radiusKm float64, serviceID string) ([]Candidate, error) {
	return s.Candidates, nil
}

// ReviewAggregator exposes the review subsystem's current rolling rating
// for a provider.
type ReviewAggregator interface {
	CurrentRating(providerID string) (rating float64, reviewCount int, err error)
}

// StandingAggregator reads the rating straight from the stored standing
// row. It stands in for the external review-aggregation call.
type StandingAggregator struct {
	Store interface {
		GetStanding(providerID string) (model.ProviderStanding, error)
	}
}

func (a StandingAggregator) CurrentRating(providerID string) (float64, int, error) {
	s, err := a.Store.GetStanding(providerID)
	if err != nil {
		return 0, 0, fmt.Errorf("current rating for provider %s: %w: %v", providerID, marketerrors.ErrDependency, err)
	}
	return s.Rating, s.ReviewCount, nil
}

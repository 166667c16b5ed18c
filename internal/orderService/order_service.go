package order

import (
	"errors"
	"fmt"
	"time"

	"service-market/internal/marketerrors"
	model "service-market/internal/models"
	"service-market/internal/platform"
	"service-market/internal/pricing"
	"service-market/internal/repository"
	"service-market/internal/standing"
	"service-market/utils"
)

// Deps are the collaborators of the order state machine.
type Deps struct {
	Repo     repository.MarketDB
	Pricer   *pricing.Engine
	Notifier platform.Notifier
	Payments platform.PaymentProcessor
	Lookup   platform.ProviderLookup
	Reviews  platform.ReviewAggregator

	BlockPolicy      standing.Policy
	DefaultBidExpiry time.Duration
	// BroadcastRadiusKm bounds the nearby-provider search for new and
	// re-entered orders.
	BroadcastRadiusKm float64
}

// OrderService owns the order lifecycle: creation, every status
// transition, the pricing calls around them and the broadcast to
// candidate providers.
type OrderService struct {
	deps Deps
}

// NewOrderService creates an OrderService instance.
func NewOrderService(deps Deps) *OrderService {
	if deps.DefaultBidExpiry <= 0 {
		deps.DefaultBidExpiry = 24 * time.Hour
	}
	if deps.BroadcastRadiusKm <= 0 {
		deps.BroadcastRadiusKm = 15
	}
	return &OrderService{deps: deps}
}

// CreateOrderInput carries a client's order request.
type CreateOrderInput struct {
	ClientID  string
	ServiceID string
	Mode      model.PricingMode

	// Fixed mode: optional preferred provider whose travel rates price
	// the order.
	ProviderID string

	Formula       string
	ScheduledAt   time.Time
	DurationHours float64
	Quantity      int
	DistanceKm    float64
	Lat, Lng      float64

	// Bidding mode: the client's proposed price and an optional override
	// of the bidding window.
	ProposedPrice float64
	BidExpiry     time.Duration
}

// CreateOrder opens an order in the matching pool. Fixed-mode orders are
// priced immediately; bidding-mode orders get a floor price and an expiry
// window and stay unpriced until a bid wins.
func (s *OrderService) CreateOrder(in CreateOrderInput) (model.Order, error) {
	if in.ClientID == "" || in.ServiceID == "" {
		return model.Order{}, fmt.Errorf("service: %w - missing clientID or serviceID", marketerrors.ErrValidation)
	}
	svc, err := s.deps.Repo.GetService(in.ServiceID)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: failed to load service %s: %w", in.ServiceID, err)
	}
	if in.Formula == "" {
		in.Formula = "standard"
	}
	if in.Quantity < 1 {
		return model.Order{}, fmt.Errorf("service: %w - quantity must be at least 1", marketerrors.ErrValidation)
	}

	now := time.Now().UTC()
	o := model.Order{
		OrderID:       utils.GenerateID(),
		ClientID:      in.ClientID,
		ServiceID:     in.ServiceID,
		Status:        model.OrderPending,
		PricingMode:   in.Mode,
		Formula:       in.Formula,
		ScheduledAt:   in.ScheduledAt,
		DurationHours: in.DurationHours,
		Quantity:      in.Quantity,
		DistanceKm:    in.DistanceKm,
		Lat:           in.Lat,
		Lng:           in.Lng,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch in.Mode {
	case model.ModeFixed:
		req := pricing.QuoteRequest{
			Formula:       in.Formula,
			ScheduledAt:   in.ScheduledAt,
			DurationHours: in.DurationHours,
			Quantity:      in.Quantity,
			DistanceKm:    in.DistanceKm,
		}
		if in.ProviderID != "" {
			// Quote-with-provider mode: real travel rates, and the order
			// is reserved for that provider until they accept.
			req.Provider = s.providerRates(in.ProviderID)
			o.ProviderID = in.ProviderID
		}
		breakdown, err := s.deps.Pricer.Quote(svc, req)
		if err != nil {
			return model.Order{}, fmt.Errorf("service: failed to price order: %w", err)
		}
		o.Price = breakdown
	case model.ModeBidding:
		if !svc.AllowsBidding {
			return model.Order{}, fmt.Errorf("service: %w - service %s does not allow bidding", marketerrors.ErrValidation, svc.ServiceID)
		}
		if in.ProposedPrice < svc.BasePrice {
			return model.Order{}, fmt.Errorf("service: %w - proposed price %.2f below service base price %.2f", marketerrors.ErrValidation, in.ProposedPrice, svc.BasePrice)
		}
		expiry := in.BidExpiry
		if expiry <= 0 {
			expiry = s.deps.DefaultBidExpiry
		}
		// The floor is the service minimum, not the client's figure.
		o.MinimumPrice = svc.BasePrice
		o.BidExpiryTime = now.Add(expiry)
	default:
		return model.Order{}, fmt.Errorf("service: %w - unknown pricing mode %q", marketerrors.ErrValidation, in.Mode)
	}

	if err := s.deps.Repo.CreateOrder(o); err != nil {
		return model.Order{}, fmt.Errorf("service: failed to store order: %w", err)
	}

	if o.ProviderID != "" {
		// Reserved orders go to the chosen provider, not the pool.
		s.notifyProvider(o, "order_offered", "Direct order offer", "A client requested you for an order")
	} else {
		s.Broadcast(o)
	}
	return o, nil
}

// providerRates loads the travel tariff of a known provider, falling back
// to catalog defaults when no standing row exists.
func (s *OrderService) providerRates(providerID string) *pricing.ProviderRates {
	st, err := s.deps.Repo.GetStanding(providerID)
	if err != nil {
		return nil
	}
	return &pricing.ProviderRates{FreeRadiusKm: st.FreeRadiusKm, PerKmRate: st.PerKmRate}
}

// Broadcast announces an order to eligible providers near its location.
// Each provider is scheduled after their priority tier's staggering delay;
// the delay is carried in the notification payload, the engine never
// sleeps on it. Broadcast is best-effort: failures are logged, never
// returned.
func (s *OrderService) Broadcast(o model.Order) {
	candidates, err := s.deps.Lookup.FindNearby(o.Lat, o.Lng, s.deps.BroadcastRadiusKm, o.ServiceID)
	if err != nil {
		utils.Warn("broadcast: provider lookup failed", map[string]any{"order_id": o.OrderID, "error": err.Error()})
		return
	}

	now := time.Now().UTC()
	for _, c := range candidates {
		if o.Excludes(c.ProviderID) {
			continue
		}
		st := s.sweepStanding(c.ProviderID, c.Standing, now)
		if st.BlockedAt(now) {
			continue
		}
		prio := standing.PriorityFor(st.Rating, st.ReviewCount)
		s.notify(platform.Notification{
			RecipientType: "provider",
			RecipientID:   c.ProviderID,
			OrderID:       o.OrderID,
			Type:          "order_available",
			Title:         "New order nearby",
			Message:       fmt.Sprintf("A new order is available %.1f km away", c.DistanceKm),
			Data: map[string]any{
				"tier":          string(prio.Tier),
				"delay_seconds": int(prio.NotificationDelay.Seconds()),
				"distance_km":   c.DistanceKm,
				"pricing_mode":  string(o.PricingMode),
				"price_preview": c.PricePreview,
			},
		})
	}
}

// sweepStanding runs the advisory auto-block check against the freshest
// rating available. Sweep failures never fail the triggering request.
func (s *OrderService) sweepStanding(providerID string, st model.ProviderStanding, now time.Time) model.ProviderStanding {
	rating, count, err := s.currentRating(providerID)
	if err != nil {
		utils.Warn("standing sweep: rating lookup failed", map[string]any{"provider_id": providerID, "error": err.Error()})
		return st
	}
	st.Rating = rating
	st.ReviewCount = count

	if st.BlockedAt(now) {
		return st
	}
	decision := s.deps.BlockPolicy.CheckAutoBlock(rating, count, st.BlockCount)
	if !decision.Blocked {
		return st
	}
	var until *time.Time
	if !decision.Permanent {
		t := now.Add(decision.Duration)
		until = &t
	}
	blocked, err := s.deps.Repo.ApplyBlock(providerID, until)
	if err != nil {
		utils.Warn("standing sweep: failed to apply block", map[string]any{"provider_id": providerID, "error": err.Error()})
		return st
	}
	utils.Info("provider auto-blocked", map[string]any{
		"provider_id": providerID,
		"rating":      rating,
		"permanent":   decision.Permanent,
		"block_count": blocked.BlockCount,
	})
	return blocked
}

// currentRating queries the review aggregator, retrying dependency-class
// failures once before surfacing them.
func (s *OrderService) currentRating(providerID string) (float64, int, error) {
	rating, count, err := s.deps.Reviews.CurrentRating(providerID)
	if err != nil && errors.Is(err, marketerrors.ErrDependency) {
		rating, count, err = s.deps.Reviews.CurrentRating(providerID)
	}
	return rating, count, err
}

// CheckEligibility rejects blocked providers. Unknown providers have no
// standing row yet and pass.
func (s *OrderService) CheckEligibility(providerID string, now time.Time) error {
	st, err := s.deps.Repo.GetStanding(providerID)
	if err != nil {
		if errors.Is(err, marketerrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("service: %w: standing lookup: %v", marketerrors.ErrDependency, err)
	}
	st = s.sweepStanding(providerID, st, now)
	if st.BlockedAt(now) {
		return fmt.Errorf("service: %w - provider %s is suspended", marketerrors.ErrForbidden, providerID)
	}
	return nil
}

// Accept assigns a fixed-price order to a provider. Bidding orders reach
// accepted only through bid acceptance.
func (s *OrderService) Accept(orderID, providerID string) (model.Order, error) {
	if orderID == "" || providerID == "" {
		return model.Order{}, fmt.Errorf("service: %w - missing orderID or providerID", marketerrors.ErrValidation)
	}
	o, err := s.deps.Repo.GetOrder(orderID)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: %w", err)
	}
	if o.PricingMode == model.ModeBidding {
		return model.Order{}, fmt.Errorf("service: %w - bidding orders are assigned through bid acceptance", marketerrors.ErrInvalidState)
	}
	if err := s.CheckEligibility(providerID, time.Now().UTC()); err != nil {
		return model.Order{}, err
	}
	o, err = s.deps.Repo.AssignProvider(orderID, providerID)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: failed to accept order: %w", err)
	}
	s.notifyClient(o, "order_accepted", "Order accepted", "A provider has taken your order")
	return o, nil
}

// Depart marks the assigned provider as travelling to the client.
func (s *OrderService) Depart(orderID, providerID string) (model.Order, error) {
	return s.providerTransition(orderID, providerID, model.OrderAccepted, model.OrderOnWay,
		"provider_on_way", "Provider on the way", "Your provider is heading to you")
}

// Arrive marks the assigned provider as having reached the client.
func (s *OrderService) Arrive(orderID, providerID string) (model.Order, error) {
	return s.providerTransition(orderID, providerID, model.OrderOnWay, model.OrderArrived,
		"provider_arrived", "Provider arrived", "Your provider has arrived")
}

// ConfirmArrival lets the client confirm the provider is on site, which
// starts the work.
func (s *OrderService) ConfirmArrival(orderID, clientID string) (model.Order, error) {
	o, err := s.clientOrder(orderID, clientID)
	if err != nil {
		return model.Order{}, err
	}
	o, err = s.deps.Repo.UpdateOrderStatus(orderID, model.OrderArrived, model.OrderInProgress)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: failed to confirm arrival: %w", err)
	}
	s.notifyProvider(o, "work_started", "Work started", "The client confirmed your arrival")
	return o, nil
}

// Pause holds in-progress work for an emergency.
func (s *OrderService) Pause(orderID, providerID, reason string) (model.Order, error) {
	o, err := s.assignedOrder(orderID, providerID)
	if err != nil {
		return model.Order{}, err
	}
	o, err = s.deps.Repo.PauseOrder(orderID, reason)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: failed to pause order: %w", err)
	}
	s.notifyClient(o, "order_paused", "Order paused", reason)
	return o, nil
}

// Resume continues paused work.
func (s *OrderService) Resume(orderID, providerID string) (model.Order, error) {
	return s.providerTransition(orderID, providerID, model.OrderPaused, model.OrderInProgress,
		"order_resumed", "Order resumed", "Work on your order has resumed")
}

// Complete is the provider's completion claim. The order waits for the
// client's satisfaction confirmation before payment is released.
func (s *OrderService) Complete(orderID, providerID string) (model.Order, error) {
	return s.providerTransition(orderID, providerID, model.OrderInProgress, model.OrderPendingReview,
		"order_completed_pending_review", "Please confirm completion", "Your provider marked the order complete")
}

// ConfirmCompletion finalizes the order on the client's confirmation and
// triggers payment capture exactly once. The payment call happens after
// the transition is stored and its failure never rolls the order back.
func (s *OrderService) ConfirmCompletion(orderID, clientID string) (model.Order, error) {
	o, err := s.clientOrder(orderID, clientID)
	if err != nil {
		return model.Order{}, err
	}
	o, err = s.deps.Repo.UpdateOrderStatus(orderID, model.OrderPendingReview, model.OrderCompleted)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: failed to confirm completion: %w", err)
	}

	if res, payErr := s.deps.Payments.ProcessPayment(orderID); payErr != nil {
		utils.Error("payment trigger failed", map[string]any{"order_id": orderID, "error": payErr.Error()})
	} else if !res.Success {
		utils.Warn("payment capture rejected", map[string]any{"order_id": orderID})
	}

	s.notifyProvider(o, "order_completed", "Order completed", "The client confirmed completion, payment is on the way")
	return o, nil
}

// CancelByProvider releases the order back into the matching pool,
// penalizes the provider and re-broadcasts to everyone else. The
// cancelling provider is never offered this order again.
func (s *OrderService) CancelByProvider(orderID, providerID, reason string) (model.Order, error) {
	o, err := s.deps.Repo.ReleaseProvider(orderID, providerID)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: failed to release order: %w", err)
	}

	if _, penErr := s.deps.Repo.AddPenalty(providerID, 1); penErr != nil {
		utils.Warn("failed to record cancellation penalty", map[string]any{"provider_id": providerID, "error": penErr.Error()})
	}

	s.notifyClient(o, "provider_cancelled", "Provider cancelled", "We are finding you a new provider")
	s.Broadcast(o)
	return o, nil
}

// CancelByClient terminates the order. Allowed only before the provider
// is en route.
func (s *OrderService) CancelByClient(orderID, clientID, reason string) (model.Order, error) {
	o, err := s.clientOrder(orderID, clientID)
	if err != nil {
		return model.Order{}, err
	}
	hadProvider := o.ProviderID
	o, err = s.deps.Repo.CancelOrder(orderID, reason, model.OrderPending, model.OrderAccepted)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: failed to cancel order: %w", err)
	}
	if hadProvider != "" {
		s.notify(platform.Notification{
			RecipientType: "provider",
			RecipientID:   hadProvider,
			OrderID:       o.OrderID,
			Type:          "order_cancelled",
			Title:         "Order cancelled",
			Message:       reason,
		})
	}
	return o, nil
}

// QuoteByService prices a request without an assigned provider.
func (s *OrderService) QuoteByService(serviceID string, req pricing.QuoteRequest) (model.Breakdown, error) {
	svc, err := s.deps.Repo.GetService(serviceID)
	if err != nil {
		return model.Breakdown{}, fmt.Errorf("service: %w", err)
	}
	breakdown, err := s.deps.Pricer.Quote(svc, req)
	if err != nil {
		return model.Breakdown{}, fmt.Errorf("service: %w", err)
	}
	return breakdown, nil
}

// QuoteWithProvider prices a request using the named provider's travel
// rates, adding the real distance fee.
func (s *OrderService) QuoteWithProvider(serviceID, providerID string, req pricing.QuoteRequest) (model.Breakdown, error) {
	req.Provider = s.providerRates(providerID)
	return s.QuoteByService(serviceID, req)
}

// GetOrder returns one order.
func (s *OrderService) GetOrder(orderID string) (model.Order, error) {
	o, err := s.deps.Repo.GetOrder(orderID)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: %w", err)
	}
	return o, nil
}

// ListOrdersByClient returns all orders placed by a client.
func (s *OrderService) ListOrdersByClient(clientID string) ([]model.Order, error) {
	if clientID == "" {
		return nil, fmt.Errorf("service: %w - empty client ID", marketerrors.ErrValidation)
	}
	orders, err := s.deps.Repo.ListOrdersByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return orders, nil
}

// providerTransition performs one provider-driven CAS step and notifies
// the client.
func (s *OrderService) providerTransition(orderID, providerID string, from, to model.OrderStatus, ntype, title, message string) (model.Order, error) {
	o, err := s.assignedOrder(orderID, providerID)
	if err != nil {
		return model.Order{}, err
	}
	o, err = s.deps.Repo.UpdateOrderStatus(orderID, from, to)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: failed to move order to %s: %w", to, err)
	}
	s.notifyClient(o, ntype, title, message)
	return o, nil
}

// assignedOrder loads an order and verifies the caller is its assigned
// provider. The provider only ever changes together with the status, so a
// follow-up CAS cannot race past this check.
func (s *OrderService) assignedOrder(orderID, providerID string) (model.Order, error) {
	o, err := s.deps.Repo.GetOrder(orderID)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: %w", err)
	}
	if o.ProviderID != providerID {
		return model.Order{}, fmt.Errorf("service: %w - provider %s is not assigned to order %s", marketerrors.ErrForbidden, providerID, orderID)
	}
	return o, nil
}

// clientOrder loads an order and verifies the caller owns it.
func (s *OrderService) clientOrder(orderID, clientID string) (model.Order, error) {
	o, err := s.deps.Repo.GetOrder(orderID)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: %w", err)
	}
	if o.ClientID != clientID {
		return model.Order{}, fmt.Errorf("service: %w - client %s does not own order %s", marketerrors.ErrForbidden, clientID, orderID)
	}
	return o, nil
}

func (s *OrderService) notifyClient(o model.Order, ntype, title, message string) {
	s.notify(platform.Notification{
		RecipientType: "client",
		RecipientID:   o.ClientID,
		OrderID:       o.OrderID,
		Type:          ntype,
		Title:         title,
		Message:       message,
	})
}

func (s *OrderService) notifyProvider(o model.Order, ntype, title, message string) {
	s.notify(platform.Notification{
		RecipientType: "provider",
		RecipientID:   o.ProviderID,
		OrderID:       o.OrderID,
		Type:          ntype,
		Title:         title,
		Message:       message,
	})
}

// notify swallows dispatch failures: notifications are side effects, not
// core guarantees.
func (s *OrderService) notify(n platform.Notification) {
	if err := s.deps.Notifier.Notify(n); err != nil {
		utils.Warn("notification dispatch failed", map[string]any{
			"recipient_type": n.RecipientType,
			"recipient_id":   n.RecipientID,
			"order_id":       n.OrderID,
			"type":           n.Type,
			"error":          err.Error(),
		})
	}
}

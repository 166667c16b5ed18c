package bidding

import (
	"fmt"
	"time"

	"service-market/internal/marketerrors"
	model "service-market/internal/models"
	order "service-market/internal/orderService"
	"service-market/internal/platform"
	"service-market/internal/pricing"
	"service-market/internal/repository"
	"service-market/utils"
)

// BiddingService manages provider offers on bidding-mode orders: creation
// under the floor-price and one-bid-per-provider rules, withdrawal, and
// the acceptance arbitration that finalizes the order price.
type BiddingService struct {
	repo     repository.MarketDB
	pricer   *pricing.Engine
	orders   *order.OrderService
	notifier platform.Notifier
}

// NewBiddingService creates a new BiddingService instance.
func NewBiddingService(repo repository.MarketDB, pricer *pricing.Engine, orders *order.OrderService, notifier platform.Notifier) *BiddingService {
	return &BiddingService{repo: repo, pricer: pricer, orders: orders, notifier: notifier}
}

// PlaceBid validates and records a provider's offer on an order. The
// bidding window is checked lazily against wall-clock time here; an
// expired window surfaces as an invalid-state error on the attempt.
func (s *BiddingService) PlaceBid(orderID, providerID string, price float64, etaMinutes int, message string) (model.Bid, error) {
	if orderID == "" || providerID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - missing orderID or providerID", marketerrors.ErrValidation)
	}
	if price <= 0 {
		return model.Bid{}, fmt.Errorf("service: %w - non-positive bid price", marketerrors.ErrValidation)
	}

	o, err := s.repo.GetOrder(orderID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: %w", err)
	}
	svc, err := s.repo.GetService(o.ServiceID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load service for order %s: %w", orderID, err)
	}
	if !svc.AllowsBidding {
		return model.Bid{}, fmt.Errorf("service: %w - service %s does not allow bidding", marketerrors.ErrValidation, svc.ServiceID)
	}
	if price < o.MinimumPrice {
		return model.Bid{}, fmt.Errorf("service: %w - bid price %.2f below floor %.2f", marketerrors.ErrValidation, price, o.MinimumPrice)
	}

	now := time.Now().UTC()
	if err := s.orders.CheckEligibility(providerID, now); err != nil {
		return model.Bid{}, err
	}

	bid := model.Bid{
		BidID:      utils.GenerateID(),
		OrderID:    orderID,
		ProviderID: providerID,
		Price:      price,
		ETAMinutes: etaMinutes,
		Message:    message,
		Status:     model.BidActive,
		CreatedAt:  now,
	}

	// Uniqueness, the pending/bidding checks and the expiry re-check all
	// hold inside the repository's critical section.
	if err := s.repo.InsertBid(bid); err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to record bid for order %s by provider %s: %w", orderID, providerID, err)
	}

	s.notify(platform.Notification{
		RecipientType: "client",
		RecipientID:   o.ClientID,
		OrderID:       orderID,
		Type:          "bid_received",
		Title:         "New offer on your order",
		Message:       fmt.Sprintf("A provider offered %.2f", price),
		Data:          map[string]any{"bid_id": bid.BidID, "price": price, "eta_minutes": etaMinutes},
	})
	return bid, nil
}

// AcceptBid lets the order's owner pick the winning offer. The repository
// re-verifies bid and order state inside one atomic unit, so of two
// concurrent accepts on different bids exactly one succeeds; every other
// bid becomes permanently inert the moment the order leaves pending.
func (s *BiddingService) AcceptBid(bidID, clientID string) (model.Order, model.Bid, error) {
	if bidID == "" || clientID == "" {
		return model.Order{}, model.Bid{}, fmt.Errorf("service: %w - missing bidID or clientID", marketerrors.ErrValidation)
	}
	b, err := s.repo.GetBid(bidID)
	if err != nil {
		return model.Order{}, model.Bid{}, fmt.Errorf("service: %w", err)
	}
	o, err := s.repo.GetOrder(b.OrderID)
	if err != nil {
		return model.Order{}, model.Bid{}, fmt.Errorf("service: %w", err)
	}
	if o.ClientID != clientID {
		return model.Order{}, model.Bid{}, fmt.Errorf("service: %w - client %s does not own order %s", marketerrors.ErrForbidden, clientID, o.OrderID)
	}

	// The bid's price is immutable once placed, so settling it before the
	// critical section is safe.
	breakdown := s.pricer.Settle(b.Price)
	o, b, err = s.repo.AcceptBid(bidID, breakdown)
	if err != nil {
		return model.Order{}, model.Bid{}, fmt.Errorf("service: failed to accept bid %s: %w", bidID, err)
	}

	s.notify(platform.Notification{
		RecipientType: "provider",
		RecipientID:   b.ProviderID,
		OrderID:       o.OrderID,
		Type:          "bid_accepted",
		Title:         "Your offer won",
		Message:       fmt.Sprintf("The client accepted your offer of %.2f", b.Price),
		Data:          map[string]any{"bid_id": b.BidID, "total": o.Price.Total},
	})
	return o, b, nil
}

// WithdrawBid retracts a provider's own offer while the parent order is
// still open.
func (s *BiddingService) WithdrawBid(bidID, providerID string) (model.Bid, error) {
	if bidID == "" || providerID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - missing bidID or providerID", marketerrors.ErrValidation)
	}
	b, err := s.repo.WithdrawBid(bidID, providerID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to withdraw bid %s: %w", bidID, err)
	}
	return b, nil
}

// BidView decorates a stored bid with the derived acceptability
// predicate: active bid, order still pending. Bids left behind by a
// winner stay active in storage but are never acceptable again.
type BidView struct {
	model.Bid
	Acceptable bool `json:"acceptable"`
}

// ListBids returns an order's bids to its owner.
func (s *BiddingService) ListBids(orderID, clientID string) ([]BidView, error) {
	if orderID == "" {
		return nil, fmt.Errorf("service: %w - empty order ID", marketerrors.ErrValidation)
	}
	o, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if o.ClientID != clientID {
		return nil, fmt.Errorf("service: %w - client %s does not own order %s", marketerrors.ErrForbidden, clientID, orderID)
	}
	bids, err := s.repo.GetBidsByOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	views := make([]BidView, 0, len(bids))
	for _, b := range bids {
		views = append(views, BidView{Bid: b, Acceptable: b.AcceptableFor(o)})
	}
	return views, nil
}

func (s *BiddingService) notify(n platform.Notification) {
	if err := s.notifier.Notify(n); err != nil {
		utils.Warn("notification dispatch failed", map[string]any{
			"recipient_type": n.RecipientType,
			"recipient_id":   n.RecipientID,
			"order_id":       n.OrderID,
			"type":           n.Type,
			"error":          err.Error(),
		})
	}
}

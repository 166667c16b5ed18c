package repository

import (
	"fmt"
	"sync"
	"time"

	"service-market/internal/marketerrors"
	model "service-market/internal/models"
)

// MarketDB defines the shared storage for orders, bids and provider
// standing. Every compound check-then-mutate the engine relies on
// (status transitions, provider assignment, bid uniqueness, bid
// acceptance) is a single atomic operation of this interface.
type MarketDB interface {
	GetService(serviceID string) (model.Service, error)

	CreateOrder(o model.Order) error
	GetOrder(orderID string) (model.Order, error)
	ListOrdersByClient(clientID string) ([]model.Order, error)
	AssignProvider(orderID, providerID string) (model.Order, error)
	UpdateOrderStatus(orderID string, from, to model.OrderStatus) (model.Order, error)
	PauseOrder(orderID, reason string) (model.Order, error)
	CancelOrder(orderID, reason string, from ...model.OrderStatus) (model.Order, error)
	ReleaseProvider(orderID, providerID string) (model.Order, error)

	InsertBid(bid model.Bid) error
	GetBid(bidID string) (model.Bid, error)
	GetBidsByOrder(orderID string) ([]model.Bid, error)
	AcceptBid(bidID string, price model.Breakdown) (model.Order, model.Bid, error)
	WithdrawBid(bidID, providerID string) (model.Bid, error)

	GetStanding(providerID string) (model.ProviderStanding, error)
	SaveStanding(s model.ProviderStanding) error
	AddPenalty(providerID string, points int) (model.ProviderStanding, error)
	ApplyBlock(providerID string, until *time.Time) (model.ProviderStanding, error)
}

// activeStatuses are the states that occupy a provider. A provider may
// hold at most one order in any of them.
var activeStatuses = []model.OrderStatus{
	model.OrderAccepted,
	model.OrderOnWay,
	model.OrderArrived,
	model.OrderInProgress,
	model.OrderPaused,
}

// MemoryRepo is a concurrency-safe in-memory implementation of MarketDB.
// One mutex covers all maps so cross-entity invariants (one active order
// per provider, one winning bid per order) hold under concurrent requests.
type MemoryRepo struct {
	mu        sync.RWMutex
	services  map[string]model.Service
	orders    map[string]model.Order
	bids      map[string]model.Bid
	orderBids map[string][]string // key: orderID -> value: bidIDs in placement order
	standings map[string]model.ProviderStanding
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		services:  make(map[string]model.Service),
		orders:    make(map[string]model.Order),
		bids:      make(map[string]model.Bid),
		orderBids: make(map[string][]string),
		standings: make(map[string]model.ProviderStanding),
	}
}

// AddService seeds a catalog entry. The engine never writes the catalog;
// this is for wiring and tests.
func (r *MemoryRepo) AddService(svc model.Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[svc.ServiceID] = svc
}

// GetService returns one catalog entry.
func (r *MemoryRepo) GetService(serviceID string) (model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[serviceID]
	if !ok {
		return model.Service{}, fmt.Errorf("get service %s: %w", serviceID, marketerrors.ErrNotFound)
	}
	return svc, nil
}

// CreateOrder stores a new order.
func (r *MemoryRepo) CreateOrder(o model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.OrderID]; ok {
		return fmt.Errorf("create order %s: %w", o.OrderID, marketerrors.ErrConflict)
	}
	r.orders[o.OrderID] = o
	return nil
}

// GetOrder returns one order.
func (r *MemoryRepo) GetOrder(orderID string) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getOrderLocked(orderID)
}

func (r *MemoryRepo) getOrderLocked(orderID string) (model.Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return model.Order{}, fmt.Errorf("get order %s: %w", orderID, marketerrors.ErrNotFound)
	}
	return o, nil
}

// ListOrdersByClient returns all orders placed by a client.
func (r *MemoryRepo) ListOrdersByClient(clientID string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Order
	for _, o := range r.orders {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

// providerBusyLocked reports whether the provider already holds an order
// in an occupying state.
func (r *MemoryRepo) providerBusyLocked(providerID string) bool {
	for _, o := range r.orders {
		if o.ProviderID != providerID {
			continue
		}
		for _, s := range activeStatuses {
			if o.Status == s {
				return true
			}
		}
	}
	return false
}

// AssignProvider moves a pending order to accepted with the given
// provider. The pending check, the exclusion check and the one-active-
// order-per-provider check happen inside one critical section so two
// concurrent accepts cannot both succeed.
func (r *MemoryRepo) AssignProvider(orderID, providerID string) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, err := r.getOrderLocked(orderID)
	if err != nil {
		return model.Order{}, err
	}
	if o.Status != model.OrderPending {
		return model.Order{}, fmt.Errorf("assign provider to order %s: order is %s: %w", orderID, o.Status, marketerrors.ErrInvalidState)
	}
	if o.Excludes(providerID) {
		return model.Order{}, fmt.Errorf("assign provider to order %s: provider %s excluded: %w", orderID, providerID, marketerrors.ErrForbidden)
	}
	if o.ProviderID != "" && o.ProviderID != providerID {
		return model.Order{}, fmt.Errorf("assign provider to order %s: order is reserved for provider %s: %w", orderID, o.ProviderID, marketerrors.ErrForbidden)
	}
	if r.providerBusyLocked(providerID) {
		return model.Order{}, fmt.Errorf("assign provider to order %s: provider %s already has an active order: %w", orderID, providerID, marketerrors.ErrConflict)
	}

	o.ProviderID = providerID
	o.Status = model.OrderAccepted
	o.UpdatedAt = time.Now().UTC()
	r.orders[orderID] = o
	return o, nil
}

// UpdateOrderStatus is a compare-and-set transition: it succeeds only when
// the order is still in the expected pre-state.
func (r *MemoryRepo) UpdateOrderStatus(orderID string, from, to model.OrderStatus) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, err := r.getOrderLocked(orderID)
	if err != nil {
		return model.Order{}, err
	}
	if o.Status != from {
		return model.Order{}, fmt.Errorf("transition order %s from %s to %s: order is %s: %w", orderID, from, to, o.Status, marketerrors.ErrInvalidState)
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	r.orders[orderID] = o
	return o, nil
}

// PauseOrder holds an in-progress order, recording the emergency reason.
func (r *MemoryRepo) PauseOrder(orderID, reason string) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, err := r.getOrderLocked(orderID)
	if err != nil {
		return model.Order{}, err
	}
	if o.Status != model.OrderInProgress {
		return model.Order{}, fmt.Errorf("pause order %s: order is %s: %w", orderID, o.Status, marketerrors.ErrInvalidState)
	}
	o.Status = model.OrderPaused
	o.PauseReason = reason
	o.UpdatedAt = time.Now().UTC()
	r.orders[orderID] = o
	return o, nil
}

// CancelOrder terminates an order with a reason, but only from one of the
// allowed pre-states.
func (r *MemoryRepo) CancelOrder(orderID, reason string, from ...model.OrderStatus) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, err := r.getOrderLocked(orderID)
	if err != nil {
		return model.Order{}, err
	}
	allowed := false
	for _, s := range from {
		if o.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return model.Order{}, fmt.Errorf("cancel order %s: order is %s: %w", orderID, o.Status, marketerrors.ErrInvalidState)
	}
	o.Status = model.OrderCancelled
	o.CancelReason = reason
	o.UpdatedAt = time.Now().UTC()
	r.orders[orderID] = o
	return o, nil
}

// ReleaseProvider puts an order the assigned provider walked away from
// back into the matching pool and bars that provider from it for good.
func (r *MemoryRepo) ReleaseProvider(orderID, providerID string) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, err := r.getOrderLocked(orderID)
	if err != nil {
		return model.Order{}, err
	}
	if o.Status != model.OrderAccepted && o.Status != model.OrderOnWay {
		return model.Order{}, fmt.Errorf("release order %s: order is %s: %w", orderID, o.Status, marketerrors.ErrInvalidState)
	}
	if o.ProviderID != providerID {
		return model.Order{}, fmt.Errorf("release order %s: provider %s is not assigned: %w", orderID, providerID, marketerrors.ErrForbidden)
	}
	o.ProviderID = ""
	o.Status = model.OrderPending
	o.ExcludedProviderIDs = append(o.ExcludedProviderIDs, providerID)
	o.UpdatedAt = time.Now().UTC()
	r.orders[orderID] = o
	return o, nil
}

// InsertBid records a provider's bid. The one-bid-per-provider-per-order
// invariant and the parent-order checks hold inside one critical section.
func (r *MemoryRepo) InsertBid(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, err := r.getOrderLocked(bid.OrderID)
	if err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}
	if o.PricingMode != model.ModeBidding {
		return fmt.Errorf("insert bid for order %s: order does not accept bids: %w", bid.OrderID, marketerrors.ErrValidation)
	}
	if o.Status != model.OrderPending {
		return fmt.Errorf("insert bid for order %s: order is %s: %w", bid.OrderID, o.Status, marketerrors.ErrInvalidState)
	}
	if !o.BidWindowOpen(bid.CreatedAt) {
		return fmt.Errorf("insert bid for order %s: bidding window expired: %w", bid.OrderID, marketerrors.ErrInvalidState)
	}
	if o.Excludes(bid.ProviderID) {
		return fmt.Errorf("insert bid for order %s: provider %s excluded: %w", bid.OrderID, bid.ProviderID, marketerrors.ErrForbidden)
	}
	for _, id := range r.orderBids[bid.OrderID] {
		if r.bids[id].ProviderID == bid.ProviderID {
			return fmt.Errorf("insert bid for order %s: provider %s already bid: %w", bid.OrderID, bid.ProviderID, marketerrors.ErrConflict)
		}
	}

	r.bids[bid.BidID] = bid
	r.orderBids[bid.OrderID] = append(r.orderBids[bid.OrderID], bid.BidID)
	return nil
}

// GetBid returns one bid.
func (r *MemoryRepo) GetBid(bidID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, marketerrors.ErrNotFound)
	}
	return b, nil
}

// GetBidsByOrder returns all bids for an order in placement order.
func (r *MemoryRepo) GetBidsByOrder(orderID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.orders[orderID]; !ok {
		return nil, fmt.Errorf("get bids for order %s: %w", orderID, marketerrors.ErrNotFound)
	}
	ids := r.orderBids[orderID]
	bids := make([]model.Bid, 0, len(ids))
	for _, id := range ids {
		bids = append(bids, r.bids[id])
	}
	return bids, nil
}

// AcceptBid arbitrates the auction: it re-verifies that the bid is still
// active and the parent order still pending inside the same critical
// section that flips both, so at most one bid per order can ever win.
func (r *MemoryRepo) AcceptBid(bidID string, price model.Breakdown) (model.Order, model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bids[bidID]
	if !ok {
		return model.Order{}, model.Bid{}, fmt.Errorf("accept bid %s: %w", bidID, marketerrors.ErrNotFound)
	}
	if b.Status != model.BidActive {
		return model.Order{}, model.Bid{}, fmt.Errorf("accept bid %s: bid already %s: %w", bidID, b.Status, marketerrors.ErrConflict)
	}
	o, err := r.getOrderLocked(b.OrderID)
	if err != nil {
		return model.Order{}, model.Bid{}, fmt.Errorf("accept bid %s: %w", bidID, err)
	}
	if o.Status != model.OrderPending {
		return model.Order{}, model.Bid{}, fmt.Errorf("accept bid %s: order is %s: %w", bidID, o.Status, marketerrors.ErrInvalidState)
	}
	if r.providerBusyLocked(b.ProviderID) {
		return model.Order{}, model.Bid{}, fmt.Errorf("accept bid %s: provider %s already has an active order: %w", bidID, b.ProviderID, marketerrors.ErrConflict)
	}

	b.Status = model.BidAccepted
	r.bids[bidID] = b

	o.ProviderID = b.ProviderID
	o.Price = price
	o.Status = model.OrderAccepted
	o.UpdatedAt = time.Now().UTC()
	r.orders[o.OrderID] = o
	return o, b, nil
}

// WithdrawBid retracts a provider's own active bid while the parent order
// is still pending.
func (r *MemoryRepo) WithdrawBid(bidID, providerID string) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: %w", bidID, marketerrors.ErrNotFound)
	}
	if b.ProviderID != providerID {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: not owned by provider %s: %w", bidID, providerID, marketerrors.ErrForbidden)
	}
	if b.Status != model.BidActive {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: bid already %s: %w", bidID, b.Status, marketerrors.ErrConflict)
	}
	o, err := r.getOrderLocked(b.OrderID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: %w", bidID, err)
	}
	if o.Status != model.OrderPending {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: order is %s: %w", bidID, o.Status, marketerrors.ErrInvalidState)
	}

	b.Status = model.BidWithdrawn
	r.bids[bidID] = b
	return b, nil
}

// GetStanding returns a provider's standing row.
func (r *MemoryRepo) GetStanding(providerID string) (model.ProviderStanding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.standings[providerID]
	if !ok {
		return model.ProviderStanding{}, fmt.Errorf("get standing for provider %s: %w", providerID, marketerrors.ErrNotFound)
	}
	return s, nil
}

// SaveStanding upserts a provider's standing row.
func (r *MemoryRepo) SaveStanding(s model.ProviderStanding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.standings[s.ProviderID] = s
	return nil
}

// AddPenalty atomically increments a provider's cumulative penalty points.
func (r *MemoryRepo) AddPenalty(providerID string, points int) (model.ProviderStanding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.standings[providerID]
	if !ok {
		s = model.ProviderStanding{ProviderID: providerID}
	}
	s.PenaltyPoints += points
	r.standings[providerID] = s
	return s, nil
}

// ApplyBlock suspends a provider until the given time (nil means
// permanently) and counts the offense.
func (r *MemoryRepo) ApplyBlock(providerID string, until *time.Time) (model.ProviderStanding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.standings[providerID]
	if !ok {
		s = model.ProviderStanding{ProviderID: providerID}
	}
	s.IsBlocked = true
	s.BlockedUntil = until
	s.BlockCount++
	r.standings[providerID] = s
	return s, nil
}

package repository

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"service-market/internal/marketerrors"
	model "service-market/internal/models"

	"github.com/stretchr/testify/require"
)

func seedService(r *MemoryRepo) model.Service {
	svc := model.Service{
		ServiceID:       "svc1",
		Title:           "Apartment cleaning",
		BasePrice:       100,
		AllowedFormulas: []string{"standard", "premium"},
		AllowsBidding:   true,
	}
	r.AddService(svc)
	return svc
}

func pendingBiddingOrder(id string) model.Order {
	now := time.Now().UTC()
	return model.Order{
		OrderID:       id,
		ClientID:      "client1",
		ServiceID:     "svc1",
		Status:        model.OrderPending,
		PricingMode:   model.ModeBidding,
		MinimumPrice:  100,
		BidExpiryTime: now.Add(time.Hour),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func pendingFixedOrder(id string) model.Order {
	now := time.Now().UTC()
	return model.Order{
		OrderID:     id,
		ClientID:    "client1",
		ServiceID:   "svc1",
		Status:      model.OrderPending,
		PricingMode: model.ModeFixed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func activeBid(id, orderID, providerID string, price float64) model.Bid {
	return model.Bid{
		BidID:      id,
		OrderID:    orderID,
		ProviderID: providerID,
		Price:      price,
		Status:     model.BidActive,
		CreatedAt:  time.Now().UTC(),
	}
}

// Tests service lookup
func TestMemoryRepo_GetService(t *testing.T) {
	repo := NewMemoryRepo()
	svc := seedService(repo)

	got, err := repo.GetService(svc.ServiceID)
	require.NoError(t, err)
	require.Equal(t, svc, got)

	_, err = repo.GetService("missing")
	require.True(t, errors.Is(err, marketerrors.ErrNotFound))
}

// Tests UpdateOrderStatus compare-and-set
func TestMemoryRepo_UpdateOrderStatus(t *testing.T) {
	repo := NewMemoryRepo()
	seedService(repo)
	require.NoError(t, repo.CreateOrder(pendingFixedOrder("order1")))

	_, err := repo.AssignProvider("order1", "prov1")
	require.NoError(t, err)

	o, err := repo.UpdateOrderStatus("order1", model.OrderAccepted, model.OrderOnWay)
	require.NoError(t, err)
	require.Equal(t, model.OrderOnWay, o.Status)

	// CAS from a stale pre-state fails
	_, err = repo.UpdateOrderStatus("order1", model.OrderAccepted, model.OrderOnWay)
	require.True(t, errors.Is(err, marketerrors.ErrInvalidState))

	_, err = repo.UpdateOrderStatus("missing", model.OrderPending, model.OrderAccepted)
	require.True(t, errors.Is(err, marketerrors.ErrNotFound))
}

// Tests AssignProvider invariants
func TestMemoryRepo_AssignProvider(t *testing.T) {
	t.Run("excluded_provider_rejected", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		o := pendingFixedOrder("order1")
		o.ExcludedProviderIDs = []string{"prov1"}
		require.NoError(t, repo.CreateOrder(o))

		_, err := repo.AssignProvider("order1", "prov1")
		require.True(t, errors.Is(err, marketerrors.ErrForbidden))
	})

	t.Run("reserved_order_only_for_named_provider", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		o := pendingFixedOrder("order1")
		o.ProviderID = "prov1"
		require.NoError(t, repo.CreateOrder(o))

		_, err := repo.AssignProvider("order1", "prov2")
		require.True(t, errors.Is(err, marketerrors.ErrForbidden))

		got, err := repo.AssignProvider("order1", "prov1")
		require.NoError(t, err)
		require.Equal(t, model.OrderAccepted, got.Status)
	})

	t.Run("busy_provider_rejected", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		require.NoError(t, repo.CreateOrder(pendingFixedOrder("order1")))
		require.NoError(t, repo.CreateOrder(pendingFixedOrder("order2")))

		_, err := repo.AssignProvider("order1", "prov1")
		require.NoError(t, err)

		_, err = repo.AssignProvider("order2", "prov1")
		require.True(t, errors.Is(err, marketerrors.ErrConflict))
	})

	t.Run("concurrent_assigns_one_winner", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		const orders = 20
		for i := 0; i < orders; i++ {
			require.NoError(t, repo.CreateOrder(pendingFixedOrder(fmt.Sprintf("order%d", i))))
		}

		var wg sync.WaitGroup
		var wins int64
		for i := 0; i < orders; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, err := repo.AssignProvider(fmt.Sprintf("order%d", i), "prov1"); err == nil {
					atomic.AddInt64(&wins, 1)
				}
			}(i)
		}
		wg.Wait()

		// One provider can never be double-booked
		require.Equal(t, int64(1), wins)
	})
}

// Tests InsertBid invariants
func TestMemoryRepo_InsertBid(t *testing.T) {
	t.Run("duplicate_bid_rejected", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		require.NoError(t, repo.CreateOrder(pendingBiddingOrder("order1")))

		require.NoError(t, repo.InsertBid(activeBid("bid1", "order1", "prov1", 120)))

		err := repo.InsertBid(activeBid("bid2", "order1", "prov1", 130))
		require.True(t, errors.Is(err, marketerrors.ErrConflict))
	})

	t.Run("expired_window_rejected", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		o := pendingBiddingOrder("order1")
		o.BidExpiryTime = time.Now().UTC().Add(-time.Minute)
		require.NoError(t, repo.CreateOrder(o))

		err := repo.InsertBid(activeBid("bid1", "order1", "prov1", 120))
		require.True(t, errors.Is(err, marketerrors.ErrInvalidState))
	})

	t.Run("fixed_order_rejects_bids", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		require.NoError(t, repo.CreateOrder(pendingFixedOrder("order1")))

		err := repo.InsertBid(activeBid("bid1", "order1", "prov1", 120))
		require.True(t, errors.Is(err, marketerrors.ErrValidation))
	})

	t.Run("unknown_order_rejected", func(t *testing.T) {
		repo := NewMemoryRepo()
		err := repo.InsertBid(activeBid("bid1", "missing", "prov1", 120))
		require.True(t, errors.Is(err, marketerrors.ErrNotFound))
	})

	t.Run("concurrent_duplicates_one_winner", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		require.NoError(t, repo.CreateOrder(pendingBiddingOrder("order1")))

		const attempts = 20
		var wg sync.WaitGroup
		var wins int64
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if err := repo.InsertBid(activeBid(fmt.Sprintf("bid%d", i), "order1", "prov1", 120)); err == nil {
					atomic.AddInt64(&wins, 1)
				}
			}(i)
		}
		wg.Wait()

		require.Equal(t, int64(1), wins)
	})
}

// Tests AcceptBid arbitration
func TestMemoryRepo_AcceptBid(t *testing.T) {
	settle := func(price float64) model.Breakdown {
		commission := price * 0.2
		return model.Breakdown{BasePrice: price, Subtotal: price, Total: price, Commission: commission, ProviderNet: price - commission}
	}

	t.Run("winner_finalizes_order", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		require.NoError(t, repo.CreateOrder(pendingBiddingOrder("order1")))
		require.NoError(t, repo.InsertBid(activeBid("bid1", "order1", "prov1", 120)))

		o, b, err := repo.AcceptBid("bid1", settle(120))
		require.NoError(t, err)
		require.Equal(t, model.OrderAccepted, o.Status)
		require.Equal(t, "prov1", o.ProviderID)
		require.Equal(t, 120.0, o.Price.Total)
		require.Equal(t, model.BidAccepted, b.Status)
	})

	t.Run("second_accept_rejected", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		require.NoError(t, repo.CreateOrder(pendingBiddingOrder("order1")))
		require.NoError(t, repo.InsertBid(activeBid("bid1", "order1", "prov1", 120)))
		require.NoError(t, repo.InsertBid(activeBid("bid2", "order1", "prov2", 110)))

		_, _, err := repo.AcceptBid("bid1", settle(120))
		require.NoError(t, err)

		// The losing bid is still active in storage but its parent order
		// has left pending, so it can never be accepted.
		losing, err := repo.GetBid("bid2")
		require.NoError(t, err)
		require.Equal(t, model.BidActive, losing.Status)

		_, _, err = repo.AcceptBid("bid2", settle(110))
		require.True(t, errors.Is(err, marketerrors.ErrInvalidState))
	})

	t.Run("withdrawn_bid_rejected", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		require.NoError(t, repo.CreateOrder(pendingBiddingOrder("order1")))
		require.NoError(t, repo.InsertBid(activeBid("bid1", "order1", "prov1", 120)))

		_, err := repo.WithdrawBid("bid1", "prov1")
		require.NoError(t, err)

		_, _, err = repo.AcceptBid("bid1", settle(120))
		require.True(t, errors.Is(err, marketerrors.ErrConflict))
	})

	t.Run("concurrent_accepts_exactly_one_winner", func(t *testing.T) {
		repo := NewMemoryRepo()
		seedService(repo)
		require.NoError(t, repo.CreateOrder(pendingBiddingOrder("order1")))

		const bids = 10
		for i := 0; i < bids; i++ {
			require.NoError(t, repo.InsertBid(activeBid(fmt.Sprintf("bid%d", i), "order1", fmt.Sprintf("prov%d", i), 120)))
		}

		var wg sync.WaitGroup
		var wins int64
		for i := 0; i < bids; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, _, err := repo.AcceptBid(fmt.Sprintf("bid%d", i), settle(120)); err == nil {
					atomic.AddInt64(&wins, 1)
				}
			}(i)
		}
		wg.Wait()

		require.Equal(t, int64(1), wins)

		o, err := repo.GetOrder("order1")
		require.NoError(t, err)
		require.Equal(t, model.OrderAccepted, o.Status)
		require.NotEmpty(t, o.ProviderID)
		require.Equal(t, 120.0, o.Price.Total)
	})
}

// Tests WithdrawBid
func TestMemoryRepo_WithdrawBid(t *testing.T) {
	repo := NewMemoryRepo()
	seedService(repo)
	require.NoError(t, repo.CreateOrder(pendingBiddingOrder("order1")))
	require.NoError(t, repo.InsertBid(activeBid("bid1", "order1", "prov1", 120)))

	_, err := repo.WithdrawBid("bid1", "prov2")
	require.True(t, errors.Is(err, marketerrors.ErrForbidden))

	b, err := repo.WithdrawBid("bid1", "prov1")
	require.NoError(t, err)
	require.Equal(t, model.BidWithdrawn, b.Status)

	_, err = repo.WithdrawBid("bid1", "prov1")
	require.True(t, errors.Is(err, marketerrors.ErrConflict))
}

// Tests ReleaseProvider
func TestMemoryRepo_ReleaseProvider(t *testing.T) {
	repo := NewMemoryRepo()
	seedService(repo)
	require.NoError(t, repo.CreateOrder(pendingFixedOrder("order1")))

	_, err := repo.AssignProvider("order1", "prov1")
	require.NoError(t, err)

	o, err := repo.ReleaseProvider("order1", "prov1")
	require.NoError(t, err)
	require.Equal(t, model.OrderPending, o.Status)
	require.Empty(t, o.ProviderID)
	require.True(t, o.Excludes("prov1"))

	// The cancelling provider cannot take the order again
	_, err = repo.AssignProvider("order1", "prov1")
	require.True(t, errors.Is(err, marketerrors.ErrForbidden))

	// But another provider can
	got, err := repo.AssignProvider("order1", "prov2")
	require.NoError(t, err)
	require.Equal(t, "prov2", got.ProviderID)
}

// Tests standing mutations
func TestMemoryRepo_Standing(t *testing.T) {
	repo := NewMemoryRepo()

	_, err := repo.GetStanding("prov1")
	require.True(t, errors.Is(err, marketerrors.ErrNotFound))

	require.NoError(t, repo.SaveStanding(model.ProviderStanding{ProviderID: "prov1", Rating: 4.2, ReviewCount: 7}))

	s, err := repo.AddPenalty("prov1", 1)
	require.NoError(t, err)
	require.Equal(t, 1, s.PenaltyPoints)

	until := time.Now().UTC().Add(7 * 24 * time.Hour)
	s, err = repo.ApplyBlock("prov1", &until)
	require.NoError(t, err)
	require.True(t, s.IsBlocked)
	require.Equal(t, 1, s.BlockCount)
	require.True(t, s.BlockedAt(time.Now().UTC()))
	require.False(t, s.BlockedAt(until.Add(time.Minute)))
}

// Tests CancelOrder pre-state gate
func TestMemoryRepo_CancelOrder(t *testing.T) {
	repo := NewMemoryRepo()
	seedService(repo)
	require.NoError(t, repo.CreateOrder(pendingFixedOrder("order1")))

	_, err := repo.AssignProvider("order1", "prov1")
	require.NoError(t, err)
	_, err = repo.UpdateOrderStatus("order1", model.OrderAccepted, model.OrderOnWay)
	require.NoError(t, err)

	// Too late for the client once the provider is en route
	_, err = repo.CancelOrder("order1", "changed my mind", model.OrderPending, model.OrderAccepted)
	require.True(t, errors.Is(err, marketerrors.ErrInvalidState))

	require.NoError(t, repo.CreateOrder(pendingFixedOrder("order2")))
	o, err := repo.CancelOrder("order2", "changed my mind", model.OrderPending, model.OrderAccepted)
	require.NoError(t, err)
	require.Equal(t, model.OrderCancelled, o.Status)
	require.Equal(t, "changed my mind", o.CancelReason)
}

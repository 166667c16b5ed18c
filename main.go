package main

import (
	"fmt"
	"os"
	"time"

	bidding "service-market/internal/biddingService"
	"service-market/internal/config"
	model "service-market/internal/models"
	order "service-market/internal/orderService"
	"service-market/internal/platform"
	"service-market/internal/pricing"
	"service-market/internal/repository"
	"service-market/internal/server"
	"service-market/internal/standing"
)

func main() {
	cfg := config.Load()

	repo := repository.NewMemoryRepo()
	prepopulateCatalog(repo)

	pricer := pricing.NewEngine(catalogFromConfig(cfg))

	orderSvc := order.NewOrderService(order.Deps{
		Repo:     repo,
		Pricer:   pricer,
		Notifier: platform.LogNotifier{},
		Payments: platform.LogPaymentProcessor{},
		Lookup:   platform.StaticLookup{},
		Reviews:  platform.StandingAggregator{Store: repo},
		BlockPolicy: standing.Policy{
			RatingThreshold: cfg.BlockRatingThreshold,
			MinReviews:      cfg.BlockMinReviews,
		},
		DefaultBidExpiry: cfg.DefaultBidExpiry,
	})
	biddingSvc := bidding.NewBiddingService(repo, pricer, orderSvc, platform.LogNotifier{})

	router := server.SetupRouter(orderSvc, biddingSvc)

	addr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Starting marketplace engine on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// catalogFromConfig folds the configured platform rates into the stock
// pricing rows.
func catalogFromConfig(cfg config.Config) pricing.Catalog {
	catalog := pricing.DefaultCatalog()
	catalog.CommissionRate = cfg.CommissionRate
	catalog.DefaultFreeRadiusKm = cfg.DefaultFreeRadiusKm
	catalog.DefaultPerKmRate = cfg.DefaultPerKmRate
	catalog.SingleNightFee = cfg.SingleNightFee
	catalog.DoubleNightFee = cfg.DoubleNightFee
	return catalog
}

// prepopulateCatalog adds sample services to the in-memory repo
func prepopulateCatalog(repo *repository.MemoryRepo) {
	services := []model.Service{
		{
			ServiceID:       "svc-cleaning",
			Title:           "Apartment cleaning",
			BasePrice:       100,
			AllowedFormulas: []string{"standard", "recurring", "premium", "urgent", "night"},
			AllowsBidding:   true,
		},
		{
			ServiceID:       "svc-plumbing",
			Title:           "Plumbing repair",
			BasePrice:       150,
			AllowedFormulas: []string{"standard", "premium", "urgent"},
			AllowsBidding:   true,
		},
		{
			ServiceID:       "svc-babysitting",
			Title:           "Babysitting",
			BasePrice:       80,
			AllowedFormulas: []string{"standard", "recurring", "night"},
			AllowsBidding:   false,
		},
	}

	now := time.Now().UTC()
	for _, svc := range services {
		svc.CreatedAt = now
		repo.AddService(svc)
	}
}

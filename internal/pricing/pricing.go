package pricing

import (
	"fmt"
	"math"
	"time"

	"service-market/internal/marketerrors"
	model "service-market/internal/models"
)

// FormulaKind distinguishes percentage modifiers from fixed surcharges.
type FormulaKind string

const (
	KindPercent FormulaKind = "percent"
	KindFixed   FormulaKind = "fixed"
)

// FormulaRate is one pricing-tier row: a percentage of the base price or a
// fixed amount added to it.
type FormulaRate struct {
	Kind   FormulaKind `json:"kind"`
	Amount float64     `json:"amount"`
}

// Catalog carries the pricing rows and platform rates. It is injected into
// the Engine explicitly so quotes stay a pure function of their inputs.
type Catalog struct {
	Formulas            map[string]FormulaRate
	CommissionRate      float64
	DefaultFreeRadiusKm float64
	DefaultPerKmRate    float64
	SingleNightFee      float64
	DoubleNightFee      float64
}

// DefaultCatalog returns the stock pricing rows: standard 0%,
// recurring -10%, premium +30%, urgent +50 fixed, night +30 fixed,
// 20% commission, 10km free radius at 5/km, night fees 30/60.
func DefaultCatalog() Catalog {
	return Catalog{
		Formulas: map[string]FormulaRate{
			"standard":  {Kind: KindPercent, Amount: 0},
			"recurring": {Kind: KindPercent, Amount: -10},
			"premium":   {Kind: KindPercent, Amount: 30},
			"urgent":    {Kind: KindFixed, Amount: 50},
			"night":     {Kind: KindFixed, Amount: 30},
		},
		CommissionRate:      0.20,
		DefaultFreeRadiusKm: 10,
		DefaultPerKmRate:    5,
		SingleNightFee:      30,
		DoubleNightFee:      60,
	}
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyFormula applies one pricing-tier row to a base price.
func ApplyFormula(base float64, rate FormulaRate) float64 {
	if rate.Kind == KindFixed {
		return base + rate.Amount
	}
	return base * (1 + rate.Amount/100)
}

// DistanceFee charges for every started km past the free intervention
// radius. Inside the radius travel is free.
func DistanceFee(distanceKm, freeRadiusKm, perKmRate float64) float64 {
	if distanceKm <= freeRadiusKm {
		return 0
	}
	return math.Ceil(distanceKm-freeRadiusKm) * perKmRate
}

// NightCount walks the scheduled interval hour by hour and counts the
// distinct contiguous spans falling inside [22:00, 06:00).
func NightCount(start time.Time, durationHours float64) int {
	hours := int(math.Ceil(durationHours))
	nights := 0
	inNight := false
	for i := 0; i < hours; i++ {
		h := start.Add(time.Duration(i) * time.Hour).Hour()
		night := h >= 22 || h < 6
		if night && !inNight {
			nights++
		}
		inNight = night
	}
	return nights
}

// NightFee maps a night count onto the step function: zero nights are
// free, one night charges the single fee, two or more distinct nights
// charge the flat double fee regardless of the exact count.
func NightFee(nights int, singleFee, doubleFee float64) float64 {
	switch {
	case nights <= 0:
		return 0
	case nights == 1:
		return singleFee
	default:
		return doubleFee
	}
}

// ProviderRates are the assigned provider's travel tariff. Zero values
// fall back to the catalog defaults.
type ProviderRates struct {
	FreeRadiusKm float64
	PerKmRate    float64
}

// QuoteRequest carries the variable inputs of a quote. Provider is nil in
// quote-only mode and set in quote-with-assigned-provider mode.
type QuoteRequest struct {
	Formula       string
	ScheduledAt   time.Time
	DurationHours float64
	Quantity      int
	DistanceKm    float64
	Provider      *ProviderRates
}

// Engine combines the pricing primitives into full breakdowns. It holds no
// mutable state: identical inputs always produce identical breakdowns.
type Engine struct {
	catalog Catalog
}

// NewEngine creates a pricing engine over the given catalog.
func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Settle turns an agreed amount (a winning bid's price) into a breakdown
// with the platform commission split applied. This is the only pricing
// entry point of the bid-acceptance path; it never touches the formula,
// distance or night components.
func (e *Engine) Settle(amount float64) model.Breakdown {
	subtotal := Round2(amount)
	commission := Round2(subtotal * e.catalog.CommissionRate)
	return model.Breakdown{
		BasePrice:   subtotal,
		Subtotal:    subtotal,
		Commission:  commission,
		Total:       subtotal,
		ProviderNet: Round2(subtotal - commission),
	}
}

// Quote computes the full price breakdown for one service request. The
// fixed-price order path and the bidding floor check both call it and must
// agree, so it reads nothing beyond its arguments and the catalog.
func (e *Engine) Quote(svc model.Service, req QuoteRequest) (model.Breakdown, error) {
	if req.DurationHours <= 0 {
		return model.Breakdown{}, fmt.Errorf("pricing: %w - duration must be positive", marketerrors.ErrValidation)
	}
	if req.Quantity < 1 {
		return model.Breakdown{}, fmt.Errorf("pricing: %w - quantity must be at least 1", marketerrors.ErrValidation)
	}
	if !svc.AllowsFormula(req.Formula) {
		return model.Breakdown{}, fmt.Errorf("pricing: %w - formula %q not allowed for service %s", marketerrors.ErrValidation, req.Formula, svc.ServiceID)
	}
	rate, ok := e.catalog.Formulas[req.Formula]
	if !ok {
		return model.Breakdown{}, fmt.Errorf("pricing: %w - unknown formula %q", marketerrors.ErrValidation, req.Formula)
	}

	units := req.DurationHours * float64(req.Quantity)
	basePart := Round2(svc.BasePrice * units)
	formulaFee := Round2(ApplyFormula(svc.BasePrice, rate)*units - svc.BasePrice*units)

	radius, perKm := e.catalog.DefaultFreeRadiusKm, e.catalog.DefaultPerKmRate
	if req.Provider != nil {
		if req.Provider.FreeRadiusKm > 0 {
			radius = req.Provider.FreeRadiusKm
		}
		if req.Provider.PerKmRate > 0 {
			perKm = req.Provider.PerKmRate
		}
	}
	distanceFee := Round2(DistanceFee(req.DistanceKm, radius, perKm))

	var nightFee float64
	// The night formula already prices the nocturnal work; charging the
	// surcharge on top would bill the same hours twice.
	if req.Formula != "night" {
		nights := NightCount(req.ScheduledAt, req.DurationHours)
		nightFee = Round2(NightFee(nights, e.catalog.SingleNightFee, e.catalog.DoubleNightFee))
	}

	subtotal := Round2(basePart + formulaFee + distanceFee + nightFee)
	commission := Round2(subtotal * e.catalog.CommissionRate)

	return model.Breakdown{
		BasePrice:   basePart,
		FormulaFee:  formulaFee,
		DistanceFee: distanceFee,
		NightFee:    nightFee,
		Subtotal:    subtotal,
		Commission:  commission,
		Total:       subtotal,
		ProviderNet: Round2(subtotal - commission),
	}, nil
}

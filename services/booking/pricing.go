package booking

import (
	"context"
	"fmt"

	"haven/models"
)

// photographyPrices maps package codes to their flat PHP price.
var photographyPrices = map[string]float64{
	"pkg1": 45000,
	"pkg2": 55000,
	"pkg3": 65000,
	"pkg4": 75000,
}

// balloonsPrice is the flat add-on price for balloon decoration.
const balloonsPrice = 15000

// Quote is the deterministic price breakdown for a booking draft.
type Quote struct {
	VenueTotal       float64 `json:"venue_total"`
	PhotographyTotal float64 `json:"photography_total"`
	BalloonsTotal    float64 `json:"balloons_total"`
	MenuTotal        float64 `json:"menu_total"`
	Total            float64 `json:"total"`
	Days             int     `json:"days"`
}

// ComputeQuote prices a booking draft against the current venue and menu
// catalog. The venue charge is price-per-day times the inclusive day count;
// add-ons are flat. The result is frozen onto the booking at creation and
// never recomputed afterwards.
func (s *DefaultBookingService) ComputeQuote(ctx context.Context, b *models.Booking) (*Quote, error) {
	venue, err := s.venueRepo.GetByID(ctx, b.VenueID)
	if err != nil {
		return nil, &NotFoundError{Resource: "venue", ID: b.VenueID}
	}

	days := b.Days()
	q := &Quote{
		Days:       days,
		VenueTotal: venue.PricePerDay * float64(days),
	}

	if b.PhotographyPackage != "" {
		price, ok := photographyPrices[b.PhotographyPackage]
		if !ok {
			return nil, &ValidationError{Field: "photographyPackage", Message: fmt.Sprintf("unknown package %q", b.PhotographyPackage)}
		}
		q.PhotographyTotal = price
	}
	if b.Balloons {
		q.BalloonsTotal = balloonsPrice
	}

	if len(b.MenuItemIDs) > 0 {
		items, err := s.menuRepo.GetByIDs(ctx, b.MenuItemIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to price menu items: %w", err)
		}
		found := make(map[string]float64, len(items))
		for _, item := range items {
			found[item.ID] = item.Price
		}
		for _, id := range b.MenuItemIDs {
			price, ok := found[id]
			if !ok {
				return nil, &NotFoundError{Resource: "menu item", ID: id}
			}
			q.MenuTotal += price
		}
	}

	q.Total = q.VenueTotal + q.PhotographyTotal + q.BalloonsTotal + q.MenuTotal
	return q, nil
}

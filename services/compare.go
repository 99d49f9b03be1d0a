package services

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"hippo/models"
)

const dateLayout = "2006-01-02"

// ComparisonService assembles the live price comparison for the two
// candidate destinations of a trip.
type ComparisonService struct {
	amadeus *AmadeusClient
	log     *zap.Logger
}

func NewComparisonService(amadeus *AmadeusClient, log *zap.Logger) *ComparisonService {
	return &ComparisonService{amadeus: amadeus, log: log}
}

// Compare runs both destination pipelines concurrently and joins them. The
// pipelines share no state beyond the token cache; one side failing, or even
// panicking, never disturbs the other.
func (s *ComparisonService) Compare(ctx context.Context, trip models.TripInput) models.ComparisonResult {
	days, nights := tripDuration(trip.StartDate, trip.EndDate)

	var result models.ComparisonResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.DestinationA = s.destination(ctx, trip, trip.CityA, days, nights)
	}()
	go func() {
		defer wg.Done()
		result.DestinationB = s.destination(ctx, trip, trip.CityB, days, nights)
	}()
	wg.Wait()

	return result
}

// destination builds one side of the comparison. An empty destination name
// yields nil without any network activity; every other failure mode degrades
// field-by-field, leaving flightCost null while the rest of the breakdown
// survives.
func (s *ComparisonService) destination(ctx context.Context, trip models.TripInput, city string, days, nights *int) *models.DestinationComparison {
	if city == "" {
		return nil
	}

	price := models.PriceBreakdown{
		Currency: priceCurrency,
		Days:     days,
		Nights:   nights,
	}
	if cost, ok := s.flightCost(ctx, trip, city); ok {
		price.FlightCost = &cost
	}

	return &models.DestinationComparison{
		DestinationLabel:  city,
		Price:             price,
		PopularActivities: []models.Activity{},
		InsiderActivities: []models.Activity{},
	}
}

// flightCost walks the precondition chain for a fare lookup: credentials,
// origin, departure date, token, then both location codes. The first broken
// link reports false. A panic anywhere in the chain is absorbed here so it
// cannot take down the sibling destination's pipeline.
func (s *ComparisonService) flightCost(ctx context.Context, trip models.TripInput, city string) (cost float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("flight lookup panicked",
				zap.String("city", city), zap.Any("panic", r))
			cost, ok = 0, false
		}
	}()

	if !s.amadeus.Configured() || trip.Origin == "" || trip.StartDate == "" {
		return 0, false
	}
	if _, ok := s.amadeus.AccessToken(ctx); !ok {
		return 0, false
	}

	originCode, ok := s.amadeus.ResolveLocation(ctx, trip.Origin)
	if !ok {
		return 0, false
	}
	destinationCode, ok := s.amadeus.ResolveLocation(ctx, city)
	if !ok {
		return 0, false
	}

	return s.amadeus.CheapestFare(ctx, originCode, destinationCode, trip.StartDate, trip.EndDate)
}

// tripDuration derives days and nights from the trip's date range. Days is
// the rounded whole-day difference when both dates parse and the range is
// positive; nights is days-1, floored at one.
func tripDuration(startDate, endDate string) (*int, *int) {
	if startDate == "" || endDate == "" {
		return nil, nil
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, nil
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, nil
	}

	delta := end.Sub(start)
	if delta <= 0 {
		return nil, nil
	}

	days := int(math.Round(delta.Hours() / 24))
	nights := days - 1
	if nights < 1 {
		nights = 1
	}
	return &days, &nights
}

package models

// PriceBreakdown carries per-destination costs. Pointer fields serialize as
// null when a lookup was unavailable; hotelPerNight and transportPerDay are
// reserved for future providers and always null today.
type PriceBreakdown struct {
	Currency        string   `json:"currency"`
	FlightCost      *float64 `json:"flightCost"`
	HotelPerNight   *float64 `json:"hotelPerNight"`
	TransportPerDay *float64 `json:"transportPerDay"`
	Nights          *int     `json:"nights"`
	Days            *int     `json:"days"`
}

type ActivityType string

const (
	ActivityPopular ActivityType = "popular"
	ActivityInsider ActivityType = "insider"
)

type Activity struct {
	Name               string       `json:"name"`
	Type               ActivityType `json:"type"`
	Description        string       `json:"description"`
	RoughCost          string       `json:"roughCost"`
	NeighborhoodOrArea string       `json:"neighborhoodOrArea,omitempty"`
}

// DestinationComparison is one side of the two-city comparison.
type DestinationComparison struct {
	DestinationLabel  string         `json:"destinationLabel"`
	Price             PriceBreakdown `json:"price"`
	PopularActivities []Activity     `json:"popularActivities"`
	InsiderActivities []Activity     `json:"insiderActivities"`
}

// ComparisonResult is the core's output, injected as grounding context for
// the completion call. A side is null when its destination name was empty.
type ComparisonResult struct {
	DestinationA *DestinationComparison `json:"destinationA"`
	DestinationB *DestinationComparison `json:"destinationB"`
}

package models

// Venue is a bookable location with a per-day rate and descriptive metadata.
// Read-mostly; mutated only by administrative flows.
type Venue struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	PricePerDay float64  `bson:"price_per_day" json:"pricePerDay"`
	Capacity    int      `bson:"capacity,omitempty" json:"capacity,omitempty"`
	Amenities   []string `bson:"amenities,omitempty" json:"amenities,omitempty"`
	EventTypes  []string `bson:"event_types,omitempty" json:"eventTypes,omitempty"`
	Images      []string `bson:"images,omitempty" json:"images,omitempty"`
}

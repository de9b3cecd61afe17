package models

// MenuItem is a catalog item selectable into a booking and priced independently.
type MenuItem struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

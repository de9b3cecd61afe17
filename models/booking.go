package models

import "time"

// BookingStatus is the authoritative lifecycle state of a booking.
// Statuses only ever move forward through the ordered lifecycle.
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusOngoing  BookingStatus = "ongoing"
	StatusPaid     BookingStatus = "paid"
	StatusReady    BookingStatus = "ready"
	StatusFinished BookingStatus = "finished"
)

// statusOrder ranks statuses along the lifecycle; unknown statuses rank -1.
var statusOrder = map[BookingStatus]int{
	StatusPending:  0,
	StatusApproved: 1,
	StatusOngoing:  2,
	StatusPaid:     3,
	StatusReady:    4,
	StatusFinished: 5,
}

// Rank returns the position of the status along the lifecycle, or -1 if unknown.
func (s BookingStatus) Rank() int {
	if r, ok := statusOrder[s]; ok {
		return r
	}
	return -1
}

// Valid reports whether s is one of the known lifecycle statuses.
func (s BookingStatus) Valid() bool {
	return s.Rank() >= 0
}

// BookingType distinguishes single-day from multi-day bookings.
type BookingType string

const (
	BookingSingle   BookingType = "single"
	BookingMultiple BookingType = "multiple"
)

// Booking is a customer's reservation of a venue for one or more dates.
// Identity fields, dates, selections and TotalAmount are immutable after
// creation; Status is the primary mutable field. Each transition timestamp
// is set exactly once and never cleared.
type Booking struct {
	ID            string      `bson:"id" json:"id"`
	CustomerID    string      `bson:"customer_id" json:"customerId"`
	CustomerEmail string      `bson:"customer_email" json:"customerEmail"`
	CustomerName  string      `bson:"customer_name" json:"customerName"`
	VenueID       string      `bson:"venue_id" json:"venueId"`
	BookingType   BookingType `bson:"booking_type" json:"bookingType"`

	// Dates are calendar days; EndDate == StartDate for single-day bookings.
	StartDate time.Time `bson:"-" json:"startDate"`
	EndDate   time.Time `bson:"-" json:"endDate"`

	PhotographyPackage string   `bson:"photography_package,omitempty" json:"photographyPackage,omitempty"`
	Balloons           bool     `bson:"balloons" json:"balloons"`
	MenuItemIDs        []string `bson:"menu_item_ids,omitempty" json:"menuItemIds,omitempty"`

	// TotalAmount is frozen at creation time; catalog price changes later
	// never alter it.
	TotalAmount float64 `bson:"total_amount" json:"totalAmount"`

	Status            BookingStatus `bson:"status" json:"status"`
	PaymentMethod     string        `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"`
	CheckoutSessionID string        `bson:"checkout_session_id,omitempty" json:"checkoutSessionId,omitempty"`

	Rating  int    `bson:"rating,omitempty" json:"rating,omitempty"`
	Comment string `bson:"comment,omitempty" json:"comment,omitempty"`

	CreatedAt  time.Time  `bson:"created_at" json:"createdAt"`
	ApprovedAt *time.Time `bson:"approved_at,omitempty" json:"approvedAt,omitempty"`
	StartedAt  *time.Time `bson:"started_at,omitempty" json:"startedAt,omitempty"`
	PaidAt     *time.Time `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	ReadyAt    *time.Time `bson:"ready_at,omitempty" json:"readyAt,omitempty"`
	FinishedAt *time.Time `bson:"finished_at,omitempty" json:"finishedAt,omitempty"`
	RatedAt    *time.Time `bson:"rated_at,omitempty" json:"ratedAt,omitempty"`
}

// Days returns the inclusive number of calendar days the booking covers.
func (b Booking) Days() int {
	return int(b.EndDate.Sub(b.StartDate).Hours()/24) + 1
}

// BookingRequest is the wire form of a booking creation request. Dates arrive
// as "2006-01-02" strings and are parsed and normalized by the service.
type BookingRequest struct {
	VenueID            string      `json:"venueId" binding:"required"`
	BookingType        BookingType `json:"bookingType"`
	StartDate          string      `json:"startDate" binding:"required"`
	EndDate            string      `json:"endDate"`
	PhotographyPackage string      `json:"photographyPackage"`
	Balloons           bool        `json:"balloons"`
	MenuItemIDs        []string    `json:"menuItemIds"`
	PaymentMethod      string      `json:"paymentMethod"`
}

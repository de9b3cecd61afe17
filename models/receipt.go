package models

import "time"

// Receipt is the document generated once a booking is paid, rendered into
// the receipt email sent to the customer.
type Receipt struct {
	Reference     string    `json:"reference"`
	BookingID     string    `json:"bookingId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	VenueName     string    `json:"venueName"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	TotalAmount   float64   `json:"totalAmount"`
	Currency      string    `json:"currency"`
	IssuedAt      time.Time `json:"issuedAt"`
}

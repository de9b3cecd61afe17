package models

// Holiday is a blackout date on which new bookings may not fall. Date is a
// "2006-01-02" calendar day.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

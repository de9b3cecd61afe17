package handlers

import (
	userRepoPkg "haven/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Booking *BookingHandler
	Payment *PaymentHandler
	User    *UserHandler
	Admin   *AdminHandler
	Venue   *VenueHandler
	Menu    *MenuHandler
	Holiday *HolidayHandler
}

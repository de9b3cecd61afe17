package models

// Notification kinds routed through the outbox.
const (
	NotifyBookingCreated  = "booking_created"
	NotifyBookingApproved = "booking_approved"
	NotifyBookingStarted  = "booking_started"
	NotifyBookingReady    = "booking_ready"
	NotifyBookingFinished = "booking_finished"
	NotifyPaymentReceipt  = "payment_receipt"
)

// NotifyPayload is the outbox task payload for a booking notification.
// Notifications are dispatched after the status transition is durably
// committed; a delivery failure never rolls back the transition.
type NotifyPayload struct {
	Kind      string   `json:"kind"`
	BookingID string   `json:"bookingId"`
	Receipt   *Receipt `json:"receipt,omitempty"`
}

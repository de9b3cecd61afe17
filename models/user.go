package models

import "time"

// Role determines which lifecycle transitions an actor may invoke.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

// User is an account record. Owners carry VenueAssigned restricting which
// venue's bookings they may act on.
type User struct {
	ID            string    `bson:"id" json:"id"`
	Email         string    `bson:"email" json:"email"`
	FullName      string    `bson:"full_name" json:"fullName"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash  string    `bson:"password_hash" json:"-"`
	Role          Role      `bson:"role" json:"role"`
	VenueAssigned string    `bson:"venue_assigned,omitempty" json:"venueAssigned,omitempty"`
	FCMToken      string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// Actor is the authenticated identity passed explicitly into every core
// operation; core logic never reads the current user from ambient state.
type Actor struct {
	ID            string
	Email         string
	Name          string
	Role          Role
	VenueAssigned string
}

// ActorFromUser builds the actor context for a loaded account.
func ActorFromUser(u *User) Actor {
	return Actor{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.FullName,
		Role:          u.Role,
		VenueAssigned: u.VenueAssigned,
	}
}

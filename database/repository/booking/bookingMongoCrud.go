package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"haven/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// stampFields maps a target status to the timestamp field recorded with the
// transition into that status. Each field is written exactly once because the
// conditional update only fires from the immediate predecessor status.
var stampFields = map[models.BookingStatus]string{
	models.StatusApproved: "approved_at",
	models.StatusOngoing:  "started_at",
	models.StatusPaid:     "paid_at",
	models.StatusReady:    "ready_at",
	models.StatusFinished: "finished_at",
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, toDoc(booking)); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc bookingDoc
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	b, err := doc.toModel()
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *MongoBookingRepo) Transition(ctx context.Context, id string, from, to models.BookingStatus, at time.Time, extra map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": to}
	if field, ok := stampFields[to]; ok {
		set[field] = at
	}
	for k, v := range extra {
		set[k] = v
	}

	filter := bson.M{"id": id, "status": from}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing booking from a stale expected status.
		n, err := r.collection.CountDocuments(ctx, bson.M{"id": id})
		if err == nil && n == 0 {
			return ErrNotFound
		}
		return ErrStatusConflict
	}
	return nil
}

func (r *MongoBookingRepo) SetRating(ctx context.Context, id string, rating int, comment string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":       id,
		"status":   models.StatusFinished,
		"rated_at": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{
		"rating":   rating,
		"comment":  comment,
		"rated_at": at,
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set booking rating: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.collection.CountDocuments(ctx, bson.M{"id": id})
		if err == nil && n == 0 {
			return ErrNotFound
		}
		return ErrAlreadyRated
	}
	return nil
}

func (r *MongoBookingRepo) MergeCheckout(ctx context.Context, id string, checkoutSessionID, paymentMethod string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"checkout_session_id": checkoutSessionID,
		"payment_method":      paymentMethod,
	}}
	opts := options.Update().SetUpsert(false)
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to merge checkout details: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) UpsertCheckout(ctx context.Context, draft *models.Booking, checkoutSessionID, paymentMethod string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"checkout_session_id": checkoutSessionID,
			"payment_method":      paymentMethod,
		},
		// Only a brand-new record takes the draft's fields; an existing
		// booking keeps its own status, dates and frozen total.
		"$setOnInsert": bson.M{
			"customer_id":    draft.CustomerID,
			"customer_email": draft.CustomerEmail,
			"customer_name":  draft.CustomerName,
			"venue_id":       draft.VenueID,
			"booking_type":   draft.BookingType,
			"start_date":     draft.StartDate.Format(dateLayout),
			"end_date":       draft.EndDate.Format(dateLayout),
			"total_amount":   draft.TotalAmount,
			"status":         models.StatusPending,
			"created_at":     draft.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"id": draft.ID}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert checkout details: %w", err)
	}
	return nil
}

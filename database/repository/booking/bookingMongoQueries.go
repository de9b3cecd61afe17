package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"haven/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) ListByVenue(ctx context.Context, venueID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"venue_id": venueID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list venue bookings: %w", err)
	}
	return decodeBookings(ctx, cursor)
}

func (r *MongoBookingRepo) ListByVenueAndStatuses(ctx context.Context, venueID string, statuses []models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"venue_id": venueID,
		"status":   bson.M{"$in": statuses},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list venue bookings by status: %w", err)
	}
	return decodeBookings(ctx, cursor)
}

func (r *MongoBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer bookings: %w", err)
	}
	return decodeBookings(ctx, cursor)
}

// MonthlyStats groups a venue's bookings by start month. Revenue only counts
// bookings that reached a paid status (paid, ready or finished); month is
// derived from the stored "YYYY-MM-DD" date string.
func (r *MongoBookingRepo) MonthlyStats(ctx context.Context, venueID string, year int) ([]MonthlyStat, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	paidStatuses := bson.A{models.StatusPaid, models.StatusReady, models.StatusFinished}
	pipeline := []bson.M{
		{"$match": bson.M{
			"venue_id":   venueID,
			"start_date": bson.M{"$regex": fmt.Sprintf("^%04d-", year)},
		}},
		{"$group": bson.M{
			"_id":      bson.M{"$toInt": bson.M{"$substrBytes": bson.A{"$start_date", 5, 2}}},
			"bookings": bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{"$status", paidStatuses}},
				"$total_amount",
				0,
			}}},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []MonthlyStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode monthly stats: %w", err)
	}
	return stats, nil
}

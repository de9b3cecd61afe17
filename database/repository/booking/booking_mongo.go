package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"haven/config"
	"haven/models"
	"haven/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// MongoBookingRepo implements BookingRepository using a MongoDB collection.
type MongoBookingRepo struct {
	collection *mongo.Collection
}

// NewMongoBookingRepo initializes a new MongoDB-based booking repository.
func NewMongoBookingRepo(client *mongo.Client) *MongoBookingRepo {
	repo := &MongoBookingRepo{
		collection: client.Database(config.AppConfig.DatabaseName).Collection("bookings"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("Failed to create booking indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "venue_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// bookingDoc is the stored shape of a booking. Dates persist as plain
// "2006-01-02" strings; the conversion back to time.Time happens here, at
// the persistence boundary, so the rest of the codebase only ever handles
// normalized values.
type bookingDoc struct {
	models.Booking `bson:",inline"`
	StartDate      string `bson:"start_date"`
	EndDate        string `bson:"end_date"`
}

func toDoc(b *models.Booking) bookingDoc {
	return bookingDoc{
		Booking:   *b,
		StartDate: b.StartDate.Format(dateLayout),
		EndDate:   b.EndDate.Format(dateLayout),
	}
}

func (d bookingDoc) toModel() (models.Booking, error) {
	start, err := parseStoredDate(d.StartDate)
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking %s: bad start_date %q: %w", d.ID, d.StartDate, err)
	}
	end, err := parseStoredDate(d.EndDate)
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking %s: bad end_date %q: %w", d.ID, d.EndDate, err)
	}
	b := d.Booking
	b.StartDate = start
	b.EndDate = end
	return b, nil
}

// parseStoredDate accepts the canonical stored layout plus RFC 3339 for
// records written by older clients, truncating either to a UTC calendar day.
func parseStoredDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func decodeBookings(ctx context.Context, cursor *mongo.Cursor) ([]models.Booking, error) {
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var doc bookingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		b, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

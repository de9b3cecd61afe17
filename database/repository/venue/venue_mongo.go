package venueRepo

import (
	"context"
	"errors"
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

// MongoVenueRepo implements VenueRepository using MongoDB.
type MongoVenueRepo struct {
	collection *mongo.Collection
}

// NewMongoVenueRepo initializes a new MongoDB-based venue repository.
func NewMongoVenueRepo(client *mongo.Client) *MongoVenueRepo {
	repo := &MongoVenueRepo{
		collection: client.Database(config.AppConfig.DatabaseName).Collection("venues"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("Failed to create venue indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoVenueRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := r.collection.Indexes().CreateOne(ctx, index)
	return err
}

func (r *MongoVenueRepo) Create(ctx context.Context, venue *models.Venue) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, venue); err != nil {
		return fmt.Errorf("failed to insert venue: %w", err)
	}
	return nil
}

func (r *MongoVenueRepo) GetByID(ctx context.Context, id string) (*models.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var venue models.Venue
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&venue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch venue: %w", err)
	}
	return &venue, nil
}

func (r *MongoVenueRepo) List(ctx context.Context) ([]models.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	defer cursor.Close(ctx)

	var venues []models.Venue
	if err := cursor.All(ctx, &venues); err != nil {
		return nil, fmt.Errorf("failed to decode venues: %w", err)
	}
	return venues, nil
}

func (r *MongoVenueRepo) Update(ctx context.Context, venue *models.Venue) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": venue.ID}, venue)
	if err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoVenueRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoVenueRepo) AddImage(ctx context.Context, id, imageURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$addToSet": bson.M{"images": imageURL}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add venue image: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

package menuRepo

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

// MongoMenuRepo implements MenuRepository using MongoDB.
type MongoMenuRepo struct {
	collection *mongo.Collection
}

// NewMongoMenuRepo initializes a new MongoDB-based menu repository.
func NewMongoMenuRepo(client *mongo.Client) *MongoMenuRepo {
	repo := &MongoMenuRepo{
		collection: client.Database(config.AppConfig.DatabaseName).Collection("menu_items"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("Failed to create menu indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoMenuRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := r.collection.Indexes().CreateOne(ctx, index)
	return err
}

func (r *MongoMenuRepo) Create(ctx context.Context, item *models.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

func (r *MongoMenuRepo) GetByIDs(ctx context.Context, ids []string) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}
	return items, nil
}

func (r *MongoMenuRepo) List(ctx context.Context) ([]models.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}
	return items, nil
}

func (r *MongoMenuRepo) Update(ctx context.Context, item *models.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoMenuRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

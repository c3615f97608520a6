package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avendel/catalog-api/internal/models"
)

// Expected collection size and false-positive rate for the ID filter.
// A false positive only costs one extra FindOne round trip.
const (
	bloomCapacity = 1_000_000
	bloomFPRate   = 0.01
)

// MongoProductRepository implements ProductRepository against a MongoDB
// products collection.
//
// A bloom filter over document IDs short-circuits lookups for IDs that were
// never created, so misses skip the database round trip entirely. The filter
// is warmed from the collection at startup and extended on every insert.
// Deletes leave stale positives behind, which is safe: a stale positive just
// falls through to the database and returns not found. The filter assumes
// this process is the only writer; documents inserted by another process
// after warm-up are invisible to it.
type MongoProductRepository struct {
	collection *mongo.Collection

	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewMongoProductRepository creates a repository over the products collection
// of the given database
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection("products"),
		filter:     bloom.NewWithEstimates(bloomCapacity, bloomFPRate),
	}
}

// Warm seeds the ID filter from the existing collection contents.
// Must be called once before serving traffic.
func (r *MongoProductRepository) Warm(ctx context.Context) (int, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to scan product IDs: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	r.mu.Lock()
	defer r.mu.Unlock()

	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return count, fmt.Errorf("failed to decode product ID: %w", err)
		}
		r.filter.Add(doc.ID[:])
		count++
	}
	if err := cursor.Err(); err != nil {
		return count, fmt.Errorf("error scanning product IDs: %w", err)
	}

	return count, nil
}

// GetAll returns all products
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID returns a product by its ID
func (r *MongoProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.RLock()
	known := r.filter.Test(id[:])
	r.mu.RUnlock()
	if !known {
		return nil, ErrProductNotFound
	}

	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

// Create inserts a new product, assigning ID and timestamps
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	r.mu.Lock()
	r.filter.Add(product.ID[:])
	r.mu.Unlock()

	return nil
}

// Update applies the given field changes and returns the updated document
func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) (*models.Product, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &updated, nil
}

// Delete removes a product by ID
func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

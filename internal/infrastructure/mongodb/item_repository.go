package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edsis/inventory-service/pkg/mongodb"

	"github.com/edsis/inventory-service/internal/domain"
)

// ItemRepository persists inventory items in the "inventory_items" collection
type ItemRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(client *mongodb.InstrumentedClient) *ItemRepository {
	repo := &ItemRepository{
		collection: client.Collection("inventory_items"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ItemRepository) ensureIndexes(ctx context.Context) {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "product_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "qr_code", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	for _, model := range models {
		_, _ = r.collection.CreateIndex(ctx, model)
	}
}

func (r *ItemRepository) InsertAll(ctx context.Context, items []*domain.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	docs := make([]interface{}, len(items))
	for i, item := range items {
		docs[i] = item
	}

	offset := 0
	for _, batch := range chunk(docs) {
		result, err := r.collection.InsertMany(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to insert items: %w", err)
		}
		for i, insertedID := range result.InsertedIDs {
			if oid, ok := insertedID.(primitive.ObjectID); ok {
				items[offset+i].ID = oid
			}
		}
		offset += len(batch)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	oid, err := mongodb.ParseID(id)
	if err != nil {
		return nil, nil
	}

	var item domain.InventoryItem
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}

func (r *ItemRepository) FindByProduct(ctx context.Context, productID string) ([]*domain.InventoryItem, error) {
	return r.find(ctx, bson.M{"product_id": productID})
}

func (r *ItemRepository) FindBooked(ctx context.Context) ([]*domain.InventoryItem, error) {
	return r.find(ctx, bson.M{"status": domain.ItemStatusBooked})
}

func (r *ItemRepository) FindAll(ctx context.Context) ([]*domain.InventoryItem, error) {
	return r.find(ctx, bson.M{})
}

func (r *ItemRepository) find(ctx context.Context, filter bson.M) ([]*domain.InventoryItem, error) {
	opts := options.Find().SetSort(mongodb.SortAscending("qr_code"))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find items: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]*domain.InventoryItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

func (r *ItemRepository) UpdateAll(ctx context.Context, items []*domain.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(items))
	for _, item := range items {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": item.ID}).
			SetReplacement(item))
	}

	for _, batch := range chunk(models) {
		if _, err := r.collection.BulkWrite(ctx, batch); err != nil {
			return fmt.Errorf("failed to update items: %w", err)
		}
	}
	return nil
}

func (r *ItemRepository) DeleteByProduct(ctx context.Context, productID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"product_id": productID}); err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	return nil
}

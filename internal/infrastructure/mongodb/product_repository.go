package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edsis/inventory-service/pkg/mongodb"

	"github.com/edsis/inventory-service/internal/domain"
)

// ProductRepository persists products in the "products" collection
type ProductRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(client *mongodb.InstrumentedClient) *ProductRepository {
	repo := &ProductRepository{
		collection: client.Collection("products"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ProductRepository) ensureIndexes(ctx context.Context) {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "discount_ids", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}, {Key: "collection", Value: 1}}},
	}
	for _, model := range models {
		_, _ = r.collection.CreateIndex(ctx, model)
	}
}

func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product, opts); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *ProductRepository) SaveAll(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(products))
	for _, p := range products {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": p.ID}).
			SetReplacement(p).
			SetUpsert(true))
	}

	for _, batch := range chunk(models) {
		if _, err := r.collection.BulkWrite(ctx, batch); err != nil {
			return fmt.Errorf("failed to save products: %w", err)
		}
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]*domain.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// FindCodesWithPrefix loads the set of SKUs sharing a prefix, used for
// collision resolution during SKU generation
func (r *ProductRepository) FindCodesWithPrefix(ctx context.Context, prefix string) (map[string]bool, error) {
	filter := bson.M{"code": bson.M{"$gte": prefix, "$lte": prefix + ""}}
	return r.loadCodes(ctx, filter)
}

func (r *ProductRepository) AllCodes(ctx context.Context) (map[string]bool, error) {
	return r.loadCodes(ctx, bson.M{})
}

func (r *ProductRepository) loadCodes(ctx context.Context, filter bson.M) (map[string]bool, error) {
	opts := options.Find().SetProjection(bson.M{"code": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load codes: %w", err)
	}
	defer cursor.Close(ctx)

	codes := make(map[string]bool)
	for cursor.Next(ctx) {
		var doc struct {
			Code string `bson:"code"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode code: %w", err)
		}
		if doc.Code != "" {
			codes[doc.Code] = true
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate codes: %w", err)
	}
	return codes, nil
}

func (r *ProductRepository) FindByDiscountID(ctx context.Context, discountID string) ([]*domain.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"discount_ids": discountID})
	if err != nil {
		return nil, fmt.Errorf("failed to find products by discount: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]*domain.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) UpdateCounters(ctx context.Context, id string, counts domain.StockCounts) error {
	update := bson.M{"$set": bson.M{
		"total_stock":  counts.Total,
		"booked_stock": counts.Booked,
		"sold_stock":   counts.Sold,
	}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to update counters: %w", err)
	}
	return nil
}

func (r *ProductRepository) UpdateLastSequence(ctx context.Context, id string, lastSequence int) error {
	update := bson.M{"$set": bson.M{"last_sequence": lastSequence}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to update sequence: %w", err)
	}
	return nil
}

func (r *ProductRepository) UpdateDiscountPricing(ctx context.Context, updates []domain.ProductDiscountUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(updates))
	for _, u := range updates {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": u.ProductID}).
			SetUpdate(bson.M{"$set": bson.M{
				"discounts":      u.Discounts,
				"nett_price_idr": u.NettPriceIDR,
			}}))
	}

	for _, batch := range chunk(models) {
		if _, err := r.collection.BulkWrite(ctx, batch); err != nil {
			return fmt.Errorf("failed to update discount pricing: %w", err)
		}
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

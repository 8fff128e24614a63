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

// DiscountRepository persists discount rules in the "discounts" collection
type DiscountRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewDiscountRepository creates a new DiscountRepository
func NewDiscountRepository(client *mongodb.InstrumentedClient) *DiscountRepository {
	repo := &DiscountRepository{
		collection: client.Collection("discounts"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *DiscountRepository) ensureIndexes(ctx context.Context) {
	model := mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}}
	_, _ = r.collection.CreateIndex(ctx, model)
}

func (r *DiscountRepository) Save(ctx context.Context, discount *domain.Discount) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": discount.ID}, discount, opts); err != nil {
		return fmt.Errorf("failed to save discount: %w", err)
	}
	return nil
}

func (r *DiscountRepository) FindByID(ctx context.Context, id string) (*domain.Discount, error) {
	var discount domain.Discount
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&discount)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find discount: %w", err)
	}
	return &discount, nil
}

func (r *DiscountRepository) FindByName(ctx context.Context, name string) (*domain.Discount, error) {
	var discount domain.Discount
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&discount)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find discount by name: %w", err)
	}
	return &discount, nil
}

func (r *DiscountRepository) FindAll(ctx context.Context) ([]*domain.Discount, error) {
	opts := options.Find().SetSort(mongodb.SortDescending("created_at"))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find discounts: %w", err)
	}
	defer cursor.Close(ctx)

	discounts := make([]*domain.Discount, 0)
	if err := cursor.All(ctx, &discounts); err != nil {
		return nil, fmt.Errorf("failed to decode discounts: %w", err)
	}
	return discounts, nil
}

func (r *DiscountRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete discount: %w", err)
	}
	return nil
}

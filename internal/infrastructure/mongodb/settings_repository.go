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

// settingsDocID is the fixed key of the single settings document
const settingsDocID = "global"

// SettingsRepository persists the exchange rate settings as a singleton
// document in the "settings" collection
type SettingsRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(client *mongodb.InstrumentedClient) *SettingsRepository {
	return &SettingsRepository{
		collection: client.Collection("settings"),
	}
}

// Get loads the settings document, falling back to defaults when it does
// not exist yet
func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings
	err := r.collection.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (r *SettingsRepository) Update(ctx context.Context, settings domain.Settings) error {
	update := bson.M{"$set": bson.M{
		"eur_rate":     settings.EURRate,
		"usd_rate":     settings.USDRate,
		"last_updated": settings.LastUpdated,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": settingsDocID}, update, opts); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

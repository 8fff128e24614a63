package domain

import "context"

// ProductDiscountUpdate carries a recalculated discount set and nett price
// for one product, applied in bulk when a discount rule changes
type ProductDiscountUpdate struct {
	ProductID    string
	Discounts    []DiscountLine
	NettPriceIDR int64
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	SaveAll(ctx context.Context, products []*Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	FindCodesWithPrefix(ctx context.Context, prefix string) (map[string]bool, error)
	AllCodes(ctx context.Context) (map[string]bool, error)
	FindByDiscountID(ctx context.Context, discountID string) ([]*Product, error)
	UpdateCounters(ctx context.Context, id string, counts StockCounts) error
	UpdateLastSequence(ctx context.Context, id string, lastSequence int) error
	UpdateDiscountPricing(ctx context.Context, updates []ProductDiscountUpdate) error
	Delete(ctx context.Context, id string) error
}

// ItemRepository defines the interface for inventory item persistence
type ItemRepository interface {
	InsertAll(ctx context.Context, items []*InventoryItem) error
	FindByID(ctx context.Context, id string) (*InventoryItem, error)
	FindByProduct(ctx context.Context, productID string) ([]*InventoryItem, error)
	FindBooked(ctx context.Context) ([]*InventoryItem, error)
	FindAll(ctx context.Context) ([]*InventoryItem, error)
	Update(ctx context.Context, item *InventoryItem) error
	UpdateAll(ctx context.Context, items []*InventoryItem) error
	DeleteByProduct(ctx context.Context, productID string) error
}

// DiscountRepository defines the interface for discount rule persistence
type DiscountRepository interface {
	Save(ctx context.Context, discount *Discount) error
	FindByID(ctx context.Context, id string) (*Discount, error)
	FindByName(ctx context.Context, name string) (*Discount, error)
	FindAll(ctx context.Context) ([]*Discount, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository defines the interface for the global settings document
type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, settings Settings) error
}

package application

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edsis/inventory-service/pkg/logging"

	"github.com/edsis/inventory-service/internal/domain"
)

func testLogger() *logging.Logger {
	return logging.New(logging.DefaultConfig("test"))
}

type fakeProductRepo struct {
	products      map[string]*domain.Product
	saveErr       error
	findErr       error
	countersErr   error
	deleteErr     error
	reconciled    []string
	deletedIDs    []string
	savedBatches  int
	pricingBatch  []domain.ProductDiscountUpdate
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*domain.Product)}
}

func (f *fakeProductRepo) Save(ctx context.Context, product *domain.Product) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) SaveAll(ctx context.Context, products []*domain.Product) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	for _, p := range products {
		f.products[p.ID] = p
	}
	f.savedBatches++
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.products[id], nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]*domain.Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	results := make([]*domain.Product, 0, len(f.products))
	for _, p := range f.products {
		results = append(results, p)
	}
	return results, nil
}

func (f *fakeProductRepo) FindCodesWithPrefix(ctx context.Context, prefix string) (map[string]bool, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	codes := make(map[string]bool)
	for _, p := range f.products {
		if strings.HasPrefix(p.Code, prefix) {
			codes[p.Code] = true
		}
	}
	return codes, nil
}

func (f *fakeProductRepo) AllCodes(ctx context.Context) (map[string]bool, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	codes := make(map[string]bool)
	for _, p := range f.products {
		codes[p.Code] = true
	}
	return codes, nil
}

func (f *fakeProductRepo) FindByDiscountID(ctx context.Context, discountID string) ([]*domain.Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	results := make([]*domain.Product, 0)
	for _, p := range f.products {
		for _, id := range p.DiscountIDs {
			if id == discountID {
				results = append(results, p)
				break
			}
		}
	}
	return results, nil
}

func (f *fakeProductRepo) UpdateCounters(ctx context.Context, id string, counts domain.StockCounts) error {
	if f.countersErr != nil {
		return f.countersErr
	}
	f.reconciled = append(f.reconciled, id)
	if p, ok := f.products[id]; ok {
		p.ApplyCounts(counts)
	}
	return nil
}

func (f *fakeProductRepo) UpdateLastSequence(ctx context.Context, id string, lastSequence int) error {
	if p, ok := f.products[id]; ok {
		p.LastSequence = lastSequence
	}
	return nil
}

func (f *fakeProductRepo) UpdateDiscountPricing(ctx context.Context, updates []domain.ProductDiscountUpdate) error {
	f.pricingBatch = append(f.pricingBatch, updates...)
	for _, u := range updates {
		if p, ok := f.products[u.ProductID]; ok {
			p.Discounts = u.Discounts
			p.NettPriceIDR = u.NettPriceIDR
		}
	}
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.products, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

type fakeItemRepo struct {
	items     map[string]*domain.InventoryItem
	insertErr error
	findErr   error
	updateErr error
	deleteErr error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*domain.InventoryItem)}
}

func (f *fakeItemRepo) add(item *domain.InventoryItem) *domain.InventoryItem {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	f.items[item.ID.Hex()] = item
	return item
}

func (f *fakeItemRepo) InsertAll(ctx context.Context, items []*domain.InventoryItem) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, item := range items {
		f.add(item)
	}
	return nil
}

func (f *fakeItemRepo) FindByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.items[id], nil
}

func (f *fakeItemRepo) FindByProduct(ctx context.Context, productID string) ([]*domain.InventoryItem, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	results := make([]*domain.InventoryItem, 0)
	for _, item := range f.items {
		if item.ProductID == productID {
			results = append(results, item)
		}
	}
	return results, nil
}

func (f *fakeItemRepo) FindBooked(ctx context.Context) ([]*domain.InventoryItem, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	results := make([]*domain.InventoryItem, 0)
	for _, item := range f.items {
		if item.Status == domain.ItemStatusBooked {
			results = append(results, item)
		}
	}
	return results, nil
}

func (f *fakeItemRepo) FindAll(ctx context.Context) ([]*domain.InventoryItem, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	results := make([]*domain.InventoryItem, 0, len(f.items))
	for _, item := range f.items {
		results = append(results, item)
	}
	return results, nil
}

func (f *fakeItemRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.items[item.ID.Hex()] = item
	return nil
}

func (f *fakeItemRepo) UpdateAll(ctx context.Context, items []*domain.InventoryItem) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, item := range items {
		f.items[item.ID.Hex()] = item
	}
	return nil
}

func (f *fakeItemRepo) DeleteByProduct(ctx context.Context, productID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for id, item := range f.items {
		if item.ProductID == productID {
			delete(f.items, id)
		}
	}
	return nil
}

type fakeDiscountRepo struct {
	discounts map[string]*domain.Discount
	saveErr   error
	findErr   error
}

func newFakeDiscountRepo() *fakeDiscountRepo {
	return &fakeDiscountRepo{discounts: make(map[string]*domain.Discount)}
}

func (f *fakeDiscountRepo) Save(ctx context.Context, discount *domain.Discount) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.discounts[discount.ID] = discount
	return nil
}

func (f *fakeDiscountRepo) FindByID(ctx context.Context, id string) (*domain.Discount, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.discounts[id], nil
}

func (f *fakeDiscountRepo) FindByName(ctx context.Context, name string) (*domain.Discount, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, d := range f.discounts {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDiscountRepo) FindAll(ctx context.Context) ([]*domain.Discount, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	results := make([]*domain.Discount, 0, len(f.discounts))
	for _, d := range f.discounts {
		results = append(results, d)
	}
	return results, nil
}

func (f *fakeDiscountRepo) Delete(ctx context.Context, id string) error {
	delete(f.discounts, id)
	return nil
}

type fakeSettingsRepo struct {
	settings *domain.Settings
	getErr   error
	saveErr  error
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	if f.getErr != nil {
		return domain.Settings{}, f.getErr
	}
	if f.settings == nil {
		return domain.DefaultSettings(), nil
	}
	return *f.settings, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, settings domain.Settings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.settings = &settings
	return nil
}

package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edsis/inventory-service/pkg/errors"
	"github.com/edsis/inventory-service/pkg/logging"

	"github.com/edsis/inventory-service/internal/domain"
)

// ImportService handles bulk product imports
type ImportService struct {
	products  domain.ProductRepository
	items     domain.ItemRepository
	discounts domain.DiscountRepository
	settings  domain.SettingsRepository
	logger    *logging.Logger
}

// NewImportService creates a new ImportService
func NewImportService(
	products domain.ProductRepository,
	items domain.ItemRepository,
	discounts domain.DiscountRepository,
	settings domain.SettingsRepository,
	logger *logging.Logger,
) *ImportService {
	return &ImportService{
		products:  products,
		items:     items,
		discounts: discounts,
		settings:  settings,
		logger:    logger,
	}
}

// newBatchID builds the import batch identifier, e.g.
// IMPORT-20260310-1412-4F2A
func newBatchID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return fmt.Sprintf("IMPORT-%s-%s", now.Format("20060102-1504"), suffix)
}

// formatDiscountValue renders 15.0 as "15" and 12.5 as "12.5"
func formatDiscountValue(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%g", value)
}

// Import processes a batch of products. Rows carrying a known product ID
// update the existing product in place; all other rows create a new product
// with generated SKU and materialized inventory items. Discount values are
// deduplicated into shared rules scoped to the batch.
func (s *ImportService) Import(ctx context.Context, cmd ImportProductsCommand) (*ImportResult, error) {
	if len(cmd.Products) == 0 {
		return nil, errors.ErrBadRequest("no products")
	}

	rates, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", "error", err)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	existingSKUs, err := s.products.AllCodes(ctx)
	if err != nil {
		s.logger.Error("Failed to load existing codes", "error", err)
		return nil, fmt.Errorf("failed to load existing codes: %w", err)
	}

	now := time.Now()
	batchID := newBatchID(now)

	// Equal discount values within one batch share a single generated rule
	sessionDiscounts := make(map[float64]*domain.Discount)

	products := make([]*domain.Product, 0, len(cmd.Products))
	newItems := make([]*domain.InventoryItem, 0)

	for _, in := range cmd.Products {
		lines := make([]domain.DiscountLine, 0, len(in.Discounts))
		for _, d := range in.Discounts {
			if d.Value <= 0 {
				continue
			}
			rule, ok := sessionDiscounts[d.Value]
			if !ok {
				rule = &domain.Discount{
					ID:        uuid.New().String(),
					Name:      fmt.Sprintf("Imported %s%% [%s]", formatDiscountValue(d.Value), batchID),
					Value:     d.Value,
					IsActive:  true,
					CreatedAt: now,
				}
				if err := s.discounts.Save(ctx, rule); err != nil {
					s.logger.Error("Failed to save discount rule", "value", d.Value, "error", err)
					return nil, fmt.Errorf("failed to save discount rule: %w", err)
				}
				sessionDiscounts[d.Value] = rule
			}
			lines = append(lines, domain.DiscountLine{ID: rule.ID, Name: rule.Name, Value: rule.Value})
		}

		// IDs shorter than a UUID are treated as junk from the spreadsheet
		isUpdate := len(in.ID) > 10
		productID := in.ID
		if !isUpdate {
			productID = uuid.New().String()
		}

		brand := domain.NormalizeBrand(in.Brand)
		category := domain.NormalizeCategory(in.Category)
		collection := strings.TrimSpace(in.Collection)

		finalSKU := in.Code
		if !isUpdate {
			baseSKU := domain.BaseSKU(brand, category, collection)
			finalSKU = domain.ResolveCollision(baseSKU, existingSKUs)
			existingSKUs[finalSKU] = true
		}

		// Foreign-currency prices take precedence, EUR before USD
		finalIDR := in.RetailPriceIDR
		currency := "IDR"
		switch {
		case in.RetailPriceEUR > 0:
			currency = "EUR"
			finalIDR = in.RetailPriceEUR * rates.EURRate
		case in.RetailPriceUSD > 0:
			currency = "USD"
			finalIDR = in.RetailPriceUSD * rates.USDRate
		}

		nett := in.NettPriceIDR
		if nett == 0 {
			nett = finalIDR
		}

		product := &domain.Product{
			ID:               productID,
			Code:             finalSKU,
			Brand:            brand,
			Category:         category,
			Collection:       collection,
			ManufacturerCode: strings.TrimSpace(in.ManufacturerCode),
			ImageURL:         in.ImageURL,
			Detail:           in.Detail,
			Dimensions:       in.Dimensions,
			Finishing:        in.Finishing,
			Currency:         currency,
			RetailPriceIDR:   finalIDR,
			RetailPriceEUR:   in.RetailPriceEUR,
			RetailPriceUSD:   in.RetailPriceUSD,
			NettPriceIDR:     nett,
			Discounts:        lines,
			TotalStock:       in.TotalStock,
			IsNotForSale:     in.IsNotForSale,
			IsUpcoming:       in.IsUpcoming,
			UpcomingETA:      in.UpcomingETA,
		}
		product.SyncDiscountIDs()

		if isUpdate {
			current, err := s.products.FindByID(ctx, productID)
			if err != nil {
				s.logger.Error("Failed to get product", "productId", productID, "error", err)
				return nil, fmt.Errorf("failed to get product: %w", err)
			}
			// An update must not clobber counters and sequencing maintained
			// elsewhere; the sequence in particular is never reset
			if current != nil {
				product.LastSequence = current.LastSequence
				product.BookedStock = current.BookedStock
				product.SoldStock = current.SoldStock
				product.CreatedAt = current.CreatedAt
			} else {
				product.CreatedAt = now
				product.LastSequence = in.TotalStock
			}
		} else {
			product.BookedStock = 0
			product.SoldStock = 0
			product.CreatedAt = now
			product.LastSequence = in.TotalStock

			for i := 1; i <= in.TotalStock; i++ {
				qr := domain.QRCode(finalSKU, i)
				newItems = append(newItems, domain.NewImportedItem(
					productID, product.DisplayName(), qr, in.Location, batchID, in.IsNotForSale, now,
				))
			}
		}

		products = append(products, product)
	}

	if err := s.products.SaveAll(ctx, products); err != nil {
		s.logger.Error("Failed to save imported products", "count", len(products), "error", err)
		return nil, fmt.Errorf("failed to save imported products: %w", err)
	}

	if len(newItems) > 0 {
		if err := s.items.InsertAll(ctx, newItems); err != nil {
			s.logger.Error("Failed to create imported items", "count", len(newItems), "error", err)
			return nil, fmt.Errorf("failed to create imported items: %w", err)
		}
	}

	s.logger.Info("Bulk import completed",
		"batchId", batchID,
		"products", len(products),
		"items", len(newItems),
		"discountRules", len(sessionDiscounts),
	)

	return &ImportResult{Count: len(products), BatchID: batchID}, nil
}

package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/edsis/inventory-service/pkg/errors"
	"github.com/edsis/inventory-service/pkg/logging"

	"github.com/edsis/inventory-service/internal/domain"
)

// CatalogService handles product CRUD and per-product inventory reads
type CatalogService struct {
	products   domain.ProductRepository
	items      domain.ItemRepository
	reconciler *StockReconciler
	logger     *logging.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	products domain.ProductRepository,
	items domain.ItemRepository,
	reconciler *StockReconciler,
	logger *logging.Logger,
) *CatalogService {
	return &CatalogService{
		products:   products,
		items:      items,
		reconciler: reconciler,
		logger:     logger,
	}
}

// ListProducts returns the full catalog
func (s *CatalogService) ListProducts(ctx context.Context) ([]*ProductDTO, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", "error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return ToProductDTOs(products), nil
}

// ManageProduct creates or edits a product. On ADD, the initial stock is
// materialized as individual inventory items with sequential QR codes.
func (s *CatalogService) ManageProduct(ctx context.Context, cmd ManageProductCommand) (*ManageProductResult, error) {
	in := cmd.Product

	productID := in.ID
	if productID == "" {
		productID = uuid.New().String()
	}

	brand := domain.NormalizeBrand(in.Brand)
	category := domain.NormalizeCategory(in.Category)

	baseSKU := domain.BaseSKU(brand, category, in.Collection)
	existing, err := s.products.FindCodesWithPrefix(ctx, baseSKU)
	if err != nil {
		s.logger.Error("Failed to load existing codes", "prefix", baseSKU, "error", err)
		return nil, fmt.Errorf("failed to load existing codes: %w", err)
	}

	// A fresh SKU is generated on ADD, or on EDIT when no code was supplied.
	// An edited product that already carries a code keeps it.
	finalSKU := in.Code
	if cmd.Mode == ModeAdd || (cmd.Mode == ModeEdit && in.Code == "") {
		finalSKU = domain.ResolveCollision(baseSKU, existing)
	}

	current, err := s.products.FindByID(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to get product", "productId", productID, "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product := &domain.Product{
		ID:               productID,
		Code:             finalSKU,
		Brand:            brand,
		Category:         category,
		Collection:       in.Collection,
		ManufacturerCode: in.ManufacturerCode,
		ImageURL:         in.ImageURL,
		Detail:           in.Detail,
		Dimensions:       in.Dimensions,
		Finishing:        in.Finishing,
		Currency:         in.Currency,
		RetailPriceIDR:   in.RetailPriceIDR,
		RetailPriceEUR:   in.RetailPriceEUR,
		RetailPriceUSD:   in.RetailPriceUSD,
		NettPriceIDR:     in.NettPriceIDR,
		Discounts:        toDiscountLines(in.Discounts),
		TotalStock:       in.TotalStock,
		IsNotForSale:     in.IsNotForSale,
		IsUpcoming:       in.IsUpcoming,
		UpcomingETA:      in.UpcomingETA,
	}
	if product.Currency == "" {
		product.Currency = "IDR"
	}
	product.SyncDiscountIDs()

	// An edit must not clobber counters and sequencing maintained elsewhere
	if current != nil {
		product.LastSequence = current.LastSequence
		product.BookedStock = current.BookedStock
		product.SoldStock = current.SoldStock
		product.CreatedAt = current.CreatedAt
	} else {
		product.CreatedAt = time.Now()
	}

	if err := s.products.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product", "productId", productID, "error", err)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	if cmd.Mode == ModeAdd && in.TotalStock > 0 {
		now := time.Now()
		newItems := make([]*domain.InventoryItem, 0, in.TotalStock)
		for i := 0; i < in.TotalStock; i++ {
			seq := product.NextSequence()
			qr := domain.QRCode(finalSKU, seq)
			newItems = append(newItems, domain.NewInventoryItem(productID, product.DisplayName(), qr, in.IsNotForSale, now))
		}

		if err := s.items.InsertAll(ctx, newItems); err != nil {
			s.logger.Error("Failed to create items", "productId", productID, "count", len(newItems), "error", err)
			return nil, fmt.Errorf("failed to create items: %w", err)
		}

		if err := s.products.UpdateLastSequence(ctx, productID, product.LastSequence); err != nil {
			s.logger.Error("Failed to update sequence", "productId", productID, "error", err)
			return nil, fmt.Errorf("failed to update sequence: %w", err)
		}
	}

	s.logger.Info("Managed product", "mode", cmd.Mode, "productId", productID, "sku", finalSKU)
	return &ManageProductResult{ID: productID, SKU: finalSKU}, nil
}

// DeleteProduct removes a product and cascades to all of its items
func (s *CatalogService) DeleteProduct(ctx context.Context, cmd DeleteProductCommand) error {
	if err := s.products.Delete(ctx, cmd.ProductID); err != nil {
		s.logger.Error("Failed to delete product", "productId", cmd.ProductID, "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err := s.items.DeleteByProduct(ctx, cmd.ProductID); err != nil {
		s.logger.Error("Failed to delete items", "productId", cmd.ProductID, "error", err)
		return fmt.Errorf("failed to delete items: %w", err)
	}

	s.logger.Info("Deleted product", "productId", cmd.ProductID)
	return nil
}

// GetProductInventory returns all items of a product. Bookings that expired
// since the last sweep are released lazily on read, so clients never see a
// stale BOOKED status.
func (s *CatalogService) GetProductInventory(ctx context.Context, productID string) ([]*ItemDTO, error) {
	if productID == "" {
		return nil, errors.ErrBadRequest("missing product_id")
	}

	items, err := s.items.FindByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to load items", "productId", productID, "error", err)
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	now := time.Now()
	expired := make([]*domain.InventoryItem, 0)
	for _, item := range items {
		if item.AutoExpire(now, "Booking expired") {
			expired = append(expired, item)
		}
	}

	if len(expired) > 0 {
		if err := s.items.UpdateAll(ctx, expired); err != nil {
			s.logger.Error("Failed to save expired items", "productId", productID, "error", err)
			return nil, fmt.Errorf("failed to save expired items: %w", err)
		}
		if err := s.reconciler.Reconcile(ctx, productID); err != nil {
			s.logger.Error("Failed to reconcile counters", "productId", productID, "error", err)
		}
		s.logger.Info("Released expired bookings on read", "productId", productID, "count", len(expired))
	}

	return ToItemDTOs(items), nil
}

package application

import (
	"context"
	"fmt"

	"github.com/edsis/inventory-service/pkg/logging"

	"github.com/edsis/inventory-service/internal/domain"
)

// StockReconciler restores a product's denormalized stock counters from its
// item set. It is a full recomputation rather than an incremental delta, so
// it converges under concurrent status writes.
type StockReconciler struct {
	products domain.ProductRepository
	items    domain.ItemRepository
	logger   *logging.Logger
}

// NewStockReconciler creates a new StockReconciler
func NewStockReconciler(products domain.ProductRepository, items domain.ItemRepository, logger *logging.Logger) *StockReconciler {
	return &StockReconciler{
		products: products,
		items:    items,
		logger:   logger,
	}
}

// Reconcile recomputes and writes back the counters for one product
func (r *StockReconciler) Reconcile(ctx context.Context, productID string) error {
	items, err := r.items.FindByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to load items for product %s: %w", productID, err)
	}

	counts := domain.CountStock(items)

	if err := r.products.UpdateCounters(ctx, productID, counts); err != nil {
		return fmt.Errorf("failed to update counters for product %s: %w", productID, err)
	}

	r.logger.Debug("Reconciled stock counters",
		"productId", productID,
		"total", counts.Total,
		"booked", counts.Booked,
		"sold", counts.Sold,
	)

	return nil
}

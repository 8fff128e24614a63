package application

import (
	"context"
	"fmt"
	"time"

	"github.com/edsis/inventory-service/pkg/errors"
	"github.com/edsis/inventory-service/pkg/logging"

	"github.com/edsis/inventory-service/internal/domain"
)

// BookingService handles the booking lifecycle of individual inventory items
type BookingService struct {
	items      domain.ItemRepository
	reconciler *StockReconciler
	logger     *logging.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(items domain.ItemRepository, reconciler *StockReconciler, logger *logging.Logger) *BookingService {
	return &BookingService{
		items:      items,
		reconciler: reconciler,
		logger:     logger,
	}
}

// parseExpiry accepts a plain date or a full RFC 3339 timestamp
func parseExpiry(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, domain.ErrInvalidExpiry
}

// Book places a time-boxed booking on an item
func (s *BookingService) Book(ctx context.Context, cmd BookItemCommand) (*ItemDTO, error) {
	if cmd.ExpiredAt == "" {
		return nil, errors.ErrBadRequest(domain.ErrMissingExpiry.Error())
	}

	expiry, err := parseExpiry(cmd.ExpiredAt)
	if err != nil {
		return nil, errors.ErrBadRequest(domain.ErrInvalidExpiry.Error())
	}

	item, err := s.items.FindByID(ctx, cmd.ItemID)
	if err != nil {
		s.logger.Error("Failed to get item", "itemId", cmd.ItemID, "error", err)
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, errors.ErrNotFoundWithID("item", cmd.ItemID)
	}

	bookedBy := cmd.BookedBy
	if bookedBy == "" {
		bookedBy = "Unknown"
	}
	systemUser := cmd.SystemUser
	if systemUser == "" {
		systemUser = "System"
	}

	if err := item.Book(bookedBy, systemUser, cmd.Notes, expiry, time.Now()); err != nil {
		return nil, errors.ErrBadRequest(err.Error())
	}

	if err := s.items.Update(ctx, item); err != nil {
		s.logger.Error("Failed to save item", "itemId", cmd.ItemID, "error", err)
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	if err := s.reconciler.Reconcile(ctx, item.ProductID); err != nil {
		s.logger.Error("Failed to reconcile counters", "productId", item.ProductID, "error", err)
	}

	s.logger.Info("Booked item", "itemId", cmd.ItemID, "bookedBy", bookedBy, "expiredAt", item.Booking.ExpiredAt)
	return ToItemDTO(item), nil
}

// Release clears an item's booking manually
func (s *BookingService) Release(ctx context.Context, cmd ReleaseItemCommand) (*ItemDTO, error) {
	item, err := s.items.FindByID(ctx, cmd.ItemID)
	if err != nil {
		s.logger.Error("Failed to get item", "itemId", cmd.ItemID, "error", err)
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, errors.ErrNotFoundWithID("item", cmd.ItemID)
	}

	item.Release(time.Now())

	if err := s.items.Update(ctx, item); err != nil {
		s.logger.Error("Failed to save item", "itemId", cmd.ItemID, "error", err)
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	if err := s.reconciler.Reconcile(ctx, item.ProductID); err != nil {
		s.logger.Error("Failed to reconcile counters", "productId", item.ProductID, "error", err)
	}

	s.logger.Info("Released item", "itemId", cmd.ItemID)
	return ToItemDTO(item), nil
}

// Sell moves an item to its terminal SOLD state
func (s *BookingService) Sell(ctx context.Context, cmd SellItemCommand) (*ItemDTO, error) {
	item, err := s.items.FindByID(ctx, cmd.ItemID)
	if err != nil {
		s.logger.Error("Failed to get item", "itemId", cmd.ItemID, "error", err)
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, errors.ErrNotFoundWithID("item", cmd.ItemID)
	}

	item.Sell(cmd.PONumber, time.Now())

	if err := s.items.Update(ctx, item); err != nil {
		s.logger.Error("Failed to save item", "itemId", cmd.ItemID, "error", err)
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	if err := s.reconciler.Reconcile(ctx, item.ProductID); err != nil {
		s.logger.Error("Failed to reconcile counters", "productId", item.ProductID, "error", err)
	}

	s.logger.Info("Sold item", "itemId", cmd.ItemID, "poNumber", cmd.PONumber)
	return ToItemDTO(item), nil
}

// CheckExpiredBookings sweeps all booked items and releases bookings whose
// expiry has passed. Writes are flushed in batches and counters reconciled
// once per affected product.
func (s *BookingService) CheckExpiredBookings(ctx context.Context) (*SweepResult, error) {
	booked, err := s.items.FindBooked(ctx)
	if err != nil {
		s.logger.Error("Failed to load booked items", "error", err)
		return nil, fmt.Errorf("failed to load booked items: %w", err)
	}

	now := time.Now()
	released := make([]*domain.InventoryItem, 0)
	affectedProducts := make(map[string]bool)

	for _, item := range booked {
		if item.AutoExpire(now, "Global expiration check") {
			released = append(released, item)
			affectedProducts[item.ProductID] = true
		}
	}

	if len(released) > 0 {
		if err := s.items.UpdateAll(ctx, released); err != nil {
			s.logger.Error("Failed to save released items", "count", len(released), "error", err)
			return nil, fmt.Errorf("failed to save released items: %w", err)
		}
	}

	for productID := range affectedProducts {
		if err := s.reconciler.Reconcile(ctx, productID); err != nil {
			s.logger.Error("Failed to reconcile counters", "productId", productID, "error", err)
		}
	}

	s.logger.Info("Expiry sweep completed", "scanned", len(booked), "released", len(released))
	return &SweepResult{ReleasedCount: len(released)}, nil
}

package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/edsis/inventory-service/pkg/errors"

	"github.com/edsis/inventory-service/internal/domain"
)

func newBookingTestService(products *fakeProductRepo, items *fakeItemRepo) *BookingService {
	logger := testLogger()
	reconciler := NewStockReconciler(products, items, logger)
	return NewBookingService(items, reconciler, logger)
}

func seedProduct(products *fakeProductRepo, id string, total int) *domain.Product {
	p := &domain.Product{
		ID:         id,
		Code:       "ACME-SOFA-BLSI",
		Brand:      "ACME",
		Category:   "Sofa",
		Collection: "Blue Side",
		TotalStock: total,
	}
	products.products[id] = p
	return p
}

func seedItem(items *fakeItemRepo, productID string, seq int) *domain.InventoryItem {
	item := domain.NewInventoryItem(productID, "ACME - Blue Side", domain.QRCode("ACME-SOFA-BLSI", seq), false, time.Now())
	return items.add(item)
}

func TestBookingService_Book(t *testing.T) {
	products := newFakeProductRepo()
	items := newFakeItemRepo()
	seedProduct(products, "prod-1", 1)
	item := seedItem(items, "prod-1", 1)
	svc := newBookingTestService(products, items)

	dto, err := svc.Book(context.Background(), BookItemCommand{
		ItemID:     item.ID.Hex(),
		BookedBy:   "Alice",
		SystemUser: "admin",
		Notes:      "client visit",
		ExpiredAt:  "2026-09-05",
	})

	require.NoError(t, err)
	require.NotNil(t, dto)
	assert.Equal(t, string(domain.ItemStatusBooked), dto.Status)
	require.NotNil(t, dto.Booking)
	assert.Equal(t, "Alice", dto.Booking.BookedBy)

	// Expiry is pushed out to the end of the requested day
	assert.Equal(t, 23, dto.Booking.ExpiredAt.Hour())
	assert.Equal(t, 59, dto.Booking.ExpiredAt.Minute())
	assert.Equal(t, 59, dto.Booking.ExpiredAt.Second())

	// Booking reconciles the product counters
	assert.Equal(t, 1, products.products["prod-1"].BookedStock)
}

func TestBookingService_BookAcceptsTimestampExpiry(t *testing.T) {
	products := newFakeProductRepo()
	items := newFakeItemRepo()
	seedProduct(products, "prod-1", 1)
	item := seedItem(items, "prod-1", 1)
	svc := newBookingTestService(products, items)

	dto, err := svc.Book(context.Background(), BookItemCommand{
		ItemID:    item.ID.Hex(),
		ExpiredAt: "2026-09-05T10:30:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, 5, dto.Booking.ExpiredAt.Day())
	assert.Equal(t, 23, dto.Booking.ExpiredAt.Hour())

	// Missing actor fields fall back to placeholders
	assert.Equal(t, "Unknown", dto.Booking.BookedBy)
	assert.Equal(t, "System", dto.Booking.SystemUser)
}

func TestBookingService_BookValidation(t *testing.T) {
	products := newFakeProductRepo()
	items := newFakeItemRepo()
	seedProduct(products, "prod-1", 1)
	item := seedItem(items, "prod-1", 1)
	svc := newBookingTestService(products, items)

	tests := []struct {
		name      string
		cmd       BookItemCommand
		wantCode  string
	}{
		{
			name:     "missing expiry",
			cmd:      BookItemCommand{ItemID: item.ID.Hex()},
			wantCode: apperrors.CodeBadRequest,
		},
		{
			name:     "invalid expiry format",
			cmd:      BookItemCommand{ItemID: item.ID.Hex(), ExpiredAt: "05/09/2026"},
			wantCode: apperrors.CodeBadRequest,
		},
		{
			name:     "unknown item",
			cmd:      BookItemCommand{ItemID: "64b0c0ffee0000000000dead", ExpiredAt: "2026-09-05"},
			wantCode: apperrors.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(context.Background(), tt.cmd)
			require.Error(t, err)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestBookingService_BookRejectsDoubleBooking(t *testing.T) {
	products := newFakeProductRepo()
	items := newFakeItemRepo()
	seedProduct(products, "prod-1", 1)
	item := seedItem(items, "prod-1", 1)
	svc := newBookingTestService(products, items)

	_, err := svc.Book(context.Background(), BookItemCommand{ItemID: item.ID.Hex(), ExpiredAt: "2026-09-05"})
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), BookItemCommand{ItemID: item.ID.Hex(), ExpiredAt: "2026-09-06"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeBadRequest, appErr.Code)
}

func TestBookingService_Release(t *testing.T) {
	products := newFakeProductRepo()
	items := newFakeItemRepo()
	seedProduct(products, "prod-1", 1)
	item := seedItem(items, "prod-1", 1)
	svc := newBookingTestService(products, items)

	_, err := svc.Book(context.Background(), BookItemCommand{ItemID: item.ID.Hex(), ExpiredAt: "2026-09-05"})
	require.NoError(t, err)

	dto, err := svc.Release(context.Background(), ReleaseItemCommand{ItemID: item.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, string(domain.ItemStatusAvailable), dto.Status)
	assert.Nil(t, dto.Booking)
	assert.Equal(t, 0, products.products["prod-1"].BookedStock)

	last := dto.HistoryLog[len(dto.HistoryLog)-1]
	assert.Equal(t, domain.ActionReleased, last.Action)
	assert.Equal(t, "Booking released manually", last.Note)
}

func TestBookingService_ReleaseNotFound(t *testing.T) {
	svc := newBookingTestService(newFakeProductRepo(), newFakeItemRepo())

	_, err := svc.Release(context.Background(), ReleaseItemCommand{ItemID: "64b0c0ffee0000000000dead"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestBookingService_Sell(t *testing.T) {
	products := newFakeProductRepo()
	items := newFakeItemRepo()
	seedProduct(products, "prod-1", 2)
	item := seedItem(items, "prod-1", 1)
	seedItem(items, "prod-1", 2)
	svc := newBookingTestService(products, items)

	_, err := svc.Book(context.Background(), BookItemCommand{ItemID: item.ID.Hex(), ExpiredAt: "2026-09-05"})
	require.NoError(t, err)

	dto, err := svc.Sell(context.Background(), SellItemCommand{ItemID: item.ID.Hex(), PONumber: "PO-2026-042"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.ItemStatusSold), dto.Status)
	assert.Nil(t, dto.Booking)
	require.NotNil(t, dto.SoldAt)
	assert.Equal(t, "PO-2026-042", dto.PONumber)

	// The sold unit leaves the sellable pool
	p := products.products["prod-1"]
	assert.Equal(t, 1, p.TotalStock)
	assert.Equal(t, 0, p.BookedStock)
	assert.Equal(t, 1, p.SoldStock)
}

func TestBookingService_CheckExpiredBookings(t *testing.T) {
	products := newFakeProductRepo()
	items := newFakeItemRepo()
	seedProduct(products, "prod-1", 3)
	svc := newBookingTestService(products, items)

	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)

	expired := seedItem(items, "prod-1", 1)
	require.NoError(t, expired.Book("Alice", "admin", "", yesterday, yesterday))

	active := seedItem(items, "prod-1", 2)
	require.NoError(t, active.Book("Bob", "admin", "", tomorrow, time.Now()))

	seedItem(items, "prod-1", 3)

	result, err := svc.CheckExpiredBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.ReleasedCount)

	assert.Equal(t, domain.ItemStatusAvailable, expired.Status)
	assert.Nil(t, expired.Booking)
	last := expired.HistoryLog[len(expired.HistoryLog)-1]
	assert.Equal(t, domain.ActionAutoReleased, last.Action)
	assert.Equal(t, "Global expiration check", last.Note)

	assert.Equal(t, domain.ItemStatusBooked, active.Status)

	p := products.products["prod-1"]
	assert.Equal(t, 3, p.TotalStock)
	assert.Equal(t, 1, p.BookedStock)
	assert.Equal(t, 0, p.SoldStock)
}

func TestBookingService_CheckExpiredBookingsNoWork(t *testing.T) {
	products := newFakeProductRepo()
	items := newFakeItemRepo()
	seedProduct(products, "prod-1", 1)
	svc := newBookingTestService(products, items)

	item := seedItem(items, "prod-1", 1)
	require.NoError(t, item.Book("Alice", "admin", "", time.Now().AddDate(0, 0, 1), time.Now()))

	result, err := svc.CheckExpiredBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.ReleasedCount)
	assert.Empty(t, products.reconciled)
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryItem_BookAndRelease(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	item := NewInventoryItem("prod-1", "ACME - Blue Side", "ACME-SOFA-BLSI-0001", false, now)

	assert.Equal(t, ItemStatusAvailable, item.Status)
	assert.Len(t, item.HistoryLog, 1)
	assert.Equal(t, ActionItemCreated, item.HistoryLog[0].Action)

	expiry := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, item.Book("Jane Client", "admin", "showroom hold", expiry, now))

	assert.Equal(t, ItemStatusBooked, item.Status)
	require.NotNil(t, item.Booking)
	assert.Equal(t, "Jane Client", item.Booking.BookedBy)
	assert.Equal(t, "Booked for Jane Client by admin", item.HistoryLog[1].Note)

	// Expiry is pushed to the end of the requested day
	assert.Equal(t, 23, item.Booking.ExpiredAt.Hour())
	assert.Equal(t, 59, item.Booking.ExpiredAt.Minute())
	assert.Equal(t, 59, item.Booking.ExpiredAt.Second())
	assert.Equal(t, 20, item.Booking.ExpiredAt.Day())

	item.Release(now.Add(time.Hour))
	assert.Equal(t, ItemStatusAvailable, item.Status)
	assert.Nil(t, item.Booking)
	assert.Len(t, item.HistoryLog, 3)
	assert.Equal(t, ActionReleased, item.HistoryLog[2].Action)
	assert.Equal(t, "Booking released manually", item.HistoryLog[2].Note)
}

func TestInventoryItem_BookPreconditions(t *testing.T) {
	now := time.Now()
	expiry := now.Add(48 * time.Hour)

	notForSale := NewInventoryItem("prod-1", "ACME - Blue Side", "QR-0001", true, now)
	assert.Equal(t, ItemStatusNotForSale, notForSale.Status)
	assert.True(t, notForSale.CanBook())
	require.NoError(t, notForSale.Book("Client", "System", "", expiry, now))

	booked := NewInventoryItem("prod-1", "ACME - Blue Side", "QR-0002", false, now)
	require.NoError(t, booked.Book("First", "System", "", expiry, now))
	assert.ErrorIs(t, booked.Book("Second", "System", "", expiry, now), ErrItemNotBookable)

	sold := NewInventoryItem("prod-1", "ACME - Blue Side", "QR-0003", false, now)
	sold.Sell("PO-77", now)
	assert.ErrorIs(t, sold.Book("Client", "System", "", expiry, now), ErrItemNotBookable)
}

// Release carries no state precondition: releasing a SOLD or already
// AVAILABLE item resets it to AVAILABLE. The history log keeps the record.
func TestInventoryItem_ReleaseIsUnconditional(t *testing.T) {
	now := time.Now()

	item := NewInventoryItem("prod-1", "ACME - Blue Side", "QR-0004", false, now)
	item.Sell("PO-12", now)
	assert.Equal(t, ItemStatusSold, item.Status)

	item.Release(now.Add(time.Minute))
	assert.Equal(t, ItemStatusAvailable, item.Status)
	assert.Len(t, item.HistoryLog, 3)
}

func TestInventoryItem_BookingExpiry(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	item := NewInventoryItem("prod-1", "ACME - Blue Side", "QR-0005", false, now)

	expiry := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, item.Book("Client", "System", "", expiry, now))

	// Still valid through the whole expiry day
	endOfDay := time.Date(2026, 5, 3, 23, 59, 59, 0, time.UTC)
	assert.False(t, item.BookingExpired(endOfDay))
	assert.False(t, item.AutoExpire(endOfDay, "Global expiration check"))

	// Expired one second into the next day
	nextDay := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	assert.True(t, item.BookingExpired(nextDay))
	assert.True(t, item.AutoExpire(nextDay, "Global expiration check"))

	assert.Equal(t, ItemStatusAvailable, item.Status)
	assert.Nil(t, item.Booking)
	last := item.HistoryLog[len(item.HistoryLog)-1]
	assert.Equal(t, ActionAutoReleased, last.Action)
	assert.Equal(t, "Global expiration check", last.Note)
}

func TestInventoryItem_BookingExpiredEdgeCases(t *testing.T) {
	now := time.Now()

	available := NewInventoryItem("prod-1", "ACME - Blue Side", "QR-0006", false, now)
	assert.False(t, available.BookingExpired(now))

	// BOOKED status with missing booking metadata never expires
	orphan := NewInventoryItem("prod-1", "ACME - Blue Side", "QR-0007", false, now)
	orphan.Status = ItemStatusBooked
	orphan.Booking = nil
	assert.False(t, orphan.BookingExpired(now.Add(time.Hour)))

	// Zero expiry timestamp never expires
	zero := NewInventoryItem("prod-1", "ACME - Blue Side", "QR-0008", false, now)
	zero.Status = ItemStatusBooked
	zero.Booking = &Booking{BookedBy: "Client"}
	assert.False(t, zero.BookingExpired(now))
	assert.False(t, zero.AutoExpire(now, "Global expiration check"))
}

func TestInventoryItem_Sell(t *testing.T) {
	now := time.Now()
	item := NewInventoryItem("prod-1", "ACME - Blue Side", "QR-0009", false, now)

	require.NoError(t, item.Book("Client", "System", "", now.Add(24*time.Hour), now))

	soldAt := now.Add(2 * time.Hour)
	item.Sell("PO-2026-001", soldAt)

	assert.Equal(t, ItemStatusSold, item.Status)
	assert.Nil(t, item.Booking)
	assert.Equal(t, "PO-2026-001", item.PONumber)
	assert.Equal(t, soldAt, item.SoldAt)
	last := item.HistoryLog[len(item.HistoryLog)-1]
	assert.Equal(t, ActionSold, last.Action)
}

func TestNewImportedItem(t *testing.T) {
	now := time.Now()

	item := NewImportedItem("prod-2", "ACME - Coast", "QR-0001", "Showroom A", "IMPORT-20260310-1400-ABCD", false, now)
	assert.Equal(t, ItemStatusAvailable, item.Status)
	assert.Equal(t, "Showroom A", item.CurrentLocation)
	require.Len(t, item.HistoryLog, 1)
	assert.Equal(t, ActionBulkImport, item.HistoryLog[0].Action)
	assert.Equal(t, "IMPORT-20260310-1400-ABCD", item.HistoryLog[0].BatchID)

	defaulted := NewImportedItem("prod-2", "ACME - Coast", "QR-0002", "", "IMPORT-20260310-1400-ABCD", true, now)
	assert.Equal(t, ItemStatusNotForSale, defaulted.Status)
	assert.Equal(t, "Warehouse (Import)", defaulted.CurrentLocation)
}

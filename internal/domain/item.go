package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemStatus represents the lifecycle state of a physical inventory unit
type ItemStatus string

const (
	ItemStatusAvailable  ItemStatus = "AVAILABLE"
	ItemStatusNotForSale ItemStatus = "NOT_FOR_SALE"
	ItemStatusBooked     ItemStatus = "BOOKED"
	ItemStatusSold       ItemStatus = "SOLD"
)

// History actions recorded in an item's history log
const (
	ActionItemCreated  = "ITEM_CREATED"
	ActionBulkImport   = "BULK_IMPORT"
	ActionBooked       = "BOOKED"
	ActionReleased     = "RELEASED"
	ActionAutoReleased = "AUTO_RELEASED"
	ActionSold         = "SOLD"
)

// Booking holds the reservation metadata attached to a BOOKED item
type Booking struct {
	BookedBy   string    `bson:"booked_by" json:"booked_by"`
	SystemUser string    `bson:"system_user" json:"system_user"`
	BookedAt   time.Time `bson:"booked_at" json:"booked_at"`
	ExpiredAt  time.Time `bson:"expired_at" json:"expired_at"`
	Notes      string    `bson:"notes" json:"notes"`
}

// HistoryEntry is an append-only audit record on an item
type HistoryEntry struct {
	Action   string    `bson:"action" json:"action"`
	Location string    `bson:"location" json:"location"`
	Date     time.Time `bson:"date" json:"date"`
	Note     string    `bson:"note" json:"note"`
	BatchID  string    `bson:"batch_id,omitempty" json:"batch_id,omitempty"`
}

// InventoryItem represents a single physical unit of a product.
// Each unit carries its own QR code and status lifecycle.
type InventoryItem struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ProductID       string             `bson:"product_id"`
	ProductName     string             `bson:"product_name"`
	QRCode          string             `bson:"qr_code"`
	Status          ItemStatus         `bson:"status"`
	CurrentLocation string             `bson:"current_location"`
	CreatedAt       time.Time          `bson:"created_at"`
	Booking         *Booking           `bson:"booking,omitempty"`
	SoldAt          time.Time          `bson:"sold_at,omitempty"`
	PONumber        string             `bson:"po_number,omitempty"`
	HistoryLog      []HistoryEntry     `bson:"history_log"`
}

// NewInventoryItem creates a new item for freshly created product stock
func NewInventoryItem(productID, productName, qrCode string, notForSale bool, now time.Time) *InventoryItem {
	status := ItemStatusAvailable
	if notForSale {
		status = ItemStatusNotForSale
	}

	return &InventoryItem{
		ProductID:       productID,
		ProductName:     productName,
		QRCode:          qrCode,
		Status:          status,
		CurrentLocation: "Warehouse (New)",
		CreatedAt:       now,
		HistoryLog: []HistoryEntry{{
			Action:   ActionItemCreated,
			Location: "Warehouse (New)",
			Date:     now,
			Note:     "Initial Stock Creation",
		}},
	}
}

// NewImportedItem creates a new item produced by a bulk import batch
func NewImportedItem(productID, productName, qrCode, location, batchID string, notForSale bool, now time.Time) *InventoryItem {
	status := ItemStatusAvailable
	if notForSale {
		status = ItemStatusNotForSale
	}
	if location == "" {
		location = "Warehouse (Import)"
	}

	return &InventoryItem{
		ProductID:       productID,
		ProductName:     productName,
		QRCode:          qrCode,
		Status:          status,
		CurrentLocation: location,
		CreatedAt:       now,
		HistoryLog: []HistoryEntry{{
			Action:   ActionBulkImport,
			Location: location,
			Date:     now,
			Note:     fmt.Sprintf("Imported via Batch %s", batchID),
			BatchID:  batchID,
		}},
	}
}

// EndOfDay normalizes a date to 23:59:59 local time, so a booking expiring on
// day D stays valid through the whole of D.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// CanBook reports whether the item is in a bookable state
func (i *InventoryItem) CanBook() bool {
	return i.Status == ItemStatusAvailable || i.Status == ItemStatusNotForSale
}

// Book places a time-boxed reservation on the item
func (i *InventoryItem) Book(bookedBy, systemUser, notes string, expiryDate, now time.Time) error {
	if !i.CanBook() {
		return ErrItemNotBookable
	}

	i.Status = ItemStatusBooked
	i.Booking = &Booking{
		BookedBy:   bookedBy,
		SystemUser: systemUser,
		BookedAt:   now,
		ExpiredAt:  EndOfDay(expiryDate),
		Notes:      notes,
	}
	i.HistoryLog = append(i.HistoryLog, HistoryEntry{
		Action:   ActionBooked,
		Location: i.CurrentLocation,
		Date:     now,
		Note:     fmt.Sprintf("Booked for %s by %s", bookedBy, systemUser),
	})

	return nil
}

// Release clears the booking and returns the item to AVAILABLE. No state
// precondition is checked: releasing an unbooked item resets it to AVAILABLE.
func (i *InventoryItem) Release(now time.Time) {
	i.Status = ItemStatusAvailable
	i.Booking = nil
	i.HistoryLog = append(i.HistoryLog, HistoryEntry{
		Action:   ActionReleased,
		Location: i.CurrentLocation,
		Date:     now,
		Note:     "Booking released manually",
	})
}

// BookingExpired reports whether the item holds a booking whose expiry has passed
func (i *InventoryItem) BookingExpired(now time.Time) bool {
	if i.Status != ItemStatusBooked || i.Booking == nil {
		return false
	}
	if i.Booking.ExpiredAt.IsZero() {
		return false
	}
	return now.After(i.Booking.ExpiredAt)
}

// AutoExpire releases the booking if it has expired, recording the given note.
// Returns true if the item was released.
func (i *InventoryItem) AutoExpire(now time.Time, note string) bool {
	if !i.BookingExpired(now) {
		return false
	}

	i.Status = ItemStatusAvailable
	i.Booking = nil
	i.HistoryLog = append(i.HistoryLog, HistoryEntry{
		Action:   ActionAutoReleased,
		Location: i.CurrentLocation,
		Date:     now,
		Note:     note,
	})

	return true
}

// Sell moves the item to its terminal SOLD state
func (i *InventoryItem) Sell(poNumber string, now time.Time) {
	i.Status = ItemStatusSold
	i.Booking = nil
	i.SoldAt = now
	i.PONumber = poNumber
	i.HistoryLog = append(i.HistoryLog, HistoryEntry{
		Action:   ActionSold,
		Location: i.CurrentLocation,
		Date:     now,
		Note:     fmt.Sprintf("Sold under PO %s", poNumber),
	})
}

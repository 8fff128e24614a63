package application

import (
	"time"

	"github.com/edsis/inventory-service/internal/domain"
)

// ProductDTO is the API representation of a product
type ProductDTO struct {
	ID               string                `json:"id"`
	Code             string                `json:"code"`
	Brand            string                `json:"brand"`
	Category         string                `json:"category"`
	Collection       string                `json:"collection"`
	ManufacturerCode string                `json:"manufacturer_code"`
	ImageURL         string                `json:"image_url"`
	Detail           string                `json:"detail"`
	Dimensions       string                `json:"dimensions"`
	Finishing        string                `json:"finishing"`
	Currency         string                `json:"currency"`
	RetailPriceIDR   int64                 `json:"retail_price_idr"`
	RetailPriceEUR   int64                 `json:"retail_price_eur"`
	RetailPriceUSD   int64                 `json:"retail_price_usd"`
	NettPriceIDR     int64                 `json:"nett_price_idr"`
	Discounts        []domain.DiscountLine `json:"discounts"`
	DiscountIDs      []string              `json:"discount_ids"`
	TotalStock       int                   `json:"total_stock"`
	BookedStock      int                   `json:"booked_stock"`
	SoldStock        int                   `json:"sold_stock"`
	IsNotForSale     bool                  `json:"is_not_for_sale"`
	IsUpcoming       bool                  `json:"is_upcoming"`
	UpcomingETA      string                `json:"upcoming_eta"`
	CreatedAt        time.Time             `json:"created_at"`
}

// BookingDTO is the API representation of an item booking
type BookingDTO struct {
	BookedBy   string    `json:"booked_by"`
	SystemUser string    `json:"system_user"`
	BookedAt   time.Time `json:"booked_at"`
	ExpiredAt  time.Time `json:"expired_at"`
	Notes      string    `json:"notes"`
}

// ItemDTO is the API representation of an inventory item
type ItemDTO struct {
	ID              string                `json:"id"`
	ProductID       string                `json:"product_id"`
	ProductName     string                `json:"product_name"`
	QRCode          string                `json:"qr_code"`
	Status          string                `json:"status"`
	CurrentLocation string                `json:"current_location"`
	CreatedAt       time.Time             `json:"created_at"`
	Booking         *BookingDTO           `json:"booking,omitempty"`
	SoldAt          *time.Time            `json:"sold_at,omitempty"`
	PONumber        string                `json:"po_number,omitempty"`
	HistoryLog      []domain.HistoryEntry `json:"history_log"`
}

// ManageProductResult reports the outcome of a product create or edit
type ManageProductResult struct {
	ID  string `json:"id"`
	SKU string `json:"sku"`
}

// ImportResult reports the outcome of a bulk import
type ImportResult struct {
	Count   int    `json:"count"`
	BatchID string `json:"batch_id"`
}

// SweepResult reports the outcome of an expiry sweep
type SweepResult struct {
	ReleasedCount int `json:"released_count"`
}

// DiscountDTO is the API representation of a discount rule
type DiscountDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SettingsDTO is the API representation of the exchange rate settings
type SettingsDTO struct {
	EURRate     int64     `json:"eur_rate"`
	USDRate     int64     `json:"usd_rate"`
	LastUpdated time.Time `json:"last_updated"`
}

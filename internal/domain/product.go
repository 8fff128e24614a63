package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DiscountLine is a discount applied to a product, denormalized from the
// discount rule it references
type DiscountLine struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Value float64 `bson:"value" json:"value"`
}

// StockCounts holds the denormalized stock counters for a product
type StockCounts struct {
	Total  int
	Booked int
	Sold   int
}

// Product is the catalog entry. Stock counters are denormalized from the
// product's inventory items and restored by the reconciler after item
// mutations.
type Product struct {
	ID               string         `bson:"_id" json:"id"`
	Code             string         `bson:"code" json:"code"`
	Brand            string         `bson:"brand" json:"brand"`
	Category         string         `bson:"category" json:"category"`
	Collection       string         `bson:"collection" json:"collection"`
	ManufacturerCode string         `bson:"manufacturer_code" json:"manufacturer_code"`
	ImageURL         string         `bson:"image_url" json:"image_url"`
	Detail           string         `bson:"detail" json:"detail"`
	Dimensions       string         `bson:"dimensions" json:"dimensions"`
	Finishing        string         `bson:"finishing" json:"finishing"`
	Currency         string         `bson:"currency" json:"currency"`
	RetailPriceIDR   int64          `bson:"retail_price_idr" json:"retail_price_idr"`
	RetailPriceEUR   int64          `bson:"retail_price_eur" json:"retail_price_eur"`
	RetailPriceUSD   int64          `bson:"retail_price_usd" json:"retail_price_usd"`
	NettPriceIDR     int64          `bson:"nett_price_idr" json:"nett_price_idr"`
	Discounts        []DiscountLine `bson:"discounts" json:"discounts"`
	DiscountIDs      []string       `bson:"discount_ids" json:"discount_ids"`
	TotalStock       int            `bson:"total_stock" json:"total_stock"`
	BookedStock      int            `bson:"booked_stock" json:"booked_stock"`
	SoldStock        int            `bson:"sold_stock" json:"sold_stock"`
	LastSequence     int            `bson:"last_sequence" json:"last_sequence"`
	IsNotForSale     bool           `bson:"is_not_for_sale" json:"is_not_for_sale"`
	IsUpcoming       bool           `bson:"is_upcoming" json:"is_upcoming"`
	UpcomingETA      string         `bson:"upcoming_eta" json:"upcoming_eta"`
	CreatedAt        time.Time      `bson:"created_at,omitempty" json:"created_at"`
}

// DisplayName is the denormalized name stamped onto inventory items
func (p *Product) DisplayName() string {
	return fmt.Sprintf("%s - %s", p.Brand, p.Collection)
}

// NextSequence advances the per-product sequence counter and returns it
func (p *Product) NextSequence() int {
	p.LastSequence++
	return p.LastSequence
}

// ApplyCounts writes reconciled stock counters onto the product
func (p *Product) ApplyCounts(counts StockCounts) {
	p.TotalStock = counts.Total
	p.BookedStock = counts.Booked
	p.SoldStock = counts.Sold
}

// SyncDiscountIDs rebuilds the discount_ids index from the discount lines
func (p *Product) SyncDiscountIDs() {
	ids := make([]string, 0, len(p.Discounts))
	for _, d := range p.Discounts {
		if d.ID != "" {
			ids = append(ids, d.ID)
		}
	}
	p.DiscountIDs = ids
}

// CountStock classifies items by status. SOLD items leave the sellable pool:
// total counts everything except SOLD.
func CountStock(items []*InventoryItem) StockCounts {
	var counts StockCounts
	for _, item := range items {
		if item.Status == ItemStatusSold {
			counts.Sold++
		} else {
			counts.Total++
		}
		if item.Status == ItemStatusBooked {
			counts.Booked++
		}
	}
	return counts
}

// NormalizeBrand trims and uppercases a brand name
func NormalizeBrand(brand string) string {
	return strings.ToUpper(strings.TrimSpace(brand))
}

// NormalizeCategory trims and title-cases a category name.
// A fresh caser is built per call: cases.Caser is not safe for concurrent use.
func NormalizeCategory(category string) string {
	return cases.Title(language.English).String(strings.TrimSpace(category))
}

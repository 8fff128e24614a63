package application

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edsis/inventory-service/internal/domain"
)

func newExportTestService(products *fakeProductRepo, items *fakeItemRepo, settings *fakeSettingsRepo) *ExportService {
	return NewExportService(products, items, settings, testLogger())
}

func TestExportService_Export(t *testing.T) {
	products := newFakeProductRepo()
	items := newFakeItemRepo()
	settings := &fakeSettingsRepo{settings: &domain.Settings{EURRate: 17000, USDRate: 15500}}
	svc := newExportTestService(products, items, settings)

	products.products["prod-1"] = &domain.Product{
		ID:             "prod-1",
		Code:           "ACME-SOFA-BLSI",
		Brand:          "ACME",
		Category:       "Sofa",
		Collection:     "Blue Side",
		Currency:       "EUR",
		RetailPriceEUR: 100,
		Discounts: []domain.DiscountLine{
			{ID: "disc-1", Name: "Trade 10%", Value: 10},
			{ID: "disc-2", Name: "Extra", Value: 12.5},
		},
		TotalStock:  3,
		BookedStock: 1,
		ImageURL:    "products/sofa.jpg",
	}

	now := time.Now()
	available := domain.NewInventoryItem("prod-1", "ACME - Blue Side", "ACME-SOFA-BLSI-0001", false, now)
	available.CurrentLocation = "Showroom A"
	items.add(available)

	warehouse := domain.NewInventoryItem("prod-1", "ACME - Blue Side", "ACME-SOFA-BLSI-0002", false, now)
	items.add(warehouse)

	sold := domain.NewInventoryItem("prod-1", "ACME - Blue Side", "ACME-SOFA-BLSI-0003", false, now)
	sold.CurrentLocation = "Sold Floor"
	sold.Sell("PO-1", now)
	items.add(sold)

	f, filename, err := svc.Export(context.Background())
	require.NoError(t, err)
	defer f.Close()

	assert.Regexp(t, regexp.MustCompile(`^EDSIS_Inventory_Master_\d{4}-\d{2}-\d{2}_\d{4}\.xlsx$`), filename)

	sheet := "Inventory Master"
	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "system sku", header)

	sku, _ := f.GetCellValue(sheet, "A2")
	assert.Equal(t, "ACME-SOFA-BLSI", sku)

	// EUR price converted at the live rate
	retailIDR, _ := f.GetCellValue(sheet, "K2")
	assert.Equal(t, "1700000", retailIDR)

	discountCol, _ := f.GetCellValue(sheet, "L2")
	assert.Equal(t, "10% + 12.5%", discountCol)

	// 1700000 * 0.90 * 0.875, truncated once
	nett, _ := f.GetCellValue(sheet, "M2")
	assert.Equal(t, "1338750", nett)

	totalQty, _ := f.GetCellValue(sheet, "Q2")
	assert.Equal(t, "3", totalQty)
	bookedQty, _ := f.GetCellValue(sheet, "R2")
	assert.Equal(t, "1", bookedQty)
	availableQty, _ := f.GetCellValue(sheet, "S2")
	assert.Equal(t, "2", availableQty)

	// Sold units do not contribute locations
	location, _ := f.GetCellValue(sheet, "T2")
	assert.Equal(t, "Showroom A | Warehouse (New)", location)

	image, _ := f.GetCellValue(sheet, "V2")
	assert.Equal(t, "sofa.jpg", image)
}

func TestExportService_ExportSortsByBrandThenCollection(t *testing.T) {
	products := newFakeProductRepo()
	items := newFakeItemRepo()
	settings := &fakeSettingsRepo{}
	svc := newExportTestService(products, items, settings)

	products.products["p1"] = &domain.Product{ID: "p1", Code: "ZETA-A", Brand: "ZETA", Collection: "Alpha"}
	products.products["p2"] = &domain.Product{ID: "p2", Code: "ACME-B", Brand: "ACME", Collection: "Beta"}
	products.products["p3"] = &domain.Product{ID: "p3", Code: "ACME-A", Brand: "ACME", Collection: "Alpha"}

	f, _, err := svc.Export(context.Background())
	require.NoError(t, err)
	defer f.Close()

	sheet := "Inventory Master"
	first, _ := f.GetCellValue(sheet, "A2")
	second, _ := f.GetCellValue(sheet, "A3")
	third, _ := f.GetCellValue(sheet, "A4")
	assert.Equal(t, "ACME-A", first)
	assert.Equal(t, "ACME-B", second)
	assert.Equal(t, "ZETA-A", third)
}

func TestExportService_ExportEmptyCatalog(t *testing.T) {
	svc := newExportTestService(newFakeProductRepo(), newFakeItemRepo(), &fakeSettingsRepo{})

	f, _, err := svc.Export(context.Background())
	require.NoError(t, err)
	defer f.Close()

	row2, err := f.GetCellValue("Inventory Master", "A2")
	require.NoError(t, err)
	assert.Empty(t, row2)
}

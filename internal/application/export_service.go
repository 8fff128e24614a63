package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/edsis/inventory-service/pkg/logging"

	"github.com/edsis/inventory-service/internal/domain"
)

// ExportService generates the inventory master spreadsheet
type ExportService struct {
	products domain.ProductRepository
	items    domain.ItemRepository
	settings domain.SettingsRepository
	logger   *logging.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	products domain.ProductRepository,
	items domain.ItemRepository,
	settings domain.SettingsRepository,
	logger *logging.Logger,
) *ExportService {
	return &ExportService{
		products: products,
		items:    items,
		settings: settings,
		logger:   logger,
	}
}

var exportHeaders = []string{
	"system sku", "brand", "category", "collection name", "manufacturer id",
	"dimensions", "finishing", "detail",
	"retail price (eur)", "retail price (usd)", "retail price (idr)",
	"discounts", "nett price (idr)",
	"not for sale", "upcoming", "eta",
	"total qty", "booked qty", "available qty",
	"location", "system id", "image file",
}

// exportRow is one spreadsheet line, prices already converted at live rates
type exportRow struct {
	sku          string
	brand        string
	category     string
	collection   string
	manufacturer string
	dimensions   string
	finishing    string
	detail       string
	retailEUR    int64
	retailUSD    int64
	retailIDR    int64
	discounts    string
	nettIDR      int64
	notForSale   string
	upcoming     string
	eta          string
	totalQty     int
	bookedQty    int
	availableQty int
	location     string
	systemID     string
	imageFile    string
}

// Export builds the inventory master workbook and returns it with the
// download filename. Prices in foreign currencies are recomputed at the
// current exchange rates, not the rates stored at import time.
func (s *ExportService) Export(ctx context.Context) (*excelize.File, string, error) {
	rates, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings", "error", err)
		return nil, "", fmt.Errorf("failed to load settings: %w", err)
	}

	allItems, err := s.items.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load items", "error", err)
		return nil, "", fmt.Errorf("failed to load items: %w", err)
	}

	// Distinct locations per product, SOLD units excluded
	locations := make(map[string]map[string]bool)
	for _, item := range allItems {
		loc := strings.TrimSpace(item.CurrentLocation)
		if item.ProductID == "" || loc == "" || item.Status == domain.ItemStatusSold {
			continue
		}
		if locations[item.ProductID] == nil {
			locations[item.ProductID] = make(map[string]bool)
		}
		locations[item.ProductID][loc] = true
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load products", "error", err)
		return nil, "", fmt.Errorf("failed to load products: %w", err)
	}

	rows := make([]exportRow, 0, len(products))
	for _, p := range products {
		retailIDR := domain.ConvertToIDR(p, rates)

		parts := make([]string, 0, len(p.Discounts))
		for _, d := range p.Discounts {
			if d.Value != 0 {
				parts = append(parts, fmt.Sprintf("%s%%", formatDiscountValue(d.Value)))
			}
		}

		locs := make([]string, 0, len(locations[p.ID]))
		for loc := range locations[p.ID] {
			locs = append(locs, loc)
		}
		sort.Strings(locs)

		row := exportRow{
			sku:          p.Code,
			brand:        p.Brand,
			category:     p.Category,
			collection:   p.Collection,
			manufacturer: p.ManufacturerCode,
			dimensions:   p.Dimensions,
			finishing:    p.Finishing,
			detail:       p.Detail,
			retailEUR:    p.RetailPriceEUR,
			retailUSD:    p.RetailPriceUSD,
			retailIDR:    retailIDR,
			discounts:    strings.Join(parts, " + "),
			nettIDR:      domain.NettPriceIDR(retailIDR, p.Discounts),
			eta:          p.UpcomingETA,
			totalQty:     p.TotalStock,
			bookedQty:    p.BookedStock,
			availableQty: p.TotalStock - p.BookedStock,
			location:     strings.Join(locs, " | "),
			systemID:     p.ID,
			imageFile:    strings.TrimPrefix(p.ImageURL, "products/"),
		}
		if p.IsNotForSale {
			row.notForSale = "Not For Sale"
		}
		if p.IsUpcoming {
			row.upcoming = "Upcoming"
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].brand != rows[j].brand {
			return rows[i].brand < rows[j].brand
		}
		return rows[i].collection < rows[j].collection
	})

	f := excelize.NewFile()
	sheet := "Inventory Master"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	widths := make([]int, len(exportHeaders))
	for i, h := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
		widths[i] = len(h)
	}

	for rowIdx, r := range rows {
		values := []interface{}{
			r.sku, r.brand, r.category, r.collection, r.manufacturer,
			r.dimensions, r.finishing, r.detail,
			r.retailEUR, r.retailUSD, r.retailIDR,
			r.discounts, r.nettIDR,
			r.notForSale, r.upcoming, r.eta,
			r.totalQty, r.bookedQty, r.availableQty,
			r.location, r.systemID, r.imageFile,
		}
		rowNum := rowIdx + 2
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowNum), v)
			if n := len(fmt.Sprintf("%v", v)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(w + 2)
		if width > 40 {
			width = 40
		}
		f.SetColWidth(sheet, col, col, width)
	}

	filename := fmt.Sprintf("EDSIS_Inventory_Master_%s.xlsx", time.Now().Format("2006-01-02_1504"))

	s.logger.Info("Generated inventory export", "products", len(rows), "filename", filename)
	return f, filename, nil
}

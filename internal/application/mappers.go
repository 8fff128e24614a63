package application

import (
	"github.com/edsis/inventory-service/internal/domain"
)

// ToProductDTO converts a domain product to its API representation
func ToProductDTO(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ID:               p.ID,
		Code:             p.Code,
		Brand:            p.Brand,
		Category:         p.Category,
		Collection:       p.Collection,
		ManufacturerCode: p.ManufacturerCode,
		ImageURL:         p.ImageURL,
		Detail:           p.Detail,
		Dimensions:       p.Dimensions,
		Finishing:        p.Finishing,
		Currency:         p.Currency,
		RetailPriceIDR:   p.RetailPriceIDR,
		RetailPriceEUR:   p.RetailPriceEUR,
		RetailPriceUSD:   p.RetailPriceUSD,
		NettPriceIDR:     p.NettPriceIDR,
		Discounts:        p.Discounts,
		DiscountIDs:      p.DiscountIDs,
		TotalStock:       p.TotalStock,
		BookedStock:      p.BookedStock,
		SoldStock:        p.SoldStock,
		IsNotForSale:     p.IsNotForSale,
		IsUpcoming:       p.IsUpcoming,
		UpcomingETA:      p.UpcomingETA,
		CreatedAt:        p.CreatedAt,
	}
}

// ToProductDTOs converts a slice of domain products
func ToProductDTOs(products []*domain.Product) []*ProductDTO {
	dtos := make([]*ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = ToProductDTO(p)
	}
	return dtos
}

// ToItemDTO converts a domain inventory item to its API representation
func ToItemDTO(item *domain.InventoryItem) *ItemDTO {
	dto := &ItemDTO{
		ID:              item.ID.Hex(),
		ProductID:       item.ProductID,
		ProductName:     item.ProductName,
		QRCode:          item.QRCode,
		Status:          string(item.Status),
		CurrentLocation: item.CurrentLocation,
		CreatedAt:       item.CreatedAt,
		PONumber:        item.PONumber,
		HistoryLog:      item.HistoryLog,
	}

	if item.Booking != nil {
		dto.Booking = &BookingDTO{
			BookedBy:   item.Booking.BookedBy,
			SystemUser: item.Booking.SystemUser,
			BookedAt:   item.Booking.BookedAt,
			ExpiredAt:  item.Booking.ExpiredAt,
			Notes:      item.Booking.Notes,
		}
	}

	if !item.SoldAt.IsZero() {
		soldAt := item.SoldAt
		dto.SoldAt = &soldAt
	}

	return dto
}

// ToItemDTOs converts a slice of domain inventory items
func ToItemDTOs(items []*domain.InventoryItem) []*ItemDTO {
	dtos := make([]*ItemDTO, len(items))
	for i, item := range items {
		dtos[i] = ToItemDTO(item)
	}
	return dtos
}

// ToDiscountDTO converts a domain discount rule to its API representation
func ToDiscountDTO(d *domain.Discount) *DiscountDTO {
	return &DiscountDTO{
		ID:        d.ID,
		Name:      d.Name,
		Value:     d.Value,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
	}
}

// ToDiscountDTOs converts a slice of domain discount rules
func ToDiscountDTOs(discounts []*domain.Discount) []*DiscountDTO {
	dtos := make([]*DiscountDTO, len(discounts))
	for i, d := range discounts {
		dtos[i] = ToDiscountDTO(d)
	}
	return dtos
}

// ToSettingsDTO converts the settings document to its API representation
func ToSettingsDTO(s domain.Settings) *SettingsDTO {
	return &SettingsDTO{
		EURRate:     s.EURRate,
		USDRate:     s.USDRate,
		LastUpdated: s.LastUpdated,
	}
}

func toDiscountLines(inputs []DiscountInput) []domain.DiscountLine {
	lines := make([]domain.DiscountLine, 0, len(inputs))
	for _, in := range inputs {
		lines = append(lines, domain.DiscountLine{ID: in.ID, Name: in.Name, Value: in.Value})
	}
	return lines
}

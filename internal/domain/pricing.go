package domain

// NettPriceIDR applies a discount cascade to a retail price. Discounts
// compound multiplicatively in order, and the running value is truncated to a
// whole Rupiah only once at the end.
func NettPriceIDR(retailIDR int64, discounts []DiscountLine) int64 {
	price := float64(retailIDR)
	for _, d := range discounts {
		price = price * ((100 - d.Value) / 100)
	}
	return int64(price)
}

// ConvertToIDR resolves a product's effective IDR retail price from its
// currency of record and the current exchange rates. Products priced in IDR
// keep their stored price.
func ConvertToIDR(p *Product, rates Settings) int64 {
	switch {
	case p.Currency == "EUR" && p.RetailPriceEUR > 0:
		return p.RetailPriceEUR * rates.EURRate
	case p.Currency == "USD" && p.RetailPriceUSD > 0:
		return p.RetailPriceUSD * rates.USDRate
	default:
		return p.RetailPriceIDR
	}
}

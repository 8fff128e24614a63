package application

// Manage modes shared by product and discount management
const (
	ModeAdd    = "ADD"
	ModeEdit   = "EDIT"
	ModeDelete = "DELETE"
)

// BookItemCommand places a time-boxed booking on a single item
type BookItemCommand struct {
	ItemID     string `json:"item_id"`
	BookedBy   string `json:"booked_by"`
	SystemUser string `json:"system_user"`
	Notes      string `json:"notes"`
	ExpiredAt  string `json:"expired_at" binding:"required"`
}

// ReleaseItemCommand releases a booking manually
type ReleaseItemCommand struct {
	ItemID string `json:"item_id"`
}

// SellItemCommand marks an item as sold
type SellItemCommand struct {
	ItemID   string `json:"item_id"`
	PONumber string `json:"po_number"`
}

// DiscountInput is a discount line supplied by a client. IsActive is a
// pointer so an absent field defaults to active.
type DiscountInput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	IsActive *bool   `json:"is_active"`
}

// ProductInput carries the product fields accepted on create and edit
type ProductInput struct {
	ID               string          `json:"id"`
	Code             string          `json:"code" binding:"omitempty,sku"`
	Brand            string          `json:"brand"`
	Category         string          `json:"category"`
	Collection       string          `json:"collection"`
	ManufacturerCode string          `json:"manufacturer_code"`
	ImageURL         string          `json:"image_url"`
	Detail           string          `json:"detail"`
	Dimensions       string          `json:"dimensions"`
	Finishing        string          `json:"finishing"`
	Currency         string          `json:"currency" binding:"omitempty,currency"`
	RetailPriceIDR   int64           `json:"retail_price_idr"`
	RetailPriceEUR   int64           `json:"retail_price_eur"`
	RetailPriceUSD   int64           `json:"retail_price_usd"`
	NettPriceIDR     int64           `json:"nett_price_idr"`
	Discounts        []DiscountInput `json:"discounts"`
	TotalStock       int             `json:"total_stock"`
	IsNotForSale     bool            `json:"is_not_for_sale"`
	IsUpcoming       bool            `json:"is_upcoming"`
	UpcomingETA      string          `json:"upcoming_eta"`
	Location         string          `json:"location"`
}

// ManageProductCommand creates or edits a product
type ManageProductCommand struct {
	Mode    string       `json:"mode" binding:"required,manage_mode"`
	Product ProductInput `json:"product" binding:"required"`
}

// DeleteProductCommand removes a product and all of its items
type DeleteProductCommand struct {
	ProductID string `json:"product_id" binding:"required"`
}

// ImportProductsCommand bulk imports a batch of products
type ImportProductsCommand struct {
	Products []ProductInput `json:"products" binding:"required"`
}

// ManageDiscountCommand creates, edits or deletes a discount rule
type ManageDiscountCommand struct {
	Mode     string        `json:"mode" binding:"required,manage_mode"`
	Discount DiscountInput `json:"discount" binding:"required"`
}

// UpdateRatesCommand updates the global exchange rates
type UpdateRatesCommand struct {
	EURRate int64 `json:"eur_rate" binding:"gte=0"`
	USDRate int64 `json:"usd_rate" binding:"gte=0"`
}

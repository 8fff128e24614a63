package domain

import "time"

// Discount is a reusable percentage discount rule. Products reference rules
// by ID and carry a denormalized copy of name and value.
type Discount struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Value     float64   `bson:"value" json:"value"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

package models

import (
	"encoding/json"
	"time"
)

// Product is a packaged good available for delivery, e.g. aged chen pi or
// bottled sauces.
type Product struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Slug                 string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Name                 string    `gorm:"type:varchar(255);not null" json:"name"`
	Description          string    `gorm:"type:text" json:"description"`
	Price                float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category             string    `gorm:"type:varchar(100);index" json:"category"`
	Ingredients          string    `gorm:"type:text" json:"-"`
	AvailableForDelivery bool      `gorm:"default:true" json:"available_for_delivery"`
	IsFeatured           bool      `gorm:"default:false" json:"is_featured"`
	Stock                int       `json:"stock"`
	ImageUrl             string    `gorm:"type:varchar(255)" json:"image_url"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (p *Product) GetIngredients() []string { return decodeStringList(p.Ingredients) }

func (p *Product) SetIngredients(values []string) error {
	return encodeStringList(&p.Ingredients, values)
}

func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		Ingredients []string `json:"ingredients"`
	}{
		alias:       alias(p),
		Ingredients: p.GetIngredients(),
	})
}

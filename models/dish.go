package models

import (
	"encoding/json"
	"time"
)

// Dish is a menu item. String-list fields (ingredients, allergens and the
// menu/restaurant slug references) are stored as JSON text columns with
// typed accessors.
type Dish struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Slug            string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Ingredients     string    `gorm:"type:text" json:"-"`
	Allergens       string    `gorm:"type:text" json:"-"`
	ChenPiAge       int       `json:"chen_pi_age"`
	IsSignatureDish bool      `gorm:"default:false" json:"is_signature_dish"`
	Menus           string    `gorm:"type:text" json:"-"`
	Restaurants     string    `gorm:"type:text" json:"-"`
	ImageUrl        string    `gorm:"type:varchar(255)" json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (d *Dish) GetIngredients() []string { return decodeStringList(d.Ingredients) }
func (d *Dish) GetAllergens() []string   { return decodeStringList(d.Allergens) }
func (d *Dish) GetMenus() []string       { return decodeStringList(d.Menus) }
func (d *Dish) GetRestaurants() []string { return decodeStringList(d.Restaurants) }

func (d *Dish) SetIngredients(values []string) error { return encodeStringList(&d.Ingredients, values) }
func (d *Dish) SetAllergens(values []string) error   { return encodeStringList(&d.Allergens, values) }
func (d *Dish) SetMenus(values []string) error       { return encodeStringList(&d.Menus, values) }
func (d *Dish) SetRestaurants(values []string) error { return encodeStringList(&d.Restaurants, values) }

// MarshalJSON exposes the list fields as real JSON arrays.
func (d Dish) MarshalJSON() ([]byte, error) {
	type alias Dish
	return json.Marshal(struct {
		alias
		Ingredients []string `json:"ingredients"`
		Allergens   []string `json:"allergens"`
		Menus       []string `json:"menus"`
		Restaurants []string `json:"restaurants"`
	}{
		alias:       alias(d),
		Ingredients: d.GetIngredients(),
		Allergens:   d.GetAllergens(),
		Menus:       d.GetMenus(),
		Restaurants: d.GetRestaurants(),
	})
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []string{}
	}
	return values
}

func encodeStringList(dst *string, values []string) error {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	*dst = string(data)
	return nil
}

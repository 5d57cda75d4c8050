package models

import "time"

// Menu groups dishes under a restaurant, e.g. "autumn-tasting-menu".
// The restaurant is referenced by slug, like every catalog cross-reference.
type Menu struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Slug           string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	RestaurantSlug string    `gorm:"type:varchar(150);index" json:"restaurant_slug"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

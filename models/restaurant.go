package models

import "time"

// Restaurant is a catalog entity identified externally by its slug. Slugs are
// unique per collection and stable once assigned.
type Restaurant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CuisineType string    `gorm:"type:varchar(100)" json:"cuisine_type"`
	Address     string    `gorm:"type:varchar(255)" json:"address"`
	Phone       string    `gorm:"type:varchar(50)" json:"phone"`
	ImageUrl    string    `gorm:"type:varchar(255)" json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

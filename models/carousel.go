package models

import "time"

// CarouselImage is a promotional banner shown on the storefront,
// optionally linking to a product. ClickCount tracks click-throughs.
type CarouselImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `json:"title"`
	ImageURL     string    `gorm:"not null" json:"image_url"`
	ProductID    *uint     `json:"product_id"`
	Product      *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"product,omitempty"`
	DisplayOrder int       `json:"display_order"`
	ClickCount   int       `json:"click_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

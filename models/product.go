package models

import "time"

type Product struct {
	ID              uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string       `gorm:"not null" json:"name"`
	Description     string       `json:"description"`
	Price           float64      `gorm:"not null" json:"price"`
	DiscountPrice   float64      `json:"discount_price"`
	Stock           int          `json:"stock"`
	CategoryID      uint         `gorm:"not null;index" json:"category_id"`
	Category        Category     `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category"`
	Images          StringList   `gorm:"type:text" json:"images"`
	VideoURL        string       `json:"video_url"`
	Attributes      AttributeMap `gorm:"type:text" json:"attributes"`
	IsFeatured      bool         `json:"is_featured"`
	Rating          float64      `json:"rating"`
	Brand           string       `gorm:"index" json:"brand"`
	MetaKeywords    string       `json:"meta_keywords"`
	MetaDescription string       `json:"meta_description"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

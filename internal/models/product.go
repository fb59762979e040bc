package models

import "time"

// Product represents a product in the storefront catalog.
// Catalog entries are immutable at runtime outside the admin endpoints;
// ids are stable small integers assigned by the seed catalog.
type Product struct {
	ID               int       `json:"id" gorm:"primaryKey" validate:"omitempty,gt=0"`
	Name             string    `json:"name" validate:"required,min=3,max=100"`
	Price            float64   `json:"price" validate:"required,gt=0"`
	OldPrice         float64   `json:"old_price,omitempty" validate:"omitempty,gt=0"`
	Description      string    `json:"description" validate:"omitempty,max=2000"`
	ShortDescription string    `json:"short_description" validate:"omitempty,max=500"`
	Images           []string  `json:"images" gorm:"serializer:json"`
	Category         string    `json:"category" validate:"required"`
	Tags             []string  `json:"tags" gorm:"serializer:json"`
	Rating           float64   `json:"rating" validate:"gte=0,lte=5"`
	Stock            int       `json:"stock" validate:"gte=0"`
	Featured         bool      `json:"featured"`
	New              bool      `json:"new"`
	Sale             bool      `json:"sale"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// Category is a browsable product grouping. Products reference it by name;
// navigation references it by slug.
type Category struct {
	ID    int    `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" validate:"required"`
	Slug  string `json:"slug" gorm:"uniqueIndex" validate:"required"`
	Image string `json:"image"`
}

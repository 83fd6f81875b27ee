package models

import "time"

// Blog is a single post owned by exactly one user.
type Blog struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:255;not null"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null"`
	Content   string    `gorm:"type:text"`
	AuthorID  uint      `gorm:"index;not null"`
	IsActive  bool      `gorm:"default:false"` // published flag
	CreatedAt time.Time
	UpdatedAt time.Time

	Author User `gorm:"constraint:OnDelete:CASCADE"`
}

package models

import "time"

// User represents application user. Email doubles as the login identity.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	FullName     string `gorm:"size:64"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Blogs []Blog `gorm:"foreignKey:AuthorID"`
}

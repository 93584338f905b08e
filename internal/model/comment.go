package model

import "time"

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index"`
	AuthorID  uint64 `gorm:"not null;index"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time

	Post   Post `gorm:"constraint:OnDelete:CASCADE"`
	Author User `gorm:"constraint:OnDelete:CASCADE"`
}

package model

import "time"

// Post ordering everywhere is publication time descending; CreatedAt is
// the publication timestamp and is never updated after insert.
type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	Text      string    `gorm:"type:text;not null"`
	AuthorID  uint64    `gorm:"not null;index:idx_author_pub,priority:1"`
	GroupID   *uint64   `gorm:"index"`
	Image     string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index:idx_author_pub,priority:2,sort:desc"`
	UpdatedAt time.Time

	Author User   `gorm:"constraint:OnDelete:CASCADE"`
	Group  *Group `gorm:"constraint:OnDelete:SET NULL"`
}

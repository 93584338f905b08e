package model

import "time"

// Follow is a directed edge: the follower's feed includes AuthorID's
// posts. The unique pair index is what makes duplicate follows
// impossible at the store level.
type Follow struct {
	ID         uint64 `gorm:"primaryKey"`
	FollowerID uint64 `gorm:"not null;index:idx_follower;uniqueIndex:uk_follower_author"`
	AuthorID   uint64 `gorm:"not null;index:idx_followed;uniqueIndex:uk_follower_author"`
	CreatedAt  time.Time
}

func (Follow) TableName() string {
	return "follows"
}

// FollowOutbox records effective follow/unfollow mutations for
// asynchronous delivery (Kafka, notification mail).
type FollowOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // follow / unfollow
	Follower  uint64 `gorm:"not null"`
	Author    uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FollowOutbox) TableName() string { return "follow_outbox" }

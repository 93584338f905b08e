package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Yatube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository struct {
	DB *gorm.DB
}

type OutboxRepository struct {
	DB *gorm.DB
}

// Follow inserts the edge idempotently: the unique (follower_id,
// author_id) index plus ON CONFLICT DO NOTHING makes a duplicate
// request a no-op at the store, not a checked-then-inserted race.
// Returns changed=true only when the edge was actually created.
func (r *FollowRepository) Follow(ctx context.Context, followerID, authorID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).Create(&model.Follow{FollowerID: followerID, AuthorID: authorID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return r.insertOutbox(tx, "follow", followerID, authorID)
	})
	return changed, err
}

// Unfollow hard-deletes the edge; deleting a missing edge is a no-op.
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, authorID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND author_id = ?", followerID, authorID).
			Delete(&model.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return r.insertOutbox(tx, "unfollow", followerID, authorID)
	})
	return changed, err
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, authorID uint64) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *FollowRepository) CountForPair(followerID, authorID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&n).Error
	return n, err
}

// insertOutbox records the effective mutation in the same transaction,
// so an edge change and its event are committed together.
func (r *FollowRepository) insertOutbox(tx *gorm.DB, event string, follower, author uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"follower":   follower,
		"author":     author,
	})
	return tx.Create(&model.FollowOutbox{
		EventType: event,
		Follower:  follower,
		Author:    author,
		Payload:   string(payload),
		Status:    0,
	}).Error
}

// List returns pending outbox rows oldest first.
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.FollowOutbox, error) {
	var list []model.FollowOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FollowOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FollowOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}

package mysql

import (
	"Yatube/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").Preload("Group").First(&post, id).Error
	return &post, err
}

// Update touches only the mutable columns. Author and publication
// timestamp never change after creation.
func (r *PostRepository) Update(post *model.Post, text string, groupID *uint64, image string) error {
	return r.DB.Model(post).
		Select("text", "group_id", "image").
		Updates(map[string]any{"text": text, "group_id": groupID, "image": image}).Error
}

func (r *PostRepository) CountAll() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).Count(&n).Error
	return n, err
}

func (r *PostRepository) ListAll(offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *PostRepository) CountByGroup(groupID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).Where("group_id = ?", groupID).Count(&n).Error
	return n, err
}

func (r *PostRepository) ListByGroup(groupID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Preload("Author").Preload("Group").
		Where("group_id = ?", groupID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *PostRepository) CountByAuthor(authorID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, err
}

func (r *PostRepository) ListByAuthor(authorID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Preload("Author").Preload("Group").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

// CountByFollowed and ListByFollowed resolve the personalized feed with
// an explicit join on the follow graph, so membership always reflects
// the edges at read time.
func (r *PostRepository) CountByFollowed(viewerID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).
		Joins("JOIN follows ON follows.author_id = posts.author_id AND follows.follower_id = ?", viewerID).
		Count(&n).Error
	return n, err
}

func (r *PostRepository) ListByFollowed(viewerID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Preload("Author").Preload("Group").
		Joins("JOIN follows ON follows.author_id = posts.author_id AND follows.follower_id = ?", viewerID).
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

package mysql

import (
	"Yatube/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

func (r *GroupRepository) Create(group *model.Group) error {
	return r.DB.Create(group).Error
}

func (r *GroupRepository) FindByID(id uint64) (*model.Group, error) {
	var group model.Group
	err := r.DB.First(&group, id).Error
	return &group, err
}

func (r *GroupRepository) FindBySlug(slug string) (*model.Group, error) {
	var group model.Group
	err := r.DB.Where("slug = ?", slug).First(&group).Error
	return &group, err
}

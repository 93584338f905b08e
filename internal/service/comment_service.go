package service

import (
	"errors"
	"strings"

	"Yatube/internal/model"
	"Yatube/internal/repository/mysql"

	"gorm.io/gorm"
)

type CommentService struct {
	repo     *mysql.CommentRepository
	postRepo *mysql.PostRepository
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		repo:     &mysql.CommentRepository{DB: db},
		postRepo: &mysql.PostRepository{DB: db},
	}
}

// Add attaches a comment to a post. The comment is visible in the
// post's listing as soon as this returns.
func (s *CommentService) Add(authorID, postID uint64, text string) (*model.Comment, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		verr := &ValidationError{}
		verr.Add("text", "text is required")
		return nil, verr
	}
	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByPost(postID uint64) ([]model.Comment, error) {
	return s.repo.ListByPost(postID)
}

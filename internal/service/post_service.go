package service

import (
	"context"
	"errors"
	"strings"

	"Yatube/internal/config"
	"Yatube/internal/model"
	"Yatube/internal/pagination"
	"Yatube/internal/repository/mysql"

	"gorm.io/gorm"
)

// PostService composes the public listings, the personalized feed and
// the post mutation workflow.
type PostService struct {
	repo        *mysql.PostRepository
	groupRepo   *mysql.GroupRepository
	userRepo    *mysql.UserRepository
	commentRepo *mysql.CommentRepository
	followRepo  *mysql.FollowRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		repo:        &mysql.PostRepository{DB: db},
		groupRepo:   &mysql.GroupRepository{DB: db},
		userRepo:    &mysql.UserRepository{DB: db},
		commentRepo: &mysql.CommentRepository{DB: db},
		followRepo:  &mysql.FollowRepository{DB: db},
	}
}

// GroupListing is the group page context: the group itself plus its
// posts, newest first.
type GroupListing struct {
	Group *model.Group
	Page  pagination.Page[model.Post]
}

// ProfileListing is the author page context. Following reports whether
// the requesting viewer follows the author; always false for anonymous
// viewers.
type ProfileListing struct {
	Author    *model.User
	Page      pagination.Page[model.Post]
	PostCount int64
	Following bool
}

// PostDetail is the detail page context: the post, its author's total
// post count and the comments newest first.
type PostDetail struct {
	Post      *model.Post
	PostCount int64
	Comments  []model.Comment
}

func (s *PostService) page(total int64, requested int, list func(offset, limit int) ([]model.Post, error)) (pagination.Page[model.Post], error) {
	size := config.PostsPerPage
	number, totalPages, offset := pagination.Resolve(total, requested, size)
	items, err := list(offset, size)
	if err != nil {
		return pagination.Page[model.Post]{}, err
	}
	return pagination.Page[model.Post]{
		Items:      items,
		Number:     number,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

// ListAll is the global listing: every post, publication time
// descending.
func (s *PostService) ListAll(requestedPage int) (pagination.Page[model.Post], error) {
	total, err := s.repo.CountAll()
	if err != nil {
		return pagination.Page[model.Post]{}, err
	}
	return s.page(total, requestedPage, s.repo.ListAll)
}

// ListByGroup lists a group's posts. Posts without a group never show
// up here.
func (s *PostService) ListByGroup(slug string, requestedPage int) (*GroupListing, error) {
	group, err := s.groupRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	total, err := s.repo.CountByGroup(group.ID)
	if err != nil {
		return nil, err
	}
	page, err := s.page(total, requestedPage, func(offset, limit int) ([]model.Post, error) {
		return s.repo.ListByGroup(group.ID, offset, limit)
	})
	if err != nil {
		return nil, err
	}
	return &GroupListing{Group: group, Page: page}, nil
}

// ListByAuthor lists an author's posts plus the profile extras.
// viewerID zero means anonymous.
func (s *PostService) ListByAuthor(username string, requestedPage int, viewerID uint64) (*ProfileListing, error) {
	author, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	total, err := s.repo.CountByAuthor(author.ID)
	if err != nil {
		return nil, err
	}
	page, err := s.page(total, requestedPage, func(offset, limit int) ([]model.Post, error) {
		return s.repo.ListByAuthor(author.ID, offset, limit)
	})
	if err != nil {
		return nil, err
	}
	following := false
	if viewerID != 0 {
		following, err = s.followRepo.IsFollowing(context.Background(), viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}
	return &ProfileListing{
		Author:    author,
		Page:      page,
		PostCount: total,
		Following: following,
	}, nil
}

// Feed lists posts by authors the viewer follows. Membership is
// resolved against the follow graph at read time; nothing here is
// cached.
func (s *PostService) Feed(viewerID uint64, requestedPage int) (pagination.Page[model.Post], error) {
	total, err := s.repo.CountByFollowed(viewerID)
	if err != nil {
		return pagination.Page[model.Post]{}, err
	}
	return s.page(total, requestedPage, func(offset, limit int) ([]model.Post, error) {
		return s.repo.ListByFollowed(viewerID, offset, limit)
	})
}

// GetDetail loads a post with its comments and the author's post count.
func (s *PostService) GetDetail(postID uint64) (*PostDetail, error) {
	post, err := s.repo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	count, err := s.repo.CountByAuthor(post.AuthorID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(post.ID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, PostCount: count, Comments: comments}, nil
}

func (s *PostService) validate(text string, groupID *uint64) error {
	verr := &ValidationError{}
	if strings.TrimSpace(text) == "" {
		verr.Add("text", "text is required")
	}
	if groupID != nil {
		if _, err := s.groupRepo.FindByID(*groupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verr.Add("group", "unknown group")
			} else {
				return err
			}
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Create publishes a post. The publication timestamp is assigned by
// the store at insert and never changes.
func (s *PostService) Create(authorID uint64, text string, groupID *uint64, image string) (*model.Post, error) {
	if err := s.validate(text, groupID); err != nil {
		return nil, err
	}
	post := &model.Post{
		Text:     text,
		AuthorID: authorID,
		GroupID:  groupID,
		Image:    image,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Edit updates text, group and image in place. A non-owner attempt
// changes nothing and returns ErrNotOwner so the handler can redirect
// silently.
func (s *PostService) Edit(userID, postID uint64, text string, groupID *uint64, image string) (*model.Post, error) {
	post, err := s.repo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.AuthorID != userID {
		return post, ErrNotOwner
	}
	if err := s.validate(text, groupID); err != nil {
		return post, err
	}
	if err := s.repo.Update(post, text, groupID, image); err != nil {
		return nil, err
	}
	post.Text = text
	post.GroupID = groupID
	post.Image = image
	return post, nil
}

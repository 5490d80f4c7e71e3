package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogapi/apperrors"
	"blogapi/models"

	"gorm.io/gorm"
)

type PostService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db, now: models.Now}
}

func (s *PostService) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).Order("id ASC").Find(&posts).Error
	return posts, err
}

func (s *PostService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

// ValidateAuthor reports an unknown author id as a validation failure on the
// author field.
func (s *PostService) ValidateAuthor(ctx context.Context, authorID uint) error {
	_, err := s.lookUpAuthor(ctx, authorID)
	return err
}

func (s *PostService) lookUpAuthor(ctx context.Context, authorID uint) (*models.User, error) {
	var author models.User
	if err := s.db.WithContext(ctx).First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.FieldError("author",
				fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", authorID))
		}
		return nil, fmt.Errorf("look up author %d: %w", authorID, err)
	}
	return &author, nil
}

// CreatePost stores a new post. The author must already exist. Title and body
// are stored without surrounding whitespace.
func (s *PostService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	author, err := s.lookUpAuthor(ctx, *req.Author)
	if err != nil {
		return nil, err
	}

	now := s.now()
	post := &models.Post{
		Title:     strings.TrimSpace(*req.Title),
		Body:      strings.TrimSpace(*req.Body),
		AuthorID:  author.ID,
		Author:    *author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Omit("Author").Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// UpdatePost applies the non-nil fields of req and refreshes updated_at. The
// author and created_at never change here.
func (s *PostService) UpdatePost(ctx context.Context, post *models.Post, req *models.UpdatePostRequest) (*models.Post, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
		updates["title"] = post.Title
	}
	if req.Body != nil {
		post.Body = strings.TrimSpace(*req.Body)
		updates["body"] = post.Body
	}

	now := s.now()
	if now.Before(post.CreatedAt) {
		now = post.CreatedAt
	}
	post.UpdatedAt = now
	updates["updated_at"] = now

	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update post %d: %w", post.ID, err)
	}

	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}

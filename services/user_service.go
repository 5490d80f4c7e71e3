package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"blogapi/apperrors"
	"blogapi/models"

	"gorm.io/gorm"
)

const msgUsernameTaken = "A user with that username already exists."

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := s.ensureUsernameFree(ctx, *req.Username, 0); err != nil {
		return nil, err
	}

	user := &models.User{
		Username: *req.Username,
		IsActive: true,
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.FieldError("username", msgUsernameTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, user *models.User, req *models.UpdateUserRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if req.Username != nil && *req.Username != user.Username {
		if err := s.ensureUsernameFree(ctx, *req.Username, user.ID); err != nil {
			return nil, err
		}
		user.Username = *req.Username
		updates["username"] = user.Username
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = user.Password
	}

	user.UpdatedAt = models.Now()
	updates["updated_at"] = user.UpdatedAt

	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.FieldError("username", msgUsernameTaken)
		}
		return nil, fmt.Errorf("update user %d: %w", user.ID, err)
	}

	return user, nil
}

// DeleteUser removes the user together with every post they authored.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("delete posts of user %d: %w", id, err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		return nil
	})
}

// Authenticate returns the active user matching the credentials, or
// apperrors.ErrAuthenticationFailed.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrAuthenticationFailed
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, apperrors.ErrAuthenticationFailed
	}
	return user, nil
}

// EnsureStaff creates the named account as staff, or promotes and resets the
// password of an existing one.
func (s *UserService) EnsureStaff(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		user = &models.User{Username: username, IsStaff: true, IsActive: true}
		if err := user.SetPassword(password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, fmt.Errorf("create staff user: %w", err)
		}
		log.Printf("Staff user %q created", username)
		return user, nil
	case err != nil:
		return nil, err
	}

	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.IsStaff = true
	user.IsActive = true
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("promote staff user: %w", err)
	}
	log.Printf("Staff user %q updated", username)
	return user, nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string, exceptID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return apperrors.FieldError("username", msgUsernameTaken)
	}
	return nil
}

package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Password  string    `json:"-"`
	IsStaff   bool      `json:"-" gorm:"not null;default:false"`
	IsActive  bool      `json:"-" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Posts     []Post    `json:"-" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type CreateUserRequest struct {
	Username *string `json:"username" binding:"required,notblank,max=150,username"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// UpdateUserRequest serves PUT and PATCH; the controller decides whether
// Username is mandatory.
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,notblank,max=150,username"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SetPassword stores a bcrypt hash of password. An empty password leaves the
// account without a usable password.
func (u *User) SetPassword(password string) error {
	if password == "" {
		u.Password = ""
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	if u.Password == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

package models

import (
	"time"
)

const TitleMaxLength = 127

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:127;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author" gorm:"not null;index"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// String renders the post as "<title> - <author username>". Author must be
// loaded for the username part to be meaningful.
func (p *Post) String() string {
	return p.Title + " - " + p.Author.Username
}

// AuthorKey identifies the owner for object-level permission checks.
func (p *Post) AuthorKey() uint {
	return p.AuthorID
}

type CreatePostRequest struct {
	Author *uint   `json:"author" binding:"required"`
	Title  *string `json:"title" binding:"required,notblank,max=127"`
	Body   *string `json:"body" binding:"required,notblank"`
}

// UpdatePostRequest serves PUT and PATCH. Author is accepted so that clients
// echoing a full record do not fail, but it is never applied.
type UpdatePostRequest struct {
	Author *uint   `json:"author"`
	Title  *string `json:"title" binding:"omitempty,notblank,max=127"`
	Body   *string `json:"body" binding:"omitempty,notblank"`
}

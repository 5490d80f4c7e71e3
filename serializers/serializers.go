package serializers

import (
	"time"

	"blogapi/models"
)

type PostResponse struct {
	ID        uint   `json:"id"`
	Author    uint   `json:"author"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// FormatTimestamp renders t in UTC as ISO-8601 with a "Z" suffix. Fractional
// seconds are written as microseconds and only when non-zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format("2006-01-02T15:04:05Z")
	}
	return t.Format("2006-01-02T15:04:05.000000Z")
}

func Post(p *models.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Author:    p.AuthorID,
		Title:     p.Title,
		Body:      p.Body,
		CreatedAt: FormatTimestamp(p.CreatedAt),
	}
}

func Posts(posts []models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, Post(&posts[i]))
	}
	return out
}

func User(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}

func Users(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, User(&users[i]))
	}
	return out
}

package post

import "time"

// Author is the denormalized summary embedded in every post payload.
type Author struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profile_pic"`
}

type Post struct {
	ID            int64     `json:"id"`
	Content       string    `json:"content"`
	Image         string    `json:"image"`
	CreatedAt     time.Time `json:"created_at"`
	Author        Author    `json:"author"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
}

type Page struct {
	Posts       []Post `json:"posts"`
	Total       int64  `json:"total"`
	Pages       int64  `json:"pages"`
	CurrentPage int    `json:"current_page"`
}

type CreateRequest struct {
	Content string `json:"content"`
	Image   string `json:"image"`
}

// UpdateRequest uses pointers so absent fields are left untouched while an
// explicit empty string still overwrites.
type UpdateRequest struct {
	Content *string `json:"content"`
	Image   *string `json:"image"`
}

package comment

import "time"

type Author struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profile_pic"`
}

type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	User      Author    `json:"user"`
}

type CreateRequest struct {
	Content string `json:"content"`
}

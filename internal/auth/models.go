package auth

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	ProfilePic   string    `json:"profile_pic"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest uses pointers so absent fields are left untouched
// while an explicit empty string still overwrites.
type UpdateProfileRequest struct {
	Bio        *string `json:"bio"`
	ProfilePic *string `json:"profile_pic"`
}

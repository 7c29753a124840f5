package dto

import "time"

type LoginCommand struct {
	Login    string
	Password string
}

type RegisterCommand struct {
	Username string
	Email    string
	Password string
	Role     string
}

type ResetPasswordCommand struct {
	UserID      int64
	OldPassword string
	NewPassword string
}

type UserResource struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthOutput struct {
	User        UserResource `json:"user"`
	AccessToken string       `json:"access_token"`
}

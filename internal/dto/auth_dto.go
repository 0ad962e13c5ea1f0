package dto

import "time"

type RegisterDTO struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Password1 string `json:"password1" binding:"required,min=8"`
	Password2 string `json:"password2" binding:"required,eqfield=Password1"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PasswordChangeDTO struct {
	OldPassword  string `json:"old_password" binding:"required"`
	NewPassword1 string `json:"new_password1" binding:"required,min=8"`
	NewPassword2 string `json:"new_password2" binding:"required,eqfield=NewPassword1"`
}

// TokenDTO mirrors the login reply of the previous auth backend.
type TokenDTO struct {
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

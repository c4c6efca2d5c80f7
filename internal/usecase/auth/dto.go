package auth

import userUsecase "lost-and-found/internal/usecase/user"

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Session         string `json:"session" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// LoginResult is handed to the HTTP layer, which puts the tokens in cookies
// and only the user in the body.
type LoginResult struct {
	User   *userUsecase.UserResponse
	Tokens *TokenPair
}

type ResetSessionResponse struct {
	Email string `json:"email"`
}

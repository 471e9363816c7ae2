package dto

// LoginRequest accepts the institution id or email as the login name.
type LoginRequest struct {
	Login    string `json:"login"    binding:"required,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// TokenResponse carries a fresh token pair.
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user,omitempty"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest updates the caller's own password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

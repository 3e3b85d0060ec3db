package dto

// LoginRequest authenticates an admin with email and password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// AdminDTO is the authenticated admin profile.
type AdminDTO struct {
	UUID        string `json:"uuid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	LastLoginAt string `json:"last_login_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// SessionDTO carries issued tokens. The access token is also set as the
// admin_token cookie for browser clients.
type SessionDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Admin   AdminDTO   `json:"admin"`
	Session SessionDTO `json:"session"`
}

// RefreshRequest exchanges a refresh token for a new session.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

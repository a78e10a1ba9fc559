package dto

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returned on successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}

// UsernameCheckResponse for the public username probe.
type UsernameCheckResponse struct {
	Exists bool `json:"exists"`
}

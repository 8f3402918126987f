package models

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: alice@x.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: Passw0rd
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// JWT token
	// example: JWT_TOKEN
	Token string `json:"token"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	User  *UserOut `json:"user"`
	Token string   `json:"token"`
}

// ErrorResponse is the body of every non-2xx JSON response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: User not found
	Error string `json:"error"`
}

// StatusResponse is returned by health checks and simple acknowledgements
// swagger:model StatusResponse
type StatusResponse struct {
	Status string `json:"status"`
}

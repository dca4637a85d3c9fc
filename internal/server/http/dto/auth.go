package dto

// RegisterRequest describes a new account payload.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Subteam  string  `json:"subteam"`
	Phone    *string `json:"phone,omitempty"`
	Carrier  *string `json:"carrier,omitempty"`
}

// LoginRequest describes email/password credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"28800"`
}

// RegisterRequest represents a student self-registration request. Role and
// active flag are intentionally absent: they are system-assigned, never
// caller-supplied.
type RegisterRequest struct {
	Username      string  `json:"username" binding:"required,min=3,max=50"`
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required,min=8"`
	StudentNumber string  `json:"studentNumber" binding:"required"`
	FirstName     string  `json:"firstName" binding:"required"`
	MiddleName    *string `json:"middleName,omitempty"`
	LastName      string  `json:"lastName" binding:"required"`
	Course        string  `json:"course" binding:"required"`
	YearLevel     int     `json:"yearLevel" binding:"required,min=1,max=6"`
	Section       *string `json:"section,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
}

// UserResponse represents basic account information
type UserResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserType string `json:"userType" example:"student"`
	IsActive bool   `json:"isActive"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

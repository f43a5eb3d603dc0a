package dto

// LoginRequest carries the credentials of a member or company login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed bearer token for a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

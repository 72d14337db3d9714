package dto

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email" example:"anna@example.com"`
	Password        string `json:"password" binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,min=6,max=72"`
	FirstName       string `json:"firstName" binding:"required,min=2,max=100" example:"Anna"`
	LastName        string `json:"lastName" binding:"required,min=2,max=100" example:"Petrosyan"`
	Phone           string `json:"phone" binding:"required,phone" example:"+37491000000"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"otp" binding:"required,len=6" example:"123456"`
}

type ResendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginRequest is shared by the user and admin login endpoints.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password string `json:"password" binding:"required"`
}

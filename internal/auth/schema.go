package auth

import "strings"

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

func (LoginRequest) Messages() map[string]string {
	return map[string]string{
		"email.required":    "Email is required",
		"email.email":       "Please provide a valid email address",
		"email.type":        "Email must be a string",
		"password.required": "Password is required",
		"password.type":     "Password must be a string",
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,min=2,max=50"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8,max=72,maxbytes=72"`
	PasswordConfirmation string `json:"password_confirmation,omitempty" validate:"omitempty,eqfield=Password"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

func (RegisterRequest) Messages() map[string]string {
	return map[string]string{
		"name.required":                 "Name is required",
		"name.min":                      "Name must be at least 2 characters long",
		"name.max":                      "Name must not exceed 50 characters",
		"email.required":                "Email is required",
		"email.email":                   "Please provide a valid email address",
		"password.required":             "Password is required",
		"password.min":                  "Password must be at least 8 characters long",
		"password.max":                  "Password must not exceed 72 characters",
		"password.maxbytes":             "Password must not exceed 72 bytes",
		"password_confirmation.eqfield": "Password confirmation must match password",
	}
}

// UpdateProfileRequest represents a partial profile update. At least one field is required.
type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"required_without_all=Email NewPassword,omitnil,min=2,max=50"`
	Email       *string `json:"email" validate:"omitnil,email"`
	NewPassword *string `json:"new_password" validate:"omitnil,min=8,max=72,maxbytes=72"`
}

func (r *UpdateProfileRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Email != nil {
		email := NormalizeEmail(*r.Email)
		r.Email = &email
	}
}

func (UpdateProfileRequest) Messages() map[string]string {
	return map[string]string{
		"name.required_without_all": "At least one field is required for update",
		"name.min":                  "Name must be at least 2 characters long",
		"name.max":                  "Name must not exceed 50 characters",
		"email.email":               "Please provide a valid email address",
		"new_password.min":          "New password must be at least 8 characters long",
		"new_password.max":          "New password must not exceed 72 characters",
		"new_password.maxbytes":     "New password must not exceed 72 bytes",
	}
}

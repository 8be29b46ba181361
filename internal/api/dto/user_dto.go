package dto

import (
	"net/mail"
	"time"
)

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate returns field-level messages for a malformed login payload.
func (r LoginRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if r.Username == "" {
		problems["username"] = "username is required"
	} else if len(r.Username) > 100 {
		problems["username"] = "username must be at most 100 characters"
	}
	if r.Password == "" {
		problems["password"] = "password is required"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// CreateUserRequest payload for POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate returns field-level messages for a malformed create payload.
func (r CreateUserRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if msg := validateName(r.Name); msg != "" {
		problems["name"] = msg
	}
	if r.Email == "" {
		problems["email"] = "email is required"
	} else if msg := validateEmail(r.Email); msg != "" {
		problems["email"] = msg
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// UpdateUserRequest payload for PUT /users/{id}. Absent fields are left
// untouched by the update.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Validate checks only the supplied fields.
func (r UpdateUserRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if r.Name != nil {
		if msg := validateName(*r.Name); msg != "" {
			problems["name"] = msg
		}
	}
	if r.Email != nil {
		if msg := validateEmail(*r.Email); msg != "" {
			problems["email"] = msg
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// TokenResponse for login and refresh endpoints.
type TokenResponse struct {
	Token     string    `json:"token"`
	Message   string    `json:"message,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

func validateName(name string) string {
	if name == "" {
		return "name is required"
	}
	if len(name) > 100 {
		return "name must be at most 100 characters"
	}
	return ""
}

func validateEmail(email string) string {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "email must be a valid email address"
	}
	return ""
}

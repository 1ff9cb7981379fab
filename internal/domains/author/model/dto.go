package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	MaxNameLength     = 100
	MinPasswordLength = 6
	MaxPasswordLength = 72 // bcrypt chỉ dùng 72 byte đầu
)

// ========================================
// PROFILE DTOs
// ========================================

// CreateAuthorRequest - POST /authors
type CreateAuthorRequest struct {
	Name      string  `json:"name"`
	Surname   string  `json:"surname"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	BirthDate *string `json:"birthDate,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Normalize trim các field text và lowercase email
func (r *CreateAuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
	r.Email = NormalizeEmail(r.Email)
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Surname, validation.Required.Error("surname is required"), validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(MinPasswordLength, MaxPasswordLength).Error("password must be 6-72 characters"),
		),
		validation.Field(&r.BirthDate, validation.NilOrNotEmpty, validation.Date(DateLayout).Error(ErrInvalidBirthDate.Error())),
		validation.Field(&r.AvatarURL, validation.NilOrNotEmpty, is.URL),
	)
}

// UpdateAuthorRequest - PUT /authors/:id
// Full replace các field profile. Password không đổi được qua route này
type UpdateAuthorRequest struct {
	Name      string  `json:"name"`
	Surname   string  `json:"surname"`
	Email     string  `json:"email"`
	BirthDate *string `json:"birthDate,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

func (r *UpdateAuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
	r.Email = NormalizeEmail(r.Email)
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Surname, validation.Required.Error("surname is required"), validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.Length(3, 255),
		),
		validation.Field(&r.BirthDate, validation.NilOrNotEmpty, validation.Date(DateLayout).Error(ErrInvalidBirthDate.Error())),
		validation.Field(&r.AvatarURL, validation.NilOrNotEmpty, is.URL),
	)
}

// ApplyTo ghi đè profile fields lên entity hiện có
func (r UpdateAuthorRequest) ApplyTo(a *Author) error {
	birthDate, err := ParseBirthDate(r.BirthDate)
	if err != nil {
		return err
	}
	a.Name = r.Name
	a.Surname = r.Surname
	a.Email = r.Email
	a.BirthDate = birthDate
	a.AvatarURL = r.AvatarURL
	return nil
}

// ========================================
// AUTH DTOs
// ========================================

// LoginRequest - POST /authors/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse - {"message": "...", "token": "..."}
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ========================================
// HELPERS
// ========================================

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseBirthDate nil/"" → nil
func ParseBirthDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, ErrInvalidBirthDate
	}
	return &t, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout - birthDate trên API là "YYYY-MM-DD", DB là cột DATE
const DateLayout = "2006-01-02"

// Author represents the core Author entity
// PasswordHash và OAuthID không bao giờ được serialize
type Author struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Surname      string     `json:"surname" db:"surname"`
	Email        string     `json:"email" db:"email"` // luôn lowercase
	PasswordHash *string    `json:"-" db:"password_hash"`
	OAuthID      *string    `json:"-" db:"oauth_id"`
	BirthDate    *time.Time `json:"-" db:"birth_date"`
	AvatarURL    *string    `json:"avatarUrl,omitempty" db:"avatar_url"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// HasPassword - tài khoản OAuth-only không có password
func (a *Author) HasPassword() bool {
	return a.PasswordHash != nil && *a.PasswordHash != ""
}

// AuthorResponse là shape public của author, không có password
type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	BirthDate *string   `json:"birthDate,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToResponse converts Author entity to AuthorResponse DTO
func (a Author) ToResponse() AuthorResponse {
	var birthDate *string
	if a.BirthDate != nil {
		s := a.BirthDate.Format(DateLayout)
		birthDate = &s
	}
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Surname:   a.Surname,
		Email:     a.Email,
		BirthDate: birthDate,
		AvatarURL: a.AvatarURL,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToResponses converts a slice, never returns nil so JSON is [] not null
func ToResponses(authors []Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.ToResponse())
	}
	return out
}

// OAuthProfile là profile đã chuẩn hóa từ identity provider
type OAuthProfile struct {
	ProviderID    string
	Email         string
	EmailVerified bool
	GivenName     string
	FamilyName    string
	DisplayName   string
}

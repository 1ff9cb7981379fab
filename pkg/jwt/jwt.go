package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken bao cả sai chữ ký, sai thuật toán, payload hỏng và hết hạn
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents JWT claims structure
// ID là author id, Subject mang cùng giá trị
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates new JWT manager
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock thay đồng hồ, dùng trong test để kiểm tra expiry
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// GenerateAccessToken issues an HS256 token carrying the author id
func (m *Manager) GenerateAccessToken(authorID string) (string, error) {
	if authorID == "" {
		return "", fmt.Errorf("empty author id")
	}

	issuedAt := m.now()
	claims := Claims{
		ID: authorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   authorID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates and parses token, returning the author id
func (m *Manager) ValidateToken(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}

	return claims.ID, nil
}

package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/author/model"
	"blog-backend/pkg/cache"
)

const (
	stateTTL       = 10 * time.Minute
	stateKeyPrefix = "oauth:state:"
	stateBytes     = 32
)

// AuthorResolver - author service.FindOrCreateByOAuth
type AuthorResolver interface {
	FindOrCreateByOAuth(ctx context.Context, profile model.OAuthProfile) (*model.Author, error)
}

// TokenIssuer - *jwt.Manager thỏa mãn
type TokenIssuer interface {
	GenerateAccessToken(authorID string) (string, error)
}

// Service điều phối federated login: state → consent → callback → token
type Service struct {
	provider Provider
	states   cache.Store
	authors  AuthorResolver
	tokens   TokenIssuer
}

func NewService(provider Provider, states cache.Store, authors AuthorResolver, tokens TokenIssuer) *Service {
	return &Service{
		provider: provider,
		states:   states,
		authors:  authors,
		tokens:   tokens,
	}
}

// Begin sinh state ngẫu nhiên, lưu 10 phút, trả URL consent screen
func (s *Service) Begin(ctx context.Context) (string, error) {
	state, err := randomState()
	if err != nil {
		return "", err
	}

	if err := s.states.Set(ctx, stateKeyPrefix+state, "1", stateTTL); err != nil {
		return "", fmt.Errorf("store oauth state: %w", err)
	}

	return s.provider.AuthCodeURL(state), nil
}

// Complete xác thực + tiêu thụ state, đổi code, resolve author rồi phát token
func (s *Service) Complete(ctx context.Context, state, code string) (string, error) {
	if state == "" {
		return "", ErrInvalidState
	}

	// Take xóa key luôn nên state không dùng lại được
	_, found, err := s.states.Take(ctx, stateKeyPrefix+state)
	if err != nil {
		return "", fmt.Errorf("consume oauth state: %w", err)
	}
	if !found {
		return "", ErrInvalidState
	}

	if code == "" {
		return "", ErrMissingCode
	}

	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return "", err
	}

	author, err := s.authors.FindOrCreateByOAuth(ctx, *profile)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.GenerateAccessToken(author.ID.String())
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	log.Info().Str("author_id", author.ID.String()).Msg("OAuth login succeeded")
	return token, nil
}

func randomState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
